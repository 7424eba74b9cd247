// Package capability implements the search index over the knowledge base:
// documents are split into markdown sections and ranked against a keyword
// set by occurrence count.
package capability

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/thesminc/POCkit-sub000/internal/knowledge"
	"github.com/thesminc/POCkit-sub000/internal/shared/metrics"
	"github.com/thesminc/POCkit-sub000/internal/shared/telemetry"
)

const (
	// DefaultMaxResults bounds a search when the caller does not.
	DefaultMaxResults = 10

	maxExcerptRunes    = 2000
	fallbackTitleRunes = 80
	defaultWorkers     = 4
)

// Capability is one knowledge-base section judged relevant to a keyword query.
type Capability struct {
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	SectionTitle string `json:"sectionTitle"`
	BodyExcerpt  string `json:"bodyExcerpt"`
	MatchScore   int    `json:"matchScore"`
}

// SearchOptions narrows a search. A zero MaxResults means DefaultMaxResults;
// a non-empty DocumentIDs restricts the scan to those documents.
type SearchOptions struct {
	MaxResults  int
	DocumentIDs []string
}

// Index ranks knowledge-base sections against keyword queries. It holds no
// document state of its own; every search re-reads through the Source, so
// results always reflect the current catalog.
type Index struct {
	src     knowledge.Source
	workers int
}

// NewIndex constructs an Index reading through src with a bounded number of
// concurrent document reads.
func NewIndex(src knowledge.Source, workers int) *Index {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Index{src: src, workers: workers}
}

// Search scans every readable document, splits it into sections on level-2
// markdown headings, and returns the sections with the highest keyword
// occurrence counts. A document that cannot be read is logged and skipped.
// Results are deterministic for an unchanged catalog: ties keep catalog
// order.
func (ix *Index) Search(ctx context.Context, keywords []string, opts SearchOptions) ([]Capability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	terms := normalizeTerms(keywords)
	if len(terms) == 0 {
		return []Capability{}, nil
	}

	refs, err := ix.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	refs = filterRefs(refs, opts.DocumentIDs)
	if len(refs) == 0 {
		return []Capability{}, nil
	}

	// Disjoint writes per document index keep the scan order-independent;
	// flattening in catalog order restores determinism afterwards.
	perDoc := make([][]Capability, len(refs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := ix.workers
	if workers > len(refs) {
		workers = len(refs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perDoc[i] = ix.scanDocument(ctx, refs[i], terms)
			}
		}()
	}

feed:
	for i := range refs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Capability
	for _, caps := range perDoc {
		out = append(out, caps...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	if out == nil {
		out = []Capability{}
	}

	metrics.IncSearch()
	metrics.ObserveSearchDurationMs(float64(time.Since(started).Microseconds()) / 1000)
	return out, nil
}

func (ix *Index) scanDocument(ctx context.Context, ref knowledge.Ref, terms []string) []Capability {
	if ctx.Err() != nil {
		return nil
	}
	text, err := ix.src.Read(ctx, ref.ID)
	if err != nil {
		telemetry.Warn("capability: skip unreadable document", map[string]any{
			"document_id": ref.ID,
			"error":       err.Error(),
		})
		return nil
	}

	var out []Capability
	for _, sec := range splitSections(text) {
		score := matchScore(sec.body, terms)
		if score == 0 {
			continue
		}
		out = append(out, Capability{
			DocumentID:   ref.ID,
			DocumentName: ref.Name,
			SectionTitle: sec.title,
			BodyExcerpt:  truncateRunes(sec.body, maxExcerptRunes),
			MatchScore:   score,
		})
	}
	return out
}

type section struct {
	title string
	body  string
}

// splitSections splits text on "## " heading lines. Text before the first
// heading becomes an implicit section titled by its own leading line. The
// heading line itself is not part of the section body.
func splitSections(text string) []section {
	var out []section
	title := ""
	titled := false
	var body []string

	flush := func() {
		b := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if !titled && b == "" {
			return
		}
		t := title
		if t == "" {
			t = fallbackTitle(b)
		}
		out = append(out, section{title: t, body: b})
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			title = strings.TrimSpace(strings.TrimPrefix(line, "## "))
			titled = true
			continue
		}
		body = append(body, line)
	}
	flush()
	return out
}

// fallbackTitle derives a title from the raw leading text of an untitled
// section.
func fallbackTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return truncateRunes(line, fallbackTitleRunes)
		}
	}
	return ""
}

func matchScore(body string, terms []string) int {
	lower := strings.ToLower(body)
	score := 0
	for _, term := range terms {
		score += strings.Count(lower, term)
	}
	return score
}

// normalizeTerms lowercases, trims, and dedupes the query keywords so a
// keyword passed twice cannot double-count.
func normalizeTerms(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		term := strings.ToLower(strings.TrimSpace(kw))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

func filterRefs(refs []knowledge.Ref, ids []string) []knowledge.Ref {
	if len(ids) == 0 {
		return refs
	}
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	out := make([]knowledge.Ref, 0, len(refs))
	for _, ref := range refs {
		if _, ok := allowed[ref.ID]; ok {
			out = append(out, ref)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

package capability

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/thesminc/POCkit-sub000/internal/knowledge"
)

type mapSource struct {
	refs    []knowledge.Ref
	docs    map[string]string
	failing map[string]bool
}

func (s mapSource) List(ctx context.Context) ([]knowledge.Ref, error) {
	return s.refs, nil
}

func (s mapSource) Read(ctx context.Context, id string) (string, error) {
	if s.failing[id] {
		return "", errors.New("storage offline")
	}
	text, ok := s.docs[id]
	if !ok {
		return "", knowledge.ErrNotFound
	}
	return text, nil
}

func testSource() mapSource {
	return mapSource{
		refs: []knowledge.Ref{
			{ID: "doc-a", Name: "alpha.md"},
			{ID: "doc-b", Name: "beta.md"},
		},
		docs: map[string]string{
			"doc-a": "# Alpha Toolkit\n\n## Static Analyzer\nstatic analysis helpers run analysis jobs\n\n## Report Generator\nmarkdown report output",
			"doc-b": "## Migration Kit\nanalysis and migration scripts",
		},
	}
}

func TestSearchRanksByOccurrenceCount(t *testing.T) {
	ix := NewIndex(testSource(), 2)

	caps, err := ix.Search(context.Background(), []string{"analysis"}, SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 2 {
		t.Fatalf("expected 2 capabilities, got %d: %+v", len(caps), caps)
	}

	first := caps[0]
	if first.DocumentID != "doc-a" || first.SectionTitle != "Static Analyzer" || first.MatchScore != 2 {
		t.Fatalf("unexpected top capability: %+v", first)
	}
	if first.DocumentName != "alpha.md" {
		t.Fatalf("unexpected document name: %q", first.DocumentName)
	}
	second := caps[1]
	if second.DocumentID != "doc-b" || second.SectionTitle != "Migration Kit" || second.MatchScore != 1 {
		t.Fatalf("unexpected second capability: %+v", second)
	}
}

func TestSearchTiesKeepCatalogOrder(t *testing.T) {
	ix := NewIndex(testSource(), 2)

	caps, err := ix.Search(context.Background(), []string{"analysis", "migration"}, SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 2 {
		t.Fatalf("expected 2 capabilities, got %d", len(caps))
	}
	if caps[0].MatchScore != 2 || caps[1].MatchScore != 2 {
		t.Fatalf("expected tied scores of 2, got %d and %d", caps[0].MatchScore, caps[1].MatchScore)
	}
	if caps[0].SectionTitle != "Static Analyzer" || caps[1].SectionTitle != "Migration Kit" {
		t.Fatalf("tie did not keep catalog order: %+v", caps)
	}
}

func TestSearchPreambleIsImplicitSection(t *testing.T) {
	src := mapSource{
		refs: []knowledge.Ref{{ID: "doc-p", Name: "preamble.md"}},
		docs: map[string]string{
			"doc-p": "intro text about conversion pipelines\nsecond line\n\n## Other\nnothing relevant",
		},
	}
	ix := NewIndex(src, 1)

	caps, err := ix.Search(context.Background(), []string{"conversion"}, SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 1 {
		t.Fatalf("expected 1 capability, got %d", len(caps))
	}
	if caps[0].SectionTitle != "intro text about conversion pipelines" {
		t.Fatalf("unexpected fallback title: %q", caps[0].SectionTitle)
	}
	if caps[0].BodyExcerpt != "intro text about conversion pipelines\nsecond line" {
		t.Fatalf("unexpected excerpt: %q", caps[0].BodyExcerpt)
	}
}

func TestSearchEmptyKeywords(t *testing.T) {
	ix := NewIndex(testSource(), 2)

	for _, keywords := range [][]string{nil, {}, {"", "  "}} {
		caps, err := ix.Search(context.Background(), keywords, SearchOptions{})
		if err != nil {
			t.Fatalf("Search(%v): %v", keywords, err)
		}
		if len(caps) != 0 {
			t.Fatalf("Search(%v): expected no capabilities, got %+v", keywords, caps)
		}
	}
}

func TestSearchRestrictsToDocumentIDs(t *testing.T) {
	ix := NewIndex(testSource(), 2)

	caps, err := ix.Search(context.Background(), []string{"analysis"}, SearchOptions{
		DocumentIDs: []string{"doc-b"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 1 || caps[0].DocumentID != "doc-b" {
		t.Fatalf("expected only doc-b results, got %+v", caps)
	}
}

func TestSearchSkipsUnreadableDocument(t *testing.T) {
	src := testSource()
	src.failing = map[string]bool{"doc-a": true}
	ix := NewIndex(src, 2)

	caps, err := ix.Search(context.Background(), []string{"analysis"}, SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 1 || caps[0].DocumentID != "doc-b" {
		t.Fatalf("expected doc-b only after skipping unreadable doc-a, got %+v", caps)
	}
}

func TestSearchHonorsMaxResults(t *testing.T) {
	ix := NewIndex(testSource(), 2)

	caps, err := ix.Search(context.Background(), []string{"analysis"}, SearchOptions{MaxResults: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 1 || caps[0].SectionTitle != "Static Analyzer" {
		t.Fatalf("expected only the top capability, got %+v", caps)
	}
}

func TestSearchTruncatesExcerpt(t *testing.T) {
	body := strings.TrimSpace(strings.Repeat("analysis ", 300))
	src := mapSource{
		refs: []knowledge.Ref{{ID: "doc-big", Name: "big.md"}},
		docs: map[string]string{"doc-big": "## Big Section\n" + body},
	}
	ix := NewIndex(src, 1)

	caps, err := ix.Search(context.Background(), []string{"analysis"}, SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(caps) != 1 {
		t.Fatalf("expected 1 capability, got %d", len(caps))
	}
	if got := utf8.RuneCountInString(caps[0].BodyExcerpt); got != maxExcerptRunes {
		t.Fatalf("expected excerpt of %d runes, got %d", maxExcerptRunes, got)
	}
	if caps[0].MatchScore != 300 {
		t.Fatalf("expected score from full body, got %d", caps[0].MatchScore)
	}
}

func TestSearchDeterministicAcrossCalls(t *testing.T) {
	src := mapSource{
		refs: []knowledge.Ref{
			{ID: "d1", Name: "one.md"},
			{ID: "d2", Name: "two.md"},
			{ID: "d3", Name: "three.md"},
			{ID: "d4", Name: "four.md"},
		},
		docs: map[string]string{
			"d1": "## A\nbatch batch conversion",
			"d2": "## B\nbatch conversion conversion",
			"d3": "## C\nconversion",
			"d4": "## D\nbatch",
		},
	}
	ix := NewIndex(src, 3)

	first, err := ix.Search(context.Background(), []string{"batch", "conversion"}, SearchOptions{})
	if err != nil {
		t.Fatalf("first Search: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ix.Search(context.Background(), []string{"batch", "conversion"}, SearchOptions{})
		if err != nil {
			t.Fatalf("repeat Search: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("search results differ between calls:\n%+v\n%+v", first, again)
		}
	}
}

func TestSearchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ix := NewIndex(testSource(), 2)
	if _, err := ix.Search(ctx, []string{"analysis"}, SearchOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSplitSections(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []section
	}{
		{
			name: "preamble and two sections",
			text: "pre\n\n## A\nbodyA\n## B\nbodyB",
			want: []section{
				{title: "pre", body: "pre"},
				{title: "A", body: "bodyA"},
				{title: "B", body: "bodyB"},
			},
		},
		{
			name: "level-3 heading is not a boundary",
			text: "### Deep\nbody",
			want: []section{{title: "### Deep", body: "### Deep\nbody"}},
		},
		{
			name: "missing space is not a heading",
			text: "##NoSpace\ntext",
			want: []section{{title: "##NoSpace", body: "##NoSpace\ntext"}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "document starting at a heading",
			text: "## Only\nbody",
			want: []section{{title: "Only", body: "body"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitSections(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("splitSections(%q) = %+v, want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestNormalizeTerms(t *testing.T) {
	got := normalizeTerms([]string{"API", "api", " Api ", "", "batch"})
	want := []string{"api", "batch"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeTerms = %v, want %v", got, want)
	}
}

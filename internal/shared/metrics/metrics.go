package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	documentsIngestedTotal atomic.Uint64
	searchesTotal          atomic.Uint64
	recommendationsTotal   atomic.Uint64
	evaluationsTotal       atomic.Uint64
	verdictYesTotal        atomic.Uint64
	verdictPartialTotal    atomic.Uint64
	verdictNoTotal         atomic.Uint64

	searchDuration     = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000})
	evaluationDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 10000})
)

// IncDocumentIngested increments the ingested-document counter.
func IncDocumentIngested() {
	documentsIngestedTotal.Add(1)
}

// IncSearch increments the capability-search counter.
func IncSearch() {
	searchesTotal.Add(1)
}

// IncRecommendation increments the tool-recommendation counter.
func IncRecommendation() {
	recommendationsTotal.Add(1)
}

// IncEvaluation increments the feasibility-evaluation counter.
func IncEvaluation() {
	evaluationsTotal.Add(1)
}

// IncVerdict increments the counter for the given verdict label.
func IncVerdict(verdict string) {
	switch verdict {
	case "YES":
		verdictYesTotal.Add(1)
	case "PARTIAL":
		verdictPartialTotal.Add(1)
	case "NO":
		verdictNoTotal.Add(1)
	}
}

// ObserveSearchDurationMs records a capability-search duration in milliseconds.
func ObserveSearchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	searchDuration.Observe(value)
}

// ObserveEvaluationDurationMs records a feasibility-evaluation duration in milliseconds.
func ObserveEvaluationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	evaluationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "documents_ingested_total", "Total knowledge documents ingested", documentsIngestedTotal.Load())
	writeCounter(&buf, "capability_searches_total", "Total capability searches executed", searchesTotal.Load())
	writeCounter(&buf, "tool_recommendations_total", "Total tool recommendation runs", recommendationsTotal.Load())
	writeCounter(&buf, "evaluations_total", "Total feasibility evaluations", evaluationsTotal.Load())
	writeCounter(&buf, "evaluation_verdict_yes_total", "Total evaluations with verdict YES", verdictYesTotal.Load())
	writeCounter(&buf, "evaluation_verdict_partial_total", "Total evaluations with verdict PARTIAL", verdictPartialTotal.Load())
	writeCounter(&buf, "evaluation_verdict_no_total", "Total evaluations with verdict NO", verdictNoTotal.Load())
	writeHistogram(&buf, "capability_search_duration_ms", "Capability search duration in milliseconds", searchDuration.Snapshot())
	writeHistogram(&buf, "evaluation_duration_ms", "Feasibility evaluation duration in milliseconds", evaluationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

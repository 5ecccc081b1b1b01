package metrics

import (
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "relnotes"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runDuration *prom.HistogramVec
	runOutcome  *prom.CounterVec
	documents   *prom.CounterVec
	updates     *prom.CounterVec
	imageCache  *prom.CounterVec
	links       *prom.CounterVec
	pages       *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of generation runs",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generation runs by kind and final result",
		}, []string{"kind", "result"}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Source documents fetched, by result",
		}, []string{"result"}),
		updates: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Updates extracted from documents, by kind",
		}, []string{"kind"}),
		imageCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "image_cache_total",
			Help:      "Image cache resolutions by outcome",
		}, []string{"outcome"}),
		links: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "endpoint_links_total",
			Help:      "Endpoint reference resolutions by fallback tier",
		}, []string{"tier"}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Emitted pages by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.documents, pr.updates, pr.imageCache, pr.links, pr.pages)
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(kind string, d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(kind string, result ResultLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) IncDocuments(result ResultLabel) {
	if p == nil {
		return
	}
	p.documents.WithLabelValues(string(result)).Inc()
}

// IncUpdates labels by the first word of the description ("Release", "Patch").
func (p *PrometheusRecorder) IncUpdates(description string) {
	if p == nil {
		return
	}
	kind, _, _ := strings.Cut(description, " ")
	p.updates.WithLabelValues(strings.ToLower(kind)).Inc()
}

func (p *PrometheusRecorder) IncImageCache(outcome string) {
	if p == nil {
		return
	}
	p.imageCache.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncLinkResolution(tier string) {
	if p == nil {
		return
	}
	p.links.WithLabelValues(tier).Inc()
}

func (p *PrometheusRecorder) IncPages(outcome string) {
	if p == nil {
		return
	}
	p.pages.WithLabelValues(outcome).Inc()
}

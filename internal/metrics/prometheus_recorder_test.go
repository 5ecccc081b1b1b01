package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveRunDuration("releases", 1500*time.Millisecond)
	pr.IncRunOutcome("releases", ResultSuccess)
	pr.IncDocuments(ResultSuccess)
	pr.IncDocuments(ResultFailed)
	pr.IncUpdates("Release R12")
	pr.IncUpdates("Patch R12a")
	pr.IncUpdates("Patch R12b")
	pr.IncImageCache(ImageHit)
	pr.IncLinkResolution("version_stripped")
	pr.IncPages(PageWritten)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 7)

	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "relnotes_updates_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"release": 1, "patch": 2}, counts)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncPages(PageUnchanged)
		pr.ObserveRunDuration("apidocs", time.Second)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncImageCache(ImageStored)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `relnotes_image_cache_total{outcome="stored"} 1`)
}

func TestOrNoop(t *testing.T) {
	assert.Equal(t, NoopRecorder{}, OrNoop(nil))
	pr := NewPrometheusRecorder(nil)
	assert.Same(t, pr, OrNoop(pr))
}

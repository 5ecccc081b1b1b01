package metrics

import "time"

// ResultLabel enumerates outcome labels shared by several counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
)

// Image cache outcomes.
const (
	ImageHit    = "hit"
	ImageStored = "stored"
	ImageFailed = "failed"
)

// Page write outcomes.
const (
	PageWritten   = "written"
	PageUnchanged = "unchanged"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveRunDuration(kind string, d time.Duration)
	IncRunOutcome(kind string, result ResultLabel)
	IncDocuments(result ResultLabel)
	IncUpdates(description string)
	IncImageCache(outcome string)
	IncLinkResolution(tier string)
	IncPages(outcome string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string, ResultLabel)        {}
func (NoopRecorder) IncDocuments(ResultLabel)                 {}
func (NoopRecorder) IncUpdates(string)                        {}
func (NoopRecorder) IncImageCache(string)                     {}
func (NoopRecorder) IncLinkResolution(string)                 {}
func (NoopRecorder) IncPages(string)                          {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

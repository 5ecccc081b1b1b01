package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/relnotes/internal/apidocs"
	"git.home.luguber.info/inful/relnotes/internal/config"
	"git.home.luguber.info/inful/relnotes/internal/navigation"
)

// Service is implemented by every pipeline.
type Service interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

// Kind names a pipeline in logs and metrics.
type Kind string

const (
	KindReleases Kind = "releases"
	KindAPIDocs  Kind = "apidocs"
)

// Request contains all inputs required to execute a run.
type Request struct {
	// Config is the loaded configuration for this run.
	Config *config.Config

	// Now anchors the archive partition. Zero means the service clock.
	Now time.Time
}

// Result contains the outcome of a run.
type Result struct {
	RunID  string
	Kind   Kind
	Status Status

	// Documents counts fetched documents; DocumentsFailed those skipped.
	Documents       int
	DocumentsFailed int
	Updates         int
	// Undated counts updates left out of every page.
	Undated int

	CurrentYear  int
	CutoffYear   int
	ArchiveYears []int

	// PagesWritten lists pages whose content changed; PagesUnchanged counts the rest.
	PagesWritten   []string
	PagesUnchanged int
	// ImagesCached is the number of images in the cache directory after warm-up.
	ImagesCached int

	// Navigation is nil when the navigation step did not run.
	Navigation *navigation.Result

	APIs        []apidocs.Result
	APIFailures []string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Status represents the outcome of a run.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusPartial means pages were produced but a step or unit failed.
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusPartial ||
		s == StatusFailed || s == StatusCancelled
}

// IsSuccess reports whether output was produced.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusPartial
}

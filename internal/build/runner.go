package build

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/config"
	"git.home.luguber.info/inful/relnotes/internal/httpclient"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
)

// runner holds the collaborators shared by every service.
type runner struct {
	fs       afero.Fs
	client   *http.Client
	recorder metrics.Recorder
	logger   *slog.Logger
	clock    func() time.Time
}

func newRunner(fs afero.Fs) runner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return runner{
		fs:       fs,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		clock:    time.Now,
	}
}

func (r *runner) httpClient(cfg *config.Config) *http.Client {
	if r.client != nil {
		return r.client
	}
	return httpclient.New(cfg.HTTPTimeout())
}

func (r *runner) begin(kind Kind) (*Result, *slog.Logger) {
	res := &Result{RunID: uuid.NewString(), Kind: kind, StartTime: r.clock()}
	log := r.logger.With(logfields.RunID(res.RunID), logfields.RunKind(string(kind)))
	log.Info("Run started")
	return res, log
}

// finish stamps the result and records the outcome.
func (r *runner) finish(ctx context.Context, log *slog.Logger, res *Result, status Status, err error) (*Result, error) {
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		status = StatusCancelled
	}
	res.Status = status
	res.EndTime = r.clock()
	res.Duration = res.EndTime.Sub(res.StartTime)

	r.recorder.ObserveRunDuration(string(res.Kind), res.Duration)
	r.recorder.IncRunOutcome(string(res.Kind), outcomeLabel(status))

	attrs := []any{slog.String("status", string(status)), logfields.Duration(res.Duration)}
	switch {
	case err != nil && status == StatusPartial:
		log.Warn("Run finished with errors", append(attrs, logfields.Error(err))...)
	case err != nil:
		log.Error("Run failed", append(attrs, logfields.Error(err))...)
	default:
		log.Info("Run finished", attrs...)
	}
	return res, err
}

func outcomeLabel(s Status) metrics.ResultLabel {
	switch s {
	case StatusSuccess:
		return metrics.ResultSuccess
	case StatusPartial:
		return metrics.ResultWarning
	default:
		return metrics.ResultFailed
	}
}

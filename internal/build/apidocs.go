package build

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/apidocs"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
	"git.home.luguber.info/inful/relnotes/internal/transform"
)

// APIDocsService syncs every configured API description. A failing API is
// logged and skipped; the others still run.
type APIDocsService struct {
	runner
}

func NewAPIDocsService(fs afero.Fs) *APIDocsService {
	return &APIDocsService{runner: newRunner(fs)}
}

func (s *APIDocsService) WithHTTPClient(c *http.Client) *APIDocsService {
	s.client = c
	return s
}

func (s *APIDocsService) WithRecorder(r metrics.Recorder) *APIDocsService {
	s.recorder = metrics.OrNoop(r)
	return s
}

func (s *APIDocsService) WithLogger(l *slog.Logger) *APIDocsService {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *APIDocsService) WithClock(clock func() time.Time) *APIDocsService {
	s.clock = clock
	return s
}

// Run syncs the APIs in configuration order. It fails only when every API failed.
func (s *APIDocsService) Run(ctx context.Context, req Request) (*Result, error) {
	res, log := s.begin(KindAPIDocs)
	if req.Config == nil {
		return s.finish(ctx, log, res, StatusFailed,
			ferrors.WrapError(ErrConfigRequired, ferrors.CategoryConfig, "config required").Fatal().Build())
	}
	cfg := req.Config
	if len(cfg.APIs) == 0 {
		log.Warn("No APIs configured")
		return s.finish(ctx, log, res, StatusSuccess, nil)
	}

	syncer := apidocs.New(s.fs,
		apidocs.WithHTTPClient(s.httpClient(cfg)),
		apidocs.WithUserAgent(cfg.HTTP.UserAgent),
		apidocs.WithRecorder(s.recorder),
		apidocs.WithLogger(log),
		apidocs.WithPlaceholderSuffixes(cfg.Endpoints.PlaceholderSuffixes),
		apidocs.WithTransformOptions(transform.WithTicketURLTemplate(cfg.Tickets.URLTemplate)))

	var lastErr error
	for _, api := range cfg.APIs {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, log, res, StatusFailed, err)
		}
		out, err := syncer.Sync(ctx, api)
		if err != nil {
			if ctx.Err() != nil {
				return s.finish(ctx, log, res, StatusFailed, err)
			}
			lastErr = err
			res.APIFailures = append(res.APIFailures, api.Name)
			log.Error("API sync failed, skipping", logfields.API(api.Name), logfields.Error(err))
			continue
		}
		res.APIs = append(res.APIs, out)
	}

	switch {
	case len(res.APIFailures) == len(cfg.APIs):
		return s.finish(ctx, log, res, StatusFailed, lastErr)
	case len(res.APIFailures) > 0:
		return s.finish(ctx, log, res, StatusPartial, nil)
	default:
		return s.finish(ctx, log, res, StatusSuccess, nil)
	}
}

package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/relnotes/internal/config"
	"git.home.luguber.info/inful/relnotes/internal/endpoints"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/imagecache"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/markdown"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
	"git.home.luguber.info/inful/relnotes/internal/navigation"
	"git.home.luguber.info/inful/relnotes/internal/pages"
	"git.home.luguber.info/inful/relnotes/internal/release"
	"git.home.luguber.info/inful/relnotes/internal/sources"
	"git.home.luguber.info/inful/relnotes/internal/sources/localdir"
	"git.home.luguber.info/inful/relnotes/internal/sources/outline"
	"git.home.luguber.info/inful/relnotes/internal/storage"
	"git.home.luguber.info/inful/relnotes/internal/transform"
)

// IndexPage is the file name of the page holding current updates.
const IndexPage = "index.mdx"

// ReleaseNotesService fetches change-log documents and writes the release pages.
type ReleaseNotesService struct {
	runner
	source sources.Source
}

// NewReleaseNotesService creates a service writing to fs. A nil fs means the OS filesystem.
func NewReleaseNotesService(fs afero.Fs) *ReleaseNotesService {
	return &ReleaseNotesService{runner: newRunner(fs)}
}

// WithSource replaces the source selected from configuration (for testing).
func (s *ReleaseNotesService) WithSource(src sources.Source) *ReleaseNotesService {
	s.source = src
	return s
}

func (s *ReleaseNotesService) WithHTTPClient(c *http.Client) *ReleaseNotesService {
	s.client = c
	return s
}

func (s *ReleaseNotesService) WithRecorder(r metrics.Recorder) *ReleaseNotesService {
	s.recorder = metrics.OrNoop(r)
	return s
}

func (s *ReleaseNotesService) WithLogger(l *slog.Logger) *ReleaseNotesService {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *ReleaseNotesService) WithClock(clock func() time.Time) *ReleaseNotesService {
	s.clock = clock
	return s
}

// NewSource selects the document source named by the configuration.
func NewSource(cfg *config.Config, fs afero.Fs, client *http.Client, logger *slog.Logger) (sources.Source, error) {
	switch cfg.Releases.Source {
	case config.SourceOutline:
		o := cfg.Releases.Outline
		return outline.New(client, o.APIBaseURL, o.ShareID, cfg.HTTP.UserAgent, logger), nil
	case config.SourceLocal:
		return localdir.New(fs, cfg.Releases.LocalDir), nil
	default:
		return nil, ferrors.ConfigError("unknown release source").
			WithContext("source", string(cfg.Releases.Source)).
			Build()
	}
}

// Run executes the release-notes pipeline: fetch, parse, sort, partition,
// warm the image cache, transform, write pages, update navigation.
func (s *ReleaseNotesService) Run(ctx context.Context, req Request) (*Result, error) {
	res, log := s.begin(KindReleases)
	if req.Config == nil {
		return s.finish(ctx, log, res, StatusFailed,
			ferrors.WrapError(ErrConfigRequired, ferrors.CategoryConfig, "config required").Fatal().Build())
	}
	cfg := req.Config
	now := req.Now
	if now.IsZero() {
		now = s.clock()
	}
	client := s.httpClient(cfg)

	// Stage 1: fetch
	src := s.source
	if src == nil {
		var err error
		if src, err = NewSource(cfg, s.fs, client, log); err != nil {
			return s.finish(ctx, log, res, StatusFailed, err)
		}
	}
	batch, err := src.Documents(ctx)
	if err != nil {
		return s.finish(ctx, log, res, StatusFailed, err)
	}
	for _, f := range batch.Failures {
		s.recorder.IncDocuments(metrics.ResultFailed)
		log.Warn("Skipping document", logfields.Document(f.Title), logfields.Error(f.Err))
	}
	res.Documents = len(batch.Documents)
	res.DocumentsFailed = len(batch.Failures)

	// Stage 2: parse and partition
	var agg release.Aggregator
	for _, doc := range batch.Documents {
		updates := release.ParseDocument(doc.Title, doc.Body)
		agg.AddDocument(updates)
		s.recorder.IncDocuments(metrics.ResultSuccess)
		for _, u := range updates {
			s.recorder.IncUpdates(u.Description)
		}
		log.Debug("Parsed document", logfields.Document(doc.Title), logfields.Count(len(updates)))
	}
	res.Updates = agg.Len()
	part := agg.Partition(now, cfg.Releases.ArchiveWindow)
	res.CurrentYear, res.CutoffYear = part.CurrentYear, part.CutoffYear
	res.ArchiveYears = part.ArchiveYears()
	res.Undated = len(part.Undated)
	for _, u := range part.Undated {
		log.Warn("Update has no parseable date, leaving it out",
			logfields.Update(u.Description), slog.String("label", u.Label))
	}

	// Stage 3: images
	cache, err := s.imageCache(cfg, client, log)
	if err != nil {
		return s.finish(ctx, log, res, StatusFailed, err)
	}
	locators := remoteImages(part)
	log.Info("Warming image cache", logfields.Count(len(locators)))
	if err := cache.Warm(ctx, locators, cfg.Images.Concurrency); err != nil {
		return s.finish(ctx, log, res, StatusFailed, err)
	}
	if stored, err := cache.Stored(); err != nil {
		log.Warn("Failed to list image cache", logfields.Error(err))
	} else {
		res.ImagesCached = len(stored)
		log.Debug("Image cache warmed", logfields.Count(len(stored)))
	}

	// Stage 4: transform and write
	tr := transform.New(s.transformOptions(cfg, cache, log)...)
	writer := pages.NewWriter(s.fs, s.recorder, log)
	index := pages.Page{
		Title:       "Release Notes",
		Description: fmt.Sprintf("Latest updates from %d - %d", part.CutoffYear, part.CurrentYear),
		Blocks:      blocks(ctx, tr, part.Current),
	}
	if err := s.writePage(writer, res, filepath.Join(cfg.Releases.OutputDir, IndexPage), index); err != nil {
		return s.finish(ctx, log, res, StatusFailed, err)
	}
	for _, g := range part.Archive {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, log, res, StatusFailed, err)
		}
		archive := pages.Page{
			Title:       fmt.Sprintf("%d Archive", g.Year),
			Description: fmt.Sprintf("Release history for %d", g.Year),
			Blocks:      blocks(ctx, tr, g.Updates),
		}
		if err := s.writePage(writer, res, filepath.Join(cfg.Releases.OutputDir, strconv.Itoa(g.Year)+".mdx"), archive); err != nil {
			return s.finish(ctx, log, res, StatusFailed, err)
		}
	}

	// Stage 5: navigation
	if err := s.updateNavigation(cfg, res, log); err != nil {
		return s.finish(ctx, log, res, StatusPartial, err)
	}

	status := StatusSuccess
	if res.DocumentsFailed > 0 {
		status = StatusPartial
	}
	return s.finish(ctx, log, res, status, nil)
}

func (s *ReleaseNotesService) imageCache(cfg *config.Config, client *http.Client, log *slog.Logger) (*imagecache.Cache, error) {
	store, err := storage.NewFSStore(s.fs, cfg.Images.Dir)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to open image directory").
			WithCause(err).
			WithContext("path", cfg.Images.Dir).
			Build()
	}
	return imagecache.New(store, cfg.Images.PublicPath,
		imagecache.WithHTTPClient(client),
		imagecache.WithMaxBytes(cfg.Images.MaxBytes),
		imagecache.WithUserAgent(cfg.HTTP.UserAgent),
		imagecache.WithRecorder(s.recorder),
		imagecache.WithLogger(log)), nil
}

func (s *ReleaseNotesService) transformOptions(cfg *config.Config, cache *imagecache.Cache, log *slog.Logger) []transform.Option {
	opts := []transform.Option{
		transform.WithImageResolver(cache),
		transform.WithTicketURLTemplate(cfg.Tickets.URLTemplate),
		transform.WithLogger(log),
	}
	if !cfg.Endpoints.LinkReleaseNotes {
		return opts
	}
	set := LoadEndpointSet(s.fs, cfg.APIs, log)
	if len(set) == 0 {
		return opts
	}
	resolver := endpoints.NewResolver(set,
		endpoints.WithPlaceholderSuffixes(cfg.Endpoints.PlaceholderSuffixes),
		endpoints.WithObserver(func(t endpoints.Tier) { s.recorder.IncLinkResolution(string(t)) }))
	return append(opts, transform.WithLinker(resolver))
}

// LoadEndpointSet indexes the saved copy of every configured API description.
// APIs whose copy is missing or unparseable are skipped.
func LoadEndpointSet(fs afero.Fs, apis []config.APIConfig, log *slog.Logger) endpoints.Set {
	var set endpoints.Set
	for _, api := range apis {
		data, err := afero.ReadFile(fs, api.Output)
		if err != nil {
			log.Debug("No saved API description, not linking its endpoints",
				logfields.API(api.Name), logfields.Path(api.Output))
			continue
		}
		idx, _, err := endpoints.LoadIndex(api.LinkBase, data)
		if err != nil {
			log.Warn("Saved API description is invalid", logfields.API(api.Name), logfields.Error(err))
			continue
		}
		set = append(set, idx)
	}
	return set
}

func (s *ReleaseNotesService) writePage(w *pages.Writer, res *Result, path string, p pages.Page) error {
	changed, err := w.Write(path, p)
	if err != nil {
		return ferrors.FileSystemError("failed to write page").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if changed {
		res.PagesWritten = append(res.PagesWritten, path)
	} else {
		res.PagesUnchanged++
	}
	return nil
}

func (s *ReleaseNotesService) updateNavigation(cfg *config.Config, res *Result, log *slog.Logger) error {
	nav := cfg.Navigation
	out, err := navigation.UpdateGroup(s.fs, nav.File, navigation.GroupOptions{
		Group:        nav.Group,
		Tab:          nav.Tab,
		ArchiveGroup: nav.ArchiveGroup,
		Prefix:       cfg.Releases.PagePrefix,
	}, res.ArchiveYears)
	switch {
	case errors.Is(err, navigation.ErrNavigationNotFound):
		log.Warn("Navigation file not found, skipping navigation update", logfields.Path(nav.File))
		return nil
	case err != nil:
		return ferrors.NavigationError("failed to update navigation").
			WithCause(err).
			WithContext("path", nav.File).
			Build()
	}
	res.Navigation = &out
	log.Info("Updated navigation",
		logfields.Path(nav.File),
		slog.String("outcome", string(out.Outcome)),
		slog.Bool("changed", out.Changed))
	return nil
}

// remoteImages lists the remote image references of every update that will be
// rendered.
func remoteImages(p release.Partition) []string {
	var out []string
	collect := func(updates []release.Update) {
		for _, u := range updates {
			out = append(out, markdown.RemoteImageDestinations([]byte(u.Content))...)
		}
	}
	collect(p.Current)
	for _, g := range p.Archive {
		collect(g.Updates)
	}
	return out
}

func blocks(ctx context.Context, tr *transform.Transformer, updates []release.Update) []pages.Block {
	out := make([]pages.Block, 0, len(updates))
	for _, u := range updates {
		out = append(out, pages.Block{
			Label:       u.Label,
			Description: u.Description,
			Content:     tr.Transform(ctx, u.Content),
		})
	}
	return out
}

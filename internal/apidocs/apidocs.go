// Package apidocs syncs OpenAPI descriptions into the docs tree: a pretty
// JSON copy for Mintlify's API reference, an introduction page and, when the
// description carries one, a changelog page.
package apidocs

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/relnotes/internal/config"
	"git.home.luguber.info/inful/relnotes/internal/docjson"
	"git.home.luguber.info/inful/relnotes/internal/endpoints"
	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
	"git.home.luguber.info/inful/relnotes/internal/httpclient"
	"git.home.luguber.info/inful/relnotes/internal/logfields"
	"git.home.luguber.info/inful/relnotes/internal/metrics"
	"git.home.luguber.info/inful/relnotes/internal/pages"
	"git.home.luguber.info/inful/relnotes/internal/storage"
	"git.home.luguber.info/inful/relnotes/internal/transform"
)

const (
	IntroFile     = "introduction.mdx"
	ChangelogFile = "changelog.mdx"

	defaultTitle = "API Reference"
	defaultIntro = "Welcome to the API documentation."

	maxDescriptionBytes = 50 << 20
)

var (
	changelogHeadingRe = regexp.MustCompile(`(?i)##\s?Changelog`)
	portRe             = regexp.MustCompile(`:\d+`)
)

// Result summarises one synced API.
type Result struct {
	API        string
	SpecPath   string
	Operations int
	Pages      []string
	Index      *endpoints.Index
}

// Syncer fetches and renders API descriptions.
type Syncer struct {
	fs        afero.Fs
	client    *http.Client
	userAgent string
	writer    *pages.Writer
	recorder  metrics.Recorder
	logger    *slog.Logger

	transformOpts []transform.Option
	suffixes      []string
}

// Option configures a Syncer.
type Option func(*Syncer)

func WithHTTPClient(c *http.Client) Option { return func(s *Syncer) { s.client = c } }

func WithUserAgent(ua string) Option { return func(s *Syncer) { s.userAgent = ua } }

func WithRecorder(r metrics.Recorder) Option {
	return func(s *Syncer) { s.recorder = metrics.OrNoop(r) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTransformOptions are applied to the changelog transformer in addition
// to the per-API endpoint linker.
func WithTransformOptions(opts ...transform.Option) Option {
	return func(s *Syncer) { s.transformOpts = append(s.transformOpts, opts...) }
}

func WithPlaceholderSuffixes(suffixes []string) Option {
	return func(s *Syncer) { s.suffixes = suffixes }
}

func New(fs afero.Fs, opts ...Option) *Syncer {
	s := &Syncer{
		fs:       fs,
		client:   httpclient.New(httpclient.DefaultTimeout),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writer = pages.NewWriter(fs, s.recorder, s.logger)
	return s
}

// ServerURL derives the public server URL from a description's location: the
// file name and the first ":port" are removed.
func ServerURL(source string) string {
	base := source
	if i := strings.LastIndex(source, "/"); i >= 0 {
		base = source[:i]
	}
	if loc := portRe.FindStringIndex(base); loc != nil {
		base = base[:loc[0]] + base[loc[1]:]
	}
	return base
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Sync processes one configured API.
func (s *Syncer) Sync(ctx context.Context, api config.APIConfig) (Result, error) {
	log := s.logger.With(logfields.API(api.Name))
	res := Result{API: api.Name, SpecPath: api.Output}

	data, err := s.load(ctx, api.Source)
	if err != nil {
		return res, err
	}

	root, err := docjson.Parse(data)
	if err != nil {
		return res, ferrors.ParseError("invalid API description").
			WithCause(err).
			WithContext("api", api.Name).
			Build()
	}
	desc, err := endpoints.DescriptionFromNode(root)
	if err != nil {
		return res, ferrors.ParseError("invalid API description").
			WithCause(err).
			WithContext("api", api.Name).
			Build()
	}

	if isRemote(api.Source) {
		server := ServerURL(api.Source)
		docjson.Set(root, "servers", docjson.Array(docjson.Object("url", server)))
		log.Debug("Rewrote server URL", logfields.URL(server))
	}
	if err := s.writeSpec(api.Output, root); err != nil {
		return res, err
	}

	res.Operations = len(desc.Operations)
	res.Index = endpoints.NewIndex(api.LinkBase, desc.Operations)

	written, err := s.writeDocs(ctx, path.Dir(api.Output), desc, res.Index)
	res.Pages = written
	if err != nil {
		return res, err
	}
	log.Info("Synced API description",
		logfields.Path(api.Output),
		logfields.Count(res.Operations))
	return res, nil
}

func (s *Syncer) load(ctx context.Context, source string) ([]byte, error) {
	if isRemote(source) {
		return httpclient.Fetch(ctx, s.client, source, s.userAgent, maxDescriptionBytes)
	}
	data, err := afero.ReadFile(s.fs, source)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to read API description").
			WithCause(err).
			WithContext("path", source).
			Build()
	}
	return data, nil
}

func (s *Syncer) writeSpec(out string, root *yaml.Node) error {
	pretty, err := docjson.Marshal(root)
	if err != nil {
		return ferrors.InternalError("failed to encode API description").WithCause(err).Build()
	}
	if existing, err := afero.ReadFile(s.fs, out); err == nil && string(existing) == string(pretty) {
		return nil
	}
	if err := storage.WriteFileAtomic(s.fs, out, pretty, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write API description").
			WithCause(err).
			WithContext("path", out).
			Build()
	}
	return nil
}

func (s *Syncer) writeDocs(ctx context.Context, dir string, desc *endpoints.Description, idx *endpoints.Index) ([]string, error) {
	title := desc.Title
	if title == "" {
		title = defaultTitle
	}
	intro, changelog, hasChangelog := SplitChangelog(desc.Description)
	if intro == "" {
		intro = defaultIntro
	}

	written := make([]string, 0, 2)
	introPath := path.Join(dir, IntroFile)
	if _, err := s.writer.Write(introPath, pages.Page{
		Title:       title,
		Description: "Overview of " + title,
		Intro:       intro,
	}); err != nil {
		return written, ferrors.FileSystemError("failed to write introduction").WithCause(err).Build()
	}
	written = append(written, introPath)

	if !hasChangelog {
		return written, nil
	}

	linker := endpoints.NewResolver(idx,
		endpoints.WithPlaceholderSuffixes(s.suffixes),
		endpoints.WithObserver(func(t endpoints.Tier) { s.recorder.IncLinkResolution(string(t)) }))
	tr := transform.New(append(append([]transform.Option{}, s.transformOpts...),
		transform.WithLinker(linker), transform.WithLogger(s.logger))...)

	preamble, entries := SplitEntries(changelog)
	blocks := make([]pages.Block, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, pages.Block{Label: e.Label, Content: tr.Transform(ctx, e.Content)})
	}
	changelogPath := path.Join(dir, ChangelogFile)
	if _, err := s.writer.Write(changelogPath, pages.Page{
		Title:       "Changelog",
		Description: "Latest updates and changes to the API",
		Intro:       preamble,
		Blocks:      blocks,
	}); err != nil {
		return written, ferrors.FileSystemError("failed to write changelog").WithCause(err).Build()
	}
	return append(written, changelogPath), nil
}

// SplitChangelog splits an API description's text at its "## Changelog"
// heading. Both parts are trimmed.
func SplitChangelog(text string) (intro, changelog string, ok bool) {
	loc := changelogHeadingRe.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), "", false
	}
	intro = strings.TrimSpace(text[:loc[0]])
	rest := text[loc[1]:]
	if next := changelogHeadingRe.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	changelog = strings.TrimSpace(rest)
	return intro, changelog, changelog != ""
}

// Entry is one dated changelog section.
type Entry struct {
	Label   string
	Content string
}

// SplitEntries splits changelog text at every "#### " marker. Text before the
// first marker is the preamble.
func SplitEntries(changelog string) (preamble string, entries []Entry) {
	parts := strings.Split(changelog, "#### ")
	preamble = strings.TrimSpace(parts[0])
	for _, section := range parts[1:] {
		label, content, found := strings.Cut(section, "\n")
		if !found {
			entries = append(entries, Entry{Label: strings.TrimSpace(section)})
			continue
		}
		entries = append(entries, Entry{Label: strings.TrimSpace(label), Content: strings.TrimSpace(content)})
	}
	return preamble, entries
}

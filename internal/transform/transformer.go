package transform

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/relnotes/internal/logfields"
)

// Linker rewrites endpoint references into links.
type Linker interface {
	Linkify(text string) string
}

// Stage is one named prose rewrite.
type Stage struct {
	Name  string
	Apply func(ctx context.Context, text string) string
}

// Transformer converts one update body at a time. It is safe for concurrent
// use when its collaborators are.
type Transformer struct {
	images  ImageResolver
	linker  Linker
	tickets TicketLinker
	logger  *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithImageResolver routes image locators through r; nil keeps them as written.
func WithImageResolver(r ImageResolver) Option { return func(t *Transformer) { t.images = r } }

// WithLinker enables endpoint linkification of prose.
func WithLinker(l Linker) Option { return func(t *Transformer) { t.linker = l } }

// WithTicketURLTemplate enables ticket linking; the template must contain "{id}".
func WithTicketURLTemplate(tmpl string) Option {
	return func(t *Transformer) { t.tickets = TicketLinker{URLTemplate: tmpl} }
}

// WithLogger sets the logger; nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

// New returns a Transformer with the given collaborators.
func New(opts ...Option) *Transformer {
	t := &Transformer{logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func pure(name string, fn func(string) string) Stage {
	return Stage{Name: name, Apply: func(_ context.Context, text string) string { return fn(text) }}
}

// Stages returns the prose rewrites in the order they run.
func (t *Transformer) Stages() []Stage {
	return []Stage{
		pure("headings", RemapHeadings),
		pure("escape", EscapeStructural),
		pure("callouts", ConvertCallouts),
		pure("tickets", t.tickets.Apply),
		{Name: "images", Apply: func(ctx context.Context, text string) string {
			return ConvertImages(ctx, text, t.images)
		}},
		pure("frames", SeparateFrames),
		pure("cleanup", CleanupArtifacts),
	}
}

// Transform rewrites body. Fenced code is copied byte for byte.
func (t *Transformer) Transform(ctx context.Context, body string) string {
	stages := t.Stages()
	segments := SplitFences(body)
	for i, seg := range segments {
		if seg.Code {
			continue
		}
		text := seg.Text
		for _, st := range stages {
			text = st.Apply(ctx, text)
		}
		if t.linker != nil {
			text = t.linker.Linkify(text)
		}
		segments[i].Text = text
	}
	out := JoinSegments(segments)
	t.logger.Debug("Transformed body", logfields.Count(len(segments)))
	return out
}

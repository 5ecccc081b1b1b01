package transform

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/relnotes/internal/endpoints"
)

type mapResolver struct {
	mu    sync.Mutex
	refs  map[string]string
	calls []string
}

func (r *mapResolver) Resolve(_ context.Context, locator string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, locator)
	if ref, ok := r.refs[locator]; ok {
		return ref
	}
	return locator
}

func TestSplitFences(t *testing.T) {
	in := "before\n```go\nx := map[string]int{}\n```\nmiddle\n```\nraw\n```"
	segs := SplitFences(in)

	require.Len(t, segs, 4)
	assert.False(t, segs[0].Code)
	assert.True(t, segs[1].Code)
	assert.Equal(t, "```go\nx := map[string]int{}\n```", segs[1].Text)
	assert.False(t, segs[2].Code)
	assert.True(t, segs[3].Code)
	assert.Equal(t, in, JoinSegments(segs))
}

func TestSplitFences_Unbalanced(t *testing.T) {
	segs := SplitFences("text ``` dangling")
	require.Len(t, segs, 1)
	assert.False(t, segs[0].Code)
}

func TestTransform_FencedCodeIsByteIdentical(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		prose string
	}{
		{
			name:  "structural characters inside fence",
			in:    "# Title {x}\n\n```json\n{\"a\": \"<b>\"}\n# not a heading\n:::warning\nno\n:::\n![x](https://cdn.test/x.png)\n\\n\n```\n\n<div> after",
			prose: "\\<div> after",
		},
		{
			name:  "fence at start",
			in:    "```\n{a} <b>\n```\nthen {b}",
			prose: "then \\{b\\}",
		},
		{
			name:  "fence at end",
			in:    "before {a}\n```\n:::tip\nx\n:::\n```",
			prose: "before \\{a\\}",
		},
		{
			name:  "adjacent fences",
			in:    "```\n{one}\n```\n```\n<two>\n```",
			prose: "\n",
		},
		{
			name:  "back to back fences",
			in:    "```\n![a](https://cdn.test/a.png)\n``````\n## two\n```",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New(WithImageResolver(&mapResolver{})).Transform(context.Background(), tt.in)

			var fences int
			for _, seg := range SplitFences(tt.in) {
				if seg.Code {
					fences++
					assert.Contains(t, out, seg.Text)
				}
			}
			assert.Positive(t, fences)
			assert.Contains(t, out, tt.prose)
		})
	}
}

func TestTransform_UnbalancedTrailingFenceIsProse(t *testing.T) {
	in := "```\nfirst {a}\n```\nafter\n```\n{b} <c>"
	out := New().Transform(context.Background(), in)

	assert.Contains(t, out, "```\nfirst {a}\n```")
	assert.Contains(t, out, "\\{b\\} \\<c>")
}

func TestTransform_WarningCallout(t *testing.T) {
	out := New().Transform(context.Background(), ":::warning\nBe careful\n:::")
	assert.Contains(t, out, "<Warning>\nBe careful\n</Warning>")
}

func TestTransform_IsDeterministicWithWarmCache(t *testing.T) {
	resolver := &mapResolver{refs: map[string]string{
		"https://cdn.test/a.png": "/images/releases/aaa.png",
	}}
	tr := New(
		WithImageResolver(resolver),
		WithTicketURLTemplate("https://tracker.test/issue/{id}"),
		WithLinker(endpoints.NewResolver(endpoints.NewIndex("api", []endpoints.Operation{
			{Method: "GET", Path: "/orders/{id}", Summary: "Get order", Tags: []string{"Orders"}},
		}))),
	)
	in := "## New\nSee `GET /v1/orders/{id}` [ABC-1]\n\n![Shot](https://cdn.test/a.png \"=400x300\")\n```\n{}\n```\n"

	first := tr.Transform(context.Background(), in)
	second := tr.Transform(context.Background(), in)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "[`GET /v1/orders/{id}`](/api/orders/get-order)")
	assert.Contains(t, first, "[[ABC-1](https://tracker.test/issue/ABC-1)]")
	assert.Contains(t, first, `<Frame caption="Shot"><img src="/images/releases/aaa.png" alt="Shot" /></Frame>`)
}

func TestRemapHeadings(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"# One", "\n#### One"},
		{"## Two", "\n#### Two"},
		{"### Three", "\n**Three**"},
		{"#### Four", "#### Four"},
		{"#hashtag", "#hashtag"},
		{"text\n## Mid", "text\n\n#### Mid"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RemapHeadings(tt.in))
		})
	}
}

func TestEscapeStructural(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"braces", "use {id}", `use \{id\}`},
		{"leading and doubled braces", "{{x}}", `\{\{x\}\}`},
		{"already escaped", `keep \{ and \}`, `keep \{ and \}`},
		{"bare angle", "a < b", `a \< b`},
		{"html tag", "<div>", `\<div>`},
		{"callout tag", "<Note>hi</Note>", "<Note>hi</Note>"},
		{"self closing br", "<br/>", "<br/>"},
		{"img with attrs", `<img src="x" />`, `<img src="x" />`},
		{"autolink", "<https://example.com>", "<https://example.com>"},
		{"prefix of safe tag", "<Notebook>", `\<Notebook>`},
		{"escaped angle", `\<div>`, `\<div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeStructural(tt.in))
		})
	}
}

func TestConvertCallouts(t *testing.T) {
	tests := []struct {
		kind, want string
	}{
		{"tip", "Tip"},
		{"success", "Tip"},
		{"warning", "Warning"},
		{"DANGER", "Warning"},
		{"info", "Note"},
		{"whatever", "Note"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got := ConvertCallouts(":::" + tt.kind + "\n  Some text \n:::")
			assert.Equal(t, "\n<"+tt.want+">\nSome text\n</"+tt.want+">\n", got)
		})
	}
}

func TestTicketLinker(t *testing.T) {
	l := TicketLinker{URLTemplate: "https://tracker.test/{id}"}

	assert.Equal(t,
		"Fixed [[ABC-1](https://tracker.test/ABC-1) & [DEF-22](https://tracker.test/DEF-22)].",
		l.Apply(`Fixed \[ABC-1 & DEF-22\].`))
	assert.Equal(t, "[[OPS-7](https://tracker.test/OPS-7)]", l.Apply("[OPS-7]"))
	assert.Equal(t, "[A-1] [abc-1]", l.Apply("[A-1] [abc-1]"))
	assert.Equal(t, "[ABC-1]", TicketLinker{}.Apply("[ABC-1]"))
}

func TestConvertImages(t *testing.T) {
	resolver := &mapResolver{refs: map[string]string{
		"https://cdn.test/a.png?sig=1": "/img/a.png",
	}}
	tests := []struct {
		name, in, want string
	}{
		{
			name: "title caption",
			in:   `![alt](https://cdn.test/a.png?sig=1 "The "new" view")`,
			want: "\n\n<Frame caption=\"The &quot;new&quot; view\"><img src=\"/img/a.png\" alt=\"alt\" /></Frame>\n\n",
		},
		{
			name: "size hint falls back to alt",
			in:   `![Dashboard](https://cdn.test/b.png " =300x200")`,
			want: "\n\n<Frame caption=\"Dashboard\"><img src=\"https://cdn.test/b.png\" alt=\"Dashboard\" /></Frame>\n\n",
		},
		{
			name: "no caption",
			in:   `![](https://cdn.test/c.png)`,
			want: "\n\n<Frame><img src=\"https://cdn.test/c.png\" alt=\"\" /></Frame>\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertImages(context.Background(), tt.in, resolver))
		})
	}
}

func TestConvertImages_NilResolver(t *testing.T) {
	out := ConvertImages(context.Background(), "![a](https://cdn.test/a.png)", nil)
	assert.Contains(t, out, `src="https://cdn.test/a.png"`)
}

func TestSeparateFrames(t *testing.T) {
	in := "<Frame><img /></Frame>\n\n  \n<Frame><img /></Frame> text <Frame></Frame>"
	want := "<Frame><img /></Frame>\n\n<br />\n\n<Frame><img /></Frame> text <Frame></Frame>"
	assert.Equal(t, want, SeparateFrames(in))
}

func TestCleanupArtifacts(t *testing.T) {
	assert.Equal(t, "a\nb\n\nc", CleanupArtifacts("a\\nb\n \\ \nc"))
}

func TestTransform_StageOrder(t *testing.T) {
	names := make([]string, 0)
	for _, st := range New().Stages() {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"headings", "escape", "callouts", "tickets", "images", "frames", "cleanup"}, names)
}

func TestTransform_AdjacentImages(t *testing.T) {
	in := "![](https://cdn.test/a.png)\n![](https://cdn.test/b.png)"
	out := New().Transform(context.Background(), in)
	assert.Equal(t, 1, strings.Count(out, "<br />"))
}

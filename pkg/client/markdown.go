package client

import (
	"html"

	"gitlab.com/golang-commonmark/markdown"
)

// renderer converts analysis markdown into display HTML. Raw HTML in the
// source is disabled, so model output cannot inject markup.
type renderer struct {
	md *markdown.Markdown
}

func newRenderer() *renderer {
	return &renderer{
		md: markdown.New(
			markdown.HTML(false),
			markdown.XHTMLOutput(true),
			markdown.Linkify(true),
		),
	}
}

// Render converts markdown to HTML. It never panics outward: malformed input
// degrades to escaped plain text inside a <pre> block.
func (r *renderer) Render(src string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			out = "<pre>" + html.EscapeString(src) + "</pre>"
		}
	}()

	return r.md.RenderToString([]byte(src))
}

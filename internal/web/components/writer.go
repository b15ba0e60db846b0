// Package components renders the site's HTML as templ components.
package components

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so component bodies read top to
// bottom without an error check after every tag.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) html(s template.HTML) {
	h.raw(string(s))
}

func (h *htmlWriter) attr(name string, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) int(n int) {
	h.raw(strconv.Itoa(n))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		body(h)
		return h.err
	})
}

// liveGet is the datastar action that fetches href over the live channel.
func liveGet(href string) string {
	return "@get('" + href + "')"
}

package components

import "github.com/a-h/templ"

func NotFound(path string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"not-found\"><h1>404</h1><p>Nothing lives at <code>")
		h.text(path)
		h.raw("</code>.</p><p><a href=\"/\">Back home</a> or browse our <a href=\"/areas\">service areas</a>.</p></section>")
	})
}

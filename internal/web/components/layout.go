package components

import (
	"mouldsite/internal/web/appcore"

	"github.com/a-h/templ"
)

// ShellID is the element live location navigations patch.
const ShellID = "location-shell"

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

func Layout(view appcore.RootLayoutView, child templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html lang=\"en-AU\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		h.text(view.LayoutPageTitle())
		h.raw("</title>")
		if description := view.LayoutMetaDescription(); description != "" {
			h.raw("<meta name=\"description\"")
			h.attr("content", description)
			h.raw(">")
		}
		if canonical := view.LayoutCanonicalURL(); canonical != "" {
			h.raw("<link rel=\"canonical\"")
			h.attr("href", canonical)
			h.raw(">")
		}
		h.raw("<link rel=\"stylesheet\" href=\"/static/site.css\">")
		h.raw("<script type=\"module\"")
		h.attr("src", datastarScript)
		h.raw("></script></head>")

		h.raw("<body")
		h.attr("data-signals", appcore.NavigatorSignalsJSON())
		h.raw(">")
		h.render(header(view))
		h.render(Shell(child))
		h.render(footer(view))
		h.raw("</body></html>")
	})
}

// Shell wraps page content in the element live navigations replace.
func Shell(child templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<main")
		h.attr("id", ShellID)
		h.raw(">")
		h.render(child)
		h.raw("</main>")
	})
}

func header(view appcore.RootLayoutView) templ.Component {
	return component(func(h *htmlWriter) {
		section := view.LayoutNavSection()
		h.raw("<header class=\"site-header\"><a class=\"brand\" href=\"/\">Mould &amp; Restoration Co.</a><nav>")
		navLink(h, "/", "Home", section == appcore.NavSectionHome)
		navLink(h, "/#about", "About", false)
		navLink(h, "/#process", "Process", false)
		navLink(h, appcore.AreasPath, "Service Areas", section == appcore.NavSectionAreas)
		navLink(h, "/#contact", "Contact", false)
		h.raw("</nav>")
		phoneLink(h, view.LayoutPhone(), "cta-button")
		h.raw("</header>")
	})
}

func navLink(h *htmlWriter, href string, label string, active bool) {
	h.raw("<a")
	h.attr("class", appcore.NavLinkClass(active))
	h.attr("href", href)
	if active {
		h.raw(" aria-current=\"page\"")
	}
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func phoneLink(h *htmlWriter, phone string, class string) {
	if phone == "" {
		return
	}
	h.raw("<a")
	h.attr("class", class)
	h.attr("href", "tel:"+appcore.PhoneHref(phone))
	h.raw(">")
	h.text(phone)
	h.raw("</a>")
}

func footer(view appcore.RootLayoutView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<footer class=\"site-footer\"><p>Mould &amp; Restoration Co. · Melbourne, VIC · Everyday: 7am - 7pm</p><p>")
		phoneLink(h, view.LayoutPhone(), "footer-phone")
		h.raw("</p><p><a href=\"/areas\">All service areas</a> · <a href=\"/sitemap.xml\">Sitemap</a></p></footer>")
	})
}

package components

import (
	"mouldsite/internal/locations"
	"mouldsite/internal/web/appcore"

	"github.com/a-h/templ"
)

func LocationPage(view appcore.LocationPageView) templ.Component {
	return component(func(h *htmlWriter) {
		page := view.Page

		breadcrumbs(h, page.Breadcrumbs)

		h.raw("<article class=\"location\"")
		h.attr("data-location", page.Suburb.Slug)
		h.raw("><header class=\"location-hero\"><p class=\"eyebrow\">")
		h.text(page.Region.Name)
		if page.Suburb.Postcode != "" {
			h.raw(" · ")
			h.text(page.Suburb.Postcode)
		}
		h.raw("</p><h1>")
		h.text(page.Headline)
		h.raw("</h1><div class=\"prose\">")
		h.html(page.Intro)
		h.raw("</div>")
		phoneLink(h, page.Phone, "cta-button")
		h.raw("</header>")

		if len(page.Highlights) > 0 {
			h.raw("<ul class=\"highlights\">")
			for _, highlight := range page.Highlights {
				h.raw("<li>")
				h.text(highlight)
				h.raw("</li>")
			}
			h.raw("</ul>")
		}

		h.raw("<div class=\"prose\">")
		h.html(page.Body)
		h.raw("</div>")

		if len(page.PropertyTypes) > 0 {
			h.raw("<section class=\"property-types\"><h2>Properties we treat in ")
			h.text(page.Suburb.DisplayName)
			h.raw("</h2><ul>")
			for _, propertyType := range page.PropertyTypes {
				h.raw("<li>")
				h.text(propertyType)
				h.raw("</li>")
			}
			h.raw("</ul></section>")
		}

		if len(page.AreasServed) > 0 {
			h.raw("<section class=\"areas-served\"><h2>Also servicing</h2><p>")
			for idx, area := range page.AreasServed {
				if idx > 0 {
					h.raw(", ")
				}
				h.text(area)
			}
			h.raw("</p></section>")
		}

		h.raw("<section class=\"region-blurb\"><h2>")
		h.text(page.Region.Name)
		h.raw("</h2><p>")
		h.text(page.Region.Description)
		h.raw("</p></section>")

		if len(page.Nearby) > 0 {
			h.raw("<section class=\"nearby\"><h2>Nearby suburbs</h2>")
			suburbGrid(h, page.Nearby)
			h.raw("</section>")
		}
		h.raw("</article>")
	})
}

func breadcrumbs(h *htmlWriter, crumbs []locations.Breadcrumb) {
	if len(crumbs) == 0 {
		return
	}
	h.raw("<nav class=\"breadcrumb\" aria-label=\"Breadcrumb\"><ol>")
	for _, crumb := range crumbs {
		h.raw("<li>")
		if crumb.Current || crumb.Href == "" {
			h.raw("<span aria-current=\"page\">")
			h.text(crumb.Label)
			h.raw("</span>")
		} else {
			h.raw("<a")
			h.attr("href", crumb.Href)
			h.raw(">")
			h.text(crumb.Label)
			h.raw("</a>")
		}
		h.raw("</li>")
	}
	h.raw("</ol></nav>")
}

// LocationLoading is shown in the shell while a location page loads.
func LocationLoading(slug string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<div class=\"loading\" role=\"status\" aria-live=\"polite\"")
		h.attr("data-loading", slug)
		h.raw("><span class=\"spinner\" aria-hidden=\"true\"></span><p>Loading location&hellip;</p></div>")
	})
}

package components

import (
	"mouldsite/internal/web/appcore"

	"github.com/a-h/templ"
)

// AreasResultsID is the element the live areas filter patches.
const AreasResultsID = "areas-results"

func AreasPage(view appcore.AreasPageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<section class=\"areas\"")
		h.attr("data-signals", appcore.AreasSignalsJSON(view.Filter))
		h.raw("><h1>Mould Removal Service Areas</h1>")
		h.raw("<p class=\"lead\">We service ")
		h.int(view.Total)
		h.raw(" suburbs across Melbourne. Find yours below.</p>")

		h.raw("<form class=\"areas-filter\" action=\"/areas\" method=\"get\"")
		h.attr("data-on:submit__prevent", liveGet(appcore.AreasPath))
		h.raw("><label for=\"areas-q\">Search suburbs</label>")
		h.raw("<input id=\"areas-q\" type=\"search\" name=\"q\" data-bind:q")
		h.attr("value", view.Filter.Query)
		h.attr("data-on:input__debounce.250ms", liveGet(appcore.AreasPath))
		h.raw(" placeholder=\"Suburb, postcode area or keyword\">")
		h.raw("<select name=\"region\" data-bind:region")
		h.attr("data-on:change", liveGet(appcore.AreasPath))
		h.raw("><option value=\"\">All regions</option>")
		for _, region := range view.Regions {
			h.raw("<option")
			h.attr("value", region.Name)
			if region.Name == view.Filter.Region {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(region.Name)
			h.raw("</option>")
		}
		h.raw("</select><noscript><button type=\"submit\">Search</button></noscript></form>")

		h.render(AreasResults(view))
		h.raw("</section>")
	})
}

// AreasResults is the grouped suburb listing; it is patched on its own when
// the filter changes.
func AreasResults(view appcore.AreasPageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<div")
		h.attr("id", AreasResultsID)
		h.raw(">")
		if len(view.Groups) == 0 {
			h.raw("<p class=\"empty\">No suburbs match ")
			if view.Filter.Query != "" {
				h.raw("&ldquo;")
				h.text(view.Filter.Query)
				h.raw("&rdquo;")
			} else {
				h.raw("this filter")
			}
			h.raw(". Call us, we probably still cover you.</p>")
		}
		for _, group := range view.Groups {
			h.raw("<section")
			h.attr("class", "region region-"+group.Region.Colour)
			h.raw("><h2>")
			h.text(group.Region.Name)
			h.raw("</h2><p>")
			h.text(group.Region.Description)
			h.raw("</p>")
			suburbGrid(h, group.Suburbs)
			h.raw("</section>")
		}
		h.raw("<p class=\"count\">Showing ")
		h.int(view.Matched)
		h.raw(" of ")
		h.int(view.Total)
		h.raw(" suburbs</p></div>")
	})
}

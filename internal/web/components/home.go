package components

import (
	"mouldsite/internal/suburbs"
	"mouldsite/internal/web/appcore"

	"github.com/a-h/templ"
)

func HomePage(view appcore.HomePageView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<section id=\"home\" class=\"hero\"><p class=\"eyebrow\">Expert mould removal &amp; restoration</p>")
		h.raw("<h1><span>Restoring Your Spaces,</span> <span>Protecting Your Health</span></h1>")
		h.raw("<p class=\"lead\">Let us bring your home back to safety and comfort.</p>")
		h.raw("<a class=\"cta-button\" href=\"#contact\">Get A Free Quote Today</a></section>")

		h.raw("<section id=\"about\" class=\"about\"><p class=\"eyebrow\">About us</p>")
		h.raw("<h2>Melbourne&#39;s Trusted Mould Restoration Experts</h2><div class=\"prose\">")
		h.html(view.About)
		h.raw("</div><ul class=\"service-types\">")
		for _, serviceType := range view.ServiceTypes {
			h.raw("<li>")
			h.text(serviceType)
			h.raw("</li>")
		}
		h.raw("</ul></section>")

		h.raw("<section id=\"process\" class=\"process\"><h2>Our Process</h2><ol>")
		for _, step := range view.Process {
			h.raw("<li class=\"process-step\"><span class=\"step-number\">")
			h.int(step.Number)
			h.raw("</span><h3>")
			h.text(step.Title)
			h.raw("</h3><p>")
			h.text(step.Description)
			h.raw("</p></li>")
		}
		h.raw("</ol></section>")

		if len(view.Featured) > 0 {
			h.raw("<section id=\"areas\" class=\"featured-areas\"><h2>Popular Service Areas</h2>")
			suburbGrid(h, view.Featured)
			h.raw("<a class=\"more-link\" href=\"/areas\">View all service areas</a></section>")
		}

		h.raw("<section id=\"faq\" class=\"faq\"><h2>Frequently Asked Questions</h2>")
		for _, item := range view.FAQs {
			h.raw("<details><summary>")
			h.text(item.Question)
			h.raw("</summary><div class=\"prose\">")
			h.html(item.Answer)
			h.raw("</div></details>")
		}
		h.raw("</section>")

		h.raw("<section id=\"contact\" class=\"contact\"><h2>Contact Us</h2><dl>")
		h.raw("<dt>Phone</dt><dd>")
		phoneLink(h, view.Phone, "contact-phone")
		h.raw("</dd><dt>Hours</dt><dd>")
		h.text(view.Hours)
		h.raw("</dd><dt>Service area</dt><dd>")
		h.text(view.ServiceArea)
		h.raw("</dd></dl></section>")
	})
}

// suburbGrid links each suburb both as a plain anchor and as a live
// navigation into the shell.
func suburbGrid(h *htmlWriter, list []suburbs.Suburb) {
	h.raw("<ul class=\"suburb-grid\">")
	for _, suburb := range list {
		h.raw("<li")
		h.attr("class", appcore.PriorityClass(string(suburb.Priority)))
		h.raw("><a")
		h.attr("href", suburb.Href())
		h.attr("data-on:click__prevent", liveGet(suburb.Href()))
		h.raw(">")
		h.text(suburb.DisplayName)
		h.raw("</a>")
		if suburb.Postcode != "" {
			h.raw(" <span class=\"postcode\">")
			h.text(suburb.Postcode)
			h.raw("</span>")
		}
		h.raw("</li>")
	}
	h.raw("</ul>")
}

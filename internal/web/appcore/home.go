package appcore

import (
	"mouldsite/internal/markdown"
	"mouldsite/internal/suburbs"
)

const featuredLimit = 8

const aboutMarkdown = `**{site}** is Melbourne's trusted expert in mould removal and property restoration.
We deliver fast, reliable solutions to restore homes and businesses to safe, clean and healthy spaces.

Serving all of Melbourne and surrounding suburbs, our team understands the local challenges and
provides tailored services for residential, commercial and industrial properties.
[Contact us](#contact) today for a free evaluation, or call [{phone}](tel:{phone_digits}).`

var processSteps = []ProcessStep{
	{1, "Discovery & Consultation", "We begin with an in-depth consultation to understand your needs, goals and property concerns."},
	{2, "Comprehensive Inspection", "Our experts conduct a thorough assessment to identify mould issues and root causes."},
	{3, "Customised Plan Development", "We design a tailored remediation plan with the best solutions for your space."},
	{4, "Treatment & Remediation", "We eliminate mould, repair affected areas and prevent future issues."},
	{5, "Final Assessment & Handover", "We make sure your property is restored and mould-free, with guidance to keep it healthy."},
}

var faqEntries = []struct {
	question string
	answer   string
}{
	{
		"What causes mould growth in my home or business?",
		"Mould grows where there is **excess moisture**, poor ventilation or water damage. Common causes include leaks, flooding and humidity build-up.",
	},
	{
		"How do you make sure mould is completely removed?",
		"We combine advanced inspection, a thorough removal process and follow-up testing. Our team works to strict protocols with professional-grade equipment.",
	},
	{
		"How long does mould removal take?",
		"It depends on the extent of the contamination. Most residential jobs take **1-3 days**; larger commercial projects take longer. You get a timeline at the initial assessment.",
	},
	{
		"Can mould return after remediation?",
		"Not when it is properly remediated and the moisture source is fixed. We explain how to prevent regrowth and offer follow-up inspections. See our [service areas](/areas) to book one near you.",
	},
}

func newHomePageView(appCtx *Context) (HomePageView, error) {
	opts := markdown.Options{
		RootURL: appCtx.RootURL,
		Vars: map[string]string{
			"site":         siteName,
			"phone":        appCtx.Phone,
			"phone_digits": PhoneHref(appCtx.Phone),
		},
	}

	faqs := make([]FAQItem, 0, len(faqEntries))
	for _, entry := range faqEntries {
		faqs = append(faqs, FAQItem{
			Question: entry.question,
			Answer:   markdown.ToHTML(entry.answer, opts),
		})
	}

	var featured []suburbs.Suburb
	if appCtx.Registry != nil {
		featured = appCtx.Registry.ByPriority(suburbs.PriorityHigh)
		if len(featured) > featuredLimit {
			featured = featured[:featuredLimit]
		}
	}

	steps := make([]ProcessStep, len(processSteps))
	copy(steps, processSteps)

	return HomePageView{
		SiteView: SiteView{
			PageTitle:       "Mould Removal Melbourne | Restoring Your Spaces, Protecting Your Health | " + siteName,
			MetaDescription: "Expert mould removal and restoration across Melbourne. Residential, commercial and industrial. Free quotes, 7 days a week.",
			CanonicalURL:    appCtx.RootURL + "/",
			Section:         NavSectionHome,
			Phone:           appCtx.Phone,
		},
		ServiceTypes: []string{"Residential", "Commercial", "Industrial", "Corporate"},
		About:        markdown.ToHTML(aboutMarkdown, opts),
		Process:      steps,
		FAQs:         faqs,
		Featured:     featured,
		Hours:        "Everyday: 7am - 7pm",
		ServiceArea:  "Melbourne, VIC",
	}, nil
}

// PhoneHref strips a display phone number down to what a tel: link needs.
func PhoneHref(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}

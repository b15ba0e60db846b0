package locations

import (
	"context"
	"fmt"
	"strings"

	"mouldsite/internal/markdown"
)

const (
	nearbyLimit          = 6
	metaDescriptionLimit = 160
)

type pageKind struct {
	headline   string
	intro      string
	highlights []string
	body       string
}

var (
	heritageKind = pageKind{
		headline: "Professional Mould Removal & Inspection in {suburb}, Melbourne",
		intro: "Specialists in {suburb}'s heritage homes. We treat Victorian terraces, " +
			"workers' cottages and period conversions without damaging original fabric.",
		highlights: []string{
			"Same-day professional service to {suburb}",
			"Heritage property mould specialists",
			"IICRC-certified technicians",
		},
		body: `## Why heritage homes in {suburb} grow mould

Solid brick walls, suspended timber floors and limited cross-ventilation keep
moisture trapped. Rising damp and blocked sub-floor vents are the usual causes
we find in {region}.

## What we do

1. Moisture mapping and thermal imaging of every room
2. Containment before any removal, so spores do not travel
3. Removal with heritage-safe treatments
4. Sub-floor ventilation advice and a written report

Call {phone} or [view all service areas](/areas).`,
	}

	apartmentKind = pageKind{
		headline: "Apartment Mould Remediation in {suburb}",
		intro: "High-rise and mid-rise apartments in {suburb} trap condensation. " +
			"We work with owners corporations and building managers on minimal-disruption treatment.",
		highlights: []string{
			"After-hours access for strata buildings",
			"Owners corporation reporting",
			"Condensation and ventilation assessment",
		},
		body: `## Condensation is the usual culprit

Sealed windows, internal laundries and bathrooms without exhaust fans push
humidity into ceilings and wardrobes. Most {suburb} callouts start as black
spotting behind furniture.

## Our apartment process

- Non-invasive moisture readings on every wall
- HEPA-filtered removal with negative air pressure
- Antimicrobial fogging of the affected rooms
- A report suitable for your owners corporation

Call {phone} to book an inspection.`,
	}

	coastalKind = pageKind{
		headline: "Coastal Mould Specialists in {suburb}",
		intro: "Salt air and bayside humidity make {suburb} homes prone to recurring mould. " +
			"We fix the moisture source, not just the stain.",
		highlights: []string{
			"Bayside humidity experts",
			"Sub-floor and roof cavity treatment",
			"Same-day quotes in {region}",
		},
		body: `## Living near the bay

Onshore winds carry moisture into roof cavities and sub-floors. Weatherboard
homes and beach houses in {suburb} often need both treatment and better
ventilation.

## What is included

1. Full property inspection with moisture mapping
2. Removal and treatment of affected materials
3. Ventilation recommendations for the sub-floor and roof space

Call {phone} or browse [other service areas](/areas).`,
	}

	premiumKind = pageKind{
		headline: "Discreet Mould Remediation for {suburb} Residences",
		intro: "Large family homes and period mansions in {suburb} deserve a careful, " +
			"discreet service. We protect finishes, furnishings and art during every job.",
		highlights: []string{
			"Discreet, scheduled appointments",
			"Protection of fine finishes and contents",
			"Detailed written reporting",
		},
		body: `## Protecting valuable homes

Cellars, pool houses and extensive gardens around {suburb} properties all
introduce moisture. We trace each source and treat it without disturbing the
rest of the home.

## Our approach

- Dedicated project lead for every property
- Containment and HEPA filtration throughout
- Post-remediation verification before handover

Call {phone} for a private consultation.`,
	}

	familyKind = pageKind{
		headline: "Mould Removal & Inspection in {suburb}",
		intro: "Local, family-friendly mould remediation for {suburb} homes and rentals. " +
			"Safe treatments, clear quotes and a report you can keep.",
		highlights: []string{
			"Family and pet safe treatments",
			"Fixed-price quotes",
			"Servicing all of {region}",
		},
		body: `## Common causes in {suburb}

Bathrooms without exhaust fans, leaking gutters and poorly ventilated
bedrooms cause most of the mould we see in {postcode} homes.

## Our five-step process

1. Discovery and consultation
2. Comprehensive inspection
3. Customised plan
4. Treatment and remediation
5. Final assessment and handover

Call {phone} or [see where else we work](/areas).`,
	}
)

// kindPage returns a factory rendering kind for the suburb, listing
// areasServed alongside it.
func kindPage(kind pageKind, areasServed ...string) Factory {
	return func(ctx context.Context, env Env) (Page, error) {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		return buildPage(kind, env, areasServed)
	}
}

func buildPage(kind pageKind, env Env, areasServed []string) (Page, error) {
	suburb := env.Suburb
	if suburb.Slug == "" {
		return Page{}, fmt.Errorf("build page %q: missing suburb", env.Identifier)
	}

	opts := markdown.Options{
		Vars:    pageVars(env),
		RootURL: env.RootURL,
	}

	page := Page{
		Identifier:    env.Identifier,
		Suburb:        suburb,
		Title:         fmt.Sprintf("Mould Removal %s Melbourne | Mould & Restoration Co.", suburb.DisplayName),
		Headline:      markdown.Expand(kind.headline, opts.Vars),
		Intro:         markdown.ToHTML(kind.intro, opts),
		Body:          markdown.ToHTML(kind.body, opts),
		PropertyTypes: append([]string(nil), suburb.PropertyTypes...),
		AreasServed:   append([]string{suburb.DisplayName}, areasServed...),
		CanonicalURL:  strings.TrimRight(env.RootURL, "/") + suburb.Href(),
		Phone:         env.Phone,
		Breadcrumbs: []Breadcrumb{
			{Label: "Home", Href: "/"},
			{Label: "Service Areas", Href: "/areas"},
			{Label: suburb.DisplayName + " Mould Removal", Href: suburb.Href(), Current: true},
		},
	}

	page.MetaDescription = markdown.Excerpt(suburb.Description+". "+markdown.Expand(kind.intro, opts.Vars), metaDescriptionLimit)
	for _, highlight := range kind.highlights {
		page.Highlights = append(page.Highlights, markdown.Expand(highlight, opts.Vars))
	}

	if env.Registry != nil {
		if region, ok := env.Registry.Region(suburb.Region); ok {
			page.Region = region
		}
		page.Nearby = env.Registry.Nearby(suburb.Slug, nearbyLimit)
	}

	return page, nil
}

func pageVars(env Env) map[string]string {
	return map[string]string{
		"suburb":   env.Suburb.DisplayName,
		"region":   env.Suburb.Region,
		"postcode": env.Suburb.Postcode,
		"phone":    env.Phone,
	}
}

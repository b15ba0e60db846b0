package appcore

import (
	"html/template"

	"mouldsite/internal/locations"
	"mouldsite/internal/suburbs"
)

type NavSection string

const (
	NavSectionHome  NavSection = "home"
	NavSectionAreas NavSection = "areas"
	NavSectionNone  NavSection = ""
)

// RootLayoutView is what the site layout needs from every page view.
type RootLayoutView interface {
	LayoutPageTitle() string
	LayoutMetaDescription() string
	LayoutCanonicalURL() string
	LayoutNavSection() NavSection
	LayoutPhone() string
}

type SiteView struct {
	PageTitle       string
	MetaDescription string
	CanonicalURL    string
	Section         NavSection
	Phone           string
}

func (v SiteView) LayoutPageTitle() string       { return v.PageTitle }
func (v SiteView) LayoutMetaDescription() string { return v.MetaDescription }
func (v SiteView) LayoutCanonicalURL() string    { return v.CanonicalURL }
func (v SiteView) LayoutNavSection() NavSection  { return v.Section }
func (v SiteView) LayoutPhone() string           { return v.Phone }

type ProcessStep struct {
	Number      int
	Title       string
	Description string
}

type FAQItem struct {
	Question string
	Answer   template.HTML
}

type HomePageView struct {
	SiteView
	ServiceTypes []string
	About        template.HTML
	Process      []ProcessStep
	FAQs         []FAQItem
	Featured     []suburbs.Suburb
	Hours        string
	ServiceArea  string
}

type RegionGroup struct {
	Region  suburbs.Region
	Suburbs []suburbs.Suburb
}

type AreasPageView struct {
	SiteView
	Filter  AreasSignalState
	Regions []suburbs.Region
	Groups  []RegionGroup
	Total   int
	Matched int
}

type LocationPageView struct {
	SiteView
	Page locations.Page
}

func NewNotFoundLayoutView(phone string) RootLayoutView {
	return SiteView{
		PageTitle:       "404 Not Found | Mould & Restoration Co.",
		MetaDescription: "The page you were looking for could not be found.",
		Section:         NavSectionNone,
		Phone:           phone,
	}
}

package web

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"mouldsite/framework/router"
	"mouldsite/internal/suburbs"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapEntries lists the home page, the areas listing and one location
// page per registry suburb, in registry order.
func SitemapEntries(rootURL string, registry *suburbs.Registry) ([]SitemapURL, error) {
	entries := []SitemapURL{
		{Loc: rootURL + "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: rootURL + areasRoute, ChangeFreq: "weekly", Priority: "0.9"},
	}

	for _, suburb := range registry.All() {
		path, err := locationPattern.Expand(router.Params{"suburb": suburb.Slug})
		if err != nil {
			return nil, fmt.Errorf("sitemap entry for %q: %w", suburb.Slug, err)
		}
		entries = append(entries, SitemapURL{
			Loc:        rootURL + path,
			ChangeFreq: "monthly",
			Priority:   sitemapPriority(suburb.Priority),
		})
	}
	return entries, nil
}

func WriteSitemap(w io.Writer, rootURL string, registry *suburbs.Registry) error {
	entries, err := SitemapEntries(rootURL, registry)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemapURLSet{XMLNS: sitemapNamespace, URLs: entries}); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return encoder.Close()
}

func sitemapHandler(rootURL string, registry *suburbs.Registry, logServerError func(error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		setCacheControlPublicHour(w)
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		if err := WriteSitemap(w, rootURL, registry); err != nil {
			logServerError(fmt.Errorf("write sitemap: %w", err))
		}
	})
}

func sitemapPriority(priority suburbs.Priority) string {
	switch priority {
	case suburbs.PriorityHigh:
		return "0.8"
	case suburbs.PriorityMedium:
		return "0.7"
	default:
		return "0.6"
	}
}

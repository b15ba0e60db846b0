// Package suburbs holds the read-only registry of serviced suburbs.
package suburbs

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownSlug = errors.New("unknown suburb slug")

//go:embed suburbs.yaml
var registryYAML []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Suburb struct {
	Slug          string   `yaml:"slug"`
	Name          string   `yaml:"name"`
	DisplayName   string   `yaml:"display_name"`
	Region        string   `yaml:"region"`
	Postcode      string   `yaml:"postcode"`
	Priority      Priority `yaml:"priority"`
	Description   string   `yaml:"description"`
	Keywords      []string `yaml:"keywords"`
	PropertyTypes []string `yaml:"property_types"`
}

// Href is the canonical location path for the suburb.
func (s Suburb) Href() string {
	return "/locations/" + s.Slug
}

type Region struct {
	Name        string `yaml:"name"`
	Colour      string `yaml:"colour"`
	Description string `yaml:"description"`
}

type document struct {
	Regions []Region `yaml:"regions"`
	Suburbs []Suburb `yaml:"suburbs"`
}

// Registry is immutable after construction and safe for concurrent reads.
type Registry struct {
	suburbs []Suburb
	regions []Region
	bySlug  map[string]int
}

var defaultRegistry = mustParse(registryYAML)

// Default returns the registry embedded in the binary.
func Default() *Registry {
	return defaultRegistry
}

func mustParse(data []byte) *Registry {
	registry, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("suburbs: embedded registry: %v", err))
	}
	return registry
}

// Parse decodes a registry document and validates slugs, regions and
// uniqueness. Insertion order is preserved.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	return New(doc.Regions, doc.Suburbs)
}

func New(regions []Region, suburbs []Suburb) (*Registry, error) {
	knownRegions := make(map[string]struct{}, len(regions))
	for _, region := range regions {
		name := strings.TrimSpace(region.Name)
		if name == "" {
			return nil, errors.New("region name cannot be empty")
		}
		if _, ok := knownRegions[name]; ok {
			return nil, fmt.Errorf("duplicate region %q", name)
		}
		knownRegions[name] = struct{}{}
	}

	bySlug := make(map[string]int, len(suburbs))
	for idx, suburb := range suburbs {
		if !ValidSlug(suburb.Slug) {
			return nil, fmt.Errorf("suburb %d: invalid slug %q", idx, suburb.Slug)
		}
		if _, ok := bySlug[suburb.Slug]; ok {
			return nil, fmt.Errorf("duplicate suburb slug %q", suburb.Slug)
		}
		if _, ok := knownRegions[suburb.Region]; !ok {
			return nil, fmt.Errorf("suburb %q: unknown region %q", suburb.Slug, suburb.Region)
		}
		if strings.TrimSpace(suburb.DisplayName) == "" {
			suburbs[idx].DisplayName = suburb.Name
		}
		bySlug[suburb.Slug] = idx
	}

	return &Registry{
		suburbs: append([]Suburb(nil), suburbs...),
		regions: append([]Region(nil), regions...),
		bySlug:  bySlug,
	}, nil
}

// Lookup matches slug exactly; no trimming or case folding.
func (r *Registry) Lookup(slug string) (Suburb, bool) {
	idx, ok := r.bySlug[slug]
	if !ok {
		return Suburb{}, false
	}
	return r.suburbs[idx], true
}

func (r *Registry) MustLookup(slug string) (Suburb, error) {
	suburb, ok := r.Lookup(slug)
	if !ok {
		return Suburb{}, fmt.Errorf("%w: %q", ErrUnknownSlug, slug)
	}
	return suburb, nil
}

func (r *Registry) All() []Suburb {
	return append([]Suburb(nil), r.suburbs...)
}

func (r *Registry) Len() int {
	return len(r.suburbs)
}

func (r *Registry) Regions() []Region {
	return append([]Region(nil), r.regions...)
}

func (r *Registry) Region(name string) (Region, bool) {
	for _, region := range r.regions {
		if region.Name == name {
			return region, true
		}
	}
	return Region{}, false
}

func (r *Registry) ByRegion(region string) []Suburb {
	out := make([]Suburb, 0, 8)
	for _, suburb := range r.suburbs {
		if suburb.Region == region {
			out = append(out, suburb)
		}
	}
	return out
}

func (r *Registry) ByPriority(priority Priority) []Suburb {
	out := make([]Suburb, 0, 8)
	for _, suburb := range r.suburbs {
		if suburb.Priority == priority {
			out = append(out, suburb)
		}
	}
	return out
}

// Search matches query case-insensitively against name, display name,
// keywords and region. An empty query returns every suburb.
func (r *Registry) Search(query string) []Suburb {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return r.All()
	}

	out := make([]Suburb, 0, 8)
	for _, suburb := range r.suburbs {
		if suburb.matches(term) {
			out = append(out, suburb)
		}
	}
	return out
}

// Nearby lists other suburbs in the same region, at most limit of them.
func (r *Registry) Nearby(slug string, limit int) []Suburb {
	suburb, ok := r.Lookup(slug)
	if !ok || limit < 1 {
		return nil
	}

	out := make([]Suburb, 0, limit)
	for _, candidate := range r.suburbs {
		if candidate.Slug == slug || candidate.Region != suburb.Region {
			continue
		}
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s Suburb) matches(term string) bool {
	if strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.DisplayName), term) ||
		strings.Contains(strings.ToLower(s.Region), term) {
		return true
	}
	for _, keyword := range s.Keywords {
		if strings.Contains(strings.ToLower(keyword), term) {
			return true
		}
	}
	return false
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

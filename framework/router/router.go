package router

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
)

var dynamicSegmentNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

type pathSegment struct {
	name    string
	isParam bool
}

// Pattern is a compiled route such as "/locations/[suburb]".
type Pattern struct {
	raw         string
	segments    []pathSegment
	staticCount int
	key         string
}

type Params map[string]string

func (p Params) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[name]
	return value, ok
}

func Parse(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") {
		return Pattern{}, fmt.Errorf("route pattern %q must start with /", raw)
	}

	parts := splitPathSegments(raw)
	segments := make([]pathSegment, 0, len(parts))
	keyParts := make([]string, 0, len(parts))
	staticCount := 0
	seenParams := make(map[string]struct{}, 1)

	for _, part := range parts {
		name, isParam, err := parseWildcardSegment(part)
		if err != nil {
			return Pattern{}, fmt.Errorf("route pattern %q: %w", raw, err)
		}

		if isParam {
			if _, dup := seenParams[name]; dup {
				return Pattern{}, fmt.Errorf("route pattern %q: duplicate wildcard %q", raw, name)
			}
			seenParams[name] = struct{}{}
			segments = append(segments, pathSegment{name: name, isParam: true})
			keyParts = append(keyParts, ":")
			continue
		}

		segments = append(segments, pathSegment{name: part})
		keyParts = append(keyParts, part)
		staticCount++
	}

	return Pattern{
		raw:         raw,
		segments:    segments,
		staticCount: staticCount,
		key:         "/" + strings.Join(keyParts, "/"),
	}, nil
}

func MustParse(raw string) Pattern {
	pattern, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return pattern
}

func (p Pattern) String() string {
	return p.raw
}

// Match compares requestPath segment by segment. Trailing slashes are ignored;
// parameter values are returned exactly as they appear in the path.
func (p Pattern) Match(requestPath string) (Params, bool) {
	requestSegments := splitPathSegments(requestPath)
	if len(p.segments) != len(requestSegments) {
		return nil, false
	}

	var params Params
	for idx, segment := range p.segments {
		requestValue := requestSegments[idx]
		if segment.isParam {
			if params == nil {
				params = make(Params, 1)
			}
			params[segment.name] = requestValue
			continue
		}
		if segment.name != requestValue {
			return nil, false
		}
	}
	return params, true
}

// Expand fills the wildcards of p from params.
func (p Pattern) Expand(params Params) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	parts := make([]string, 0, len(p.segments))
	for _, segment := range p.segments {
		if !segment.isParam {
			parts = append(parts, segment.name)
			continue
		}
		value, ok := params.Get(segment.name)
		if !ok || strings.TrimSpace(value) == "" || strings.Contains(value, "/") {
			return "", fmt.Errorf("expand %q: invalid value for %q", p.raw, segment.name)
		}
		parts = append(parts, value)
	}
	return "/" + strings.Join(parts, "/"), nil
}

// Table holds patterns ordered so that static segments win over wildcards.
type Table struct {
	patterns []Pattern
}

func NewTable(raw ...string) (*Table, error) {
	if len(raw) == 0 {
		return nil, errors.New("route table cannot be empty")
	}

	patterns := make([]Pattern, 0, len(raw))
	seen := make(map[string]string, len(raw))
	for _, value := range raw {
		pattern, err := Parse(value)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[pattern.key]; ok {
			return nil, fmt.Errorf("route pattern conflict: %q and %q", existing, pattern.raw)
		}
		seen[pattern.key] = pattern.raw
		patterns = append(patterns, pattern)
	}

	sort.Slice(patterns, func(i int, j int) bool {
		left := patterns[i]
		right := patterns[j]

		if left.staticCount != right.staticCount {
			return left.staticCount > right.staticCount
		}
		if len(left.segments) != len(right.segments) {
			return len(left.segments) > len(right.segments)
		}
		return left.raw < right.raw
	})

	return &Table{patterns: patterns}, nil
}

func (t *Table) Match(requestPath string) (Pattern, Params, bool) {
	for _, pattern := range t.patterns {
		if params, ok := pattern.Match(requestPath); ok {
			return pattern, params, true
		}
	}
	return Pattern{}, nil, false
}

func (t *Table) Patterns() []Pattern {
	out := make([]Pattern, len(t.patterns))
	copy(out, t.patterns)
	return out
}

func parseWildcardSegment(segment string) (string, bool, error) {
	if strings.HasPrefix(segment, "[") || strings.HasSuffix(segment, "]") {
		if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
			return "", false, fmt.Errorf("invalid wildcard segment %q", segment)
		}

		name := strings.TrimSpace(segment[1 : len(segment)-1])
		if !dynamicSegmentNamePattern.MatchString(name) {
			return "", false, fmt.Errorf("invalid wildcard name %q", name)
		}
		return name, true, nil
	}

	if strings.ContainsAny(segment, "[]") {
		return "", false, fmt.Errorf("invalid static segment %q", segment)
	}
	return "", false, nil
}

func splitPathSegments(raw string) []string {
	cleaned := path.Clean("/" + raw)
	if cleaned == "/" {
		return []string{}
	}

	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "/")
}

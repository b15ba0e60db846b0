package suburbs

import "strings"

// Identifier turns a kebab-case slug into the PascalCase name its location
// page is registered under: "port-melbourne" -> "PortMelbourne".
//
// Input is assumed to be a registry-backed slug; empty segments are dropped.
func Identifier(slug string) string {
	segments := strings.Split(slug, "-")

	var b strings.Builder
	b.Grow(len(slug))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		b.WriteString(strings.ToUpper(segment[:1]))
		b.WriteString(segment[1:])
	}
	return b.String()
}

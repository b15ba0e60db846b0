package markdown

import (
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type Options struct {
	// Vars replaces {name} placeholders before parsing.
	Vars    map[string]string
	RootURL string
}

const lastGoodBreakRatio = 0.8

var (
	markdownBoldPattern             = regexp.MustCompile(`\*\*(.*?)\*\*`)
	markdownItalicAsteriskPattern   = regexp.MustCompile(`\*(.*?)\*`)
	markdownItalicUnderscorePattern = regexp.MustCompile(`_(.*?)_`)
	markdownHeadingPattern          = regexp.MustCompile(`(?m)^#{1,6}\s+(.*?)$`)
	markdownLinkPattern             = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	markdownListPattern             = regexp.MustCompile(`(?m)^\s*(-|\d+\.)\s+`)
	htmlTagPattern                  = regexp.MustCompile(`<[^>]*>`)
	placeholderPattern              = regexp.MustCompile(`\{([a-z_]+)\}`)
)

func ToHTML(input string, opts Options) template.HTML {
	input = Expand(input, opts.Vars)
	if strings.TrimSpace(input) == "" {
		return template.HTML("")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(input))
	normalizeLinks(doc, opts)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})

	return template.HTML(md.Render(doc, renderer))
}

// Expand substitutes {name} placeholders; unknown names are left as-is.
func Expand(input string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(input, "{") {
		return input
	}

	return placeholderPattern.ReplaceAllStringFunc(input, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}

func Excerpt(input string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	clean := markdownToPlainText(input)
	if clean == "" {
		return ""
	}

	if utf8.RuneCountInString(clean) <= maxChars {
		return clean
	}

	return truncateRunes(clean, maxChars)
}

func markdownToPlainText(markdown string) string {
	text := markdown
	text = markdownBoldPattern.ReplaceAllString(text, "$1")
	text = markdownItalicAsteriskPattern.ReplaceAllString(text, "$1")
	text = markdownItalicUnderscorePattern.ReplaceAllString(text, "$1")
	text = markdownHeadingPattern.ReplaceAllString(text, "\n$1\n")
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	text = markdownListPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	truncateAt := maxChars
	minBreak := int(float64(maxChars) * lastGoodBreakRatio)
	for idx := maxChars - 1; idx >= minBreak; idx-- {
		if unicode.IsSpace(runes[idx]) {
			truncateAt = idx
			break
		}
	}

	truncated := strings.TrimSpace(string(runes[:truncateAt]))
	if truncated == "" {
		truncated = strings.TrimSpace(string(runes[:maxChars]))
	}

	return truncated + "..."
}

func normalizeLinks(doc ast.Node, opts Options) {
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		link, ok := node.(*ast.Link)
		if !ok {
			return ast.GoToNext
		}

		normalizedHref, isCurrentWebsite := normalizeCurrentWebsiteLink(string(link.Destination), opts.RootURL)
		link.Destination = []byte(normalizedHref)
		link.AdditionalAttributes = applyLinkAttributes(link.AdditionalAttributes, isCurrentWebsite)

		return ast.GoToNext
	})
}

func normalizeCurrentWebsiteLink(href string, rootURL string) (string, bool) {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return href, true
	}
	if strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "#") {
		return href, true
	}
	if rootURL == "" || !strings.HasPrefix(href, rootURL) {
		return href, false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href, true
	}

	normalized := parsed.Path
	if normalized == "" {
		normalized = "/"
	}
	if parsed.RawQuery != "" {
		normalized += "?" + parsed.RawQuery
	}
	if parsed.Fragment != "" {
		normalized += "#" + parsed.Fragment
	}

	return normalized, true
}

// Links leaving the site open in a new tab without an opener.
func applyLinkAttributes(existing []string, isCurrentWebsite bool) []string {
	attrs := make([]string, 0, len(existing)+2)
	for _, attr := range existing {
		normalized := strings.ToLower(strings.TrimSpace(attr))
		if strings.HasPrefix(normalized, "target=") || strings.HasPrefix(normalized, "rel=") {
			continue
		}
		attrs = append(attrs, attr)
	}

	if !isCurrentWebsite {
		attrs = append(attrs, `target="_blank"`, `rel="noopener noreferrer"`)
	}

	return attrs
}

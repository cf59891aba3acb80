package markdown

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// FormatInline escapes s and then applies the inline passes in a fixed order:
// links, bold, italic, inline code. Each pass is one global replacement. The
// emphasis and code passes only touch text outside tags, so emphasis nests
// inside a link label but never straddles the link's closing tag.
func FormatInline(s string) string {
	out := formatLinks(html.EscapeString(s))
	out = ApplyOutsideTags(out, func(seg string) string {
		return reBold.ReplaceAllString(seg, "<strong>$1</strong>")
	})
	out = ApplyOutsideTags(out, func(seg string) string {
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})
	return ApplyOutsideTags(out, func(seg string) string {
		return reInlineCode.ReplaceAllString(seg, "<code>$1</code>")
	})
}

func formatLinks(seg string) string {
	return reLink.ReplaceAllStringFunc(seg, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + match[1] + `</a>`
	})
}

// ApplyOutsideTags applies fn only to text segments outside HTML tags,
// so that formatting regexes never touch attributes written by an earlier pass.
func ApplyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// SafeURL validates an escaped link target and returns it re-escaped for use
// in an attribute, or "" when the scheme is not allowed.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}

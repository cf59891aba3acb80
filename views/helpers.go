package views

import (
	"html"
	"strconv"
	"strings"

	"github.com/portfolio-site/folio"
)

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag-active"
	}
	return base
}

// TagLink returns the home page URL filtered by tag.
func TagLink(tag string) string {
	return "/?tag=" + folio.PathEscape(tag)
}

// FormatDate renders a post date as "Aug 8, 2025", or the raw value when it
// does not parse.
func FormatDate(p folio.BlogPost) string {
	t := p.Published()
	if t.IsZero() {
		return p.Date
	}
	return t.Format("Jan 2, 2006")
}

// ISODate renders a post date as YYYY-MM-DD for <time datetime>.
func ISODate(p folio.BlogPost) string {
	t := p.Published()
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Counter renders likes/comments counts with a singular or plural noun.
func Counter(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// ThumbnailURL returns the thumbnail route for a site-relative image path.
// Remote images are returned unchanged.
func ThumbnailURL(image string) string {
	if image == "" || !strings.HasPrefix(image, "/") {
		return image
	}
	return "/thumbs" + image
}

// esc is shorthand for attribute and text escaping in hand-written markup.
func esc(s string) string {
	return html.EscapeString(s)
}

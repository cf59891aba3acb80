package folio

import (
	"strings"
	"time"
)

// DateLayout is the layout of BlogPost.Date. Single-digit months and days are
// accepted when parsing.
const DateLayout = "2006-1-2"

// Author is the byline attached to a post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// SEO carries optional search metadata. Blank fields fall back to the post's
// title and excerpt; see BlogPost.MetaTitle and BlogPost.MetaDescription.
type SEO struct {
	MetaTitle       string   `json:"metaTitle" yaml:"metaTitle"`
	MetaDescription string   `json:"metaDescription" yaml:"metaDescription"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
}

// BlogPost is a single article. Posts are seeded at startup and never
// mutated afterwards.
type BlogPost struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Excerpt  string   `json:"excerpt" yaml:"excerpt"`
	Content  string   `json:"content" yaml:"-"`
	Date     string   `json:"date" yaml:"date"`
	ReadTime string   `json:"readTime" yaml:"readTime"`
	Image    string   `json:"image" yaml:"image"`
	Tags     []string `json:"tags" yaml:"tags"`
	Likes    int      `json:"likes" yaml:"likes"`
	Comments int      `json:"comments" yaml:"comments"`
	Author   Author   `json:"author" yaml:"author"`
	SEO      SEO      `json:"seo" yaml:"seo"`
}

// Link returns the site-relative URL of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.ID + "/"
}

// Published parses Date. The zero time is returned when Date is malformed.
func (p BlogPost) Published() time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return time.Time{}
	}
	return t
}

// MetaTitle returns the SEO title, falling back to Title.
func (p BlogPost) MetaTitle() string {
	if s := strings.TrimSpace(p.SEO.MetaTitle); s != "" {
		return s
	}
	return p.Title
}

// MetaDescription returns the SEO description, falling back to Excerpt.
func (p BlogPost) MetaDescription() string {
	if s := strings.TrimSpace(p.SEO.MetaDescription); s != "" {
		return s
	}
	return p.Excerpt
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify lowercases s and joins its runs of ASCII letters and digits with
// single hyphens. Everything else is a separator.
func Slugify(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(words, "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves a site-relative path such as a cover image against base.
// Absolute URLs are returned unchanged.
func AbsoluteURL(base, p string) string {
	if p == "" {
		return ""
	}
	ref, err := url.Parse(p)
	if err != nil {
		return p
	}
	if ref.IsAbs() {
		return p
	}
	u, err := url.Parse(base)
	if err != nil {
		return p
	}
	return u.ResolveReference(ref).String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current BlogPost, posts []BlogPost) []BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

type ldPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ldRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type ldWebSite struct {
	Context     string    `json:"@context"`
	Type        string    `json:"@type"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Author      *ldPerson `json:"author,omitempty"`
}

type ldBlogPosting struct {
	Context          string    `json:"@context"`
	Type             string    `json:"@type"`
	Headline         string    `json:"headline"`
	Description      string    `json:"description,omitempty"`
	URL              string    `json:"url"`
	MainEntityOfPage ldRef     `json:"mainEntityOfPage"`
	DatePublished    string    `json:"datePublished,omitempty"`
	Image            string    `json:"image,omitempty"`
	Keywords         string    `json:"keywords,omitempty"`
	Author           *ldPerson `json:"author,omitempty"`
	Publisher        *ldPerson `json:"publisher,omitempty"`
}

func person(typ, name string) *ldPerson {
	if name == "" {
		return nil
	}
	return &ldPerson{Type: typ, Name: name}
}

func marshalJsonLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	return marshalJsonLD(ldWebSite{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        cfg.Name,
		URL:         BuildURL(cfg.URL),
		Description: cfg.Description,
		Author:      person("Person", cfg.Author),
	})
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema. The
// post's own author and SEO fields win over site-wide values.
func BlogPostingJsonLD(post BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.ID)
	ld := ldBlogPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         post.MetaTitle(),
		Description:      post.MetaDescription(),
		URL:              postURL,
		MainEntityOfPage: ldRef{Type: "WebPage", ID: postURL},
		Image:            AbsoluteURL(cfg.URL, post.Image),
		Author:           person("Person", firstNonBlank(post.Author.Name, cfg.Author)),
		Publisher:        person("Organization", cfg.Name),
	}
	if t := post.Published(); !t.IsZero() {
		ld.DatePublished = t.Format("2006-01-02")
	}
	keywords := post.SEO.Keywords
	if len(keywords) == 0 {
		keywords = post.Tags
	}
	ld.Keywords = strings.Join(keywords, ", ")
	return marshalJsonLD(ld)
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

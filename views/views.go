// Package views provides the default page components for folio.
package views

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/portfolio-site/folio"
	"github.com/portfolio-site/folio/markdown"
)

// Site renders pages for one site configuration.
type Site struct {
	cfg folio.SiteConfig
}

// New returns the default ViewFuncs for cfg.
func New(cfg folio.SiteConfig) folio.ViewFuncs {
	s := &Site{cfg: cfg}
	return folio.ViewFuncs{
		Home:        s.Home,
		Post:        s.Post,
		NotFound:    s.NotFound,
		ServerError: s.ServerError,
	}
}

func component(fn func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (s *Site) layout(buf *bytes.Buffer, meta folio.PageMeta, jsonLD string, body func()) {
	buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	buf.WriteString("<title>" + esc(meta.Title) + "</title>")
	buf.WriteString(`<meta name="description" content="` + esc(meta.Description) + `">`)
	if len(meta.Keywords) > 0 {
		buf.WriteString(`<meta name="keywords" content="` + esc(strings.Join(meta.Keywords, ", ")) + `">`)
	}
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `">`)
		buf.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `">`)
	}
	buf.WriteString(`<meta property="og:title" content="` + esc(meta.Title) + `">`)
	buf.WriteString(`<meta property="og:description" content="` + esc(meta.Description) + `">`)
	buf.WriteString(`<meta property="og:type" content="` + esc(meta.OGType) + `">`)
	if meta.Image != "" {
		buf.WriteString(`<meta property="og:image" content="` + esc(meta.Image) + `">`)
	}
	buf.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`)
	buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(s.cfg.Name) + `" href="/feed.xml">`)
	buf.WriteString(`<link rel="stylesheet" href="/public/styles.css">`)
	if jsonLD != "" {
		// json.Marshal escapes <, > and &, so the payload cannot close the tag.
		buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	buf.WriteString(`</head><body><header class="site-header"><a href="/" class="site-name">` + esc(s.cfg.Name) + `</a>`)
	buf.WriteString(`<nav><a href="/#blog">Blog</a><a href="/#contact">Contact</a><a href="/api/download/resume">Resume</a></nav></header><main>`)
	body()
	buf.WriteString(`</main><footer class="site-footer"><p>&copy; ` + esc(s.cfg.Author) + `</p><a href="/feed.xml">RSS</a></footer></body></html>`)
}

// Home renders the landing page: post cards, tag filter and contact form.
func (s *Site) Home(posts []folio.BlogPost, activeTag string, tags []string, flash string, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := folio.PageMeta{
			Title:       s.cfg.Name,
			Description: s.cfg.Description,
			URL:         folio.BuildURL(s.cfg.URL),
			OGType:      "website",
		}
		s.layout(buf, meta, folio.WebsiteJsonLD(s.cfg), func() {
			buf.WriteString(`<section class="hero"><h1>` + esc(s.cfg.Author) + `</h1><p>` + esc(s.cfg.Description) + `</p>`)
			buf.WriteString(`<a href="/api/download/resume">Download resume</a> <a href="/api/download/cover-letter">Download cover letter</a></section>`)

			buf.WriteString(`<section id="blog" class="blog"><h2>Blog</h2><div class="tags">`)
			buf.WriteString(`<a class="` + TagClass(activeTag == "") + `" href="/">All</a>`)
			for _, t := range tags {
				active := strings.EqualFold(t, activeTag)
				buf.WriteString(`<a class="` + TagClass(active) + `" href="` + esc(TagLink(t)) + `">` + esc(t) + `</a>`)
			}
			buf.WriteString(`</div>`)
			if len(posts) == 0 {
				buf.WriteString(`<p class="empty">No posts yet.</p>`)
			}
			for _, p := range posts {
				writeCard(buf, p)
			}
			buf.WriteString(`</section>`)

			writeContactForm(buf, flash, csrfToken)
		})
	})
}

func writeCard(buf *bytes.Buffer, p folio.BlogPost) {
	buf.WriteString(`<article class="post-card">`)
	if p.Image != "" {
		buf.WriteString(`<img src="` + esc(ThumbnailURL(p.Image)) + `" alt="` + esc(p.Title) + `" loading="lazy">`)
	}
	buf.WriteString(`<h3><a href="` + esc(p.Link()) + `">` + esc(p.Title) + `</a></h3>`)
	buf.WriteString(`<p class="meta"><time datetime="` + ISODate(p) + `">` + esc(FormatDate(p)) + `</time> · ` + esc(p.ReadTime) + `</p>`)
	buf.WriteString(`<p>` + esc(p.Excerpt) + `</p>`)
	writeTags(buf, p.Tags)
	buf.WriteString(`<p class="counters">` + Counter(p.Likes, "like") + ` · ` + Counter(p.Comments, "comment") + `</p>`)
	buf.WriteString(`</article>`)
}

func writeTags(buf *bytes.Buffer, tags []string) {
	if len(tags) == 0 {
		return
	}
	buf.WriteString(`<ul class="post-tags">`)
	for _, t := range tags {
		buf.WriteString(`<li><a class="` + TagClass(false) + `" href="` + esc(TagLink(t)) + `">` + esc(t) + `</a></li>`)
	}
	buf.WriteString(`</ul>`)
}

func writeContactForm(buf *bytes.Buffer, flash, csrfToken string) {
	buf.WriteString(`<section id="contact" class="contact"><h2>Contact</h2>`)
	if flash != "" {
		buf.WriteString(`<p class="flash" role="status">` + esc(flash) + `</p>`)
	}
	buf.WriteString(`<form method="post" action="/contact/">`)
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `">`)
	buf.WriteString(`<label>Name <input name="name" required></label>`)
	buf.WriteString(`<label>Email <input type="email" name="email" required></label>`)
	buf.WriteString(`<label>Company <input name="company"></label>`)
	buf.WriteString(`<label>Subject <input name="subject" required></label>`)
	buf.WriteString(`<label>Message <textarea name="message" rows="6" required></textarea></label>`)
	buf.WriteString(`<button type="submit">Send</button></form></section>`)
}

// Post renders a full article page.
func (s *Site) Post(post folio.BlogPost, blocks []markdown.Block, related []folio.BlogPost) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := folio.PageMeta{
			Title:       post.MetaTitle(),
			Description: post.MetaDescription(),
			Keywords:    post.SEO.Keywords,
			URL:         folio.BuildURL(s.cfg.URL, "blog", post.ID),
			OGType:      "article",
			Image:       folio.AbsoluteURL(s.cfg.URL, post.Image),
		}
		s.layout(buf, meta, folio.BlogPostingJsonLD(post, s.cfg), func() {
			buf.WriteString(`<article class="post"><a href="/#blog" class="back">Back to blog</a><header>`)
			if post.Image != "" {
				buf.WriteString(`<img src="` + esc(post.Image) + `" alt="` + esc(post.Title) + `" fetchpriority="high">`)
			}
			buf.WriteString(`<p class="meta">`)
			if post.Author.Avatar != "" {
				buf.WriteString(`<img class="avatar" src="` + esc(post.Author.Avatar) + `" alt="" width="32" height="32">`)
			}
			buf.WriteString(esc(post.Author.Name) + ` · <time datetime="` + ISODate(post) + `">` + esc(FormatDate(post)) + `</time> · ` + esc(post.ReadTime) + `</p>`)
			writeTags(buf, post.Tags)
			buf.WriteString(`</header><div class="prose">`)
			RenderBlocks(buf, blocks)
			buf.WriteString(`</div><footer><p class="counters">` + Counter(post.Likes, "like") + ` · ` + Counter(post.Comments, "comment") + `</p></footer></article>`)

			if len(related) > 0 {
				buf.WriteString(`<aside class="related"><h2>Related posts</h2><ul>`)
				for _, r := range related {
					buf.WriteString(`<li><a href="` + esc(r.Link()) + `">` + esc(r.Title) + `</a></li>`)
				}
				buf.WriteString(`</ul></aside>`)
			}
		})
	})
}

// NotFound renders the 404 page.
func (s *Site) NotFound() templ.Component {
	return s.message("Not found", "The page you are looking for does not exist.")
}

// ServerError renders the 500 page.
func (s *Site) ServerError() templ.Component {
	return s.message("Something went wrong", "Please try again in a moment.")
}

func (s *Site) message(title, text string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		meta := folio.PageMeta{Title: title + " · " + s.cfg.Name, Description: text, OGType: "website"}
		s.layout(buf, meta, "", func() {
			buf.WriteString(`<section class="message"><h1>` + esc(title) + `</h1><p>` + esc(text) + `</p><a href="/">Go home</a></section>`)
		})
	})
}

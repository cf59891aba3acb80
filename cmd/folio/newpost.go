package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/portfolio-site/folio"
	"github.com/portfolio-site/folio/scaffold"
)

var postFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"list": func(vals []string) string {
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = strconv.Quote(v)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	},
}

// newPostOptions mirrors the fields a writer fills in for a new article.
type newPostOptions struct {
	Title           string
	Excerpt         string
	ReadTime        string
	Image           string
	Tags            string
	Keywords        string
	MetaTitle       string
	MetaDescription string
	AuthorName      string
	AuthorAvatar    string
	Dir             string
	Date            string
}

func parseNewPostFlags(args []string) (newPostOptions, error) {
	var o newPostOptions
	fs := flag.NewFlagSet("new-post", flag.ContinueOnError)
	fs.StringVar(&o.Title, "title", "", "post title (required)")
	fs.StringVar(&o.Excerpt, "excerpt", "", "short summary shown on cards")
	fs.StringVar(&o.ReadTime, "read-time", "5 min read", "reading time label")
	fs.StringVar(&o.Image, "image", "", "cover image path")
	fs.StringVar(&o.Tags, "tags", "", "comma-separated tags")
	fs.StringVar(&o.Keywords, "keywords", "", "comma-separated SEO keywords")
	fs.StringVar(&o.MetaTitle, "meta-title", "", "SEO title (defaults to title)")
	fs.StringVar(&o.MetaDescription, "meta-description", "", "SEO description (defaults to excerpt)")
	fs.StringVar(&o.AuthorName, "author", folio.EnvOr("SITE_AUTHOR", "Sashi Pritam Manandi Anand"), "author name")
	fs.StringVar(&o.AuthorAvatar, "avatar", "/profile-photo.jpg", "author avatar path")
	fs.StringVar(&o.Dir, "dir", folio.PostsDir, "directory to write the post into")
	fs.StringVar(&o.Date, "date", "", "publication date, YYYY-MM-DD (defaults to today)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if strings.TrimSpace(o.Title) == "" {
		return o, errors.New("-title is required")
	}
	return o, nil
}

// buildPost turns the options into a post, applying the same defaults the
// site applies when reading posts back.
func buildPost(o newPostOptions, now time.Time) (folio.BlogPost, error) {
	title := strings.TrimSpace(o.Title)
	id := folio.Slugify(title)
	if id == "" {
		return folio.BlogPost{}, fmt.Errorf("title %q yields an empty id", title)
	}
	date := strings.TrimSpace(o.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	excerpt := strings.TrimSpace(o.Excerpt)
	p := folio.BlogPost{
		ID:       id,
		Title:    title,
		Excerpt:  excerpt,
		Date:     date,
		ReadTime: strings.TrimSpace(o.ReadTime),
		Image:    strings.TrimSpace(o.Image),
		Tags:     folio.FilterEmpty(strings.Split(o.Tags, ",")),
		Author: folio.Author{
			Name:   strings.TrimSpace(o.AuthorName),
			Avatar: strings.TrimSpace(o.AuthorAvatar),
		},
		SEO: folio.SEO{
			MetaTitle:       firstNonEmpty(o.MetaTitle, title),
			MetaDescription: firstNonEmpty(o.MetaDescription, excerpt),
			Keywords:        folio.FilterEmpty(strings.Split(o.Keywords, ",")),
		},
	}
	if err := folio.ValidatePost(p); err != nil {
		return folio.BlogPost{}, err
	}
	return p, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// renderPostFile executes the scaffold template for p.
func renderPostFile(p folio.BlogPost) ([]byte, error) {
	content, err := scaffold.Templates.ReadFile(scaffold.PostTemplate)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", scaffold.PostTemplate, err)
	}
	tmpl, err := template.New(filepath.Base(scaffold.PostTemplate)).Funcs(postFuncs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", scaffold.PostTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", scaffold.PostTemplate, err)
	}
	return buf.Bytes(), nil
}

func runNewPost(args []string, out io.Writer) error {
	o, err := parseNewPostFlags(args)
	if err != nil {
		return err
	}
	p, err := buildPost(o, time.Now())
	if err != nil {
		return err
	}
	data, err := renderPostFile(p)
	if err != nil {
		return err
	}
	// The written file must load exactly like the embedded posts do.
	if _, err := folio.ParsePost(data); err != nil {
		return fmt.Errorf("generated post does not parse: %w", err)
	}

	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(o.Dir, p.Date+"-"+p.ID+".md")
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("file %q already exists", outPath)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "  created %s\n\n", outPath)
	fmt.Fprintln(out, "Edit the body, then rebuild to embed the new post.")
	return nil
}

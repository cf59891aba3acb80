package folio

import (
	"encoding/json"
	"encoding/xml"
	"reflect"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Graph RAG: 10 Days!  ", "graph-rag-10-days"},
		{"NSS Special Camp 2025 - Unity in Service", "nss-special-camp-2025-unity-in-service"},
		{"---", ""},
		{"Café", "caf"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com/site", []string{"blog", "x"}, "https://example.com/site/blog/x/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, path, expected string
	}{
		{"https://example.com", "/images/a.jpg", "https://example.com/images/a.jpg"},
		{"https://example.com", "https://cdn.example.net/a.jpg", "https://cdn.example.net/a.jpg"},
		{"https://example.com", "", ""},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.path); got != tt.expected {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.expected)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" go ", "", "  ", "web"})
	if !reflect.DeepEqual(got, []string{"go", "web"}) {
		t.Errorf("FilterEmpty = %q", got)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	posts := fixturePosts()
	got := ids(FilterRelatedPosts(posts[0], posts))
	if !reflect.DeepEqual(got, []string{"ntt-internship"}) {
		t.Errorf("related to graph-rag = %v", got)
	}
	got = ids(FilterRelatedPosts(BlogPost{ID: "lonely"}, posts))
	if len(got) != 0 {
		t.Errorf("related to untagged post = %v", got)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Portfolio", URL: "https://example.com", Author: "Site Owner"}
	post := BlogPost{
		ID:      "my-post",
		Title:   "Title </script>",
		Excerpt: "Excerpt",
		Date:    "2025-8-8",
		Image:   "/images/cover.jpg",
		Tags:    []string{"Go", "Web"},
	}
	raw := BlogPostingJsonLD(post, cfg)
	if strings.Contains(raw, "</script>") {
		t.Errorf("JSON-LD not escaped: %s", raw)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	checks := map[string]string{
		"headline":      "Title </script>",
		"description":   "Excerpt",
		"url":           "https://example.com/blog/my-post/",
		"datePublished": "2025-08-08",
		"image":         "https://example.com/images/cover.jpg",
		"keywords":      "Go, Web",
	}
	for k, want := range checks {
		if got, _ := data[k].(string); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
	author, _ := data["author"].(map[string]any)
	if author["name"] != "Site Owner" {
		t.Errorf("author = %v, want site author fallback", data["author"])
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	raw := WebsiteJsonLD(SiteConfig{Name: "Portfolio", URL: "https://example.com"})
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["@type"] != "WebSite" || data["name"] != "Portfolio" {
		t.Errorf("data = %v", data)
	}
	if _, ok := data["author"]; ok {
		t.Error("author set without SiteConfig.Author")
	}
}

func TestBuildFeed(t *testing.T) {
	cfg := SiteConfig{Name: "Portfolio", URL: "https://example.com", Description: "Posts"}
	posts := []BlogPost{
		{ID: "a", Title: "A", Excerpt: "about a", Date: "2025-8-8", Tags: []string{"Go"}, Author: Author{Name: "Jane"}},
		{ID: "b", Title: "B", Date: "not a date", SEO: SEO{MetaDescription: "seo b"}},
	}
	feed := buildFeed(cfg, posts)
	if feed.Version != "2.0" || feed.Channel.Title != "Portfolio" {
		t.Errorf("channel = %+v", feed.Channel)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(feed.Channel.Items))
	}
	a, b := feed.Channel.Items[0], feed.Channel.Items[1]
	if a.Link != "https://example.com/blog/a/" || a.GUID != a.Link {
		t.Errorf("item link = %q guid = %q", a.Link, a.GUID)
	}
	if a.PubDate != "Fri, 08 Aug 2025 00:00:00 +0000" {
		t.Errorf("pubDate = %q", a.PubDate)
	}
	if b.PubDate != "" || b.Description != "seo b" {
		t.Errorf("item b = %+v", b)
	}

	out, err := xml.Marshal(feed)
	if err != nil {
		t.Fatalf("xml.Marshal: %v", err)
	}
	for _, want := range []string{`<rss version="2.0">`, "<category>Go</category>", "<author>Jane</author>"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("feed XML missing %q:\n%s", want, out)
		}
	}
}

func TestBuildSitemap(t *testing.T) {
	set := buildSitemap("https://example.com", []BlogPost{
		{ID: "a", Date: "2025-8-8"},
		{ID: "b", Date: "bad"},
	})
	want := []sitemapURL{
		{Loc: "https://example.com"},
		{Loc: "https://example.com/blog/a/", LastMod: "2025-08-08"},
		{Loc: "https://example.com/blog/b/"},
	}
	if !reflect.DeepEqual(set.URLs, want) {
		t.Errorf("URLs = %+v, want %+v", set.URLs, want)
	}
}

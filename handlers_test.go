package folio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/portfolio-site/folio/markdown"
)

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func(posts []BlogPost, activeTag string, tags []string, flash, csrfToken string) templ.Component {
			return text("home tag=%s posts=%s flash=%s csrf=%s", activeTag, strings.Join(ids(posts), ","), flash, csrfToken)
		},
		Post: func(post BlogPost, blocks []markdown.Block, related []BlogPost) templ.Component {
			return text("post %s blocks=%d related=%s", post.ID, len(blocks), strings.Join(ids(related), ","))
		},
		NotFound:    func() templ.Component { return text("not found") },
		ServerError: func() templ.Component { return text("server error") },
	}
}

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	static := t.TempDir()
	posts := fixturePosts()
	posts[0].Content = "# Graph\n\nSome **text**.\n\n- a\n- b"
	a := New(SiteConfig{
		Name:          "Portfolio",
		URL:           "https://example.com",
		SessionSecret: "test-secret",
		ContactMax:    3,
	}, stubViews(), WithSource(NewMemoryStore(posts)), WithStaticDir(static))
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, static
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return serve(a, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestInitRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{}, stubViews(), WithSource(NewMemoryStore(nil)))
	if err := a.Init(); err == nil {
		t.Fatal("Init succeeded without SessionSecret")
	}
}

func TestConfigDefaults(t *testing.T) {
	a := New(SiteConfig{}, ViewFuncs{})
	cfg := a.Config
	if cfg.Addr != ":3000" || cfg.ContactMax != 5 || cfg.ResumeName != "Resume.pdf" || cfg.PostCacheTTL == 0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestHomePage(t *testing.T) {
	a, _ := newTestApp(t)
	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "posts=ntt-internship,graph-rag,nss-camp,hike-and-heal") {
		t.Errorf("body = %q", body)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}

	rec = get(a, "/?tag=Community")
	if !strings.Contains(rec.Body.String(), "tag=Community posts=nss-camp,hike-and-heal ") {
		t.Errorf("filtered body = %q", rec.Body.String())
	}
}

func TestPostPage(t *testing.T) {
	a, _ := newTestApp(t)
	rec := get(a, "/blog/graph-rag/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "post graph-rag blocks=3 related=ntt-internship" {
		t.Errorf("body = %q", got)
	}

	rec = get(a, "/blog/nonexistent-slug/")
	if rec.Code != http.StatusNotFound || rec.Body.String() != "not found" {
		t.Errorf("missing post: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRedirects(t *testing.T) {
	a, _ := newTestApp(t)
	tests := []struct {
		target   string
		location string
	}{
		{"/blog", "/"},
		{"/blog/graph-rag", "/blog/graph-rag/"},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		if rec.Code != http.StatusMovedPermanently {
			t.Errorf("GET %s status = %d, want 301", tt.target, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != tt.location {
			t.Errorf("GET %s Location = %q, want %q", tt.target, loc, tt.location)
		}
	}
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	a, _ := newTestApp(t)
	for _, target := range []string{"/nope/", "/thumbs/missing.png", "/thumbs/readme.txt"} {
		rec := get(a, target)
		if rec.Code != http.StatusNotFound || rec.Body.String() != "not found" {
			t.Errorf("GET %s = %d %q", target, rec.Code, rec.Body.String())
		}
	}
}

func TestAPIPosts(t *testing.T) {
	a, _ := newTestApp(t)
	rec := get(a, "/api/posts")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 4 || list[0]["id"] != "ntt-internship" || list[1]["link"] != "/blog/graph-rag/" {
		t.Errorf("list = %v", list)
	}
	if _, ok := list[0]["content"]; ok {
		t.Error("list entries include content")
	}

	rec = get(a, "/api/posts?tag=neo4j")
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0]["id"] != "graph-rag" {
		t.Errorf("tag list = %v", list)
	}
}

func TestAPIPost(t *testing.T) {
	a, _ := newTestApp(t)
	rec := get(a, "/api/posts/graph-rag")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var detail struct {
		ID     string          `json:"id"`
		Blocks []markdown.Node `json:"blocks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.ID != "graph-rag" || len(detail.Blocks) != 3 {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.Blocks[1].HTML != "Some <strong>text</strong>." {
		t.Errorf("paragraph html = %q", detail.Blocks[1].HTML)
	}

	rec = get(a, "/api/posts/nonexistent-slug")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "post not found") {
		t.Errorf("missing: %d %q", rec.Code, rec.Body.String())
	}
}

func postJSON(a *App, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(a, req)
}

func TestContactAPI(t *testing.T) {
	a, _ := newTestApp(t)
	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"missing", `{"name":"Jo","email":"jo@example.com"}`, http.StatusBadRequest, "Missing required fields"},
		{"bad email", `{"name":"Jo","email":"nope","subject":"Hi","message":"Hello"}`, http.StatusBadRequest, "Invalid email format"},
		{"ok", `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Hello"}`, http.StatusOK, "Message sent successfully"},
		{"limited", `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Hello"}`, http.StatusTooManyRequests, "Too many messages"},
	}
	for i, tt := range tests {
		rec := postJSON(a, "/api/contact", tt.body)
		remaining := 3 - (i + 1)
		if remaining < 0 {
			remaining = 0
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != fmt.Sprint(remaining) {
			t.Errorf("%s: X-RateLimit-Remaining = %q, want %d", tt.name, got, remaining)
		}
		if rec.Code != tt.code {
			t.Errorf("%s: status = %d, want %d (%s)", tt.name, rec.Code, tt.code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("%s: body = %q, want %q", tt.name, rec.Body.String(), tt.want)
		}
	}
}

func TestContactRequestValidate(t *testing.T) {
	ok := ContactRequest{Name: "Jo", Email: "jo@example.com", Subject: "Hi", Message: "Hello"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	long := ok
	long.Message = strings.Repeat("x", maxContactMessage+1)
	if err := long.Validate(); err != errContactTooLong {
		t.Errorf("long message err = %v", err)
	}
	noAt := ok
	noAt.Email = "jo.example.com"
	if err := noAt.Validate(); err != errContactEmail {
		t.Errorf("email err = %v", err)
	}
}

func TestContactFormFlash(t *testing.T) {
	a, _ := newTestApp(t)

	form := url.Values{"name": {"Jo"}, "email": {"jo@example.com"}, "subject": {"Hi"}, "message": {"Hello"}}
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if rec := serve(a, req); rec.Code != http.StatusForbidden {
		t.Fatalf("without csrf token: status = %d, want 403", rec.Code)
	}

	home := get(a, "/")
	var csrf *http.Cookie
	for _, c := range home.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	if csrf == nil {
		t.Fatal("home page did not set a csrf cookie")
	}

	form.Set("_csrf", csrf.Value)
	req = httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(csrf)
	rec := serve(a, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/#contact" {
		t.Fatalf("submit: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	body := serve(a, req).Body.String()
	if !strings.Contains(body, "flash=Thanks for reaching out!") {
		t.Errorf("flash not shown: %q", body)
	}
}

func TestDownloads(t *testing.T) {
	a, static := newTestApp(t)

	rec := get(a, "/api/download/resume")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "File not found.") {
		t.Errorf("missing resume: %d %q", rec.Code, rec.Body.String())
	}

	if err := os.WriteFile(filepath.Join(static, "cover-letter.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec = get(a, "/api/download/cover-letter")
	if rec.Code != http.StatusOK {
		t.Fatalf("cover letter status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Cover_Letter.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestFeedAndSitemap(t *testing.T) {
	a, _ := newTestApp(t)

	rec := get(a, "/feed.xml")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/rss+xml") {
		t.Fatalf("feed: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<link>https://example.com/blog/graph-rag/</link>") {
		t.Errorf("feed body = %s", rec.Body.String())
	}

	rec = get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<loc>https://example.com/blog/hike-and-heal/</loc><lastmod>2024-12-10</lastmod>") {
		t.Errorf("sitemap body = %s", rec.Body.String())
	}
}

func TestThumbnailRoute(t *testing.T) {
	a, static := newTestApp(t)
	writePNG(t, filepath.Join(static, "images", "cover.png"), 800, 400)
	rec := get(a, "/thumbs/images/cover.png")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/jpeg" {
		t.Fatalf("thumb: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if b := decodeJPEG(t, rec.Body.Bytes()).Bounds(); b.Dx() != thumbnailWidth {
		t.Errorf("width = %d, want %d", b.Dx(), thumbnailWidth)
	}
}

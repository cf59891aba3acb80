// Package folio is a portfolio and blog engine built with Go, Echo, and templ.
// It serves a fixed collection of articles, renders their markdown-subset
// bodies into typed blocks, and provides RSS, sitemap, file downloads and a
// contact endpoint.
//
// Page markup is supplied by the caller through ViewFuncs; the views package
// ships a default set.
package folio

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/folio/markdown"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages.
type ViewFuncs struct {
	Home        func(posts []BlogPost, activeTag string, tags []string, flash string, csrfToken string) templ.Component
	Post        func(post BlogPost, blocks []markdown.Block, related []BlogPost) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central folio application. It wires together the post source,
// cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Posts  *PostCache
	Views  ViewFuncs

	source         Source
	sqlStore       *SQLStore
	contactLimiter *RateLimiter
	thumbs         *ThumbnailCache
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads posts and registers middleware and routes. Start calls it; tests
// call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	if a.source == nil {
		src, err := a.defaultSource()
		if err != nil {
			return err
		}
		a.source = src
	}

	cache, err := NewPostCache(a.source, a.Config.PostCacheTTL, func(err error) {
		a.Echo.Logger.Errorf("refresh posts: %v", err)
	})
	if err != nil {
		return fmt.Errorf("folio: load posts: %w", err)
	}
	a.Posts = cache
	a.Echo.Logger.Infof("serving %d posts", cache.Len())

	a.contactLimiter = NewRateLimiter(a.Config.ContactMax, a.Config.ContactWindow)
	a.thumbs = NewThumbnailCache(a.staticDir, thumbnailWidth)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// defaultSource serves the embedded articles, through a SQLite snapshot when
// DatabasePath is set.
func (a *App) defaultSource() (Source, error) {
	posts, err := DefaultPosts()
	if err != nil {
		return nil, err
	}
	if a.Config.DatabasePath == "" {
		return NewMemoryStore(posts), nil
	}
	store, err := NewSQLStore(a.Config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("folio: init store: %w", err)
	}
	if err := store.Import(posts); err != nil {
		store.Close()
		return nil, err
	}
	a.sqlStore = store
	a.Echo.Logger.Infof("imported %d posts into %s", len(posts), a.Config.DatabasePath)
	return store, nil
}

// Start initializes the app and runs the HTTP server until it stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/thumbs/*", a.handleThumbnail)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.POST("/contact/", a.handleContactForm)

	api := e.Group("/api")
	api.GET("/posts", a.handleAPIPosts)
	api.GET("/posts/:slug", a.handleAPIPost)
	api.POST("/contact", a.handleContactAPI)
	api.GET("/download/resume", a.handleDownload(a.Config.ResumeFile, a.Config.ResumeName))
	api.GET("/download/cover-letter", a.handleDownload(a.Config.CoverLetterFile, a.Config.CoverLetterName))
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.contactLimiter != nil {
		a.contactLimiter.Close()
	}
	if a.sqlStore != nil {
		return a.sqlStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}

package folio

import "time"

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD and new posts

	Addr         string // Listen address (default ":3000")
	DatabasePath string // Optional SQLite snapshot path; empty serves posts from memory

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	ResumeFile      string // Resume PDF under the static dir (default "resume.pdf")
	ResumeName      string // Download file name (default "Resume.pdf")
	CoverLetterFile string // Cover letter PDF under the static dir (default "cover-letter.pdf")
	CoverLetterName string // Download file name (default "Cover_Letter.pdf")

	ContactMax    int           // Contact submissions allowed per IP per window (default 5)
	ContactWindow time.Duration // Contact rate limit window (default 10min)

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ResumeFile == "" {
		c.ResumeFile = "resume.pdf"
	}
	if c.ResumeName == "" {
		c.ResumeName = "Resume.pdf"
	}
	if c.CoverLetterFile == "" {
		c.CoverLetterFile = "cover-letter.pdf"
	}
	if c.CoverLetterName == "" {
		c.CoverLetterName = "Cover_Letter.pdf"
	}
	if c.ContactMax == 0 {
		c.ContactMax = 5
	}
	if c.ContactWindow == 0 {
		c.ContactWindow = 10 * time.Minute
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource serves posts from src instead of the embedded articles.
func WithSource(src Source) Option {
	return func(a *App) {
		a.source = src
	}
}

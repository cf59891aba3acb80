package folio

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionName = "folio_session"

// pathKind groups request paths that share compression, trailing-slash and
// caching rules.
type pathKind int

const (
	pathPage   pathKind = iota // HTML pages, canonical with a trailing slash
	pathAsset                  // static files and thumbnails
	pathFile                   // fixed-name files at the site root
	pathAPI                    // JSON endpoints and downloads
	pathAction                 // form posts and the landing page
)

func classifyPath(path string) pathKind {
	switch {
	case strings.HasPrefix(path, "/public/"), strings.HasPrefix(path, "/thumbs/"):
		return pathAsset
	case strings.HasPrefix(path, "/api/"):
		return pathAPI
	case path == "/sitemap.xml", path == "/feed.xml", path == "/robots.txt", path == "/favicon.svg":
		return pathFile
	case path == "/", strings.HasPrefix(path, "/contact"):
		return pathAction
	}
	return pathPage
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s) ip=%s", v.Method, v.URI, v.Status, v.Latency, v.RemoteIP)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return classifyPath(path) == pathAsset || strings.HasPrefix(path, "/api/download/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'; form-action 'self'",
		HSTSMaxAge:            31536000,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	// JSON clients post to /api without a form token; the rate limiter
	// covers them instead.
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		Skipper: func(c echo.Context) bool {
			return classifyPath(c.Request().URL.Path) == pathAPI
		},
		ErrorHandler: func(err error, c echo.Context) error {
			c.Logger().Warnf("csrf: %v", err)
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/blog" || classifyPath(path) != pathPage
		},
	}))

	e.Use(cacheControl)
}

var cacheControlByKind = map[pathKind]string{
	pathAsset:  "public, max-age=31536000, immutable",
	pathFile:   "public, max-age=86400",
	pathAPI:    "no-store",
	pathAction: "no-store",
	pathPage:   "public, max-age=3600",
}

func cacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind := classifyPath(c.Request().URL.Path)
		c.Response().Header().Set("Cache-Control", cacheControlByKind[kind])
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// addFlash queues a one-shot message shown on the next page view.
func addFlash(c echo.Context, msg string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(msg)
	return sess.Save(c.Request(), c.Response())
}

// popFlash returns and clears the first queued flash message, if any.
func popFlash(c echo.Context) (string, error) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return "", err
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return "", nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return "", err
	}
	msg, _ := flashes[0].(string)
	return msg, nil
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

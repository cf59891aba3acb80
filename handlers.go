package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/folio/markdown"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts := a.Posts.ListPostsByTag(tag)
	tags := a.Posts.ListTags()
	flash, err := popFlash(c)
	if err != nil {
		c.Logger().Warnf("read flash: %v", err)
	}
	return Render(c, a.Views.Home(posts, tag, tags, flash, CsrfToken(c)))
}

func (a *App) handlePost(c echo.Context) error {
	post, ok := a.Posts.GetPost(c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	related := FilterRelatedPosts(post, a.Posts.ListPosts())
	return Render(c, a.Views.Post(post, a.Posts.Blocks(post), related))
}

// postSummary is the list shape of the JSON API; the body is left out.
type postSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	ReadTime string   `json:"readTime"`
	Image    string   `json:"image"`
	Tags     []string `json:"tags"`
	Likes    int      `json:"likes"`
	Comments int      `json:"comments"`
	Author   Author   `json:"author"`
	Link     string   `json:"link"`
}

type postDetail struct {
	BlogPost
	Blocks []markdown.Node `json:"blocks"`
}

func (a *App) handleAPIPosts(c echo.Context) error {
	posts := a.Posts.ListPostsByTag(c.QueryParam("tag"))
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, postSummary{
			ID:       p.ID,
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Date:     p.Date,
			ReadTime: p.ReadTime,
			Image:    p.Image,
			Tags:     p.Tags,
			Likes:    p.Likes,
			Comments: p.Comments,
			Author:   p.Author,
			Link:     p.Link(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleAPIPost(c echo.Context) error {
	post, ok := a.Posts.GetPost(c.Param("slug"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}
	return c.JSON(http.StatusOK, postDetail{
		BlogPost: post,
		Blocks:   markdown.ToNodes(a.Posts.Blocks(post)),
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Posts.ListPosts())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Posts.ListPosts())
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

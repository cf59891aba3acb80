package folio

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
)

// handleDownload serves file from the static dir as an attachment named name.
func (a *App) handleDownload(file, name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := filepath.Join(a.staticDir, filepath.Clean("/"+file))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.Logger().Warnf("download %s: file missing", file)
				return c.JSON(http.StatusNotFound, map[string]string{
					"error":        "File not found.",
					"instructions": "Add " + file + " to the " + a.staticDir + "/ directory.",
				})
			}
			return err
		}
		c.Logger().Infof("download %s", file)
		h := c.Response().Header()
		h.Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
		h.Set(echo.HeaderContentLength, strconv.Itoa(len(data)))
		return c.Blob(http.StatusOK, contentType(file), data)
	}
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return echo.MIMEOctetStream
	}
}

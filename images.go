package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	thumbnailWidth = 480
	jpegQuality    = 80
	maxSourceSize  = 10 << 20 // 10MB
)

var errNotImage = errors.New("folio: not an image path")

// ThumbnailCache produces and memoises JPEG thumbnails of images under a
// directory, typically the post cover images in the static dir.
type ThumbnailCache struct {
	dir   string
	width int

	mu    sync.Mutex
	items map[string][]byte
}

// NewThumbnailCache returns a cache reading sources from dir and scaling
// them to at most width pixels wide.
func NewThumbnailCache(dir string, width int) *ThumbnailCache {
	return &ThumbnailCache{dir: dir, width: width, items: make(map[string][]byte)}
}

// Get returns the thumbnail for the image at the slash-separated path rel.
func (t *ThumbnailCache) Get(rel string) ([]byte, error) {
	clean := path.Clean("/" + rel)
	switch strings.ToLower(path.Ext(clean)) {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return nil, errNotImage
	}

	t.mu.Lock()
	data, ok := t.items[clean]
	t.mu.Unlock()
	if ok {
		return data, nil
	}

	f, err := os.Open(filepath.Join(t.dir, filepath.FromSlash(clean)))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err = resizeImage(io.LimitReader(f, maxSourceSize), t.width)
	if err != nil {
		return nil, fmt.Errorf("folio: thumbnail %s: %w", clean, err)
	}

	t.mu.Lock()
	t.items[clean] = data
	t.mu.Unlock()
	return data, nil
}

// resizeImage decodes an image from src, scales it down to maxWidth when it
// is wider, and encodes it as JPEG.
func resizeImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *App) handleThumbnail(c echo.Context) error {
	data, err := a.thumbs.Get(c.Param("*"))
	if err != nil {
		if errors.Is(err, errNotImage) || errors.Is(err, fs.ErrNotExist) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		c.Logger().Warnf("thumbnail: %v", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

package folio

import (
	"strings"
	"sync"
	"time"

	"github.com/portfolio-site/folio/markdown"
)

// PostCache is a Repository over a Source. The collection snapshot is
// refreshed after ttl; rendered blocks are memoised per post id.
type PostCache struct {
	mu      sync.RWMutex
	source  Source
	ttl     time.Duration
	store   *MemoryStore
	fetched time.Time
	onError func(error)

	renderMu sync.Mutex
	rendered map[string]renderedPost
}

type renderedPost struct {
	content string
	blocks  []markdown.Block
}

// NewPostCache loads the source once and returns a cache over it. A failure
// on this first load is returned; later refresh failures keep serving the
// previous snapshot and are reported to onError when set.
func NewPostCache(src Source, ttl time.Duration, onError func(error)) (*PostCache, error) {
	c := &PostCache{
		source:   src,
		ttl:      ttl,
		onError:  onError,
		rendered: make(map[string]renderedPost),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *PostCache) valid() bool {
	return c.store != nil && (c.ttl <= 0 || time.Since(c.fetched) < c.ttl)
}

// Invalidate forces the next read to reload from the source.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.fetched = time.Time{}
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	posts, err := c.source.AllPosts()
	if err != nil {
		return err
	}
	c.store = NewMemoryStore(posts)
	c.fetched = time.Now()
	return nil
}

// snapshot returns the current store after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) snapshot() *MemoryStore {
	c.mu.RLock()
	if c.valid() {
		s := c.store
		c.mu.RUnlock()
		return s
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.store
	}
	if err := c.load(); err != nil {
		// Keep the stale snapshot and retry after another ttl.
		c.fetched = time.Now()
		if c.onError != nil {
			c.onError(err)
		}
	}
	return c.store
}

// GetPost returns the post with the given id.
func (c *PostCache) GetPost(id string) (BlogPost, bool) {
	return c.snapshot().GetPost(id)
}

// ListPosts returns every post, newest first.
func (c *PostCache) ListPosts() []BlogPost {
	return c.snapshot().ListPosts()
}

// Len reports the number of posts in the current snapshot.
func (c *PostCache) Len() int {
	return c.snapshot().Len()
}

// ListPostsByTag returns posts carrying tag, newest first.
func (c *PostCache) ListPostsByTag(tag string) []BlogPost {
	return FilterByTag(c.ListPosts(), tag)
}

// ListTags returns all distinct tags in recency order of first use.
func (c *PostCache) ListTags() []string {
	return ListTags(c.ListPosts())
}

// Blocks returns the parsed body of p. Results are memoised by post id and
// recomputed whenever the content stored under that id changes. Each call
// returns its own copy.
func (c *PostCache) Blocks(p BlogPost) []markdown.Block {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	r, ok := c.rendered[p.ID]
	if !ok || r.content != p.Content {
		r = renderedPost{content: p.Content, blocks: markdown.Parse(p.Content)}
		c.rendered[p.ID] = r
	}
	return markdown.Clone(r.blocks)
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

package folio

import (
	"sort"
)

// Repository is read-only access to the post collection. Implementations must
// be safe for concurrent use and must never reorder their backing data.
type Repository interface {
	// GetPost returns the post whose ID equals id exactly.
	GetPost(id string) (BlogPost, bool)
	// ListPosts returns every post, newest first. Posts sharing a date keep
	// their collection order.
	ListPosts() []BlogPost
}

// MemoryStore is a Repository over a fixed slice of posts.
type MemoryStore struct {
	posts []BlogPost
	byID  map[string]int
}

// NewMemoryStore copies posts into a new store. When two posts share an ID
// the first one wins lookups; LoadPosts rejects such collections up front.
func NewMemoryStore(posts []BlogPost) *MemoryStore {
	s := &MemoryStore{
		posts: append([]BlogPost(nil), posts...),
		byID:  make(map[string]int, len(posts)),
	}
	for i, p := range s.posts {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
	}
	return s
}

// GetPost returns the post with the given id.
func (s *MemoryStore) GetPost(id string) (BlogPost, bool) {
	i, ok := s.byID[id]
	if !ok {
		return BlogPost{}, false
	}
	return s.posts[i], true
}

// ListPosts returns a sorted copy of the collection.
func (s *MemoryStore) ListPosts() []BlogPost {
	return SortByRecency(s.posts)
}

// AllPosts returns the collection in the order it was given.
func (s *MemoryStore) AllPosts() ([]BlogPost, error) {
	return append([]BlogPost(nil), s.posts...), nil
}

// Len reports the number of posts held.
func (s *MemoryStore) Len() int {
	return len(s.posts)
}

// SortByRecency returns a copy of posts ordered by date descending. The sort
// is stable; posts with malformed dates sort after all dated posts.
func SortByRecency(posts []BlogPost) []BlogPost {
	out := append([]BlogPost(nil), posts...)
	dates := make(map[string]int64, len(out))
	for _, p := range out {
		if _, ok := dates[p.Date]; !ok {
			t := p.Published()
			if t.IsZero() {
				dates[p.Date] = -1 << 62
			} else {
				dates[p.Date] = t.Unix()
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dates[out[i].Date] > dates[out[j].Date]
	})
	return out
}

// ListTags returns the distinct tags across posts in first-seen order,
// compared case-insensitively.
func ListTags(posts []BlogPost) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			key := normalizeTag(t)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// FilterByTag returns the posts carrying tag. An empty tag returns posts as is.
func FilterByTag(posts []BlogPost, tag string) []BlogPost {
	if tag == "" {
		return posts
	}
	normalized := normalizeTag(tag)
	var filtered []BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

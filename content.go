package folio

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// EmbeddedPosts holds the seed articles shipped with the binary. Each file is a
// YAML header followed by the markdown body.
//
//go:embed content/posts/*.md
var EmbeddedPosts embed.FS

// PostsDir is the directory inside EmbeddedPosts that holds the seed articles.
const PostsDir = "content/posts"

var reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// LoadPosts reads every *.md file in dir, in file name order, and returns the
// posts they describe. Collection order follows file order.
func LoadPosts(fsys fs.FS, dir string) ([]BlogPost, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("folio: read posts dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var posts []BlogPost
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("folio: read %s: %w", name, err)
		}
		post, err := ParsePost(data)
		if err != nil {
			return nil, fmt.Errorf("folio: %s: %w", name, err)
		}
		if prev, dup := seen[post.ID]; dup {
			return nil, fmt.Errorf("folio: %s: id %q already used by %s", name, post.ID, prev)
		}
		seen[post.ID] = name
		posts = append(posts, post)
	}
	return posts, nil
}

// ParsePost decodes one post file and validates its header.
func ParsePost(data []byte) (BlogPost, error) {
	var post BlogPost
	body, err := frontmatter.Parse(bytes.NewReader(data), &post)
	if err != nil {
		return BlogPost{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	post.Content = strings.TrimSpace(string(body))
	if err := ValidatePost(post); err != nil {
		return BlogPost{}, err
	}
	return post, nil
}

// ValidatePost checks the invariants every stored post must satisfy.
func ValidatePost(p BlogPost) error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	if !IsSlug(p.ID) {
		return fmt.Errorf("id %q is not a lowercase hyphenated slug", p.ID)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("post %q: missing title", p.ID)
	}
	if p.Published().IsZero() {
		return fmt.Errorf("post %q: date %q is not YYYY-MM-DD", p.ID, p.Date)
	}
	if p.Likes < 0 || p.Comments < 0 {
		return fmt.Errorf("post %q: negative counters", p.ID)
	}
	return nil
}

// IsSlug reports whether s is a lowercase, hyphen-separated URL segment.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// DefaultPosts loads the embedded seed articles.
func DefaultPosts() ([]BlogPost, error) {
	return LoadPosts(EmbeddedPosts, PostsDir)
}

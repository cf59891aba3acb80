package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/portfolio-site/folio"
	"github.com/portfolio-site/folio/markdown"
)

func runRender(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: folio render <id>")
	}
	post, err := lookupPost(args[0], os.Getenv("DATABASE_PATH"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(markdown.ToNodes(markdown.Parse(post.Content)))
}

// lookupPost reads from the SQLite snapshot the server imported when dbPath
// is set, and from the embedded posts otherwise.
func lookupPost(id, dbPath string) (folio.BlogPost, error) {
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err != nil {
			return folio.BlogPost{}, fmt.Errorf("open snapshot: %w", err)
		}
		store, err := folio.NewSQLStore(dbPath)
		if err != nil {
			return folio.BlogPost{}, err
		}
		defer store.Close()
		post, err := store.FindPost(id)
		if errors.Is(err, folio.ErrNotFound) {
			return folio.BlogPost{}, fmt.Errorf("no post with id %q in %s", id, dbPath)
		}
		return post, err
	}

	posts, err := folio.DefaultPosts()
	if err != nil {
		return folio.BlogPost{}, err
	}
	post, ok := folio.NewMemoryStore(posts).GetPost(id)
	if !ok {
		return folio.BlogPost{}, fmt.Errorf("no post with id %q", id)
	}
	return post, nil
}

package folio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by SQLStore lookups when no post has the given id.
var ErrNotFound = errors.New("folio: post not found")

// Source supplies the full post collection in collection order.
type Source interface {
	AllPosts() ([]BlogPost, error)
}

// SQLStore keeps a snapshot of the post collection in SQLite. It is written
// only by Import, at deploy time; the site reads it through a PostCache.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewSQLStore(path string) (*SQLStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    content TEXT NOT NULL,
    date TEXT NOT NULL,
    read_time TEXT NOT NULL,
    image TEXT NOT NULL,
    tags TEXT NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    comments INTEGER NOT NULL DEFAULT 0,
    author_name TEXT NOT NULL,
    author_avatar TEXT NOT NULL,
    meta_title TEXT NOT NULL,
    meta_description TEXT NOT NULL,
    keywords TEXT NOT NULL
);
`)
	return err
}

// Import replaces the stored collection with posts in a single transaction.
// Slice order becomes collection order.
func (s *SQLStore) Import(posts []BlogPost) error {
	for _, p := range posts {
		if err := ValidatePost(p); err != nil {
			return fmt.Errorf("folio: import: %w", err)
		}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO posts (id, position, title, excerpt, content, date, read_time, image, tags, likes, comments, author_name, author_avatar, meta_title, meta_description, keywords) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range posts {
		if _, err := stmt.Exec(p.ID, i, p.Title, p.Excerpt, p.Content, p.Date, p.ReadTime, p.Image,
			JoinList(p.Tags), p.Likes, p.Comments, p.Author.Name, p.Author.Avatar,
			p.SEO.MetaTitle, p.SEO.MetaDescription, JoinList(p.SEO.Keywords)); err != nil {
			return fmt.Errorf("folio: import %q: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

const postColumns = `id, title, excerpt, content, date, read_time, image, tags, likes, comments, author_name, author_avatar, meta_title, meta_description, keywords`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (BlogPost, error) {
	var p BlogPost
	var tags, keywords string
	err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Date, &p.ReadTime, &p.Image,
		&tags, &p.Likes, &p.Comments, &p.Author.Name, &p.Author.Avatar,
		&p.SEO.MetaTitle, &p.SEO.MetaDescription, &keywords)
	if err != nil {
		return BlogPost{}, err
	}
	p.Tags = ParseList(tags)
	p.SEO.Keywords = ParseList(keywords)
	return p, nil
}

// AllPosts returns every stored post in collection order.
func (s *SQLStore) AllPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindPost returns a single post by id, or ErrNotFound.
func (s *SQLStore) FindPost(id string) (BlogPost, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, ErrNotFound
	}
	return p, err
}

// JoinList encodes values as a comma-delimited string with leading and
// trailing commas (",go,web,") so single values can be matched with instr.
func JoinList(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	cleaned := make([]string, len(vals))
	for i, v := range vals {
		cleaned[i] = strings.ReplaceAll(strings.TrimSpace(v), ",", " ")
	}
	return "," + strings.Join(cleaned, ",") + ","
}

// ParseList splits a comma-delimited string (e.g. ",go,web,") into a slice.
func ParseList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Package scaffold provides the embedded templates used by the folio CLI to
// create new content.
package scaffold

import "embed"

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// PostTemplate is the path of the new-post template inside Templates.
const PostTemplate = "templates/post.md.tmpl"

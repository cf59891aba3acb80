package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strconv"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/portfolio-site/folio/markdown"
)

// inlinePolicy admits exactly the markup the inline passes produce. Anything
// else that reaches a paragraph is stripped.
var inlinePolicy = newInlinePolicy()

func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "code")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^noopener noreferrer$`)).OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// SanitizeInline passes paragraph HTML through the inline whitelist.
func SanitizeInline(s string) string {
	return inlinePolicy.Sanitize(s)
}

// Article returns a templ.Component that renders blocks as HTML. Plain-text
// fields are escaped; paragraph HTML is sanitised against the inline whitelist.
func Article(blocks []markdown.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderBlocks(&buf, blocks)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderBlocks writes the HTML representation of blocks to buf.
func RenderBlocks(buf *bytes.Buffer, blocks []markdown.Block) {
	for _, b := range blocks {
		switch v := b.(type) {
		case markdown.Heading:
			level := strconv.Itoa(clampLevel(v.Level))
			buf.WriteString("<h" + level + ">")
			buf.WriteString(html.EscapeString(v.Text))
			buf.WriteString("</h" + level + ">")
		case markdown.CodeBlock:
			lang := html.EscapeString(v.Language)
			buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
			buf.WriteString(`<pre class="code-block"><code class="language-` + lang + `">`)
			buf.WriteString(html.EscapeString(v.Code))
			buf.WriteString("</code></pre></div>")
		case markdown.BulletList:
			writeList(buf, "ul", v.Items)
		case markdown.NumberedList:
			writeList(buf, "ol", v.Items)
		case markdown.Blockquote:
			buf.WriteString("<blockquote><p>")
			buf.WriteString(html.EscapeString(v.Text))
			buf.WriteString("</p></blockquote>")
		case markdown.Paragraph:
			buf.WriteString("<p>")
			buf.WriteString(SanitizeInline(v.HTML))
			buf.WriteString("</p>")
		}
	}
}

func writeList(buf *bytes.Buffer, tag string, items []string) {
	buf.WriteString("<" + tag + ">")
	for _, item := range items {
		buf.WriteString("<li>")
		buf.WriteString(html.EscapeString(item))
		buf.WriteString("</li>")
	}
	buf.WriteString("</" + tag + ">")
}

func clampLevel(l int) int {
	switch {
	case l < 1:
		return 1
	case l > 3:
		return 3
	}
	return l
}

// Package markdown parses the blog's markdown subset into typed blocks.
//
// The grammar is deliberately flat: a post body is cut into blank-line
// separated segments and each segment becomes exactly one Block. There is no
// nesting of lists, quotes or emphasis.
package markdown

import (
	"regexp"
	"strings"
)

// Fence is the token that opens and closes a code segment.
const Fence = "```"

// DefaultLanguage labels a code block whose fence carries no language tag.
const DefaultLanguage = "text"

var (
	reSegmentBreak = regexp.MustCompile(`\n\s*\n`)
	reOrderedList  = regexp.MustCompile(`^\d+\. `)
)

// Parse converts content into an ordered sequence of blocks.
// It never fails: anything that matches no other rule becomes a Paragraph.
func Parse(content string) []Block {
	var blocks []Block
	for _, seg := range Segments(content) {
		blocks = append(blocks, classify(seg))
	}
	return blocks
}

// Segments splits content on blank lines and returns the trimmed, non-empty
// segments in order.
func Segments(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	parts := reSegmentBreak.Split(content, -1)
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func classify(seg string) Block {
	switch {
	case strings.HasPrefix(seg, "### "):
		return Heading{Level: 3, Text: seg[4:]}
	case strings.HasPrefix(seg, "## "):
		return Heading{Level: 2, Text: seg[3:]}
	case strings.HasPrefix(seg, "# "):
		return Heading{Level: 1, Text: seg[2:]}
	case isFenced(seg):
		return parseCode(seg)
	}
	// A list needs at least one item line; a bare marker stays a paragraph.
	if items := collectItems(seg, isBulletLine, stripBullet); len(items) > 0 {
		return BulletList{Items: items}
	}
	if items := collectItems(seg, isNumberedLine, stripNumber); len(items) > 0 {
		return NumberedList{Items: items}
	}
	switch {
	case strings.HasPrefix(seg, "> "):
		return Blockquote{Text: seg[2:]}
	default:
		return Paragraph{HTML: FormatInline(seg)}
	}
}

// isFenced needs both an opening and a distinct closing fence; a lone fence
// token falls through to the paragraph rule.
func isFenced(seg string) bool {
	return len(seg) >= 2*len(Fence) &&
		strings.HasPrefix(seg, Fence) &&
		strings.HasSuffix(seg, Fence)
}

func parseCode(seg string) CodeBlock {
	body := strings.TrimSpace(seg[len(Fence) : len(seg)-len(Fence)])
	lines := strings.Split(body, "\n")
	lang := strings.TrimSpace(lines[0])
	if lang == "" {
		lang = DefaultLanguage
	}
	return CodeBlock{Language: lang, Code: strings.Join(lines[1:], "\n")}
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "- ")
}

func stripBullet(line string) string {
	return strings.TrimSpace(line)[2:]
}

func isNumberedLine(line string) bool {
	return reOrderedList.MatchString(strings.TrimSpace(line))
}

func stripNumber(line string) string {
	return reOrderedList.ReplaceAllString(strings.TrimSpace(line), "")
}

// collectItems keeps only the lines accepted by match; everything else in the
// segment is dropped.
func collectItems(seg string, match func(string) bool, strip func(string) string) []string {
	var items []string
	for _, line := range strings.Split(seg, "\n") {
		if match(line) {
			items = append(items, strip(line))
		}
	}
	return items
}

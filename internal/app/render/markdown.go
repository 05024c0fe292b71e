// Package render turns the constrained markdown subset produced by the
// plan generator into HTML fragments for display.
//
// The subset is deliberately small: "## " and "### " headings, "**bold**"
// spans, "- " list items and blank-line separated paragraphs. Anything
// else passes through as plain text. Input is parsed into typed blocks
// before a single rendering pass, so a list is always a sibling of the
// surrounding paragraphs, never nested inside one. All source text is
// HTML-escaped before markup is added; the returned fragment is safe to
// insert as markup even when the plan text came from an untrusted model.
package render

import (
	"html"
	"regexp"
	"strings"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockList
)

type block struct {
	kind  blockKind
	level int      // heading level, 2 or 3
	lines []string // paragraph lines or heading text
	items []string // list items, in source order
}

// boldPattern matches a doubled-asterisk span non-greedily. An odd number
// of marker pairs on a line leaves the unmatched pair untouched.
var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Markdown renders a plan fragment. Plain text with no markers comes back
// wrapped in a single paragraph element.
func Markdown(text string) string {
	blocks := parseBlocks(text)

	var b strings.Builder
	for _, blk := range blocks {
		switch blk.kind {
		case blockHeading:
			tag := "h2"
			if blk.level == 3 {
				tag = "h3"
			}
			b.WriteString("<" + tag + ">")
			b.WriteString(inline(blk.lines[0]))
			b.WriteString("</" + tag + ">")
		case blockList:
			// Items are joined back to back: the markers alone separate
			// them, the source line breaks are dropped.
			b.WriteString("<ul>")
			for _, item := range blk.items {
				b.WriteString("<li>")
				b.WriteString(inline(item))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		case blockParagraph:
			b.WriteString("<p>")
			b.WriteString(inline(strings.Join(blk.lines, "\n")))
			b.WriteString("</p>")
		}
	}
	return b.String()
}

// parseBlocks splits the text into headings, list runs and paragraphs.
// A list run is a maximal sequence of adjacent "- " lines; any blank line
// or non-list line ends it.
func parseBlocks(text string) []block {
	lines := strings.Split(text, "\n")

	var blocks []block
	var para []string
	var items []string

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, lines: para})
			para = nil
		}
	}
	flushList := func() {
		if len(items) > 0 {
			blocks = append(blocks, block{kind: blockList, items: items})
			items = nil
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "- "):
			flushPara()
			items = append(items, strings.TrimPrefix(line, "- "))
		case strings.HasPrefix(line, "### "):
			flushPara()
			flushList()
			blocks = append(blocks, block{kind: blockHeading, level: 3, lines: []string{strings.TrimPrefix(line, "### ")}})
		case strings.HasPrefix(line, "## "):
			flushPara()
			flushList()
			blocks = append(blocks, block{kind: blockHeading, level: 2, lines: []string{strings.TrimPrefix(line, "## ")}})
		case strings.TrimSpace(line) == "":
			flushPara()
			flushList()
		default:
			// Deeper or shallower heading markers are not part of the
			// subset and stay literal.
			flushList()
			para = append(para, line)
		}
	}
	flushPara()
	flushList()

	return blocks
}

// inline escapes the source text and then applies bold spans. Escaping
// first means a literal <script> in the plan stays inert while the
// asterisk markers still match.
func inline(text string) string {
	escaped := html.EscapeString(text)
	return boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
}

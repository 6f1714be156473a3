package chunk

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/Sorenv6543/vuetify-rag-api/internal/naming"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// sectionTitlePattern is the component-heading shape: an uppercase letter
// followed by letters, spaces or hyphens.
var sectionTitlePattern = regexp.MustCompile(`^[A-Z][A-Za-z\s-]+$`)

// headingMark is a heading located in the source, with the byte range of the
// full heading line(s) so the raw text between headings can be sliced out.
type headingMark struct {
	title     string
	lineStart int
	lineEnd   int
}

// SplitSections breaks a markdown document into top-level component sections.
// A section starts at a level 1 or 2 heading whose title begins with an
// uppercase letter and contains only letters, spaces and hyphens. Content
// before the first such heading is discarded. Headings are located on the
// goldmark AST, so a "## ..." line inside a fenced code block never splits.
func SplitSections(doc string) []Section {
	marks := findHeadings(doc, 1, 2, true)

	var sections []Section
	for i, m := range marks {
		bodyEnd := len(doc)
		if i+1 < len(marks) {
			bodyEnd = marks[i+1].lineStart
		}
		component := naming.Component(m.title)
		if component == "" {
			continue
		}
		sections = append(sections, Section{
			Component: component,
			Title:     m.title,
			Content:   doc[m.lineEnd:bodyEnd],
		})
	}
	return sections
}

// findHeadings parses doc and returns headings with minLevel <= level <=
// maxLevel in document order. When requireName is set, only headings whose
// title matches the component-name shape are returned; other headings stay
// inside the surrounding content.
func findHeadings(doc string, minLevel, maxLevel int, requireName bool) []headingMark {
	src := []byte(doc)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var marks []headingMark
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level < minLevel || h.Level > maxLevel {
			continue
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			continue
		}
		title := strings.TrimSpace(string(h.Text(src)))
		if title == "" {
			continue
		}
		if requireName && !sectionTitlePattern.MatchString(title) {
			continue
		}

		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		start := bytes.LastIndexByte(src[:first.Start], '\n') + 1
		end := lineEnd(src, last.Stop)
		line := bytes.TrimLeft(src[start:end], " ")
		if len(line) == 0 || line[0] != '#' {
			// Setext heading: the underline sits on the following line.
			// ATX headings may be indented up to three spaces.
			end = lineEnd(src, end)
		}
		marks = append(marks, headingMark{title: title, lineStart: start, lineEnd: end})
	}
	return marks
}

// lineEnd returns the index just past the newline that terminates the line
// containing or following pos, or len(src) at end of input.
func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	i := bytes.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i + 1
}

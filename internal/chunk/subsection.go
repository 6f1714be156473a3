package chunk

import (
	"fmt"
	"strings"
)

// SplitSubsections breaks a section body into titled subsections at level 3-5
// headings. Text before the first subsection heading is not returned here; the
// overview builder consumes it. Subsections whose trimmed content is empty are
// dropped entirely.
func SplitSubsections(body string) []Subsection {
	marks := findHeadings(body, 3, 5, false)

	var subs []Subsection
	for i, m := range marks {
		end := len(body)
		if i+1 < len(marks) {
			end = marks[i+1].lineStart
		}
		content := strings.TrimSpace(body[m.lineEnd:end])
		if content == "" {
			continue
		}
		subs = append(subs, Subsection{Title: m.title, Content: content})
	}
	return subs
}

// overviewMaxChars bounds how much description text the overview collects.
const overviewMaxChars = 400

// buildOverview assembles the component-level overview chunk text: the
// component heading, the first contiguous run of describable lines from the
// section body, and a trailing list of subsection titles for navigability.
// Returns false when the section has no describable lines.
func buildOverview(sec Section, subs []Subsection) (string, bool) {
	var desc []string
	for _, line := range strings.Split(sec.Content, "\n") {
		line = strings.TrimSpace(line)
		describable := line != "" &&
			!strings.HasPrefix(line, "#") &&
			!strings.HasPrefix(line, "<") &&
			!strings.HasPrefix(line, "```")
		if describable {
			desc = append(desc, line)
			if len(strings.Join(desc, " ")) > overviewMaxChars {
				break
			}
		} else if len(desc) > 0 {
			break
		}
	}
	if len(desc) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sec.Component)
	b.WriteString(strings.Join(desc, " "))
	if len(subs) > 0 {
		titles := make([]string, len(subs))
		for i, sub := range subs {
			titles[i] = sub.Title
		}
		fmt.Fprintf(&b, "\n\nAvailable sections: %s", strings.Join(titles, ", "))
	}
	return b.String(), true
}

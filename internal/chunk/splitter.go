package chunk

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// codeFencePattern matches a complete fenced block, non-greedily, so
	// consecutive blocks are kept separate.
	codeFencePattern = regexp.MustCompile("(?s)```\\w*\n.*?\n```")
	codeLangPattern  = regexp.MustCompile("^```(\\w+)")
)

// splitCodeContent walks subsection content that contains fenced code blocks
// and emits one chunk per block, pairing each block with the prose that
// immediately precedes it. Trailing prose after the last block is discarded.
// Blocks are never split internally.
func (c *Chunker) splitCodeContent(content, component, title string) []Chunk {
	var chunks []Chunk
	prev := 0
	for _, loc := range codeFencePattern.FindAllStringIndex(content, -1) {
		prose := strings.TrimSpace(content[prev:loc[0]])
		block := strings.TrimSpace(content[loc[0]:loc[1]])
		prev = loc[1]

		var b strings.Builder
		fmt.Fprintf(&b, "## %s - %s\n\n", component, title)
		if prose != "" {
			b.WriteString(prose)
			b.WriteString("\n\n")
		}
		b.WriteString(block)

		language := "text"
		if m := codeLangPattern.FindStringSubmatch(block); m != nil {
			language = m[1]
		}

		chunks = append(chunks, c.assemble(b.String(), Metadata{
			Component:      component,
			SectionType:    SectionCodeExample,
			Subsection:     title,
			ContentType:    TypeCodeExample,
			Language:       language,
			HasExplanation: prose != "",
		}))
	}
	return chunks
}

// splitLargeContent packs sentences into parts of at most maxChunkSize
// characters. Content at or under the budget is returned verbatim. A single
// sentence longer than the budget is kept whole in its own part. The
// configured overlap is deliberately not applied here; parts share no text.
func (c *Chunker) splitLargeContent(content string) []string {
	if len(content) <= c.cfg.MaxChunkSize {
		return []string{content}
	}

	var parts []string
	var current strings.Builder
	for _, sentence := range splitSentences(content) {
		if current.Len() > 0 && current.Len()+len(sentence) > c.cfg.MaxChunkSize {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(" ")
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// splitSentences does basic sentence splitting: a sentence ends at '.', '!'
// or '?' followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

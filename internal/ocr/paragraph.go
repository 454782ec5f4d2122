package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// SplitParagraphs splits page text on blank lines and joins the lines of
// each paragraph with single spaces. Paragraphs of minChars characters or
// fewer are dropped; blank paragraphs are always dropped.
func SplitParagraphs(pages []string, minChars int) []string {
	var out []string
	for _, page := range pages {
		page = strings.ReplaceAll(page, "\r\n", "\n")
		page = strings.ReplaceAll(page, "\r", "\n")
		for _, block := range blankLine.Split(page, -1) {
			p := joinLines(block)
			if p == "" || utf8.RuneCountInString(p) <= minChars {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func joinLines(block string) string {
	lines := strings.Split(block, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

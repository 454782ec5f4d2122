package classify

import "unicode/utf8"

// Chunk groups paragraphs in order so that each chunk stays within
// maxChars. A new chunk starts when the running length plus the next
// paragraph plus overhead would exceed maxChars and the current chunk is
// non-empty, so a single oversized paragraph still gets its own chunk.
func Chunk(paragraphs []string, maxChars, overhead int) [][]string {
	var chunks [][]string
	var cur []string
	curLen := 0
	for _, p := range paragraphs {
		n := utf8.RuneCountInString(p)
		if len(cur) > 0 && curLen+n+overhead > maxChars {
			chunks = append(chunks, cur)
			cur = nil
			curLen = 0
		}
		cur = append(cur, p)
		curLen += n
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

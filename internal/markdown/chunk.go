package markdown

// SplitChunks divides content into pieces of at most maxChars characters,
// preferring paragraph boundaries and falling back to sentence boundaries
// when a window contains no newline. Character counts are rune-based so
// multi-byte text chunks the same as ASCII.
func SplitChunks(content string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	runes := []rune(content)
	if len(runes) <= maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	total := len(runes)
	for start < total {
		end := start + maxChars
		if end > total {
			end = total
		}

		if end < total {
			if bp := lastNewline(runes, start, end); bp >= 0 {
				end = bp + 1
			} else if se := lastSentenceEnd(runes, start, end); se >= 0 {
				end = se + 1
			}
		}

		chunks = append(chunks, string(runes[start:end]))
		start = end
	}
	return chunks
}

func lastNewline(runes []rune, start, end int) int {
	for i := end - 1; i >= start; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}

func lastSentenceEnd(runes []rune, start, end int) int {
	for i := end - 1; i >= start; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

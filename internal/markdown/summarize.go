package markdown

import (
	"context"
	"fmt"
	"strings"
)

// Summarizer converts a code block into prose suitable for reading aloud.
type Summarizer interface {
	SummarizeCode(ctx context.Context, code string) (string, error)
}

// ReplaceCodeBlocks walks fenced code blocks and substitutes each block's
// body with a spoken-style summary, leaving the fence lines in place for the
// sanitizer to drop later. A failed summary degrades to an inline marker so
// one bad block never aborts the document. Returns the transformed content
// and the number of blocks summarized.
func ReplaceCodeBlocks(ctx context.Context, summarizer Summarizer, content string) (string, int, error) {
	var out strings.Builder
	out.Grow(len(content))

	inBlock := false
	var code []string
	blocks := 0

	flush := func(fenceLine string) {
		blocks++
		summary, err := summarizer.SummarizeCode(ctx, strings.Join(code, "\n"))
		if err != nil {
			summary = fmt.Sprintf("[summary failed: %v]", err)
		}
		out.WriteString(summary)
		out.WriteByte('\n')
		if fenceLine != "" {
			out.WriteString(fenceLine)
			out.WriteByte('\n')
		}
		code = code[:0]
	}

	for rest := content; rest != ""; {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		line = strings.TrimSuffix(line, "\n")
		switch {
		case !inBlock && isFence(line):
			inBlock = true
			out.WriteString(line)
			out.WriteByte('\n')
			code = code[:0]
		case inBlock && isFence(line):
			inBlock = false
			if err := ctx.Err(); err != nil {
				return "", blocks, err
			}
			flush(line)
		case inBlock:
			code = append(code, line)
		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	// An unterminated block at EOF is still summarized.
	if inBlock {
		flush("")
	}

	return out.String(), blocks, nil
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "```")
}

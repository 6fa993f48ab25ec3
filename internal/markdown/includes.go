package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var includeDirective = regexp.MustCompile(`\{\{#(?:rustdoc_)?include\s+([^}]+)\}\}`)

// ExpandIncludes resolves mdBook {{#include path}} and {{#rustdoc_include}}
// directives relative to the document at docPath. A path may carry a
// :start:end line range or an :anchor suffix; anchored includes fall back to
// the whole file since anchor comments are stripped before narration anyway.
func ExpandIncludes(docPath, content string) (string, error) {
	dir := filepath.Dir(docPath)
	var firstErr error
	expanded := includeDirective.ReplaceAllStringFunc(content, func(match string) string {
		target := strings.TrimSpace(includeDirective.FindStringSubmatch(match)[1])
		body, err := readIncludeTarget(dir, target)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return ""
		}
		return body
	})
	if firstErr != nil {
		return "", firstErr
	}
	return expanded, nil
}

func readIncludeTarget(dir, target string) (string, error) {
	path := target
	var startLine, endLine int
	if idx := strings.Index(target, ":"); idx >= 0 {
		path = target[:idx]
		startLine, endLine = parseLineRange(target[idx+1:])
	}
	raw, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		return "", fmt.Errorf("expand include %s: %w", target, err)
	}
	body := string(raw)
	if startLine > 0 {
		lines := strings.Split(body, "\n")
		if startLine > len(lines) {
			return "", nil
		}
		last := len(lines)
		if endLine > 0 && endLine < last {
			last = endLine
		}
		body = strings.Join(lines[startLine-1:last], "\n")
	}
	return body, nil
}

// parseLineRange interprets the suffix after the path separator. Numeric
// forms select 1-based line ranges ("4", "4:10", "4:"); anything else is an
// anchor name, which selects the whole file.
func parseLineRange(suffix string) (int, int) {
	parts := strings.SplitN(suffix, ":", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 1 {
		return 0, 0
	}
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return start, 0
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end < start {
		return start, 0
	}
	return start, end
}

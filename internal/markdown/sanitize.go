package markdown

import (
	"regexp"
	"strings"
)

var (
	reImageInline = regexp.MustCompile(`!\[([^\]]+)\]\([^\)]+\)`)
	reImageRef    = regexp.MustCompile(`!\[([^\]]+)\]\[[^\]]*\]`)
	reLinkInline  = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	reLinkRef     = regexp.MustCompile(`\[([^\]]+)\]\[[^\]]*\]`)
	reAutoLink    = regexp.MustCompile(`<https?://[^>]+>`)
	reBareURL     = regexp.MustCompile(`https?://\S+`)

	reImgTag  = regexp.MustCompile(`(?is)<img\b[^>]*?alt\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+))[^>]*>`)
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	reHTMLTag = regexp.MustCompile(`</?[^>]+>`)

	reHeading    = regexp.MustCompile(`^\s*#{1,6}\s*`)
	reBlockquote = regexp.MustCompile(`^\s*>+\s*`)
	reBullet     = regexp.MustCompile(`^\s*[-*+]\s+`)
	reNumbered   = regexp.MustCompile(`^\s*\d+[\.)]\s+`)

	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Sanitize reduces markdown to prose a voice can read: links collapse to
// their text, images to their alt text, HTML and code fences disappear, and
// heading/list/blockquote markers are stripped. Runs of three or more blank
// lines collapse to one blank line to avoid long silent gaps.
func Sanitize(content string) string {
	text := stripLinks(content)

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "<Listing") || strings.HasPrefix(trimmed, "</Listing") {
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	// HTML images contribute their alt text before tags are removed.
	text = reImgTag.ReplaceAllStringFunc(text, func(tag string) string {
		groups := reImgTag.FindStringSubmatch(tag)
		for _, alt := range groups[1:] {
			if alt != "" {
				return alt
			}
		}
		return ""
	})
	text = reComment.ReplaceAllString(text, "")
	text = reHTMLTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = reHeading.ReplaceAllString(line, "")
		line = reBlockquote.ReplaceAllString(line, "")
		line = reBullet.ReplaceAllString(line, "")
		line = reNumbered.ReplaceAllString(line, "")
		lines[i] = line
	}
	text = strings.Join(lines, "\n")

	text = reMultiBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func stripLinks(content string) string {
	text := reImageInline.ReplaceAllString(content, "$1")
	text = reImageRef.ReplaceAllString(text, "$1")

	// Reference-style link definitions ("[id]: url") occupy whole lines.
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "[") && strings.Contains(trimmed, "]: ") {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = reLinkInline.ReplaceAllString(text, "$1")
	text = reLinkRef.ReplaceAllString(text, "$1")
	text = reAutoLink.ReplaceAllString(text, "")
	text = reBareURL.ReplaceAllString(text, "")
	return text
}

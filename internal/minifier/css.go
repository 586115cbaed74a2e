package minifier

import (
	"regexp"
	"strings"
)

var (
	cssBlockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	// Line comments need a non-colon before them so url(http://...) survives.
	cssLineComment = regexp.MustCompile(`(^|[^:\\])//.*$`)
	cssWhitespace  = regexp.MustCompile(`\s+`)
	cssPunctuation = regexp.MustCompile(`\s*([{};,>])\s*`)
	cssColonSpace  = regexp.MustCompile(`:\s+`)
	cssEmptyRule   = regexp.MustCompile(`;+\}`)
)

func stripLineComments(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = cssLineComment.ReplaceAllString(line, "$1")
	}
	return out
}

// minifyCSS flattens CSS, SCSS and LESS. lineComments enables // comments.
func minifyCSS(lines []string, lineComments bool) string {
	if lineComments {
		lines = stripLineComments(lines)
	}
	out := strings.Join(lines, "\n")
	out = cssBlockComment.ReplaceAllString(out, "")
	out = cssWhitespace.ReplaceAllString(out, " ")
	out = cssPunctuation.ReplaceAllString(out, "$1")
	out = cssColonSpace.ReplaceAllString(out, ":")
	out = cssEmptyRule.ReplaceAllString(out, "}")
	return strings.TrimSpace(out)
}

// minifySass keeps line structure because indentation is significant in the
// indented syntax; only comments, trailing blanks and empty lines go.
func minifySass(lines []string) string {
	text := strings.Join(stripLineComments(lines), "\n")
	text = cssBlockComment.ReplaceAllString(text, "")

	kept := make([]string, 0, len(lines))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, cssColonSpace.ReplaceAllString(line, ": "))
	}
	return strings.Join(kept, "\n")
}

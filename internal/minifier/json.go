package minifier

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

func (mn *Minifier) minifyJSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if !gjson.Valid(text) {
		return "", ErrInvalidJSON
	}
	out, err := mn.m.String(mediaJSON, text)
	if err != nil {
		return "", fmt.Errorf("minify json: %w", err)
	}
	return out, nil
}

// StripJSONComments removes // and /* */ comments and trailing commas from
// JSONC text. String literals are copied untouched.
func StripJSONComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(src) {
					i++
					b.WriteByte(src[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += 2 + end + 1
		case c == ',' && closesNext(src[i+1:]):
			// trailing comma
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// closesNext reports whether the next significant character of rest closes an
// object or array, skipping whitespace and comments.
func closesNext(rest string) bool {
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		case c == '/' && i+1 < len(rest) && rest[i+1] == '/':
			nl := strings.IndexByte(rest[i:], '\n')
			if nl < 0 {
				return false
			}
			i += nl
		case c == '/' && i+1 < len(rest) && rest[i+1] == '*':
			end := strings.Index(rest[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += 2 + end + 1
		default:
			return c == '}' || c == ']'
		}
	}
	return false
}

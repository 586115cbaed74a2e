// Package compactor flattens markup documents into a single line.
//
// A Compactor works on a document held as a slice of lines. RemoveBlockComments
// blanks comment spans that may cross line boundaries, and Flatten joins the
// remaining lines and collapses redundant whitespace with a fixed, ordered list
// of substitutions.
package compactor

import (
	"regexp"
	"strings"
)

// Markers delimit a block comment span.
type Markers struct {
	Open  string
	Close string
}

// HTMLComment is the default pair of markers.
var HTMLComment = Markers{Open: "<!--", Close: "-->"}

// Mode selects how comment spans are resolved.
type Mode int

const (
	// ModeCompat reproduces the historical comment resolution: the closing
	// marker is searched from the top of the document for every opener, and a
	// span that opens and closes on the same line keeps only the text before it.
	// It does not affect Flatten.
	ModeCompat Mode = iota
	// ModeStrict searches the closing marker forward from the opener and keeps
	// the text on both sides of a single-line span.
	ModeStrict
)

func (m Mode) String() string {
	switch m {
	case ModeCompat:
		return "compat"
	case ModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Compactor removes comment spans and flattens documents.
// The zero value uses HTMLComment markers in ModeCompat.
type Compactor struct {
	Markers Markers
	Mode    Mode
}

// New returns a Compactor for HTML comments in the given mode.
func New(mode Mode) *Compactor {
	return &Compactor{Markers: HTMLComment, Mode: mode}
}

func (c *Compactor) markers() (string, string) {
	if c.Markers.Open == "" || c.Markers.Close == "" {
		return HTMLComment.Open, HTMLComment.Close
	}
	return c.Markers.Open, c.Markers.Close
}

// RemoveBlockComments blanks comment spans in lines and returns the same
// slice. Lines are truncated or emptied, never deleted. An opener without any
// closer is left untouched.
func (c *Compactor) RemoveBlockComments(lines []string) []string {
	if c.Mode == ModeStrict {
		return c.removeStrict(lines)
	}
	return c.removeCompat(lines)
}

func (c *Compactor) removeCompat(lines []string) []string {
	opener, closer := c.markers()
	for i := range lines {
		if !strings.Contains(lines[i], opener) {
			continue
		}
		for j := range lines {
			end := strings.Index(lines[j], closer)
			if end < 0 {
				continue
			}
			// When j < i the range is empty and the opener stays.
			for k := i; k <= j; k++ {
				switch k {
				case i:
					lines[k] = lines[k][:strings.Index(lines[k], opener)]
				case j:
					lines[k] = lines[k][end+len(closer):]
				default:
					lines[k] = ""
				}
			}
			break
		}
	}
	return lines
}

func (c *Compactor) removeStrict(lines []string) []string {
	opener, closer := c.markers()
	for i := 0; i < len(lines); i++ {
		for {
			start := strings.Index(lines[i], opener)
			if start < 0 {
				break
			}
			rest := lines[i][start+len(opener):]
			if end := strings.Index(rest, closer); end >= 0 {
				lines[i] = lines[i][:start] + rest[end+len(closer):]
				continue
			}

			j := -1
			for k := i + 1; k < len(lines); k++ {
				if strings.Contains(lines[k], closer) {
					j = k
					break
				}
			}
			if j < 0 {
				// No closer below this opener, so none below any later one either.
				return lines
			}

			end := strings.Index(lines[j], closer)
			lines[i] = lines[i][:start]
			for k := i + 1; k < j; k++ {
				lines[k] = ""
			}
			lines[j] = lines[j][end+len(closer):]
			i = j
		}
	}
	return lines
}

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// flattenRules run in this order; reordering changes the output.
var flattenRules = []substitution{
	{regexp.MustCompile(`;\s*\}|\s+\}`), "}"},
	{regexp.MustCompile(`/\*.*?\*/`), ""},
	{regexp.MustCompile(`:\s`), ":"},
	{regexp.MustCompile(` \{`), "{"},
	{regexp.MustCompile(`\t`), ""},
	{regexp.MustCompile(`\s{2}`), ""},
	{regexp.MustCompile(`>{2,}`), ">"},
}

// Flatten joins lines without a separator and applies the whitespace rules.
// The result never contains a newline inserted by Flatten itself.
func (c *Compactor) Flatten(lines []string) string {
	out := strings.Join(lines, "")
	for _, rule := range flattenRules {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return out
}

// Compact removes comment spans and flattens the result.
func (c *Compactor) Compact(lines []string) string {
	return c.Flatten(c.RemoveBlockComments(lines))
}

var defaultCompactor = &Compactor{}

// RemoveBlockComments runs a ModeCompat Compactor with HTML markers.
func RemoveBlockComments(lines []string) []string {
	return defaultCompactor.RemoveBlockComments(lines)
}

// Flatten runs the whitespace rules with the default Compactor.
func Flatten(lines []string) string {
	return defaultCompactor.Flatten(lines)
}

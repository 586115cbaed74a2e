package document

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Language identifies how a document is minified.
type Language string

const (
	Unknown         Language = ""
	HTML            Language = "html"
	Twig            Language = "twig"
	PHP             Language = "php"
	XML             Language = "xml"
	CSS             Language = "css"
	SCSS            Language = "scss"
	Less            Language = "less"
	Sass            Language = "sass"
	JSON            Language = "json"
	JSONC           Language = "jsonc"
	JavaScript      Language = "javascript"
	JavaScriptReact Language = "javascriptreact"
)

// Languages lists every supported language.
var Languages = []Language{HTML, Twig, PHP, XML, CSS, SCSS, Less, Sass, JSON, JSONC, JavaScript, JavaScriptReact}

var extensions = map[string]Language{
	".html":  HTML,
	".htm":   HTML,
	".twig":  Twig,
	".php":   PHP,
	".xml":   XML,
	".svg":   XML,
	".css":   CSS,
	".scss":  SCSS,
	".less":  Less,
	".sass":  Sass,
	".json":  JSON,
	".jsonc": JSONC,
	".js":    JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".jsx":   JavaScriptReact,
}

// LanguageForExt maps a file extension (with the leading dot) to a Language.
func LanguageForExt(ext string) Language {
	return extensions[strings.ToLower(ext)]
}

// ParseLanguage accepts a language id or one of the short aliases used in settings.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js":
		return JavaScript
	case "jsr", "jsx":
		return JavaScriptReact
	}
	for _, l := range Languages {
		if string(l) == strings.ToLower(strings.TrimSpace(s)) {
			return l
		}
	}
	return Unknown
}

// Family groups languages that share a minifier and a new-file prefix.
func (l Language) Family() string {
	switch l {
	case HTML, Twig, PHP, XML:
		return "html"
	case CSS, SCSS, Less, Sass:
		return "css"
	case JSON, JSONC:
		return "json"
	case JavaScript, JavaScriptReact:
		return "js"
	default:
		return ""
	}
}

// Document is a source file held as lines without terminators.
type Document struct {
	Path     string
	Language Language
	Lines    []string
}

// Text joins the lines back with newlines.
func (d *Document) Text() string {
	return strings.Join(d.Lines, "\n")
}

// Hash returns the SHA-256 of the document text.
func (d *Document) Hash() string {
	return HashText(d.Text())
}

// HashText returns the hex SHA-256 of s.
func HashText(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Clone returns a copy whose Lines can be mutated independently.
func (d *Document) Clone() *Document {
	lines := make([]string, len(d.Lines))
	copy(lines, d.Lines)
	return &Document{Path: d.Path, Language: d.Language, Lines: lines}
}

// Package minifier dispatches a document to the minifier for its language.
//
// Markup languages go through the compactor. The CSS family is handled with
// regular expressions and the hex color shortener. JSON and JavaScript are
// delegated to tdewolff/minify.
package minifier

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"

	"minifyall/internal/compactor"
	"minifyall/internal/config"
	"minifyall/pkg/document"
)

var (
	ErrLanguageDisabled    = errors.New("minification disabled for language")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidJSON         = errors.New("invalid JSON")
)

const (
	mediaJS   = "application/javascript"
	mediaJSON = "application/json"
)

// JSOptions controls JavaScript output.
type JSOptions struct {
	Mangle      bool
	DropConsole bool
}

// Options configures a Minifier.
type Options struct {
	HexDisabled bool
	CommentMode compactor.Mode
	JS          JSOptions
	// Disabled reports languages that must not be minified. Nil disables none.
	Disabled func(document.Language) bool
}

// OptionsFromSettings derives minifier options from loaded settings.
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		HexDisabled: s.HexDisabled,
		CommentMode: s.CommentMode(),
		JS: JSOptions{
			Mangle:      s.JS.Mangle,
			DropConsole: s.JS.Compress.DropConsole,
		},
		Disabled: s.DisableLanguages.Disabled,
	}
}

// Minifier minifies documents. It is safe for concurrent use.
type Minifier struct {
	opts   Options
	markup *compactor.Compactor
	twig   *compactor.Compactor
	m      *minify.M
}

// New builds a Minifier.
func New(opts Options) *Minifier {
	m := minify.New()
	m.Add(mediaJS, &js.Minifier{KeepVarNames: !opts.JS.Mangle})
	m.Add(mediaJSON, &json.Minifier{})

	return &Minifier{
		opts:   opts,
		markup: compactor.New(opts.CommentMode),
		twig: &compactor.Compactor{
			Markers: compactor.Markers{Open: "{#", Close: "#}"},
			Mode:    compactor.ModeStrict,
		},
		m: m,
	}
}

// Supported reports whether lang has a minifier.
func Supported(lang document.Language) bool {
	return lang.Family() != ""
}

// Minify returns the minified text of doc. doc itself is not modified.
func (mn *Minifier) Minify(doc *document.Document) (string, error) {
	if !Supported(doc.Language) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, doc.Language)
	}
	if mn.opts.Disabled != nil && mn.opts.Disabled(doc.Language) {
		return "", fmt.Errorf("%w: %s", ErrLanguageDisabled, doc.Language)
	}

	lines := doc.Clone().Lines
	switch doc.Language {
	case document.HTML, document.PHP, document.XML:
		return mn.markup.Compact(lines), nil
	case document.Twig:
		return mn.markup.Compact(mn.twig.RemoveBlockComments(lines)), nil
	case document.CSS, document.SCSS, document.Less:
		return mn.shortenHex(minifyCSS(lines, doc.Language != document.CSS)), nil
	case document.Sass:
		return mn.shortenHex(minifySass(lines)), nil
	case document.JSON:
		return mn.minifyJSON(doc.Text())
	case document.JSONC:
		return mn.minifyJSON(StripJSONComments(doc.Text()))
	case document.JavaScript, document.JavaScriptReact:
		return mn.minifyJS(doc.Text(), doc.Language)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, doc.Language)
}

func (mn *Minifier) shortenHex(css string) string {
	if mn.opts.HexDisabled {
		return css
	}
	return ShortenColors(css)
}

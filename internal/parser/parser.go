package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"minifyall/pkg/document"
)

// ErrInvalidRange is returned for line ranges that cannot be parsed or are out of order.
var ErrInvalidRange = errors.New("invalid line range")

// maxLineSize bounds a single line; already-minified files are often one long line.
const maxLineSize = 64 * 1024 * 1024

// ParseDocument reads filename into a Document, one element per line.
// The language comes from the file extension and, failing that, from the content.
func ParseDocument(filename string) (*document.Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	lines, err := ScanLines(file)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filename, err)
	}

	lang := document.LanguageForExt(filepath.Ext(filename))
	if lang == document.Unknown {
		lang = SniffLanguage([]byte(strings.Join(lines, "\n")))
	}

	return &document.Document{
		Path:     filename,
		Language: lang,
		Lines:    lines,
	}, nil
}

// ParseText splits text into a Document of the given language.
func ParseText(text string, lang document.Language) *document.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := []string{}
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return &document.Document{Language: lang, Lines: lines}
}

// ScanLines reads r line by line, dropping line terminators.
func ScanLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// SniffLanguage guesses the language of extension-less content.
func SniffLanguage(content []byte) document.Language {
	mtype := mimetype.Detect(content)
	switch {
	case mtype.Is("text/html"):
		return document.HTML
	case mtype.Is("application/json"):
		return document.JSON
	case mtype.Is("text/xml"), mtype.Is("image/svg+xml"):
		return document.XML
	case mtype.Is("text/x-php"):
		return document.PHP
	case mtype.Is("text/javascript"):
		return document.JavaScript
	}
	return document.Unknown
}

var rangeRe = regexp.MustCompile(`^\s*(\d+)\s*(?:[-:,]\s*(\d+))?\s*$`)

// ParseLineRange parses "start-end" or a single "line" into 1-based inclusive bounds.
func ParseLineRange(s string) (int, int, error) {
	matches := rangeRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: %q, expected START-END", ErrInvalidRange, s)
	}

	start, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	end := start
	if matches[2] != "" {
		end, err = strconv.Atoi(matches[2])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
		}
	}

	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return start, end, nil
}

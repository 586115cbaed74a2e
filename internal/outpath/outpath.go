// Package outpath names the files that minified output is written to.
package outpath

import (
	"path/filepath"
	"strings"
)

// DefaultPrefix is inserted before the extension when no prefix is configured.
const DefaultPrefix = "-min"

// NewFilePath returns the sibling path for the minified copy of fileName.
// The prefix goes right before the extension, or at the end when there is none:
//
//	NewFilePath("css/site.css", "-min") == "css/site-min.css"
//	NewFilePath("Makefile", ".min")     == "Makefile.min"
func NewFilePath(fileName, prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ext := filepath.Ext(fileName)
	if ext == "" {
		return fileName + prefix
	}
	return fileName[:len(fileName)-len(ext)] + prefix + ext
}

// IsMinified reports whether fileName already carries prefix before its extension.
func IsMinified(fileName, prefix string) bool {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	base := filepath.Base(fileName)
	return strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), prefix)
}

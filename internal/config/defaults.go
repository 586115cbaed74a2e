package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultYAML is written by `minifyall init`.
const DefaultYAML = `# minifyall configuration file

# Stop shortening colors (rgb to hex, rgba to hex, 6 digit hex to 3 digit hex).
disableHexadecimalShortener: false

# Languages that should never be minified.
disableLanguages:
  html: false
  twig: false
  css: false
  scss: false
  less: false
  sass: false
  json: false
  jsonc: false
  js: false
  jsr: false
  php: false
  xml: false

# Hide information and warning messages. Errors are always shown.
disableMessages: false

# Minify files in place every time they are saved (minifyall watch).
minifyOnSave: false
# Write the minified output of a saved file to a new file instead.
minifyOnSaveToNewFile: false

# Inserted before the extension of new minified files: site.css -> site-min.css
prefixOfNewMinifiedFiles:
  css: -min
  html: -min
  js: -min
  json: -min

# Show the minified output after minifying to a new file.
openMinifiedDocument: true

# Resolve HTML comments exactly like earlier releases did. Set to false to keep
# the text after a comment that closes on the same line it opens.
compatComments: true

# JavaScript options. Without "mangle" the whole object falls back to these defaults.
terserMinifyOptions:
  mangle: true
  compress:
    drop_console: true
    dead_code: false
    keep_fnames: false
    keep_classnames: false

logging:
  # Options: debug, info, warn, error
  level: info

watch:
  debounce: 200ms
`

// WriteDefault writes DefaultYAML to path unless a file already exists there.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	var probe map[string]any
	if err := yaml.Unmarshal([]byte(DefaultYAML), &probe); err != nil {
		return false, fmt.Errorf("failed to parse default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultYAML), 0644); err != nil {
		return false, fmt.Errorf("failed to write default config file: %w", err)
	}
	return true, nil
}

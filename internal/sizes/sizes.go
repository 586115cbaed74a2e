// Package sizes reports how much a minification saved, raw and compressed.
package sizes

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Report holds byte counts for one minification.
type Report struct {
	Original int `json:"original"`
	Minified int `json:"minified"`
	Gzip     int `json:"gzip"`
	Brotli   int `json:"brotli"`
}

// Measure computes the report for original and minified text. Compressed sizes
// are of the minified output.
func Measure(original, minified string) (Report, error) {
	gz, err := GzipSize([]byte(minified))
	if err != nil {
		return Report{}, err
	}
	br, err := BrotliSize([]byte(minified))
	if err != nil {
		return Report{}, err
	}
	return Report{
		Original: len(original),
		Minified: len(minified),
		Gzip:     gz,
		Brotli:   br,
	}, nil
}

// Saved returns the number of bytes removed by minification.
func (r Report) Saved() int {
	return r.Original - r.Minified
}

// Ratio returns the minified size as a fraction of the original, in [0,1].
// An empty original yields 1.
func (r Report) Ratio() float64 {
	if r.Original == 0 {
		return 1
	}
	ratio := float64(r.Minified) / float64(r.Original)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// String formats the report for terminal output.
func (r Report) String() string {
	return fmt.Sprintf("%s -> %s (gzip %s, brotli %s, saved %.1f%%)",
		Human(r.Original), Human(r.Minified), Human(r.Gzip), Human(r.Brotli), (1-r.Ratio())*100)
}

// GzipSize returns the gzip-compressed length of b at best compression.
func GzipSize(b []byte) (int, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("gzip writer: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return 0, fmt.Errorf("gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("gzip close: %w", err)
	}
	return buf.Len(), nil
}

// BrotliSize returns the brotli-compressed length of b at best compression.
func BrotliSize(b []byte) (int, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(b); err != nil {
		return 0, fmt.Errorf("brotli write: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("brotli close: %w", err)
	}
	return buf.Len(), nil
}

// Human formats a byte count as B, KiB or MiB.
func Human(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

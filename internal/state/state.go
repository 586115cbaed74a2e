package state

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"minifyall/internal/sizes"
	"minifyall/pkg/document"
)

// HistoryEntry records a single minification: which file was read, where the
// result went and how large it was before and after.
// It is serialized as JSON so history survives between runs.
type HistoryEntry struct {
	ID            uuid.UUID         `json:"id"`
	Path          string            `json:"path"`
	OutputPath    string            `json:"output_path,omitempty"` // empty for stdout
	Language      document.Language `json:"language"`
	OriginalBytes int               `json:"original_bytes"`
	MinifiedBytes int               `json:"minified_bytes"`
	GzipBytes     int               `json:"gzip_bytes"`
	BrotliBytes   int               `json:"brotli_bytes"`
	MinifiedAt    time.Time         `json:"minified_at"`
}

// NewEntry builds a HistoryEntry with a fresh random ID.
func NewEntry(path, outputPath string, lang document.Language, r sizes.Report, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:            uuid.New(),
		Path:          path,
		OutputPath:    outputPath,
		Language:      lang,
		OriginalBytes: r.Original,
		MinifiedBytes: r.Minified,
		GzipBytes:     r.Gzip,
		BrotliBytes:   r.Brotli,
		MinifiedAt:    at,
	}
}

// Report converts the entry's byte counts back into a sizes.Report.
func (e HistoryEntry) Report() sizes.Report {
	return sizes.Report{
		Original: e.OriginalBytes,
		Minified: e.MinifiedBytes,
		Gzip:     e.GzipBytes,
		Brotli:   e.BrotliBytes,
	}
}

// InPlace reports whether the entry overwrote its source file.
func (e HistoryEntry) InPlace() bool {
	return e.OutputPath != "" && e.OutputPath == e.Path
}

// History is an ordered list of entries, oldest first.
type History []HistoryEntry

// TotalSaved sums the bytes saved across all entries.
func (h History) TotalSaved() int {
	total := 0
	for _, e := range h {
		total += e.OriginalBytes - e.MinifiedBytes
	}
	return total
}

// LastFor returns the most recent entry for path.
func (h History) LastFor(path string) (HistoryEntry, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Path == path {
			return h[i], true
		}
	}
	return HistoryEntry{}, false
}

// SaveToFile writes the history to path as indented JSON.
func (h History) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

// LoadFromFile reads a history written by SaveToFile. A missing or empty
// file yields an empty history.
func LoadFromFile(path string) (History, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return History{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var h History
	if err := json.NewDecoder(f).Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if h == nil {
		h = History{}
	}
	return h, nil
}

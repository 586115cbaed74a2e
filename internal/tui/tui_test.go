package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"minifyall/internal/config"
	"minifyall/internal/core"
	"minifyall/internal/sizes"
	"minifyall/internal/state"
	"minifyall/pkg/document"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello world", 20, "hello world"},
		{"wraps", "hello big world", 9, "hello big\nworld"},
		{"long word", "a supercalifragilistic b", 5, "a\nsupercalifragilistic\nb"},
		{"paragraphs", "a b\n\nc", 10, "a b\n\nc"},
		{"no width", "x  y", 0, "x  y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.in, tt.width); got != tt.want {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapText_WideRunes(t *testing.T) {
	got := wrapText("日本語 テキスト", 8)
	for _, line := range []string{"日本語", "テキスト"} {
		if runewidth.StringWidth(line) > 8 {
			t.Fatalf("test line %q too wide", line)
		}
	}
	if got != "日本語\nテキスト" {
		t.Errorf("wrapText() = %q", got)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.js", "a.css", "a-min.css", "readme.md", "sub/x.html", ".git/y.css"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	svc := core.NewService(config.Defaults(), nil)

	items, err := LoadFiles(dir, svc.Accepts)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	var got []string
	for _, it := range items {
		got = append(got, it.(FileItem).Rel)
	}
	want := []string{"a.css", filepath.Join("sub", "x.html"), "z.js"}
	if len(got) != len(want) {
		t.Fatalf("LoadFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LoadFiles() = %v, want %v", got, want)
		}
	}
	if items[2].(FileItem).Language != document.JavaScript {
		t.Errorf("language = %q", items[2].(FileItem).Language)
	}
}

func TestInitialModel_LoadsHistory(t *testing.T) {
	store := core.NewInMemoryHistoryStore()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Append(state.NewEntry("/w/old.css", "/w/old-min.css", document.CSS, sizes.Report{Original: 10, Minified: 4}, at))
	_ = store.Append(state.NewEntry("/w/new.js", "/w/new-min.js", document.JavaScript, sizes.Report{Original: 2048, Minified: 1024}, at))
	svc := core.NewService(config.Defaults(), store)

	m := InitialModel(nil, "/w", 24, svc)
	rows := m.history.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][0] != "new.js" || rows[0][4] != "1.0 KiB" {
		t.Errorf("newest row = %v", rows[0])
	}
	if rows[1][0] != "old.css" || rows[1][4] != "6 B" {
		t.Errorf("oldest row = %v", rows[1])
	}
}

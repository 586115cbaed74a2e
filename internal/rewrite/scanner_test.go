package rewrite

import (
	"errors"
	"strings"
	"testing"
)

func TestScannerRewriter_ReplaceLines(t *testing.T) {
	rw := NewScannerRewriter(strings.NewReader("a\nb\nc\nd\ne\n"))
	if err := rw.CopyLinesUntil(1); err != nil {
		t.Fatalf("CopyLinesUntil: %v", err)
	}
	if err := rw.ReplaceLines(1, 2, []string{"BC"}); err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}
	if err := rw.ReplaceLines(4, 4, nil); err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}
	if err := rw.CopyRemainingLines(); err != nil {
		t.Fatalf("CopyRemainingLines: %v", err)
	}
	if got, want := string(rw.Bytes()), "a\nBC\nd\n"; got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestScannerRewriter_BackwardsRange(t *testing.T) {
	rw := NewScannerRewriter(strings.NewReader("a\nb\nc\n"))
	if err := rw.CopyLinesUntil(2); err != nil {
		t.Fatalf("CopyLinesUntil: %v", err)
	}
	if err := rw.ReplaceLines(0, 1, []string{"x"}); err == nil {
		t.Error("expected error replacing lines already copied")
	}
	if err := NewScannerRewriter(strings.NewReader("a\n")).ReplaceLines(1, 0, nil); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		start    int
		end      int
		newLines []string
		want     string
	}{
		{"middle", "a\nb\nc\n", 1, 1, []string{"B"}, "a\nB\nc\n"},
		{"collapse all", "a\nb\nc\n", 0, 2, []string{"abc"}, "abc\n"},
		{"no trailing newline", "a\nb\nc", 1, 2, []string{"bc"}, "a\nbc"},
		{"last line only", "a\nb", 1, 1, []string{"B"}, "a\nB"},
		{"expand", "a\n", 0, 0, []string{"x", "y"}, "x\ny\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplaceRange([]byte(tt.content), tt.start, tt.end, tt.newLines)
			if err != nil {
				t.Fatalf("ReplaceRange() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReplaceRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceRange_PastEOF(t *testing.T) {
	_, err := ReplaceRange([]byte("a\nb\n"), 1, 5, []string{"x"})
	if !errors.Is(err, ErrPastEOF) {
		t.Errorf("ReplaceRange() error = %v, want ErrPastEOF", err)
	}
}

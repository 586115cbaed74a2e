package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"minifyall/internal/parser"
	"minifyall/pkg/document"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     *document.Document
		wantErr  bool
	}{
		{
			name:     "empty html file",
			filename: "index.html",
			content:  "",
			want:     &document.Document{Language: document.HTML, Lines: []string{}},
		},
		{
			name:     "css lines",
			filename: "site.css",
			content:  "a {\n  color: red;\n}\n",
			want:     &document.Document{Language: document.CSS, Lines: []string{"a {", "  color: red;", "}"}},
		},
		{
			name:     "crlf terminators dropped",
			filename: "data.json",
			content:  "{\r\n\"a\": 1\r\n}",
			want:     &document.Document{Language: document.JSON, Lines: []string{"{", "\"a\": 1", "}"}},
		},
		{
			name:     "extension-less html is sniffed",
			filename: "page",
			content:  "<!DOCTYPE html>\n<html><body></body></html>",
			want:     &document.Document{Language: document.HTML, Lines: []string{"<!DOCTYPE html>", "<html><body></body></html>"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}
			tt.want.Path = path

			got, err := parser.ParseDocument(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDocument() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDocument() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDocument_MissingFile(t *testing.T) {
	_, err := parser.ParseDocument(filepath.Join(t.TempDir(), "nope.css"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseDocument() error = %v, want os.ErrNotExist", err)
	}
}

func TestParseText(t *testing.T) {
	got := parser.ParseText("a\r\nb\n", document.CSS)
	want := &document.Document{Language: document.CSS, Lines: []string{"a", "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseText() = %+v, want %+v", got, want)
	}
	if empty := parser.ParseText("", document.HTML); len(empty.Lines) != 0 {
		t.Errorf("ParseText(\"\") lines = %q, want none", empty.Lines)
	}
}

func TestParseLineRange(t *testing.T) {
	tests := []struct {
		in        string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{in: "3-7", wantStart: 3, wantEnd: 7},
		{in: " 10 : 12 ", wantStart: 10, wantEnd: 12},
		{in: "5", wantStart: 5, wantEnd: 5},
		{in: "4,4", wantStart: 4, wantEnd: 4},
		{in: "0-3", wantErr: true},
		{in: "9-2", wantErr: true},
		{in: "a-b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := parser.ParseLineRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLineRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, parser.ErrInvalidRange) {
					t.Errorf("ParseLineRange(%q) error = %v, want ErrInvalidRange", tt.in, err)
				}
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ParseLineRange(%q) = %d, %d, want %d, %d", tt.in, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

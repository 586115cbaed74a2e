package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"minifyall/internal/config"
	"minifyall/internal/core"
	"minifyall/internal/sizes"
	"minifyall/internal/state"
	"minifyall/pkg/document"
)

func TestSaveTarget(t *testing.T) {
	s := config.Defaults()
	if got := saveTarget(s); got != core.TargetInPlace {
		t.Errorf("saveTarget() = %v, want in-place", got)
	}
	s.MinifyOnSaveToNewFile = true
	if got := saveTarget(s); got != core.TargetNewFile {
		t.Errorf("saveTarget() = %v, want new-file", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandTilde("~/h.json"); got != filepath.Join(home, "h.json") {
		t.Errorf("expandTilde() = %q", got)
	}
	if got := expandTilde("/abs/h.json"); got != "/abs/h.json" {
		t.Errorf("expandTilde() = %q", got)
	}
	if got := expandTilde("~"); got != home {
		t.Errorf("expandTilde(~) = %q, want %q", got, home)
	}
	if got := expandTilde("~alice/h.json"); got != "~alice/h.json" {
		t.Errorf("expandTilde(~alice/h.json) = %q, want it unchanged", got)
	}
}

func TestRenderHistory(t *testing.T) {
	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	h := state.History{
		state.NewEntry("site.css", "site-min.css", document.CSS, sizes.Report{Original: 2048, Minified: 1024, Gzip: 300, Brotli: 250}, at),
		state.NewEntry("data.json", "", document.JSON, sizes.Report{Original: 10, Minified: 8}, at),
	}
	out := renderHistory(h)
	for _, want := range []string{"site.css", "site-min.css", "(stdout)", "2.0 KiB", "300 B", "Total saved: 1.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderHistory() missing %q:\n%s", want, out)
		}
	}
}

func TestRunMinify_Stdout(t *testing.T) {
	settings = config.Defaults()
	settings.History.Path = filepath.Join(t.TempDir(), "history.json")
	inPlace, newFile, linesFlag, gitOnly = false, false, "", false

	src := filepath.Join(t.TempDir(), "a.json")
	if err := os.WriteFile(src, []byte("{ \"a\": [1, 2] }"), 0644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	rootCmd.SetContext(context.Background())
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	if err := runMinify(rootCmd, []string{src}); err != nil {
		t.Fatalf("runMinify() error = %v", err)
	}
	if got := out.String(); got != "{\"a\":[1,2]}\n" {
		t.Errorf("stdout = %q", got)
	}

	h, err := state.LoadFromFile(settings.History.Path)
	if err != nil || len(h) != 1 {
		t.Errorf("history = %v, %v", h, err)
	}
}

func TestRunMinify_Stdin(t *testing.T) {
	settings = config.Defaults()
	settings.History.Path = filepath.Join(t.TempDir(), "history.json")
	inPlace, newFile, linesFlag, gitOnly = false, false, "", false
	defer func() { langFlag = "" }()

	var out strings.Builder
	rootCmd.SetContext(context.Background())
	rootCmd.SetIn(strings.NewReader("<p>\n  <!-- x -->\n  hi\n</p>\n"))
	rootCmd.SetOut(&out)
	defer rootCmd.SetIn(nil)
	defer rootCmd.SetOut(nil)

	langFlag = ""
	if err := runMinify(rootCmd, []string{"-"}); err == nil {
		t.Error("expected error without --language")
	}

	langFlag = "html"
	rootCmd.SetIn(strings.NewReader("<p>\n  <!-- x -->\n  hi\n</p>\n"))
	if err := runMinify(rootCmd, []string{"-"}); err != nil {
		t.Fatalf("runMinify() error = %v", err)
	}
	if got := out.String(); got != "<p>hi</p>\n" {
		t.Errorf("stdout = %q", got)
	}
}

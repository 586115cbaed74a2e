package gitutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned when the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// CommandRunner is an interface for running external commands.
type CommandRunner interface {
	CombinedOutput(ctx context.Context, name string, arg ...string) ([]byte, error)
}

// DefaultRunner implements CommandRunner using os/exec.
type DefaultRunner struct{}

func (r DefaultRunner) CombinedOutput(ctx context.Context, name string, arg ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, arg...).CombinedOutput()
}

var runner CommandRunner = DefaultRunner{}

// SetRunner replaces the command runner; tests use it to fake git.
func SetRunner(r CommandRunner) {
	runner = r
}

// ListTrackedFiles returns the files git tracks under dir, joined onto dir.
// Untracked and ignored files are left out.
func ListTrackedFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := runner.CombinedOutput(ctx, "git", "-C", dir, "ls-files", "--cached", "--exclude-standard")
	text := string(out)
	if strings.Contains(strings.ToLower(text), "not a git repository") {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, strings.TrimSpace(text))
	}
	if err != nil {
		return nil, fmt.Errorf("git ls-files in %s: %w, output: %s", dir, err, strings.TrimSpace(text))
	}

	var files []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(line)))
	}
	return files, nil
}

package rewrite

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrPastEOF is returned when a replacement range extends beyond the last line.
var ErrPastEOF = errors.New("line range extends past end of file")

const maxLineSize = 64 * 1024 * 1024

// ScannerRewriter implements LineRewriter over a bufio.Scanner.
type ScannerRewriter struct {
	scanner  *bufio.Scanner
	output   bytes.Buffer
	lineNo   int  // lines consumed so far
	finished bool // reached EOF
}

// NewScannerRewriter reads the original content from r.
func NewScannerRewriter(r io.Reader) *ScannerRewriter {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ScannerRewriter{scanner: sc}
}

func (rw *ScannerRewriter) next() (bool, error) {
	if rw.finished {
		return false, nil
	}
	if !rw.scanner.Scan() {
		rw.finished = true
		return false, rw.scanner.Err()
	}
	rw.lineNo++
	return true, nil
}

func (rw *ScannerRewriter) CopyLinesUntil(lineIndex int) error {
	for rw.lineNo < lineIndex {
		ok, err := rw.next()
		if err != nil || !ok {
			return err
		}
		rw.output.Write(rw.scanner.Bytes())
		rw.output.WriteByte('\n')
	}
	return nil
}

func (rw *ScannerRewriter) ReplaceLines(startLine, endLine int, newLines []string) error {
	if startLine < rw.lineNo || endLine < startLine {
		return fmt.Errorf("replace lines %d-%d at line %d: invalid range", startLine, endLine, rw.lineNo)
	}
	if err := rw.CopyLinesUntil(startLine); err != nil {
		return err
	}
	for rw.lineNo <= endLine {
		ok, err := rw.next()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("replace lines %d-%d: %w", startLine, endLine, ErrPastEOF)
		}
	}
	for _, nl := range newLines {
		rw.output.WriteString(nl)
		rw.output.WriteByte('\n')
	}
	return nil
}

func (rw *ScannerRewriter) CopyRemainingLines() error {
	for {
		ok, err := rw.next()
		if err != nil || !ok {
			return err
		}
		rw.output.Write(rw.scanner.Bytes())
		rw.output.WriteByte('\n')
	}
}

func (rw *ScannerRewriter) Bytes() []byte {
	return rw.output.Bytes()
}

// ReplaceRange rewrites content with 0-based lines [start..end] replaced by
// newLines. A missing trailing newline in content stays missing.
func ReplaceRange(content []byte, start, end int, newLines []string) ([]byte, error) {
	var rw LineRewriter = NewScannerRewriter(bytes.NewReader(content))
	if err := rw.ReplaceLines(start, end, newLines); err != nil {
		return nil, err
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return nil, err
	}
	out := rw.Bytes()
	if len(content) > 0 && content[len(content)-1] != '\n' {
		out = bytes.TrimSuffix(out, []byte{'\n'})
	}
	return out, nil
}

package rewrite

// LineRewriter copies a document to a buffer line by line, replacing whole
// line ranges along the way.
type LineRewriter interface {
	// CopyLinesUntil writes original lines [0..lineIndex-1], positioning the reader at lineIndex.
	CopyLinesUntil(lineIndex int) error

	// ReplaceLines drops original lines startLine through endLine (inclusive,
	// 0-based) and writes newLines in their place, one '\n' after each.
	// Lines before startLine that were not yet copied are copied first.
	ReplaceLines(startLine, endLine int, newLines []string) error

	// CopyRemainingLines writes all leftover original lines.
	CopyRemainingLines() error

	// Bytes returns the rewritten buffer.
	Bytes() []byte
}

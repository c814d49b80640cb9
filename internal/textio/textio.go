// Package textio provides line-oriented file reading and writing for
// the codec CLIs and trainers. Lines are yielded and written without
// their trailing newline; the writer appends a single '\n' per line.
package textio

import (
	"bufio"
	"fmt"
	"os"
)

// scannerBufSize is the maximum supported line length.
const scannerBufSize = 1 << 20 // 1 MiB

// EachLine opens path and calls fn once per line, stripped of its line
// terminator. Iteration stops at the first error returned by fn, which
// is propagated to the caller.
func EachLine(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scannerBufSize), scannerBufSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}

// LineWriter writes lines to a file through a buffer. Close flushes the
// buffer and reports any deferred write error, so callers must check it.
type LineWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewLineWriter creates (or truncates) the file at path.
func NewLineWriter(path string) (*LineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &LineWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine writes line followed by a newline.
func (lw *LineWriter) WriteLine(line string) error {
	if _, err := lw.w.WriteString(line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := lw.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Close flushes buffered data and closes the underlying file.
func (lw *LineWriter) Close() error {
	flushErr := lw.w.Flush()
	closeErr := lw.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush output: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}
	return nil
}

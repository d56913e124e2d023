package markupgen

import (
	"bytes"
	"fmt"
	"strings"
)

// codeWriter is an indenting buffer that tracks the current output line for
// source mapping. Lines are 0-indexed.
type codeWriter struct {
	buf    bytes.Buffer
	indent int
	line   int
}

// write writes s without indentation.
func (w *codeWriter) write(s string) {
	w.buf.WriteString(s)
	w.line += strings.Count(s, "\n")
}

// writef writes a formatted string after the current indentation.
func (w *codeWriter) writef(format string, args ...any) {
	w.writeIndent()
	w.write(fmt.Sprintf(format, args...))
}

// writeln writes s and a newline after the current indentation. An empty s
// writes a blank line.
func (w *codeWriter) writeln(s string) {
	if s != "" {
		w.writeIndent()
		w.buf.WriteString(s)
	}
	w.buf.WriteByte('\n')
	w.line++
}

func (w *codeWriter) writeIndent() {
	for range w.indent {
		w.buf.WriteByte('\t')
	}
}

func (w *codeWriter) reset() {
	w.buf.Reset()
	w.indent = 0
	w.line = 0
}

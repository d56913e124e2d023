package markup

import (
	"bytes"
	"io"
)

// Render formats c into a new byte slice.
func Render(c Content) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTo(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderString formats c into a string.
func RenderString(c Content) (string, error) {
	var buf bytes.Buffer
	if err := WriteTo(c, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo appends the formatted content to buf. On error buf holds whatever
// was written before the failure.
func WriteTo(c Content, buf *bytes.Buffer) error {
	return NewFormatter(buf).WriteComponent(c)
}

// Fprint renders c and writes the result to w. Nothing is written to w when
// rendering fails.
func Fprint(w io.Writer, c Content) error {
	b, err := Render(c)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

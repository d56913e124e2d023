package markup

import (
	"bytes"
)

// Formatter serializes markup into a caller-owned byte buffer.
//
// Generated template code calls the Write* methods in source order. Methods
// writing static markup cannot fail; methods accepting dynamic values return
// the first error reported by the value and leave the buffer as it is.
//
// A Formatter is not safe for concurrent use. Render independent documents
// with independent buffers.
type Formatter struct {
	buf *bytes.Buffer
}

// NewFormatter creates a formatter appending to buf.
func NewFormatter(buf *bytes.Buffer) *Formatter {
	return &Formatter{buf: buf}
}

// Len returns the number of bytes in the underlying buffer.
func (f *Formatter) Len() int {
	return f.buf.Len()
}

// Grow reserves room for n more bytes.
func (f *Formatter) Grow(n int) {
	f.buf.Grow(n)
}

// WriteBytes writes raw bytes without escaping.
func (f *Formatter) WriteBytes(raw []byte) {
	f.buf.Write(raw)
}

// WriteRaw writes a raw string without escaping.
func (f *Formatter) WriteRaw(raw string) {
	f.buf.WriteString(raw)
}

// Write writes p as escaped text content. It implements io.Writer, so
// fmt.Fprintf(f, ...) produces escaped text.
func (f *Formatter) Write(p []byte) (int, error) {
	appendEscapedBytes(f.buf, p, textEscapes)
	return len(p), nil
}

// WriteString writes s as escaped text content.
func (f *Formatter) WriteString(s string) (int, error) {
	appendEscapedString(f.buf, s, textEscapes)
	return len(s), nil
}

// WriteDoctype writes <!DOCTYPE value>.
func (f *Formatter) WriteDoctype(value string) {
	f.buf.WriteString("<!DOCTYPE ")
	appendEscapedString(f.buf, value, textEscapes)
	f.buf.WriteByte('>')
}

// WriteOpenTagStart writes the opening "<tag" of an element.
func (f *Formatter) WriteOpenTagStart(tag string) {
	f.buf.WriteByte('<')
	f.buf.WriteString(tag)
}

// WriteAttributeName writes " name". A following WriteAttributeValue
// supplies the value; without one the attribute is a presence attribute.
func (f *Formatter) WriteAttributeName(name string) {
	f.buf.WriteByte(' ')
	f.buf.WriteString(name)
}

// WriteAttributeValue writes ="value" for the attribute named just before.
// Values that write nothing (nil, nil pointers) leave the attribute bare.
func (f *Formatter) WriteAttributeValue(value any) error {
	a := AttributeFormatter{buf: f.buf}
	if err := a.writeValue(value); err != nil {
		return err
	}
	a.finish()
	return nil
}

// WriteSelfCloseTag closes a void element with " />".
func (f *Formatter) WriteSelfCloseTag() {
	f.buf.WriteString(" />")
}

// WriteOpenTagEnd closes an opening tag with ">".
func (f *Formatter) WriteOpenTagEnd() {
	f.buf.WriteByte('>')
}

// WriteEndTag writes "</tag>".
func (f *Formatter) WriteEndTag(tag string) {
	f.buf.WriteString("</")
	f.buf.WriteString(tag)
	f.buf.WriteByte('>')
}

// WriteComment writes an HTML comment with escaped text.
func (f *Formatter) WriteComment(comment string) {
	f.buf.WriteString("<!--")
	appendEscapedString(f.buf, comment, textEscapes)
	f.buf.WriteString("-->")
}

// WriteComponent formats a component value.
func (f *Formatter) WriteComponent(c Content) error {
	if c == nil {
		return nil
	}
	return c.Format(f)
}

// WriteAttributes writes a dynamic attribute set in place. Accepted values
// are nil, [Attributes] implementations, []Attr, map[string]string and
// map[string]any (maps are written in sorted key order).
func (f *Formatter) WriteAttributes(attrs any) error {
	a := AttributesFormatter{buf: f.buf}
	return a.writeSet(attrs)
}

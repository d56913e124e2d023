package markup

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// AttributeValue is implemented by values that control their own
// serialization in attribute-value position.
type AttributeValue interface {
	FormatAttributeValue(a *AttributeFormatter) error
}

// AttributeFormatter writes one attribute value. The opening `="` is written
// on the first write and the closing quote only if something was written, so
// a value that writes nothing leaves a bare presence attribute.
type AttributeFormatter struct {
	buf     *bytes.Buffer
	written bool
}

func (a *AttributeFormatter) begin() {
	if !a.written {
		a.written = true
		a.buf.WriteString(`="`)
	}
}

func (a *AttributeFormatter) finish() {
	if a.written {
		a.buf.WriteByte('"')
	}
}

// Grow reserves room for n more bytes plus the surrounding quotes.
func (a *AttributeFormatter) Grow(n int) {
	a.buf.Grow(n + 3)
}

// WriteBytes writes raw bytes without escaping.
func (a *AttributeFormatter) WriteBytes(raw []byte) {
	a.begin()
	a.buf.Write(raw)
}

// WriteRaw writes a raw string without escaping.
func (a *AttributeFormatter) WriteRaw(raw string) {
	a.begin()
	a.buf.WriteString(raw)
}

// Write writes p with attribute escaping. It implements io.Writer.
func (a *AttributeFormatter) Write(p []byte) (int, error) {
	a.begin()
	appendEscapedBytes(a.buf, p, attributeEscapes)
	return len(p), nil
}

// WriteString writes s with attribute escaping.
func (a *AttributeFormatter) WriteString(s string) (int, error) {
	a.begin()
	appendEscapedString(a.buf, s, attributeEscapes)
	return len(s), nil
}

func (a *AttributeFormatter) writeValue(v any) error {
	switch c := v.(type) {
	case nil:
		return nil
	case AttributeValue:
		return c.FormatAttributeValue(a)
	case string:
		a.WriteString(c)
		return nil
	case []byte:
		a.Write(c)
		return nil
	case fmt.Stringer:
		a.WriteString(c.String())
		return nil
	}

	var scratch [32]byte
	if b, ok := appendScalar(scratch[:0], v); ok {
		a.WriteBytes(b)
		return nil
	}
	if u, ok := underlying(v); ok {
		if u == nil {
			return nil
		}
		return a.writeValue(u)
	}
	return fmt.Errorf("%w for attribute value: %T", ErrUnsupportedType, v)
}

// Attributes is implemented by values that expand to a whole set of
// attributes at run time.
type Attributes interface {
	FormatAttributes(f *AttributesFormatter) error
}

// AttributesFormatter writes " name" or " name=\"value\"" pairs inside an
// opening tag.
type AttributesFormatter struct {
	buf *bytes.Buffer
}

// WriteAttribute writes one attribute. A nil value writes a presence
// attribute.
func (f *AttributesFormatter) WriteAttribute(name string, value any) error {
	if !validAttributeName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAttributeName, name)
	}
	f.buf.WriteByte(' ')
	f.buf.WriteString(name)

	a := AttributeFormatter{buf: f.buf}
	if err := a.writeValue(value); err != nil {
		return err
	}
	a.finish()
	return nil
}

func (f *AttributesFormatter) writeSet(v any) error {
	switch s := v.(type) {
	case nil:
		return nil
	case Attributes:
		return s.FormatAttributes(f)
	case []Attr:
		return Attrs(s).FormatAttributes(f)
	case map[string]string:
		for _, name := range sortedKeys(s) {
			if err := f.WriteAttribute(name, s[name]); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, name := range sortedKeys(s) {
			if err := f.WriteAttribute(name, s[name]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w for attributes: %T", ErrUnsupportedType, v)
}

// Attr is one entry of an ordered attribute set.
type Attr struct {
	Name  string
	Value any
}

// Attrs is an ordered attribute set. Entries are written in slice order and
// repeated names are not merged.
type Attrs []Attr

// FormatAttributes writes every entry in order.
func (as Attrs) FormatAttributes(f *AttributesFormatter) error {
	for _, attr := range as {
		if err := f.WriteAttribute(attr.Name, attr.Value); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// validAttributeName reports whether name can be written verbatim inside a
// tag without changing its structure.
func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '<', '>', '/', '=':
			return true
		}
		return r < 0x20 || r == 0x7f
	})
}

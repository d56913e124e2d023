package markup

import (
	"fmt"
	"reflect"
	"strconv"
)

// Content is implemented by every value that can render itself as markup.
// Generated templates and component types implement it.
type Content interface {
	Format(f *Formatter) error
}

// ContentFunc adapts a function to Content. Generated templates return one.
type ContentFunc func(f *Formatter) error

// Format calls fn. A nil ContentFunc writes nothing.
func (fn ContentFunc) Format(f *Formatter) error {
	if fn == nil {
		return nil
	}
	return fn(f)
}

// RawText is trusted markup written without escaping, both as content and
// as an attribute value.
type RawText string

// Format writes the text unescaped.
func (r RawText) Format(f *Formatter) error {
	f.WriteRaw(string(r))
	return nil
}

// FormatAttributeValue writes the text unescaped inside the quotes.
func (r RawText) FormatAttributeValue(a *AttributeFormatter) error {
	a.WriteRaw(string(r))
	return nil
}

// WriteContent writes a dynamic value in content position.
//
// Strings, byte slices and fmt.Stringer results are escaped. Booleans and
// numbers are written in their plain textual form. nil and nil pointers write
// nothing. Any other type that does not implement [Content] fails with
// [ErrUnsupportedType].
func (f *Formatter) WriteContent(v any) error {
	switch c := v.(type) {
	case nil:
		return nil
	case Content:
		return c.Format(f)
	case func(*Formatter) error:
		if c == nil {
			return nil
		}
		return c(f)
	case string:
		appendEscapedString(f.buf, c, textEscapes)
		return nil
	case []byte:
		appendEscapedBytes(f.buf, c, textEscapes)
		return nil
	case fmt.Stringer:
		appendEscapedString(f.buf, c.String(), textEscapes)
		return nil
	}

	if b, ok := appendScalar(f.buf.AvailableBuffer(), v); ok {
		f.buf.Write(b)
		return nil
	}
	if u, ok := underlying(v); ok {
		return f.WriteContent(u)
	}
	return fmt.Errorf("%w for content: %T", ErrUnsupportedType, v)
}

// appendScalar appends the textual form of booleans and numbers to dst.
func appendScalar(dst []byte, v any) ([]byte, bool) {
	switch n := v.(type) {
	case bool:
		return strconv.AppendBool(dst, n), true
	case int:
		return strconv.AppendInt(dst, int64(n), 10), true
	case int8:
		return strconv.AppendInt(dst, int64(n), 10), true
	case int16:
		return strconv.AppendInt(dst, int64(n), 10), true
	case int32:
		return strconv.AppendInt(dst, int64(n), 10), true
	case int64:
		return strconv.AppendInt(dst, n, 10), true
	case uint:
		return strconv.AppendUint(dst, uint64(n), 10), true
	case uint8:
		return strconv.AppendUint(dst, uint64(n), 10), true
	case uint16:
		return strconv.AppendUint(dst, uint64(n), 10), true
	case uint32:
		return strconv.AppendUint(dst, uint64(n), 10), true
	case uint64:
		return strconv.AppendUint(dst, n, 10), true
	case uintptr:
		return strconv.AppendUint(dst, uint64(n), 10), true
	case float32:
		return strconv.AppendFloat(dst, float64(n), 'f', -1, 32), true
	case float64:
		return strconv.AppendFloat(dst, n, 'f', -1, 64), true
	}
	return dst, false
}

// underlying unwraps pointers and named scalar types so that values such as
// *string or `type Status string` render like their base type. A nil pointer
// unwraps to nil.
func underlying(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, true
		}
		return rv.Elem().Interface(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return nil, false
}

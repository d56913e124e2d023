package markup

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// ToTempl exposes c as a templ component so it can be used from .templ files
// and templ's HTTP helpers.
func ToTempl(c Content) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := WriteTo(c, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// FromTempl wraps a templ component as Content. The component renders with
// ctx and its output is written unescaped, templ having done its own escaping.
func FromTempl(ctx context.Context, c templ.Component) Content {
	return ContentFunc(func(f *Formatter) error {
		if c == nil {
			return nil
		}
		return c.Render(ctx, f.buf)
	})
}

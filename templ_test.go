package markup

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTempl(t *testing.T) {
	var buf bytes.Buffer
	err := ToTempl(page("<t>")).Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><title>&lt;t&gt;</title>", buf.String())

	buf.Reset()
	err = ToTempl(failing()).Render(context.Background(), &buf)
	assert.ErrorIs(t, err, errRender)
	assert.Empty(t, buf.String())
}

func TestFromTempl(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "from-context")

	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>"+ctx.Value(ctxKey{}).(string)+"</b>")
		return err
	})

	out, err := RenderString(FromTempl(ctx, component))
	require.NoError(t, err)
	assert.Equal(t, "<b>from-context</b>", out)

	out, err = RenderString(FromTempl(ctx, nil))
	require.NoError(t, err)
	assert.Empty(t, out)
}

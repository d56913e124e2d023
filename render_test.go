package markup

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRender = errors.New("render failed")

func page(title string) Content {
	return ContentFunc(func(f *Formatter) error {
		f.WriteDoctype("html")
		f.WriteOpenTagStart("title")
		f.WriteOpenTagEnd()
		if err := f.WriteContent(title); err != nil {
			return err
		}
		f.WriteEndTag("title")
		return nil
	})
}

func failing() Content {
	return ContentFunc(func(f *Formatter) error {
		f.WriteRaw("<p>partial")
		return errRender
	})
}

func TestRender(t *testing.T) {
	out, err := Render(page("a & b"))
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><title>a &amp; b</title>", string(out))

	out, err = Render(failing())
	assert.ErrorIs(t, err, errRender)
	assert.Nil(t, out)

	s, err := RenderString(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestWriteTo_KeepsPartialOutput(t *testing.T) {
	buf := bytes.NewBufferString("prefix:")
	err := WriteTo(failing(), buf)
	assert.ErrorIs(t, err, errRender)
	assert.Equal(t, "prefix:<p>partial", buf.String())
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, page("x")))
	assert.Equal(t, "<!DOCTYPE html><title>x</title>", buf.String())

	buf.Reset()
	assert.ErrorIs(t, Fprint(&buf, failing()), errRender)
	assert.Empty(t, buf.String())
}

func TestRespond(t *testing.T) {
	type tc struct {
		content     Content
		status      int
		contentType string
		body        string
	}

	tests := map[string]tc{
		"success": {
			content:     page("home"),
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			body:        "<!DOCTYPE html><title>home</title>",
		},
		"render error": {
			content:     failing(),
			status:      http.StatusInternalServerError,
			contentType: "text/plain; charset=utf-8",
			body:        "Internal Server Error\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Respond(rec, tt.content)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestHandler(t *testing.T) {
	h := Handler(func(r *http.Request) Content {
		return page(r.URL.Query().Get("q"))
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=%3Cscript%3E", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<!DOCTYPE html><title>&lt;script&gt;</title>", rec.Body.String())
}

package markup

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitized(t *testing.T) {
	type tc struct {
		content  Sanitized
		expected string
	}

	tests := map[string]tc{
		"script removed": {
			content:  Sanitize(`<b>hi</b><script>alert(1)</script>`),
			expected: "<b>hi</b>",
		},
		"event handler removed": {
			content:  Sanitize(`<p onclick="evil()">x</p>`),
			expected: "<p>x</p>",
		},
		"strict policy": {
			content:  Sanitize(`<b>hi</b>`).WithPolicy(bluemonday.StrictPolicy()),
			expected: "hi",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := RenderString(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	type tc struct {
		files   map[string]string
		wantErr string
		check   func(t *testing.T, dir string, diags []diagnostic)
	}

	tests := map[string]tc{
		"clean": {
			files: map[string]string{"page.gsx": pageSource},
			check: func(t *testing.T, _ string, diags []diagnostic) {
				assert.Empty(t, diags)
			},
		},
		"parse and lowering problems": {
			files: map[string]string{
				"page.gsx": pageSource,
				"bad.gsx":  brokenSource,
				"void.gsx": "package views\n\ntempl V() {\n\t<hr>x</hr>\n}\n",
			},
			wantErr: "2 file(s) had errors",
			check: func(t *testing.T, dir string, diags []diagnostic) {
				require.Len(t, diags, 2)
				assert.Equal(t, filepath.Join(dir, "bad.gsx"), diags[0].File)
				assert.Equal(t, 4, diags[0].Line)
				assert.Contains(t, diags[0].Message, "dynamic elements are not supported")
				assert.Equal(t, filepath.Join(dir, "void.gsx"), diags[1].File)
				assert.Contains(t, diags[1].Message, "empty elements cannot have children")
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files)

			stdout, _, err := runCLI(t, "check", "--format", "json", dir)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			var diags []diagnostic
			require.NoError(t, json.Unmarshal([]byte(stdout), &diags))
			tt.check(t, dir, diags)
		})
	}
}

func TestCheckCommand_Text(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad.gsx": brokenSource})

	stdout, _, err := runCLI(t, "check", dir)
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], filepath.Join(dir, "bad.gsx")+":4:"), lines[0])
	assert.Contains(t, lines[0], ": error: dynamic elements are not supported")
}

func TestCheckCommand_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "check", "--format", "xml", t.TempDir())
	assert.EqualError(t, err, `unknown format "xml" (use text or json)`)
}

func TestDiagnosticString(t *testing.T) {
	d := diagnostic{File: "a.gsx", Line: 2, Column: 5, Message: "bad", Hint: "fix it"}
	assert.Equal(t, "a.gsx:2:5: error: bad (fix it)", d.String())
}

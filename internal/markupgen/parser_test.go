package markupgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	file, err := NewParser(NewLexer("test.gsx", src)).ParseFile()
	require.NoError(t, err)
	return file
}

func TestParser_File(t *testing.T) {
	src := `package views

import (
	"strings"
	m "github.com/grindlemire/go-markup"
)

type Item struct {
	Name string
}

const greeting = "hi"

// upper is a helper.
func upper(s string) string {
	return strings.ToUpper(s)
}

// Page renders the items.
templ Page[T any](items []T, title string) {
	<h1>{title}</h1>
}
`
	file := parseFile(t, src)

	assert.Equal(t, "views", file.Package)
	require.Len(t, file.Imports, 2)
	assert.Equal(t, Import{Path: "strings", Position: file.Imports[0].Position}, file.Imports[0])
	assert.Equal(t, "m", file.Imports[1].Alias)
	assert.Equal(t, RuntimeImportPath, file.Imports[1].Path)

	require.Len(t, file.Decls, 2)
	assert.Equal(t, "type", file.Decls[0].Kind)
	assert.Equal(t, "type Item struct {\n\tName string\n}", file.Decls[0].Code)
	assert.Equal(t, "const", file.Decls[1].Kind)
	assert.Equal(t, `const greeting = "hi"`, file.Decls[1].Code)

	require.Len(t, file.Funcs, 1)
	assert.Equal(t, "func upper(s string) string {\n\treturn strings.ToUpper(s)\n}", file.Funcs[0].Code)
	assert.Equal(t, "upper is a helper.", file.Funcs[0].LeadingComments.Text())

	require.Len(t, file.Templs, 1)
	templ := file.Templs[0]
	assert.Equal(t, "Page", templ.Name)
	assert.Equal(t, "T any", templ.TypeParams)
	assert.Equal(t, "items []T, title string", templ.Params)
	assert.Equal(t, "Page renders the items.", templ.LeadingComments.Text())
	assert.Equal(t, Position{File: "test.gsx", Line: 20, Column: 1}, templ.Position)

	require.Len(t, templ.Body, 1)
	h1, ok := templ.Body[0].(*Element)
	require.True(t, ok, "expected *Element, got %T", templ.Body[0])
	assert.Equal(t, "h1", h1.Name.Value)
	require.Len(t, h1.Children, 1)
	assert.Equal(t, "title", h1.Children[0].(*Block).Code)
}

func TestParser_SingleImports(t *testing.T) {
	file := parseFile(t, "package x\n\nimport \"fmt\"\nimport . \"strings\"\n")

	require.Len(t, file.Imports, 2)
	assert.Equal(t, "fmt", file.Imports[0].Path)
	assert.Equal(t, ".", file.Imports[1].Alias)
	assert.Equal(t, "strings", file.Imports[1].Path)
}

func TestParser_DocCommentWithoutBlankLine(t *testing.T) {
	file := parseFile(t, "package x\n\ntype A int\n// B doc\ntype B int\n")

	require.Len(t, file.Decls, 2)
	assert.Nil(t, file.Decls[0].LeadingComments)
	assert.Equal(t, "B doc", file.Decls[1].LeadingComments.Text())
}

func TestParser_Directive(t *testing.T) {
	type tc struct {
		src      string
		wantName string
	}

	tests := map[string]tc{
		"templ default name": {
			src: "package x\n\n//markup:component\ntempl card(title string) {\n\t<p>{title}</p>\n}\n",
		},
		"templ explicit name": {
			src:      "package x\n\n// card is a card.\n//markup:component Card\ntempl card(title string) {\n\t<p>{title}</p>\n}\n",
			wantName: "Card",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := parseFile(t, tt.src)
			require.Len(t, file.Templs, 1)
			d := file.Templs[0].Directive
			require.NotNil(t, d)
			assert.Equal(t, tt.wantName, d.TypeName)
		})
	}

	t.Run("func", func(t *testing.T) {
		file := parseFile(t, "package x\n\n//markup:component Button\nfunc button(label string) string { return label }\n")
		require.Len(t, file.Funcs, 1)
		require.NotNil(t, file.Funcs[0].Directive)
		assert.Equal(t, "Button", file.Funcs[0].Directive.TypeName)
	})

	t.Run("similar prefix is not a directive", func(t *testing.T) {
		file := parseFile(t, "package x\n\n//markup:components\nfunc f() {}\n")
		assert.Nil(t, file.Funcs[0].Directive)
	})
}

func TestParser_Errors(t *testing.T) {
	type tc struct {
		src     string
		wantErr string
	}

	tests := map[string]tc{
		"missing package": {
			src:     "templ A() {}",
			wantErr: "test.gsx:1:1: error: expected 'package' declaration",
		},
		"body on the next line": {
			src:     "package x\n\ntempl A()\n{\n}\n",
			wantErr: "expected { to start the body of templ A",
		},
		"unclosed element in body": {
			src:     "package x\n\ntempl A() {\n\t<div>\n}\n",
			wantErr: "test.gsx:4:2: error: unclosed element <div>",
		},
		"unterminated body": {
			src:     "package x\n\ntempl A() {\n\t<p></p>\n",
			wantErr: "unterminated templ body: missing '}'",
		},
		"directive on a type": {
			src:     "package x\n\n//markup:component\ntype A int\n",
			wantErr: "the component directive only applies to func and templ declarations",
		},
		"invalid directive name": {
			src:     "package x\n\n//markup:component 1abc\nfunc a() int { return 1 }\n",
			wantErr: `invalid component type name "1abc"`,
		},
		"unexpected top-level token": {
			src:     "package x\n\n42\n",
			wantErr: "unexpected token Int, expected func, templ, type, const, or var",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser(NewLexer("test.gsx", tt.src)).ParseFile()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_RecoversAfterBrokenTempl(t *testing.T) {
	src := "package x\n\ntempl () {\n}\n\ntempl B() {\n\t<p>ok</p>\n}\n"

	file, err := NewParser(NewLexer("test.gsx", src)).ParseFile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected templ name")
	require.NotNil(t, file)

	var names []string
	for _, tmpl := range file.Templs {
		names = append(names, tmpl.Name)
	}
	assert.Contains(t, names, "B")
}

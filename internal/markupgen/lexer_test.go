package markupgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Tokens(t *testing.T) {
	type tok struct {
		typ     TokenType
		literal string
	}
	type tc struct {
		input string
		want  []tok
	}

	tests := map[string]tc{
		"keywords": {
			input: "package templ func type const var import",
			want: []tok{
				{TokenPackage, "package"},
				{TokenTempl, "templ"},
				{TokenFunc, "func"},
				{TokenTypeKw, "type"},
				{TokenConst, "const"},
				{TokenVar, "var"},
				{TokenImport, "import"},
			},
		},
		"punctuation": {
			input: "(){}[],.",
			want: []tok{
				{TokenLParen, "("},
				{TokenRParen, ")"},
				{TokenLBrace, "{"},
				{TokenRBrace, "}"},
				{TokenLBracket, "["},
				{TokenRBracket, "]"},
				{TokenComma, ","},
				{TokenDot, "."},
			},
		},
		"literals": {
			input: "x 42 3.14 \"a\\tb\" `raw` 'c'",
			want: []tok{
				{TokenIdent, "x"},
				{TokenInt, "42"},
				{TokenFloat, "3.14"},
				{TokenString, "a\tb"},
				{TokenRawString, "raw"},
				{TokenRune, "'c'"},
			},
		},
		"operators longest first": {
			input: "a := b &^= c ... <-",
			want: []tok{
				{TokenIdent, "a"},
				{TokenOperator, ":="},
				{TokenIdent, "b"},
				{TokenOperator, "&^="},
				{TokenIdent, "c"},
				{TokenOperator, "..."},
				{TokenOperator, "<-"},
			},
		},
		"newlines are tokens": {
			input: "a\nb",
			want: []tok{
				{TokenIdent, "a"},
				{TokenNewline, "\n"},
				{TokenIdent, "b"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.gsx", tt.input)
			var got []tok
			for tk := l.Next(); tk.Type != TokenEOF; tk = l.Next() {
				got = append(got, tok{tk.Type, tk.Literal})
			}
			assert.Equal(t, tt.want, got)
			assert.False(t, l.Errors().HasErrors(), l.Errors().Error())
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	l := NewLexer("test.gsx", "package x\n\ntempl Foo")

	pkg := l.Next()
	assert.Equal(t, 1, pkg.Line)
	assert.Equal(t, 1, pkg.Column)

	name := l.Next()
	assert.Equal(t, 1, name.Line)
	assert.Equal(t, 9, name.Column)

	l.Next() // newline
	l.Next() // newline
	templ := l.Next()
	assert.Equal(t, TokenTempl, templ.Type)
	assert.Equal(t, 3, templ.Line)
	assert.Equal(t, 1, templ.Column)
}

func TestLexer_Comments(t *testing.T) {
	l := NewLexer("test.gsx", "// doc line\n/* block */ func")

	l.Next() // newline after the line comment
	tk := l.Next()
	require.Equal(t, TokenFunc, tk.Type)

	comments := l.ConsumeComments()
	require.Len(t, comments, 2)
	assert.Equal(t, "// doc line", comments[0].Text)
	assert.False(t, comments[0].IsBlock)
	assert.Equal(t, "/* block */", comments[1].Text)
	assert.True(t, comments[1].IsBlock)
	assert.Empty(t, l.ConsumeComments())
}

func TestLexer_Errors(t *testing.T) {
	type tc struct {
		input   string
		wantErr string
	}

	tests := map[string]tc{
		"unterminated string": {
			input:   `"abc`,
			wantErr: "unterminated string literal",
		},
		"empty rune": {
			input:   `''`,
			wantErr: "empty rune literal",
		},
		"unterminated raw string": {
			input:   "`abc",
			wantErr: "unterminated raw string literal",
		},
		"unterminated block comment": {
			input:   "/* abc",
			wantErr: "unterminated block comment",
		},
		"unexpected character": {
			input:   "#",
			wantErr: "unexpected character '#'",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.gsx", tt.input)
			for tk := l.Next(); tk.Type != TokenEOF; tk = l.Next() {
			}
			require.True(t, l.Errors().HasErrors())
			assert.Contains(t, l.Errors().Error(), tt.wantErr)
		})
	}
}

func TestLexer_ReadBalanced(t *testing.T) {
	type tc struct {
		input    string
		want     string
		wantOK   bool
		wantRest string
	}

	tests := map[string]tc{
		"simple": {
			input:    "{x + 1} rest",
			want:     "x + 1",
			wantOK:   true,
			wantRest: " rest",
		},
		"nested": {
			input:    "{f(a[0], func() { return })}!",
			want:     "f(a[0], func() { return })",
			wantOK:   true,
			wantRest: "!",
		},
		"brackets in strings and comments": {
			input:    "{\"}\" + `{` + '}' /* } */ // }\n}x",
			want:     "\"}\" + `{` + '}' /* } */ // }\n",
			wantOK:   true,
			wantRest: "x",
		},
		"parens": {
			input:    "(a, b)c",
			want:     "a, b",
			wantOK:   true,
			wantRest: "c",
		},
		"unterminated": {
			input:  "{x",
			want:   "x",
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.gsx", tt.input)
			got, ok := l.readBalanced()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRest, l.source[l.pos:])
				assert.False(t, l.Errors().HasErrors())
			} else {
				assert.Contains(t, l.Errors().Error(), "unterminated Go code")
			}
		})
	}
}

func TestLexer_Seek(t *testing.T) {
	src := "ab\ncd"
	l := NewLexer("test.gsx", src)

	l.Seek(4)
	assert.Equal(t, 'd', l.ch)
	assert.Equal(t, Position{File: "test.gsx", Line: 2, Column: 2}, l.cursor())

	l.Seek(3)
	assert.Equal(t, 'c', l.ch)
	assert.Equal(t, Position{File: "test.gsx", Line: 2, Column: 1}, l.cursor())
}

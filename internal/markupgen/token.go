package markupgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF     TokenType = iota // end of file
	TokenError                    // lexer error
	TokenNewline                  // newline

	// Keywords
	TokenPackage // package
	TokenImport  // import
	TokenFunc    // func
	TokenTempl   // templ
	TokenTypeKw  // type
	TokenConst   // const
	TokenVar     // var

	// Literals
	TokenIdent     // identifier
	TokenInt       // integer literal: 123
	TokenFloat     // float literal: 1.23
	TokenString    // string literal: "..."
	TokenRawString // raw string literal: `...`
	TokenRune      // rune literal: 'x'

	// Punctuation the parser cares about
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenComma    // ,
	TokenDot      // .

	// Any other Go operator, passed through verbatim
	TokenOperator

	// Comment tokens (collected but not emitted by lexer)
	TokenLineComment  // // comment
	TokenBlockComment // /* comment */
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenError:        "Error",
	TokenNewline:      "Newline",
	TokenPackage:      "package",
	TokenImport:       "import",
	TokenFunc:         "func",
	TokenTempl:        "templ",
	TokenTypeKw:       "type",
	TokenConst:        "const",
	TokenVar:          "var",
	TokenIdent:        "Ident",
	TokenInt:          "Int",
	TokenFloat:        "Float",
	TokenString:       "String",
	TokenRawString:    "RawString",
	TokenRune:         "Rune",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenOperator:     "Operator",
	TokenLineComment:  "LineComment",
	TokenBlockComment: "BlockComment",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token is a lexical token with its literal and source position.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// endsStatement reports whether a newline after t terminates a Go
// statement, following Go's automatic semicolon rule.
func (t Token) endsStatement() bool {
	switch t.Type {
	case TokenIdent, TokenInt, TokenFloat, TokenString, TokenRawString, TokenRune,
		TokenRParen, TokenRBracket, TokenRBrace:
		return true
	case TokenOperator:
		return t.Literal == "++" || t.Literal == "--"
	}
	return false
}

// Position is a source location used by diagnostics and hints.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

var keywords = map[string]TokenType{
	"package": TokenPackage,
	"import":  TokenImport,
	"func":    TokenFunc,
	"templ":   TokenTempl,
	"type":    TokenTypeKw,
	"const":   TokenConst,
	"var":     TokenVar,
}

// LookupIdent returns the token type for an identifier, checking if it's a
// keyword first.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}

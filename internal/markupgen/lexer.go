package markupgen

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes the Go level of a .gsx file and provides the
// character-level cursor the markup parser reads templ bodies with.
type Lexer struct {
	filename string
	source   string
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	tokenLine     int
	tokenColumn   int
	tokenStartPos int

	// Comments collected since the last ConsumeComments call
	pendingComments []*Comment

	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	l := &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   0,
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	prevWasNewline := l.ch == '\n'

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = len(l.source)
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// hasPrefix reports whether the source at the current character starts
// with s.
func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// hasPrefixFold is hasPrefix with ASCII case folding.
func (l *Lexer) hasPrefixFold(s string) bool {
	rest := l.source[l.pos:]
	return len(rest) >= len(s) && strings.EqualFold(rest[:len(s)], s)
}

// skip advances over n characters.
func (l *Lexer) skip(n int) {
	for range n {
		l.readChar()
	}
}

// Seek moves the cursor to byte offset pos and recomputes line and column.
// Pending comments are dropped.
func (l *Lexer) Seek(pos int) {
	pos = min(max(pos, 0), len(l.source))

	line, column := 1, 0
	for i := 0; i < pos; i++ {
		if l.source[i] == '\n' {
			line++
			column = 0
		} else if utf8.RuneStart(l.source[i]) {
			column++
		}
	}

	// readChar below advances one column from the character before pos.
	l.ch = 0
	l.line = line
	l.column = column
	l.readPos = pos
	l.pendingComments = nil
	l.readChar()
}

// lexerState is a saved cursor position.
type lexerState struct {
	pos, readPos int
	ch           rune
	line, column int
}

// mark saves the cursor so a speculative scan can be undone.
func (l *Lexer) mark() lexerState {
	return lexerState{pos: l.pos, readPos: l.readPos, ch: l.ch, line: l.line, column: l.column}
}

// restore rewinds the cursor to a saved state.
func (l *Lexer) restore(s lexerState) {
	l.pos, l.readPos, l.ch, l.line, l.column = s.pos, s.readPos, s.ch, s.line, s.column
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// makeToken creates a token with the current start position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
	}
}

// position returns the position of the current token.
func (l *Lexer) position() Position {
	return Position{File: l.filename, Line: l.tokenLine, Column: l.tokenColumn}
}

// cursor returns the position of the current character.
func (l *Lexer) cursor() Position {
	return Position{File: l.filename, Line: l.line, Column: l.column}
}

// Next returns the next token from the source.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndCollectComments()

	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")
	case '\n':
		l.readChar()
		return l.makeToken(TokenNewline, "\n")
	case '(':
		l.readChar()
		return l.makeToken(TokenLParen, "(")
	case ')':
		l.readChar()
		return l.makeToken(TokenRParen, ")")
	case '{':
		l.readChar()
		return l.makeToken(TokenLBrace, "{")
	case '}':
		l.readChar()
		return l.makeToken(TokenRBrace, "}")
	case '[':
		l.readChar()
		return l.makeToken(TokenLBracket, "[")
	case ']':
		l.readChar()
		return l.makeToken(TokenRBracket, "]")
	case ',':
		l.readChar()
		return l.makeToken(TokenComma, ",")
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		if l.hasPrefix("...") {
			l.skip(3)
			return l.makeToken(TokenOperator, "...")
		}
		l.readChar()
		return l.makeToken(TokenDot, ".")
	case '"':
		return l.readString()
	case '\'':
		return l.readRune()
	case '`':
		return l.readRawString()
	}

	if isLetter(l.ch) {
		return l.readIdentifier()
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	if op := l.readOperator(); op != "" {
		return l.makeToken(TokenOperator, op)
	}

	ch := l.ch
	l.readChar()
	l.errors.AddErrorf(l.position(), "unexpected character %q", ch)
	return l.makeToken(TokenError, string(ch))
}

// operators lists Go operators longest first so the first match wins.
var operators = []string{
	"&^=", "<<=", ">>=",
	"&&", "||", "<-", "++", "--", "==", "!=", "<=", ">=", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "&^",
	"+", "-", "*", "/", "%", "&", "|", "^", "<", ">", "=", "!", "~", ":", ";",
}

// readOperator consumes and returns the operator at the cursor, or "".
func (l *Lexer) readOperator() string {
	for _, op := range operators {
		if l.hasPrefix(op) {
			l.skip(len(op))
			return op
		}
	}
	return ""
}

package markupgen

import "strconv"

// scanQuoted advances past a quote-delimited literal with backslash escapes
// that may not span lines. It returns the source text including the quotes
// and false when the literal is unterminated, after recording the error.
func (l *Lexer) scanQuoted(quote rune, kind string) (string, bool) {
	start := l.pos
	l.readChar()

	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			l.errors.AddErrorf(l.position(), "unterminated %s literal", kind)
			return l.source[start:l.pos], false
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar()
	return l.source[start:l.pos], true
}

// readString reads a double-quoted string. The token literal is the
// unquoted value.
func (l *Lexer) readString() Token {
	text, ok := l.scanQuoted('"', "string")
	if !ok {
		return l.makeToken(TokenError, text)
	}

	value, err := strconv.Unquote(text)
	if err != nil {
		l.errors.AddErrorf(l.position(), "invalid string literal %s", text)
		return l.makeToken(TokenError, text)
	}
	return l.makeToken(TokenString, value)
}

// readRune reads a rune literal, kept as source text with its quotes.
func (l *Lexer) readRune() Token {
	text, ok := l.scanQuoted('\'', "rune")
	switch {
	case !ok:
		return l.makeToken(TokenError, text)
	case text == "''":
		l.errors.AddError(l.position(), "empty rune literal")
		return l.makeToken(TokenError, "")
	}
	return l.makeToken(TokenRune, text)
}

// readRawString reads a backtick string. The token literal excludes the
// backticks.
func (l *Lexer) readRawString() Token {
	l.readChar()

	start := l.pos
	for l.ch != '`' {
		if l.ch == 0 {
			l.errors.AddError(l.position(), "unterminated raw string literal")
			return l.makeToken(TokenError, l.source[start:l.pos])
		}
		l.readChar()
	}

	body := l.source[start:l.pos]
	l.readChar()
	return l.makeToken(TokenRawString, body)
}

// readNumber reads a number literal. Hex, octal, binary and imaginary forms
// and digit separators are accepted; Go validates them later.
func (l *Lexer) readNumber() Token {
	start := l.pos
	sawDot := false

	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if sawDot {
				break
			}
			sawDot = true
		}
		if isExponent(l.ch) && (l.peekChar() == '+' || l.peekChar() == '-') {
			l.readChar()
		}
		l.readChar()
	}

	typ := TokenInt
	if sawDot {
		typ = TokenFloat
	}
	return l.makeToken(typ, l.source[start:l.pos])
}

func isExponent(ch rune) bool {
	switch ch {
	case 'e', 'E', 'p', 'P':
		return true
	}
	return false
}

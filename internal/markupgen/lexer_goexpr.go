package markupgen

// closers maps each opening bracket to its closing bracket.
var closers = map[rune]rune{'{': '}', '(': ')', '[': ']'}

// readBalanced reads Go source enclosed in the bracket at the cursor,
// handling nested brackets, strings, raw strings, rune literals and comments.
// It returns the source between the brackets and leaves the cursor after the
// closing bracket. An unterminated group is reported and the rest of the
// source is returned.
func (l *Lexer) readBalanced() (string, bool) {
	start := l.cursor()
	closer, ok := closers[l.ch]
	if !ok {
		l.errors.AddErrorf(start, "expected '{', '(' or '[', got %q", l.ch)
		return "", false
	}
	l.readChar()

	contentStart := l.pos
	stack := []rune{closer}

	for l.ch != 0 {
		switch l.ch {
		case '{', '(', '[':
			stack = append(stack, closers[l.ch])
		case '}', ')', ']':
			if l.ch != stack[len(stack)-1] {
				l.errors.AddErrorf(l.cursor(), "unexpected %q in Go code", l.ch)
				break
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				content := l.source[contentStart:l.pos]
				l.readChar() // consume closing bracket
				return content, true
			}
		case '"':
			l.skipStringInExpr()
			continue
		case '`':
			l.skipRawStringInExpr()
			continue
		case '\'':
			l.skipCharInExpr()
			continue
		case '/':
			if l.peekChar() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			}
			if l.peekChar() == '*' {
				l.skip(2)
				for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
					l.readChar()
				}
				l.skip(2)
				continue
			}
		}
		l.readChar()
	}

	l.errors.AddErrorf(start, "unterminated Go code: unmatched %q", closer)
	return l.source[contentStart:l.pos], false
}

// skipStringInExpr skips a string literal inside Go code.
func (l *Lexer) skipStringInExpr() {
	l.readChar() // consume opening "
	for l.ch != '"' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escape
		}
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar() // consume closing "
	}
}

// skipRawStringInExpr skips a raw string literal inside Go code.
func (l *Lexer) skipRawStringInExpr() {
	l.readChar() // consume opening `
	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == '`' {
		l.readChar() // consume closing `
	}
}

// skipCharInExpr skips a rune literal inside Go code.
func (l *Lexer) skipCharInExpr() {
	l.readChar() // consume opening '
	for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escape
		}
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar() // consume closing '
	}
}

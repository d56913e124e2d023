package markupgen

import (
	"unicode"
)

// skipWhitespaceAndCollectComments skips spaces and tabs and collects
// comments, stopping at newlines.
func (l *Lexer) skipWhitespaceAndCollectComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '/':
			switch l.peekChar() {
			case '/':
				l.collectLineComment()
			case '*':
				l.collectBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// skipSpace skips all whitespace including newlines.
func (l *Lexer) skipSpace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

// collectLineComment reads a // comment and adds it to pendingComments.
func (l *Lexer) collectLineComment() {
	startPos := l.pos
	start := l.cursor()

	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	l.pendingComments = append(l.pendingComments, &Comment{
		Text:     l.source[startPos:l.pos],
		Position: start,
		EndLine:  l.line,
	})
}

// collectBlockComment reads a /* */ comment and adds it to pendingComments.
func (l *Lexer) collectBlockComment() {
	startPos := l.pos
	start := l.cursor()

	l.skip(2) // skip /*
	for {
		if l.ch == 0 {
			l.errors.AddError(start, "unterminated block comment")
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.skip(2)
			break
		}
		l.readChar()
	}

	l.pendingComments = append(l.pendingComments, &Comment{
		Text:     l.source[startPos:l.pos],
		Position: start,
		EndLine:  l.line,
		IsBlock:  true,
	})
}

// ConsumeComments returns and clears pending comments.
func (l *Lexer) ConsumeComments() []*Comment {
	comments := l.pendingComments
	l.pendingComments = nil
	return comments
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() Token {
	literal := l.readIdentRunes()
	return l.makeToken(LookupIdent(literal), literal)
}

// readIdentRunes consumes letters and digits and returns them.
func (l *Lexer) readIdentRunes() string {
	startPos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.source[startPos:l.pos]
}

// isLetter returns true if the rune is a letter or underscore.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

// isSpace reports whether ch is markup whitespace.
func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// SourcePos returns the current byte offset in the source.
func (l *Lexer) SourcePos() int {
	return l.pos
}

// SourceRange extracts source[start:end], clamped to the source bounds.
func (l *Lexer) SourceRange(start, end int) string {
	start = max(start, 0)
	end = min(end, len(l.source))
	if start >= end {
		return ""
	}
	return l.source[start:end]
}

package markupgen

import (
	"go/token"
	"strings"
)

// componentDirective marks a func or templ as a component.
const componentDirective = "//markup:component"

// parseDirective extracts a component directive from a doc comment.
func (p *Parser) parseDirective(doc *CommentGroup) *ComponentDirective {
	if doc == nil {
		return nil
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, componentDirective)
		if !ok || c.IsBlock {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		d := &ComponentDirective{Position: c.Position}
		switch fields := strings.Fields(rest); len(fields) {
		case 0:
		case 1:
			if !token.IsIdentifier(fields[0]) {
				p.errors.AddErrorf(c.Position, "invalid component type name %q", fields[0])
				return nil
			}
			d.TypeName = fields[0]
		default:
			p.errors.AddErrorf(c.Position, "expected at most one type name after %s", componentDirective)
			return nil
		}
		return d
	}
	return nil
}

// parseTempl parses templ Name[TypeParams](Params) { markup }.
func (p *Parser) parseTempl() *Templ {
	pos := p.position()

	if !p.expect(TokenTempl) {
		return nil
	}

	if p.current.Type != TokenIdent {
		p.errors.AddError(p.position(), "expected templ name")
		return nil
	}
	t := &Templ{Name: p.current.Literal, Position: pos}
	p.advance()

	if p.current.Type == TokenLBracket {
		typeParams, ok := p.captureGroup(TokenLBracket, TokenRBracket)
		if !ok {
			return nil
		}
		t.TypeParams = strings.TrimSpace(typeParams)
		p.advance()
	}

	if p.current.Type != TokenLParen {
		p.errors.AddErrorf(p.position(), "expected %s, got %s", TokenLParen, p.current.Type)
		return nil
	}
	params, ok := p.captureGroup(TokenLParen, TokenRParen)
	if !ok {
		return nil
	}
	t.Params = strings.TrimSpace(params)

	// The body is scanned at the character level, so it must start on the
	// line of the closing parenthesis before the lexer tokenizes markup.
	if p.peek.Type != TokenLBrace {
		p.advance()
		p.errors.AddErrorf(p.position(), "expected { to start the body of templ %s, got %s", t.Name, p.current.Type)
		return nil
	}

	p.lexer.Seek(p.peek.StartPos + 1)
	t.Body = p.parseMarkupBody()
	p.resync()

	return t
}

// captureGroup returns the raw source between the current open token and
// its matching close token. The parser is left on the close token.
func (p *Parser) captureGroup(open, close TokenType) (string, bool) {
	pos := p.position()
	start := p.current.StartPos + 1
	depth := 0

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
			if depth == 0 {
				if p.current.Type != close {
					p.errors.AddErrorf(p.position(), "expected %s, got %s", close, p.current.Type)
					return "", false
				}
				p.dropCommentsThrough(p.current.Line)
				return p.lexer.SourceRange(start, p.current.StartPos), true
			}
		}
		p.advance()
	}

	p.errors.AddErrorf(pos, "unterminated %s", open)
	return "", false
}

// parseGoFunc captures a top-level function as raw Go source.
func (p *Parser) parseGoFunc() *GoFunc {
	pos := p.position()
	code := p.captureStatement()
	return &GoFunc{Code: code, Position: pos}
}

// parseGoDecl captures a top-level type, const or var declaration as raw Go
// source.
func (p *Parser) parseGoDecl() *GoDecl {
	pos := p.position()
	kind := p.current.Literal
	code := p.captureStatement()
	return &GoDecl{Kind: kind, Code: code, Position: pos}
}

// captureStatement consumes tokens up to the newline that ends the current
// top-level statement and returns its source. A newline ends the statement
// when no bracket is open and the previous token could end a Go statement.
func (p *Parser) captureStatement() string {
	startPos := p.current.StartPos
	depth := 0
	var last Token

	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		case TokenNewline:
			if depth <= 0 && last.endsStatement() {
				code := p.lexer.SourceRange(startPos, p.current.StartPos)
				p.dropCommentsThrough(p.current.Line)
				p.skipNewlines()
				return strings.TrimRight(code, " \t\r")
			}
		}
		if p.current.Type != TokenNewline {
			last = p.current
		}
		p.advance()
	}

	p.clearPendingComments()
	return strings.TrimRight(p.lexer.SourceRange(startPos, len(p.lexer.source)), " \t\r\n")
}

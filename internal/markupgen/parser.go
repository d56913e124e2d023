package markupgen

// Parser parses .gsx source files into a File.
type Parser struct {
	lexer           *Lexer
	cfg             *Config
	current         Token
	peek            Token
	errors          *ErrorList
	pendingComments []*Comment
}

// NewParser creates a Parser with the default configuration.
func NewParser(lexer *Lexer) *Parser {
	return NewParserWithConfig(lexer, DefaultConfig())
}

// NewParserWithConfig creates a Parser using cfg for void and raw-text
// elements.
func NewParserWithConfig(lexer *Lexer, cfg *Config) *Parser {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Parser{
		lexer:  lexer,
		cfg:    cfg,
		errors: NewErrorList(),
	}
	// Read two tokens to initialize current and peek
	p.advance()
	p.advance()
	return p
}

// Errors returns any errors encountered during parsing.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lexer.Next()
}

// resync re-primes current and peek from the lexer cursor after a
// character-level scan.
func (p *Parser) resync() {
	p.current = p.lexer.Next()
	p.peek = p.lexer.Next()
}

// skipNewlines consumes any newline tokens.
func (p *Parser) skipNewlines() {
	for p.current.Type == TokenNewline {
		p.advance()
	}
}

// position returns the current token's position.
func (p *Parser) position() Position {
	return Position{
		File:   p.lexer.filename,
		Line:   p.current.Line,
		Column: p.current.Column,
	}
}

// expect checks if the current token matches the expected type and advances.
func (p *Parser) expect(typ TokenType) bool {
	if p.current.Type == typ {
		p.advance()
		return true
	}
	p.errors.AddErrorf(p.position(), "expected %s, got %s", typ, p.current.Type)
	return false
}

// synchronize skips tokens until the start of the next top-level
// declaration.
func (p *Parser) synchronize() {
	for p.current.Type != TokenEOF {
		switch p.current.Type {
		case TokenFunc, TokenTempl, TokenTypeKw, TokenConst, TokenVar:
			if p.current.Column == 1 {
				return
			}
		}
		p.advance()
	}
}

// collectPendingComments moves comments from the lexer into the parser's
// buffer.
func (p *Parser) collectPendingComments() {
	p.pendingComments = append(p.pendingComments, p.lexer.ConsumeComments()...)
}

// clearPendingComments discards comments that are already part of captured
// Go source.
func (p *Parser) clearPendingComments() {
	p.lexer.ConsumeComments()
	p.pendingComments = nil
}

// dropCommentsThrough discards pending comments starting on or before line.
// Comments on later lines were read ahead with the peek token and may be
// the doc comment of the next declaration.
func (p *Parser) dropCommentsThrough(line int) {
	p.collectPendingComments()
	kept := p.pendingComments[:0]
	for _, c := range p.pendingComments {
		if c.Position.Line > line {
			kept = append(kept, c)
		}
	}
	p.pendingComments = kept
}

// getLeadingCommentGroup returns the comments directly above the current
// token, or nil. Comments separated from the token by a blank line are
// dropped.
func (p *Parser) getLeadingCommentGroup() *CommentGroup {
	p.collectPendingComments()
	comments := p.pendingComments
	p.pendingComments = nil

	// Keep only the trailing run that ends on the line above the token.
	end := len(comments)
	start := end
	line := p.current.Line
	for start > 0 && comments[start-1].EndLine >= line-1 {
		line = comments[start-1].Position.Line
		start--
	}
	if start == end {
		return nil
	}
	return &CommentGroup{List: comments[start:end]}
}

// ParseFile parses a complete .gsx file.
func (p *Parser) ParseFile() (*File, error) {
	file := &File{
		Position: p.position(),
	}

	p.skipNewlines()
	file.LeadingComments = p.getLeadingCommentGroup()

	file.Package = p.parsePackage()
	if file.Package == "" {
		p.mergeLexerErrors()
		return nil, p.errors.Err()
	}

	p.skipNewlines()
	file.Imports = p.parseImports()

	for p.current.Type != TokenEOF {
		p.skipNewlines()
		if p.current.Type == TokenEOF {
			break
		}

		leadingComments := p.getLeadingCommentGroup()
		directive := p.parseDirective(leadingComments)

		switch p.current.Type {
		case TokenTempl:
			t := p.parseTempl()
			if t == nil {
				p.synchronize()
				continue
			}
			t.LeadingComments = leadingComments
			t.Directive = directive
			file.Templs = append(file.Templs, t)
		case TokenFunc:
			fn := p.parseGoFunc()
			fn.LeadingComments = leadingComments
			fn.Directive = directive
			file.Funcs = append(file.Funcs, fn)
		case TokenTypeKw, TokenConst, TokenVar:
			decl := p.parseGoDecl()
			decl.LeadingComments = leadingComments
			file.Decls = append(file.Decls, decl)
			if directive != nil {
				p.errors.AddError(directive.Position, "the component directive only applies to func and templ declarations")
			}
		default:
			p.errors.AddErrorf(p.position(), "unexpected token %s, expected func, templ, type, const, or var", p.current.Type)
			p.advance()
			p.synchronize()
		}
	}

	p.mergeLexerErrors()
	return file, p.errors.Err()
}

// mergeLexerErrors appends lexer diagnostics to the parser's list.
func (p *Parser) mergeLexerErrors() {
	p.errors.Merge(p.lexer.Errors())
	p.lexer.errors = NewErrorList()
	p.errors.Sort()
}

// parsePackage parses "package <name>".
func (p *Parser) parsePackage() string {
	if p.current.Type != TokenPackage {
		p.errors.AddError(p.position(), "expected 'package' declaration")
		return ""
	}
	p.advance()

	if p.current.Type != TokenIdent {
		p.errors.AddError(p.position(), "expected package name")
		return ""
	}
	name := p.current.Literal
	p.advance()
	p.skipNewlines()
	return name
}

// parseImports parses import statements.
// Supports:
//   - import "path"
//   - import alias "path"
//   - import ( "path1"; "path2" )
//   - import ( alias "path" )
func (p *Parser) parseImports() []Import {
	var imports []Import

	for p.current.Type == TokenImport {
		p.advance()
		p.skipNewlines()

		if p.current.Type == TokenLParen {
			p.advance()
			p.skipNewlines()

			for p.current.Type != TokenRParen && p.current.Type != TokenEOF {
				if imp := p.parseSingleImport(); imp != nil {
					imports = append(imports, *imp)
				} else {
					p.advance()
				}
				p.skipNewlines()
			}
			p.expect(TokenRParen)
		} else if imp := p.parseSingleImport(); imp != nil {
			imports = append(imports, *imp)
		}
		p.dropCommentsThrough(p.current.Line)
		p.skipNewlines()
	}

	return imports
}

// parseSingleImport parses a single import: [alias] "path"
func (p *Parser) parseSingleImport() *Import {
	pos := p.position()
	var alias string

	if p.current.Type == TokenIdent || p.current.Type == TokenDot {
		alias = p.current.Literal
		p.advance()
	}

	if p.current.Type != TokenString {
		p.errors.AddError(p.position(), "expected import path string")
		return nil
	}

	path := p.current.Literal
	p.advance()

	return &Import{
		Alias:    alias,
		Path:     path,
		Position: pos,
	}
}

package markupgen

import (
	"strconv"
	"strings"
)

// ParseMarkup parses a bare markup fragment, as found in a templ body, with
// error recovery always on. A nil cfg uses DefaultConfig.
func ParseMarkup(filename, src string, cfg *Config) ([]Node, *ErrorList) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Parser{
		lexer:  NewLexer(filename, src),
		cfg:    cfg,
		errors: NewErrorList(),
	}
	nodes := p.parseMarkup(false, p.lexer.cursor())
	p.mergeLexerErrors()
	return nodes, p.errors
}

// parseMarkupBody parses a templ body whose opening brace was just consumed,
// up to and including the closing brace.
func (p *Parser) parseMarkupBody() []Node {
	open := p.lexer.cursor()
	open.Column--
	return p.parseMarkup(true, open)
}

// parseMarkup parses sibling nodes at the top of a body or fragment,
// reporting stray closing tags and braces.
func (p *Parser) parseMarkup(inBody bool, open Position) []Node {
	l := p.lexer
	var nodes []Node

	for {
		nodes = append(nodes, p.parseNodes(nil)...)

		switch {
		case l.ch == 0:
			if inBody {
				p.errors.AddError(open, "unterminated templ body: missing '}'")
			}
			return nodes
		case l.ch == '}':
			if inBody {
				l.readChar()
				return nodes
			}
			p.errors.AddError(l.cursor(), "unexpected '}'")
			l.readChar()
		default:
			pos := l.cursor()
			name := p.parseCloseTag()
			p.errors.AddErrorf(pos, "unexpected closing tag </%s>", name.String())
		}
	}
}

// parseNodes parses siblings until a closing tag, a closing brace or the end
// of input, none of which it consumes. stack holds the names of the open
// ancestors.
func (p *Parser) parseNodes(stack []string) []Node {
	l := p.lexer
	var nodes []Node

	for {
		switch {
		case l.ch == 0, l.ch == '}', l.hasPrefix("</"):
			return normalizeText(nodes)
		case l.hasPrefix("<!--"):
			if c := p.parseComment(); c != nil {
				nodes = append(nodes, c)
			}
		case l.hasPrefixFold("<!doctype"):
			if d := p.parseDoctype(); d != nil {
				nodes = append(nodes, d)
			}
		case l.hasPrefix("<>"):
			nodes = append(nodes, p.parseFragment(stack))
		case l.ch == '<':
			if el := p.parseElement(stack); el != nil {
				nodes = append(nodes, el)
			}
		case l.ch == '{':
			if b := p.parseBlock(); b != nil {
				nodes = append(nodes, b)
			}
		default:
			nodes = append(nodes, p.parseText())
		}
	}
}

// parseText reads literal text up to the next tag, block or closing brace.
func (p *Parser) parseText() *Text {
	l := p.lexer
	pos := l.cursor()
	start := l.pos
	for l.ch != 0 && l.ch != '<' && l.ch != '{' && l.ch != '}' {
		l.readChar()
	}
	return &Text{Value: l.source[start:l.pos], Position: pos}
}

// parseBlock reads {code}. Empty blocks and blocks holding only comments
// produce no node.
func (p *Parser) parseBlock() *Block {
	l := p.lexer
	open := l.cursor()
	raw, _ := l.readBalanced()
	code := strings.TrimSpace(raw)
	if isEmptyCode(code) {
		return nil
	}
	return &Block{Code: code, Position: codeStart(open, raw)}
}

// codeStart returns the position of the first non-space character of raw,
// the source between the brace at open and its match.
func codeStart(open Position, raw string) Position {
	pos := open
	pos.Column++
	for _, r := range raw {
		switch {
		case r == '\n':
			pos.Line++
			pos.Column = 1
		case isSpace(r):
			pos.Column++
		default:
			return pos
		}
	}
	return pos
}

// parseComment reads <!-- value -->.
func (p *Parser) parseComment() *MarkupComment {
	l := p.lexer
	pos := l.cursor()
	l.skip(len("<!--"))

	start := l.pos
	for l.ch != 0 && !l.hasPrefix("-->") {
		l.readChar()
	}
	if l.ch == 0 {
		p.errors.AddError(pos, "unterminated comment: missing -->")
		return nil
	}
	value := l.source[start:l.pos]
	l.skip(len("-->"))
	return &MarkupComment{Value: value, Position: pos}
}

// parseDoctype reads <!DOCTYPE value>.
func (p *Parser) parseDoctype() *Doctype {
	l := p.lexer
	pos := l.cursor()
	l.skip(len("<!doctype"))

	start := l.pos
	for l.ch != 0 && l.ch != '>' {
		l.readChar()
	}
	if l.ch == 0 {
		p.errors.AddError(pos, "unterminated doctype: missing '>'")
		return nil
	}
	value := strings.TrimSpace(l.source[start:l.pos])
	l.readChar()
	return &Doctype{Value: value, Position: pos}
}

// parseFragment reads <>children</>.
func (p *Parser) parseFragment(stack []string) *Fragment {
	l := p.lexer
	f := &Fragment{Position: l.cursor()}
	l.skip(len("<>"))

	f.Children = p.parseNodes(push(stack, ""))
	p.parseClose(NodeName{}, f.Position, stack)
	return f
}

// parseElement reads an element and, unless it is self-closing, its
// children and closing tag.
func (p *Parser) parseElement(stack []string) *Element {
	l := p.lexer
	pos := l.cursor()
	l.readChar() // consume <

	name, ok := p.parseNodeName(true)
	if !ok {
		p.errors.AddErrorf(pos, "expected tag name after '<', got %q", l.ch)
		return nil
	}

	el := &Element{Name: name, Position: pos}
	el.Attributes = p.parseAttributes(name)

	switch {
	case l.hasPrefix("/>"):
		l.skip(2)
		el.SelfClose = true
		return el
	case l.ch == '>':
		l.readChar()
	default:
		p.errors.AddErrorf(l.cursor(), "expected '>' or '/>' to end <%s>", name.String())
		return el
	}

	switch {
	case name.Kind != NameBlock && p.cfg.IsVoid(name.Value):
		p.parseVoidChildren(el, stack)
	case name.Kind != NameBlock && p.cfg.IsRawText(name.Value):
		p.parseRawTextChildren(el)
	default:
		el.Children = p.parseNodes(push(stack, name.Value))
		el.CloseName = p.parseClose(name, pos, stack)
	}
	return el
}

// parseVoidChildren attaches children to a void element only when they are
// followed by an explicit matching closing tag, so the visitor can report
// them. Otherwise the element stays childless and the scan is undone.
func (p *Parser) parseVoidChildren(el *Element, stack []string) {
	l := p.lexer
	if !strings.Contains(l.source[l.pos:], "</"+el.Name.Value) {
		return
	}

	cp := p.checkpoint()
	children := p.parseNodes(push(stack, el.Name.Value))
	if l.hasPrefix("</") {
		closeName := p.parseCloseTag()
		if closeName.Value == el.Name.Value {
			el.Children = children
			el.CloseName = &closeName
			return
		}
	}
	p.rollback(cp)
}

// parseRawTextChildren reads the body of a raw-text element verbatim up to
// its case-insensitive closing tag.
func (p *Parser) parseRawTextChildren(el *Element) {
	l := p.lexer
	pos := l.cursor()
	start := l.pos
	closeTag := "</" + el.Name.Value

	for l.ch != 0 {
		if l.hasPrefixFold(closeTag) {
			next := l.pos + len(closeTag)
			if next >= len(l.source) || l.source[next] == '>' || isSpace(rune(l.source[next])) {
				break
			}
		}
		l.readChar()
	}

	if text := l.source[start:l.pos]; strings.TrimSpace(text) != "" {
		el.Children = []Node{&RawText{Value: text, Position: pos}}
	}
	if l.ch == 0 {
		p.errors.AddErrorf(el.Position, "unclosed element <%s>", el.Name.Value)
		return
	}

	closePos := l.cursor()
	closePos.Column += len("</")
	l.skip(len(closeTag))
	l.skipSpace()
	if l.ch == '>' {
		l.readChar()
	} else {
		p.errors.AddErrorf(l.cursor(), "expected '>' to end closing tag </%s>", el.Name.Value)
	}
	el.CloseName = &NodeName{Kind: el.Name.Kind, Value: el.Name.Value, Segments: el.Name.Segments, Position: closePos}
}

// parseClose consumes the closing tag matching open. A closing tag that
// belongs to an ancestor is left in place for the ancestor.
func (p *Parser) parseClose(open NodeName, openPos Position, stack []string) *NodeName {
	l := p.lexer
	if !l.hasPrefix("</") {
		p.reportUnclosed(open, openPos)
		return nil
	}

	cp := p.checkpoint()
	closeName := p.parseCloseTag()

	if closeName.Value == open.Value {
		if closeName.TypeArgs != "" && closeName.TypeArgs != open.TypeArgs {
			p.errors.AddErrorf(closeName.Position, "type arguments of </%s> do not match <%s>", closeName.String(), open.String())
		}
		return &closeName
	}

	for _, ancestor := range stack {
		if ancestor == closeName.Value {
			p.rollback(cp)
			p.reportUnclosed(open, openPos)
			return nil
		}
	}

	p.errors.AddErrorf(closeName.Position, "mismatched closing tag: expected </%s>, got </%s>", open.Value, closeName.Value)
	return nil
}

func (p *Parser) reportUnclosed(open NodeName, pos Position) {
	if open.Value == "" && open.Kind == NamePath {
		p.errors.AddError(pos, "unclosed fragment <>")
		return
	}
	p.errors.AddErrorf(pos, "unclosed element <%s>", open.String())
}

// parseCloseTag reads </name> or </>. The returned name is positioned at
// the name itself, or at the "</" of a fragment close.
func (p *Parser) parseCloseTag() NodeName {
	l := p.lexer
	pos := l.cursor()
	l.skip(2) // consume </
	l.skipSpace()

	name := NodeName{Position: pos}
	if l.ch != '>' {
		var ok bool
		name, ok = p.parseNodeName(true)
		if !ok {
			p.errors.AddErrorf(l.cursor(), "expected tag name in closing tag, got %q", l.ch)
		}
		l.skipSpace()
	}

	if l.ch == '>' {
		l.readChar()
	} else {
		p.errors.AddErrorf(l.cursor(), "expected '>' to end closing tag </%s>", name.String())
	}
	return name
}

// parseNodeName reads a tag or attribute name at the cursor: a {block}, a
// dotted path, or a name punctuated with '-' or ':'. Type arguments are read
// after paths when withTypeArgs is set.
func (p *Parser) parseNodeName(withTypeArgs bool) (NodeName, bool) {
	l := p.lexer
	pos := l.cursor()

	if l.ch == '{' {
		code, _ := l.readBalanced()
		return NodeName{Kind: NameBlock, Value: strings.TrimSpace(code), Position: pos}, true
	}
	if !isLetter(l.ch) {
		return NodeName{Position: pos}, false
	}

	start := l.pos
	for {
		l.readIdentRunes()
		if (l.ch == '.' || l.ch == '-' || l.ch == ':') && (isLetter(l.peekChar()) || isDigit(l.peekChar())) {
			l.readChar()
			continue
		}
		break
	}

	value := l.source[start:l.pos]
	name := NodeName{Kind: NamePath, Value: value, Position: pos}
	if strings.ContainsAny(value, "-:") {
		name.Kind = NamePunctuated
		return name, true
	}

	name.Segments = strings.Split(value, ".")
	if withTypeArgs && l.ch == '[' {
		args, _ := l.readBalanced()
		name.TypeArgs = strings.TrimSpace(args)
	}
	return name, true
}

// parseAttributes reads attributes up to the end of an opening tag.
func (p *Parser) parseAttributes(tag NodeName) []*Attribute {
	l := p.lexer
	var attrs []*Attribute

	for {
		l.skipSpace()
		switch {
		case l.ch == 0, l.ch == '>', l.ch == '<', l.ch == '}', l.hasPrefix("/>"):
			return attrs
		case l.ch == '{' || isLetter(l.ch):
			attrs = append(attrs, p.parseAttribute())
		default:
			p.errors.AddErrorf(l.cursor(), "unexpected %q in <%s>", l.ch, tag.String())
			l.readChar()
		}
	}
}

// parseAttribute reads one of name, name=value, name(args)[=value],
// {expr}=value or {expr}.
func (p *Parser) parseAttribute() *Attribute {
	l := p.lexer
	pos := l.cursor()

	name, _ := p.parseNodeName(false)
	attr := &Attribute{Kind: AttrKeyed, Name: name, Position: pos}

	if name.Kind == NameBlock && !p.atEquals() {
		return &Attribute{Kind: AttrBlock, Code: name.Value, Position: pos}
	}

	if name.Kind != NameBlock && l.ch == '(' {
		args, _ := l.readBalanced()
		attr.Kind = AttrBinding
		attr.Args = strings.TrimSpace(args)
	}

	if p.atEquals() {
		l.skipSpace()
		l.readChar() // consume =
		attr.Value = p.parseAttributeValue()
	}
	return attr
}

// atEquals reports whether '=' follows, possibly after whitespace, without
// consuming anything.
func (p *Parser) atEquals() bool {
	l := p.lexer
	state := l.mark()
	l.skipSpace()
	ok := l.ch == '='
	l.restore(state)
	return ok
}

// parseAttributeValue reads a quoted string, a raw string, a {block}, a
// number or an identifier path.
func (p *Parser) parseAttributeValue() AttributeValue {
	l := p.lexer
	l.skipSpace()
	pos := l.cursor()

	switch {
	case l.ch == '"':
		return AttributeValue{Kind: ValueConstant, Text: p.readQuoted(), Position: pos}
	case l.ch == '`':
		l.readChar()
		start := l.pos
		for l.ch != 0 && l.ch != '`' {
			l.readChar()
		}
		text := l.source[start:l.pos]
		if l.ch == 0 {
			p.errors.AddError(pos, "unterminated raw string literal")
		} else {
			l.readChar()
		}
		return AttributeValue{Kind: ValueConstant, Text: text, Position: pos}
	case l.ch == '{':
		raw, _ := l.readBalanced()
		code := strings.TrimSpace(raw)
		if isEmptyCode(code) {
			p.errors.AddError(pos, "empty attribute value")
			return AttributeValue{Position: pos}
		}
		return AttributeValue{Kind: ValueExpr, Text: code, Position: codeStart(pos, raw)}
	case isDigit(l.ch), l.ch == '-' && isDigit(l.peekChar()), l.ch == '.' && isDigit(l.peekChar()):
		start := l.pos
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' {
			l.readChar()
		}
		return AttributeValue{Kind: ValueExpr, Text: l.source[start:l.pos], Position: pos}
	case isLetter(l.ch):
		start := l.pos
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' && isLetter(l.peekChar()) {
			l.readChar()
		}
		return AttributeValue{Kind: ValueExpr, Text: l.source[start:l.pos], Position: pos}
	}

	p.errors.AddErrorf(pos, "expected attribute value, got %q", l.ch)
	return AttributeValue{Position: pos}
}

// readQuoted reads a double-quoted string with Go escapes. Literal newlines
// are allowed inside the quotes.
func (p *Parser) readQuoted() string {
	l := p.lexer
	pos := l.cursor()
	start := l.pos
	l.readChar() // consume opening "

	for l.ch != 0 && l.ch != '"' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == 0 {
		p.errors.AddError(pos, "unterminated string literal")
		return l.source[start+1 : l.pos]
	}
	l.readChar() // consume closing "

	quoted := strings.ReplaceAll(l.source[start:l.pos], "\n", `\n`)
	value, err := strconv.Unquote(quoted)
	if err != nil {
		p.errors.AddErrorf(pos, "invalid string literal %s", l.source[start:l.pos])
		return l.source[start+1 : l.pos-1]
	}
	return value
}

// markupCheckpoint is a saved parser state for speculative scans.
type markupCheckpoint struct {
	state       lexerState
	errors      int
	lexerErrors int
}

func (p *Parser) checkpoint() markupCheckpoint {
	return markupCheckpoint{
		state:       p.lexer.mark(),
		errors:      p.errors.Len(),
		lexerErrors: p.lexer.errors.Len(),
	}
}

func (p *Parser) rollback(cp markupCheckpoint) {
	p.lexer.restore(cp.state)
	p.errors.truncate(cp.errors)
	p.lexer.errors.truncate(cp.lexerErrors)
}

// push returns stack with name appended, never sharing the backing array.
func push(stack []string, name string) []string {
	return append(stack[:len(stack):len(stack)], name)
}

// normalizeText collapses whitespace in the text nodes of one sibling list
// and drops text that is only layout.
func normalizeText(nodes []Node) []Node {
	out := nodes[:0]
	for i, n := range nodes {
		t, ok := n.(*Text)
		if !ok {
			out = append(out, n)
			continue
		}
		t.Value = collapseText(t.Value, i == 0, i == len(nodes)-1)
		if t.Value != "" {
			out = append(out, t)
		}
	}
	return out
}

// collapseText turns every whitespace run into one space. Edge whitespace is
// dropped when it holds a newline or sits at the start or end of the
// sibling list.
func collapseText(s string, first, last bool) string {
	isWS := func(r rune) bool { return isSpace(r) }
	body := strings.Join(strings.FieldsFunc(s, isWS), " ")

	if body == "" {
		if first || last || strings.Contains(s, "\n") {
			return ""
		}
		return " "
	}

	leading := s[:len(s)-len(strings.TrimLeftFunc(s, isWS))]
	trailing := s[len(strings.TrimRightFunc(s, isWS)):]
	if leading != "" && !first && !strings.Contains(leading, "\n") {
		body = " " + body
	}
	if trailing != "" && !last && !strings.Contains(trailing, "\n") {
		body += " "
	}
	return body
}

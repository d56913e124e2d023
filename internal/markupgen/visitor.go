package markupgen

// Visitor lowers markup trees to templates. A Visitor keeps no state between
// calls to Lower.
type Visitor struct {
	cfg *Config

	instructions []Instruction
	errors       *ErrorList
	hints        []Hint
}

// NewVisitor creates a visitor. A nil cfg uses DefaultConfig.
func NewVisitor(cfg *Config) *Visitor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Visitor{cfg: cfg}
}

// Lower walks nodes in source order and returns the instructions,
// diagnostics and hints they produce. Rule violations are recorded as
// diagnostics and never stop the walk.
func (v *Visitor) Lower(nodes []Node) *Template {
	v.instructions = nil
	v.errors = NewErrorList()
	v.hints = nil

	v.visitNodes(nodes)

	return &Template{
		Instructions: v.instructions,
		Diagnostics:  v.errors,
		Hints:        v.hints,
	}
}

func (v *Visitor) emit(in Instruction) {
	v.instructions = append(v.instructions, in)
}

func (v *Visitor) hint(kind HintKind, path string, pos Position, component bool) {
	v.hints = append(v.hints, Hint{Kind: kind, Path: path, Pos: pos, Component: component})
}

func (v *Visitor) visitNodes(nodes []Node) {
	for _, n := range nodes {
		v.visitNode(n)
	}
}

func (v *Visitor) visitNode(n Node) {
	switch n := n.(type) {
	case *Doctype:
		v.emit(Instruction{Op: OpDoctype, Text: n.Value, Pos: n.Position})
	case *Element:
		switch Classify(n.Name) {
		case TagComponent:
			v.visitComponent(n)
		case TagElement:
			v.visitElement(n)
		default:
			v.errors.AddHint(n.Position, "dynamic elements are not supported", "use a component or an HTML element instead")
		}
	case *Text:
		v.emit(Instruction{Op: OpText, Text: n.Value, Pos: n.Position})
	case *RawText:
		v.emit(Instruction{Op: OpRawText, Text: n.Value, Pos: n.Position})
	case *Fragment:
		v.visitNodes(n.Children)
	case *MarkupComment:
		v.emit(Instruction{Op: OpComment, Text: n.Value, Pos: n.Position})
	case *Block:
		v.emit(Instruction{
			Op:    OpDynamicContent,
			Value: AttributeValue{Kind: ValueExpr, Text: n.Code, Position: n.Position},
			Pos:   n.Position,
		})
	}
}

func (v *Visitor) visitElement(el *Element) {
	name := el.Name
	v.hint(HintOpenTag, name.Value, name.Position, false)
	if name.TypeArgs != "" {
		v.errors.AddError(name.Position, "type arguments are only supported on components")
	}

	v.emit(Instruction{Op: OpOpenTagStart, Text: name.Value, Pos: el.Position})
	for _, attr := range el.Attributes {
		v.visitAttribute(attr)
	}

	if v.cfg.IsVoid(name.Value) {
		v.emit(Instruction{Op: OpSelfCloseTag, Pos: el.Position})
		if len(el.Children) > 0 {
			v.errors.AddErrorf(el.Children[0].Pos(), "empty elements cannot have children: <%s> is a void element", name.Value)
		}
	} else {
		v.emit(Instruction{Op: OpOpenTagEnd, Pos: el.Position})
		v.visitNodes(el.Children)
		v.emit(Instruction{Op: OpEndTag, Text: name.Value, Pos: el.Position})
	}

	if el.CloseName != nil {
		v.hint(HintCloseTag, name.Value, el.CloseName.Position, false)
	}
}

func (v *Visitor) visitAttribute(attr *Attribute) {
	switch attr.Kind {
	case AttrBlock:
		v.emit(Instruction{
			Op:    OpDynamicAttributes,
			Value: AttributeValue{Kind: ValueExpr, Text: attr.Code, Position: attr.Position},
			Pos:   attr.Position,
		})
		return
	case AttrBinding:
		v.emit(Instruction{Op: OpAttributeName, Text: attr.Name.Value, Pos: attr.Position})
		v.errors.AddErrorf(attr.Position, "attribute bindings are not supported: %s(%s)", attr.Name.Value, attr.Args)
		return
	}

	if attr.Name.Kind == NameBlock {
		v.errors.AddError(attr.Position, "dynamic attribute names are not supported")
		return
	}

	v.hint(HintProp, attr.Name.Value, attr.Name.Position, false)
	v.emit(Instruction{Op: OpAttributeName, Text: attr.Name.Value, Pos: attr.Position})
	if attr.Value.Kind != ValueNone {
		v.emit(Instruction{Op: OpAttributeValue, Value: attr.Value, Pos: attr.Value.Position})
	}
}

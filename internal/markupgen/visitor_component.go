package markupgen

// visitComponent lowers a component tag to a struct literal. Component tags
// never produce literal markup.
func (v *Visitor) visitComponent(el *Element) {
	path := el.Name.String()
	v.hint(HintOpenTag, path, el.Name.Position, true)

	comp := &Component{Path: path, Pos: el.Position}
	for _, attr := range el.Attributes {
		switch attr.Kind {
		case AttrBlock:
			v.errors.AddHint(attr.Position, "only keyed attributes are supported", "pass each prop as name={value}")
		case AttrBinding:
			v.errors.AddErrorf(attr.Position, "component prop functions are not supported: %s(%s)", attr.Name.Value, attr.Args)
		default:
			if prop, ok := v.lowerProp(attr); ok {
				comp.Props = append(comp.Props, prop)
				v.hints = append(v.hints, Hint{
					Kind:      HintProp,
					Path:      path,
					Field:     prop.Field,
					Pos:       attr.Name.Position,
					Component: true,
				})
			}
		}
	}

	comp.Children = v.lowerChildren(el)

	if el.CloseName != nil {
		v.hint(HintCloseTag, path, el.CloseName.Position, true)
	}
	v.emit(Instruction{Op: OpComponent, Component: comp, Pos: el.Position})
}

// lowerProp validates a keyed attribute as a component prop.
func (v *Visitor) lowerProp(attr *Attribute) (ComponentProp, bool) {
	name := attr.Name
	switch {
	case name.Kind == NameBlock:
		v.errors.AddError(attr.Position, "dynamic attribute names are not supported")
		return ComponentProp{}, false
	case name.Kind == NamePath && len(name.Segments) > 1:
		v.errors.AddErrorf(attr.Position, "only simple identifiers are supported as component prop names, got %s", name.Value)
		return ComponentProp{}, false
	}

	normalized := normalizePropName(name.Value)
	if !isPropIdentifier(normalized) {
		v.errors.AddErrorf(attr.Position, "invalid prop name `%s`", name.Value)
		return ComponentProp{}, false
	}

	field := exportName(normalized)
	if field == "Children" {
		v.errors.AddHint(attr.Position, "the `children` prop is reserved for components", "pass children between the opening and closing tags")
		return ComponentProp{}, false
	}

	value := attr.Value
	switch value.Kind {
	case ValueNone:
		value = AttributeValue{Kind: ValueImplicitTrue, Text: "true", Position: attr.Position}
	case ValueExpr:
		if !isExpr(value.Text) {
			v.errors.AddErrorf(value.Position, "component prop values must be Go expressions: %s", name.Value)
			return ComponentProp{}, false
		}
	}

	return ComponentProp{Name: normalized, Field: field, Value: value, Pos: attr.Position}, true
}

// lowerChildren turns the children of a component tag into its Children
// field. A lone block is passed through as an expression. Anything else is
// lowered as a nested template, dropped when it lowers to nothing.
func (v *Visitor) lowerChildren(el *Element) *Children {
	if len(el.Children) == 0 {
		return nil
	}

	if len(el.Children) == 1 {
		if b, ok := el.Children[0].(*Block); ok {
			if !isExpr(b.Code) {
				v.errors.AddError(b.Position, "component children blocks must be Go expressions")
				return nil
			}
			return &Children{Expr: b.Code, Pos: b.Position}
		}
	}

	nested := NewVisitor(v.cfg).Lower(el.Children)
	v.errors.Merge(nested.Diagnostics)
	v.hints = append(v.hints, nested.Hints...)
	nested.Hints = nil

	if nested.IsEmpty() {
		return nil
	}
	return &Children{Template: nested, Pos: el.Children[0].Pos()}
}

package markupgen

// Op is the kind of an Instruction.
type Op int

const (
	OpDoctype Op = iota
	OpOpenTagStart
	OpAttributeName
	OpAttributeValue
	OpOpenTagEnd
	OpSelfCloseTag
	OpEndTag
	OpText
	OpRawText
	OpComment
	OpDynamicAttributes
	OpDynamicContent
	OpComponent
)

var opNames = map[Op]string{
	OpDoctype:           "Doctype",
	OpOpenTagStart:      "OpenTagStart",
	OpAttributeName:     "AttributeName",
	OpAttributeValue:    "AttributeValue",
	OpOpenTagEnd:        "OpenTagEnd",
	OpSelfCloseTag:      "SelfCloseTag",
	OpEndTag:            "EndTag",
	OpText:              "Text",
	OpRawText:           "RawText",
	OpComment:           "Comment",
	OpDynamicAttributes: "DynamicAttributes",
	OpDynamicContent:    "DynamicContent",
	OpComponent:         "Component",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "Op(?)"
}

// Instruction is one formatter operation of a lowered template.
//
// Text holds the tag or attribute name, doctype value, text or comment.
// Value holds the attribute value or the Go code of a dynamic instruction.
type Instruction struct {
	Op        Op
	Text      string
	Value     AttributeValue
	Component *Component
	Pos       Position
}

// Component is a component tag lowered to a struct literal.
type Component struct {
	Path     string // type name as written, with type arguments
	Props    []ComponentProp
	Children *Children
	Pos      Position
}

// ComponentProp is one field initializer of a component literal.
type ComponentProp struct {
	Name  string // normalized identifier
	Field string // exported Go field name
	Value AttributeValue
	Pos   Position
}

// Children is the children field of a component: either a single Go
// expression or a nested template rendered through a closure.
type Children struct {
	Expr     string
	Template *Template
	Pos      Position
}

// HintKind tells which part of a tag a Hint points at.
type HintKind int

const (
	HintOpenTag HintKind = iota
	HintCloseTag
	HintProp
)

// Hint records where a markup name refers to Go code, for editor
// navigation. Only component hints produce generated code.
type Hint struct {
	Kind      HintKind
	Path      string // tag name, with type arguments for components
	Field     string // field name for HintProp
	Pos       Position
	Component bool
}

// Template is the result of lowering one markup tree.
type Template struct {
	Instructions []Instruction
	Diagnostics  *ErrorList
	Hints        []Hint
}

// IsEmpty reports whether the template has neither instructions nor
// diagnostics.
func (t *Template) IsEmpty() bool {
	return len(t.Instructions) == 0 && !t.Diagnostics.HasErrors()
}

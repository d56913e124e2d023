package markupgen

import "strings"

// Node is the interface implemented by all markup nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Comment is a single Go comment (line or block) at the top level of a file.
type Comment struct {
	Text     string   // raw text including delimiters (// or /* */)
	Position Position // start position
	EndLine  int
	IsBlock  bool
}

// CommentGroup is a sequence of comments with no blank lines between them.
type CommentGroup struct {
	List []*Comment
}

// Text returns the text of the comment group, with comment markers removed
// and lines joined with newlines.
func (g *CommentGroup) Text() string {
	if g == nil || len(g.List) == 0 {
		return ""
	}
	var lines []string
	for _, c := range g.List {
		text := c.Text
		if c.IsBlock {
			text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		} else {
			text = strings.TrimPrefix(text, "//")
		}
		lines = append(lines, strings.TrimSpace(text))
	}
	return strings.Join(lines, "\n")
}

// File is a parsed .gsx source file.
type File struct {
	Package  string
	Imports  []Import
	Decls    []*GoDecl // top-level type, const and var declarations
	Funcs    []*GoFunc // top-level Go functions
	Templs   []*Templ
	Position Position

	LeadingComments *CommentGroup // comments before the package clause
}

// Import is a Go import statement.
type Import struct {
	Alias    string // optional alias (empty if none)
	Path     string
	Position Position
}

// GoDecl is a top-level type, const or var declaration copied through
// unchanged.
type GoDecl struct {
	Kind            string // "type", "const", or "var"
	Code            string
	Position        Position
	LeadingComments *CommentGroup
}

// GoFunc is a top-level Go function. Functions carrying a component
// directive have their signature rewritten during generation.
type GoFunc struct {
	Code            string // the entire function definition, from "func"
	Position        Position
	LeadingComments *CommentGroup
	Directive       *ComponentDirective
}

// Templ is a template declaration: templ Name[TypeParams](Params) { Body }.
type Templ struct {
	Name            string
	TypeParams      string // raw source between [ and ], empty if none
	Params          string // raw source between ( and )
	Body            []Node
	Position        Position
	LeadingComments *CommentGroup
	Directive       *ComponentDirective
}

// ComponentDirective is a //markup:component line in a doc comment.
type ComponentDirective struct {
	TypeName string // explicit type name, empty when omitted
	Position Position
}

// NameKind is the syntactic shape of a tag or attribute name.
type NameKind int

const (
	// NamePath is a dotted identifier path such as div, Card or ui.Card.
	NamePath NameKind = iota
	// NamePunctuated contains '-' or ':' separators, e.g. my-element or svg:rect.
	NamePunctuated
	// NameBlock is a computed name written as {expr}.
	NameBlock
)

// NodeName is the name of a tag or attribute.
type NodeName struct {
	Kind     NameKind
	Value    string   // name as written, without type arguments; code for blocks
	Segments []string // path segments for NamePath
	TypeArgs string   // raw type arguments between [ and ], paths only
	Position Position
}

// String returns the name as written, with its type arguments.
func (n NodeName) String() string {
	if n.Kind == NameBlock {
		return "{" + n.Value + "}"
	}
	if n.TypeArgs != "" {
		return n.Value + "[" + n.TypeArgs + "]"
	}
	return n.Value
}

// Doctype is <!DOCTYPE value>.
type Doctype struct {
	Value    string
	Position Position
}

func (d *Doctype) node()        {}
func (d *Doctype) Pos() Position { return d.Position }

// Element is <name attrs>children</name> or <name attrs />.
type Element struct {
	Name       NodeName
	Attributes []*Attribute
	Children   []Node
	SelfClose  bool      // written as <name />
	CloseName  *NodeName // nil when there is no closing tag
	Position   Position
}

func (e *Element) node()        {}
func (e *Element) Pos() Position { return e.Position }

// Text is literal text content, already whitespace-normalized.
type Text struct {
	Value    string
	Position Position
}

func (t *Text) node()        {}
func (t *Text) Pos() Position { return t.Position }

// RawText is the verbatim body of a raw-text element such as script.
type RawText struct {
	Value    string
	Position Position
}

func (r *RawText) node()        {}
func (r *RawText) Pos() Position { return r.Position }

// Fragment is <>children</>.
type Fragment struct {
	Children []Node
	Position Position
}

func (f *Fragment) node()        {}
func (f *Fragment) Pos() Position { return f.Position }

// MarkupComment is <!-- value -->.
type MarkupComment struct {
	Value    string
	Position Position
}

func (c *MarkupComment) node()        {}
func (c *MarkupComment) Pos() Position { return c.Position }

// Block is Go code in braces used as content.
type Block struct {
	Code     string // trimmed source between the braces
	Position Position
}

func (b *Block) node()        {}
func (b *Block) Pos() Position { return b.Position }

// AttributeKind is the syntactic form of an attribute.
type AttributeKind int

const (
	// AttrKeyed is name, name=value, or {expr}=value.
	AttrKeyed AttributeKind = iota
	// AttrBlock is {expr} producing a whole attribute set.
	AttrBlock
	// AttrBinding is name(args) or name(args)=value.
	AttrBinding
)

// ValueKind is the form of an attribute value.
type ValueKind int

const (
	// ValueNone means no value was written.
	ValueNone ValueKind = iota
	// ValueConstant is a string literal, already unquoted.
	ValueConstant
	// ValueExpr is Go source: a block, a number or an identifier path.
	ValueExpr
	// ValueImplicitTrue is the true given to a component prop written
	// without a value. Only lowering produces it.
	ValueImplicitTrue
)

// AttributeValue is the value side of a keyed attribute.
type AttributeValue struct {
	Kind     ValueKind
	Text     string
	Position Position
}

// Attribute is one attribute of an opening tag.
type Attribute struct {
	Kind     AttributeKind
	Name     NodeName       // AttrKeyed and AttrBinding
	Value    AttributeValue // AttrKeyed
	Code     string         // AttrBlock
	Args     string         // AttrBinding
	Position Position
}

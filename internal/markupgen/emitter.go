package markupgen

import (
	"fmt"
	"strconv"
	"strings"
)

// formatterVar is the formatter parameter of every generated template.
const formatterVar = "__html"

// Emitter turns lowered templates into Go statements against formatterVar.
// Each instruction becomes one formatter call, in order.
type Emitter struct {
	w         *codeWriter
	runtime   string // qualifier of the runtime package, empty inside it
	sourceMap *SourceMap
}

// NewEmitter creates an emitter that refers to the runtime package by the
// import name runtime. sm may be nil.
func NewEmitter(runtime string, sm *SourceMap) *Emitter {
	return &Emitter{w: &codeWriter{}, runtime: runtime, sourceMap: sm}
}

// String returns the statements emitted so far.
func (e *Emitter) String() string {
	return e.w.buf.String()
}

// Emit writes the statements for t followed by its editor hints.
func (e *Emitter) Emit(t *Template) {
	e.emitInstructions(t.Instructions)
	e.emitHints(t.Hints)
}

func (e *Emitter) qualify(name string) string {
	if e.runtime == "" {
		return name
	}
	return e.runtime + "." + name
}

func (e *Emitter) emitInstructions(instructions []Instruction) {
	for _, in := range instructions {
		e.emitInstruction(in)
	}
}

func (e *Emitter) emitInstruction(in Instruction) {
	switch in.Op {
	case OpDoctype:
		e.call("WriteDoctype(%s)", strconv.Quote(in.Text))
	case OpOpenTagStart:
		e.call("WriteOpenTagStart(%s)", strconv.Quote(in.Text))
	case OpAttributeName:
		e.call("WriteAttributeName(%s)", strconv.Quote(in.Text))
	case OpAttributeValue:
		e.checked("WriteAttributeValue", in.Value)
	case OpOpenTagEnd:
		e.call("WriteOpenTagEnd()")
	case OpSelfCloseTag:
		e.call("WriteSelfCloseTag()")
	case OpEndTag:
		e.call("WriteEndTag(%s)", strconv.Quote(in.Text))
	case OpText, OpRawText:
		e.call("WriteRaw(%s)", strconv.Quote(in.Text))
	case OpComment:
		e.call("WriteComment(%s)", strconv.Quote(in.Text))
	case OpDynamicAttributes:
		e.checked("WriteAttributes", in.Value)
	case OpDynamicContent:
		e.checked("WriteContent", in.Value)
	case OpComponent:
		e.emitComponent(in.Component)
	}
}

// call writes an unchecked formatter call.
func (e *Emitter) call(format string, args ...any) {
	e.w.writeIndent()
	e.w.write(formatterVar + "." + fmt.Sprintf(format, args...) + "\n")
}

// checked writes a formatter call whose error returns from the template.
func (e *Emitter) checked(method string, v AttributeValue) {
	prefix := "if err := " + formatterVar + "." + method + "("
	e.w.writeIndent()
	if v.Kind == ValueExpr && !strings.Contains(v.Text, "\n") {
		e.sourceMap.add(e.w.line, e.w.indent+len(prefix), v.Position, len(v.Text))
	}
	e.w.write(prefix + e.valueExpr(v) + "); err != nil {\n")
	e.returnErr()
}

func (e *Emitter) returnErr() {
	e.w.indent++
	e.w.writeln("return err")
	e.w.indent--
	e.w.writeln("}")
}

// valueExpr returns v as a Go expression. Code that is not a single
// expression is run as a function body.
func (e *Emitter) valueExpr(v AttributeValue) string {
	switch v.Kind {
	case ValueConstant:
		return strconv.Quote(v.Text)
	case ValueImplicitTrue:
		return "true"
	}
	if isExpr(v.Text) {
		return v.Text
	}
	return "func() any {\n" + v.Text + "\n}()"
}

func (e *Emitter) emitComponent(c *Component) {
	e.w.writef("if err := %s.WriteComponent(%s{\n", formatterVar, c.Path)
	e.w.indent++
	for _, prop := range c.Props {
		e.w.writef("%s: %s,\n", prop.Field, e.valueExpr(prop.Value))
	}
	if c.Children != nil {
		e.emitChildren(c.Children)
	}
	e.w.indent--
	e.w.writeln("}); err != nil {")
	e.returnErr()
}

func (e *Emitter) emitChildren(ch *Children) {
	if ch.Template == nil {
		e.w.writef("Children: %s,\n", ch.Expr)
		return
	}
	e.w.writef("Children: %s(func(%s *%s) error {\n", e.qualify("ContentFunc"), formatterVar, e.qualify("Formatter"))
	e.w.indent++
	e.emitInstructions(ch.Template.Instructions)
	e.w.writeln("return nil")
	e.w.indent--
	e.w.writeln("}),")
}

// emitHints writes a never-executed block naming every component type and
// field used by the template, so editors can resolve them through the
// source map.
func (e *Emitter) emitHints(hints []Hint) {
	var component []Hint
	for _, h := range hints {
		if h.Component {
			component = append(component, h)
		}
	}
	if len(component) == 0 {
		return
	}

	e.w.writeln("if false {")
	e.w.indent++
	for _, h := range component {
		e.w.writeIndent()
		col := e.w.indent + len("_ = ")
		if h.Kind == HintProp {
			e.sourceMap.add(e.w.line, col+len(h.Path)+len("{}."), h.Pos, len(h.Field))
			e.w.write("_ = " + h.Path + "{}." + h.Field + "\n")
			continue
		}
		e.sourceMap.add(e.w.line, col, h.Pos, len(h.Path))
		e.w.write("_ = " + h.Path + "{}\n")
	}
	e.w.indent--
	e.w.writeln("}")
}

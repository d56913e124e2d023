package markupgen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/scanner"
	"go/token"
	"strings"
)

// ComponentType is a component function lowered to a struct type whose
// Format method calls the function with the struct's fields.
type ComponentType struct {
	Name       string // generated type name
	Func       string // wrapped function name
	TypeParams []TypeParam
	Fields     []ComponentField

	// Header is the function signature with opaque interface parameters
	// replaced by type parameters, without a body.
	Header string
	// Decl is the whole function declaration with the rewritten signature.
	Decl string
}

// TypeParam is one type parameter of a component type. Synthesized
// parameters come after the function's own.
type TypeParam struct {
	Name       string
	Constraint string
}

// ComponentField is the struct field for one function parameter.
type ComponentField struct {
	Name     string
	Type     string // field type; []T for a variadic parameter
	Variadic bool
}

// componentPrefix makes a function declaration a parseable file.
const componentPrefix = "package p\n"

// LowerComponent parses code, a single function declaration starting at
// at, and lowers it to a component type named typeName, or the exported
// function name when typeName is empty. Problems with the signature are
// diagnosed and lowering continues with the remaining parameters.
func LowerComponent(code string, at Position, typeName string) (*ComponentType, *ErrorList) {
	l := &componentLowerer{
		errors: NewErrorList(),
		fset:   token.NewFileSet(),
		code:   code,
		at:     at,
		taken:  make(map[string]bool),
	}

	file, err := parser.ParseFile(l.fset, at.File, componentPrefix+code, parser.SkipObjectResolution)
	if err != nil {
		l.addParseErrors(err)
		return nil, l.errors
	}

	var decl *ast.FuncDecl
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			decl = fn
			break
		}
	}
	if decl == nil {
		l.errors.AddError(at, "component directive must be followed by a function")
		return nil, l.errors
	}

	ct := l.lower(decl, typeName)
	return ct, l.errors
}

type componentLowerer struct {
	errors *ErrorList
	fset   *token.FileSet
	code   string
	at     Position

	// taken holds every type parameter name in use.
	taken map[string]bool
	// synthesized type parameters, in order of creation
	synthesized []*ast.Field
}

// position maps a position in the parsed file back to the .gsx file.
func (l *componentLowerer) position(p token.Pos) Position {
	tp := l.fset.Position(p)
	return l.positionAt(tp.Line, tp.Column)
}

func (l *componentLowerer) positionAt(line, col int) Position {
	line -= strings.Count(componentPrefix, "\n")
	if line <= 1 {
		return Position{File: l.at.File, Line: l.at.Line, Column: l.at.Column + col - 1}
	}
	return Position{File: l.at.File, Line: l.at.Line + line - 1, Column: col}
}

func (l *componentLowerer) addParseErrors(err error) {
	list, ok := err.(scanner.ErrorList)
	if !ok {
		l.errors.AddErrorf(l.at, "parse component function: %v", err)
		return
	}
	for _, e := range list {
		l.errors.AddError(l.positionAt(e.Pos.Line, e.Pos.Column), e.Msg)
	}
}

func (l *componentLowerer) lower(decl *ast.FuncDecl, typeName string) *ComponentType {
	if typeName == "" {
		typeName = exportName(decl.Name.Name)
	}
	ct := &ComponentType{Name: typeName, Func: decl.Name.Name}
	namePos := l.position(decl.Name.Pos())

	if typeName == decl.Name.Name {
		l.errors.AddHint(namePos, "component type name must differ from the function name", "rename the function or give the directive a type name")
	}
	if decl.Recv != nil {
		l.errors.AddError(l.position(decl.Recv.Pos()), "component function must not have a receiver")
	}
	if decl.Body == nil {
		l.errors.AddError(namePos, "component function must have a body")
	}
	if n := decl.Type.Results.NumFields(); n != 1 {
		l.errors.AddErrorf(namePos, "component function must return exactly one value, got %d", n)
	}

	if tps := decl.Type.TypeParams; tps != nil {
		for _, f := range tps.List {
			for _, name := range f.Names {
				l.taken[name.Name] = true
			}
		}
	}

	fieldNames := make(map[string]bool)
	for _, param := range decl.Type.Params.List {
		if len(param.Names) == 0 {
			l.errors.AddErrorf(l.position(param.Pos()), "unsupported parameter binding: parameters of component functions must be named")
			continue
		}
		for _, name := range param.Names {
			if name.Name == "_" {
				l.errors.AddError(l.position(name.Pos()), "unsupported parameter binding: blank parameters cannot become fields")
				continue
			}
			field := exportName(name.Name)
			if field == "Format" {
				l.errors.AddErrorf(l.position(name.Pos()), "parameter %s collides with the Format method of the component type", name.Name)
				continue
			}
			if fieldNames[field] {
				l.errors.AddErrorf(l.position(name.Pos()), "duplicate component field %s", field)
				continue
			}
			fieldNames[field] = true
			param.Type = l.replaceOpaque(param.Type, name.Name)
			ct.Fields = append(ct.Fields, l.field(field, param.Type))
		}
	}

	if len(l.synthesized) > 0 {
		if decl.Type.TypeParams == nil {
			decl.Type.TypeParams = &ast.FieldList{}
		}
		decl.Type.TypeParams.List = append(decl.Type.TypeParams.List, l.synthesized...)
	}
	if tps := decl.Type.TypeParams; tps != nil {
		for _, f := range tps.List {
			constraint := l.print(f.Type)
			for _, name := range f.Names {
				ct.TypeParams = append(ct.TypeParams, TypeParam{Name: name.Name, Constraint: constraint})
			}
		}
	}

	ct.Header, ct.Decl = l.rewrite(decl)
	return ct
}

// replaceOpaque replaces every non-empty interface literal in typ with a
// fresh type parameter named after base. Map keys and values get a Key and
// Value suffix.
func (l *componentLowerer) replaceOpaque(typ ast.Expr, base string) ast.Expr {
	switch t := typ.(type) {
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return t
		}
		return l.newTypeParam(base, t)
	case *ast.StarExpr:
		t.X = l.replaceOpaque(t.X, base)
	case *ast.ParenExpr:
		t.X = l.replaceOpaque(t.X, base)
	case *ast.ArrayType:
		t.Elt = l.replaceOpaque(t.Elt, base)
	case *ast.Ellipsis:
		t.Elt = l.replaceOpaque(t.Elt, base)
	case *ast.ChanType:
		t.Value = l.replaceOpaque(t.Value, base)
	case *ast.MapType:
		t.Key = l.replaceOpaque(t.Key, base+"_key")
		t.Value = l.replaceOpaque(t.Value, base+"_value")
	}
	return typ
}

// newTypeParam adds a type parameter T<Base> constrained by constraint,
// appending '_' until the name is unused.
func (l *componentLowerer) newTypeParam(base string, constraint ast.Expr) *ast.Ident {
	name := "T" + camelName(base)
	for l.taken[name] {
		name += "_"
	}
	l.taken[name] = true

	ident := &ast.Ident{Name: name, NamePos: constraint.Pos()}
	l.synthesized = append(l.synthesized, &ast.Field{
		Names: []*ast.Ident{ast.NewIdent(name)},
		Type:  constraint,
	})
	return ident
}

func (l *componentLowerer) field(name string, typ ast.Expr) ComponentField {
	if e, ok := typ.(*ast.Ellipsis); ok {
		return ComponentField{Name: name, Type: "[]" + l.print(e.Elt), Variadic: true}
	}
	return ComponentField{Name: name, Type: l.print(typ)}
}

// rewrite prints the declaration's signature and splices it in front of the
// original body.
func (l *componentLowerer) rewrite(decl *ast.FuncDecl) (header, full string) {
	body := decl.Body
	doc := decl.Doc
	decl.Body, decl.Doc = nil, nil
	header = l.print(decl)
	decl.Body, decl.Doc = body, doc

	if body == nil {
		return header, header
	}
	offset := l.fset.Position(body.Lbrace).Offset - len(componentPrefix)
	return header, header + " " + l.code[offset:]
}

func (l *componentLowerer) print(node any) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, l.fset, node); err != nil {
		return ""
	}
	return buf.String()
}

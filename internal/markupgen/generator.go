package markupgen

import (
	"bytes"
	"go/format"
	"strings"

	"golang.org/x/tools/imports"
)

const (
	// RuntimeImportPath is the import path of the runtime package that
	// generated code calls into.
	RuntimeImportPath = "github.com/grindlemire/go-markup"
	runtimeName       = "markup"
)

// Generator turns a parsed .gsx file into Go source.
type Generator struct {
	w          *codeWriter
	cfg        *Config
	sourceFile string
	runtime    string // qualifier of the runtime package in the output

	// SkipImports uses format.Source instead of imports.Process, which is
	// much faster and enough for tests.
	SkipImports bool

	sourceMap *SourceMap
}

// NewGenerator creates a generator with the default configuration.
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(nil)
}

// NewGeneratorWithConfig creates a generator whose templates are lowered
// with cfg. A nil cfg uses DefaultConfig.
func NewGeneratorWithConfig(cfg *Config) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Generator{w: &codeWriter{}, cfg: cfg}
}

// lowered is a file after every template and component was lowered.
type lowered struct {
	templates    map[*Templ]*Template
	headers      map[*Templ]string
	funcs        map[*GoFunc]*ComponentType
	components   []*ComponentType
	needsRuntime bool
}

// Check lowers every template and component of file and returns the
// collected diagnostics, or nil.
func (g *Generator) Check(file *File) error {
	g.runtime, _ = runtimeImport(file.Imports)
	_, errs := g.lower(file)
	return errs.Err()
}

// Generate produces Go source for file. Any diagnostic aborts generation
// and the returned error is the sorted *ErrorList.
func (g *Generator) Generate(file *File, sourceFile string) ([]byte, error) {
	g.w.reset()
	g.sourceFile = sourceFile
	g.sourceMap = NewSourceMap(sourceFile)

	var imported bool
	g.runtime, imported = runtimeImport(file.Imports)

	lw, errs := g.lower(file)
	if errs.HasErrors() {
		return nil, errs
	}

	g.generateHeader()
	g.generatePackage(file.Package)
	g.generateImports(file.Imports, lw.needsRuntime && !imported)

	firstContentLine := g.w.line

	for _, decl := range file.Decls {
		g.writeComments(decl.LeadingComments)
		g.w.write(decl.Code + "\n\n")
	}

	for _, fn := range file.Funcs {
		g.writeComments(fn.LeadingComments)
		code := fn.Code
		if ct := lw.funcs[fn]; ct != nil {
			code = ct.Decl
		}
		g.w.write(code + "\n\n")
	}

	for _, t := range file.Templs {
		g.generateTempl(t, lw.templates[t], lw.headers[t])
	}

	for _, ct := range lw.components {
		g.generateComponentType(ct)
	}

	if g.SkipImports {
		return format.Source(g.w.buf.Bytes())
	}

	pre := g.w.buf.Bytes()
	post, err := imports.Process(g.sourceFile, pre, nil)
	if err != nil {
		return nil, err
	}

	// imports.Process only rewrites the import block, so everything after it
	// moves by the same number of lines.
	g.sourceMap.Shift(firstContentLine, findFirstContentLineAfterImports(post)-firstContentLine)
	return post, nil
}

// lower runs the visitor over every templ body and lowers every component
// declaration.
func (g *Generator) lower(file *File) (*lowered, *ErrorList) {
	errs := NewErrorList()
	lw := &lowered{
		templates: make(map[*Templ]*Template),
		headers:   make(map[*Templ]string),
		funcs:     make(map[*GoFunc]*ComponentType),
	}

	for _, fn := range file.Funcs {
		if fn.Directive == nil {
			continue
		}
		ct, cerrs := LowerComponent(fn.Code, fn.Position, fn.Directive.TypeName)
		errs.Merge(cerrs)
		if ct != nil {
			lw.funcs[fn] = ct
			lw.components = append(lw.components, ct)
		}
	}

	for _, t := range file.Templs {
		tmpl := NewVisitor(g.cfg).Lower(t.Body)
		errs.Merge(tmpl.Diagnostics)
		lw.templates[t] = tmpl
		lw.needsRuntime = true

		if t.Directive == nil {
			continue
		}
		ct, cerrs := LowerComponent(g.templSignature(t)+" {}", t.Position, t.Directive.TypeName)
		errs.Merge(cerrs)
		if ct != nil {
			lw.headers[t] = ct.Header
			lw.components = append(lw.components, ct)
		}
	}

	if len(lw.components) > 0 {
		lw.needsRuntime = true
	}
	errs.Sort()
	return lw, errs
}

// runtimeImport returns the name the file uses for the runtime package, and
// whether the file imports it itself. A dot import makes the name empty.
func runtimeImport(imps []Import) (string, bool) {
	for _, imp := range imps {
		if imp.Path != RuntimeImportPath {
			continue
		}
		switch imp.Alias {
		case "":
			return runtimeName, true
		case ".":
			return "", true
		case "_":
			continue
		default:
			return imp.Alias, true
		}
	}
	return runtimeName, false
}

func (g *Generator) qualify(name string) string {
	if g.runtime == "" {
		return name
	}
	return g.runtime + "." + name
}

// GetSourceMap returns the source map of the last Generate call.
func (g *Generator) GetSourceMap() *SourceMap {
	return g.sourceMap
}

func (g *Generator) generateHeader() {
	g.w.writeln("// Code generated by markup generate. DO NOT EDIT.")
	if g.sourceFile != "" {
		g.w.writef("// Source: %s\n", g.sourceFile)
	}
	g.w.writeln("")
}

func (g *Generator) generatePackage(pkg string) {
	g.w.writef("package %s\n\n", pkg)
}

// generateImports writes the file's imports, plus the runtime import when
// the generated code needs it and the file does not import it.
func (g *Generator) generateImports(imps []Import, addRuntime bool) {
	if len(imps) == 0 && !addRuntime {
		return
	}

	g.w.writeln("import (")
	g.w.indent++
	for _, imp := range imps {
		if imp.Alias != "" {
			g.w.writef("%s %q\n", imp.Alias, imp.Path)
		} else {
			g.w.writef("%q\n", imp.Path)
		}
	}
	if addRuntime {
		if len(imps) > 0 {
			g.w.writeln("")
		}
		g.w.writef("%s %q\n", runtimeName, RuntimeImportPath)
	}
	g.w.indent--
	g.w.writeln(")")
	g.w.writeln("")
}

func (g *Generator) writeComments(cg *CommentGroup) {
	if cg == nil {
		return
	}
	for _, c := range cg.List {
		g.w.write(c.Text + "\n")
	}
}

// templSignature is the Go signature of a templ declaration.
func (g *Generator) templSignature(t *Templ) string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(t.Name)
	if t.TypeParams != "" {
		sb.WriteString("[" + t.TypeParams + "]")
	}
	sb.WriteString("(" + t.Params + ") ")
	sb.WriteString(g.qualify("Content"))
	return sb.String()
}

// generateTempl writes a templ as a function returning a ContentFunc.
// header replaces the signature for component templs.
func (g *Generator) generateTempl(t *Templ, tmpl *Template, header string) {
	g.writeComments(t.LeadingComments)
	if header == "" {
		header = g.templSignature(t)
	}
	g.w.write(header + " {\n")
	g.w.indent++
	g.w.writef("return %s(func(%s *%s) error {\n", g.qualify("ContentFunc"), formatterVar, g.qualify("Formatter"))
	g.w.indent++

	e := &Emitter{w: g.w, runtime: g.runtime, sourceMap: g.sourceMap}
	e.Emit(tmpl)

	g.w.writeln("return nil")
	g.w.indent--
	g.w.writeln("})")
	g.w.indent--
	g.w.writeln("}")
	g.w.writeln("")
}

// generateComponentType writes the struct for a component and its Format
// method.
func (g *Generator) generateComponentType(ct *ComponentType) {
	var params, args []string
	for _, tp := range ct.TypeParams {
		params = append(params, tp.Name+" "+tp.Constraint)
		args = append(args, tp.Name)
	}
	typeParams, typeArgs := "", ""
	if len(params) > 0 {
		typeParams = "[" + strings.Join(params, ", ") + "]"
		typeArgs = "[" + strings.Join(args, ", ") + "]"
	}

	g.w.writef("// %s is the component form of %s.\n", ct.Name, ct.Func)
	g.w.writef("type %s%s struct {\n", ct.Name, typeParams)
	g.w.indent++
	for _, f := range ct.Fields {
		g.w.writef("%s %s\n", f.Name, f.Type)
	}
	g.w.indent--
	g.w.writeln("}")
	g.w.writeln("")

	callArgs := make([]string, 0, len(ct.Fields))
	for _, f := range ct.Fields {
		arg := "c." + f.Name
		if f.Variadic {
			arg += "..."
		}
		callArgs = append(callArgs, arg)
	}

	g.w.writef("func (c %s%s) Format(f *%s) error {\n", ct.Name, typeArgs, g.qualify("Formatter"))
	g.w.indent++
	g.w.writef("return f.WriteContent(%s%s(%s))\n", ct.Func, typeArgs, strings.Join(callArgs, ", "))
	g.w.indent--
	g.w.writeln("}")
	g.w.writeln("")
}

// findFirstContentLineAfterImports returns the first non-blank line after
// the import block.
func findFirstContentLineAfterImports(code []byte) int {
	lines := bytes.Split(code, []byte("\n"))
	inImportBlock := false
	importsEnded := false

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		switch {
		case bytes.HasPrefix(trimmed, []byte("import (")):
			inImportBlock = true
			continue
		case inImportBlock && bytes.Equal(trimmed, []byte(")")):
			inImportBlock = false
			importsEnded = true
			continue
		case !inImportBlock && bytes.HasPrefix(trimmed, []byte("import ")):
			importsEnded = true
			continue
		}
		if importsEnded && len(trimmed) > 0 {
			return i
		}
	}
	return len(lines)
}

// GenerateString is Generate returning a string.
func (g *Generator) GenerateString(file *File, sourceFile string) (string, error) {
	data, err := g.Generate(file, sourceFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseAndGenerate parses and generates a .gsx source in one step.
func ParseAndGenerate(filename, source string) ([]byte, error) {
	return parseAndGenerate(filename, source, false)
}

// parseAndGenerateSkipImports is ParseAndGenerate with format.Source instead
// of imports.Process.
func parseAndGenerateSkipImports(filename, source string) ([]byte, error) {
	return parseAndGenerate(filename, source, true)
}

func parseAndGenerate(filename, source string, skipImports bool) ([]byte, error) {
	file, err := NewParser(NewLexer(filename, source)).ParseFile()
	if err != nil {
		return nil, err
	}

	gen := NewGenerator()
	gen.SkipImports = skipImports
	return gen.Generate(file, filename)
}

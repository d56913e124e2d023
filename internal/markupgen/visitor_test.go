package markupgen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instructionOpts compares instructions without positions, diagnostics or
// hints of nested templates.
var instructionOpts = cmp.Options{
	cmpopts.IgnoreTypes(Position{}),
	cmpopts.IgnoreFields(Template{}, "Diagnostics", "Hints"),
	cmpopts.EquateEmpty(),
}

func lower(t *testing.T, src string) *Template {
	t.Helper()
	nodes, errs := ParseMarkup("test.gsx", src, nil)
	require.NoError(t, errs.Err())
	return NewVisitor(nil).Lower(nodes)
}

func expr(code string) AttributeValue {
	return AttributeValue{Kind: ValueExpr, Text: code}
}

func constant(s string) AttributeValue {
	return AttributeValue{Kind: ValueConstant, Text: s}
}

func TestVisitor_Elements(t *testing.T) {
	type tc struct {
		input string
		want  []Instruction
	}

	div := []Instruction{
		{Op: OpOpenTagStart, Text: "div"},
		{Op: OpOpenTagEnd},
		{Op: OpEndTag, Text: "div"},
	}

	tests := map[string]tc{
		"empty element": {
			input: "<div></div>",
			want:  div,
		},
		"self-closed element still gets an end tag": {
			input: "<div />",
			want:  div,
		},
		"void element": {
			input: "<hr>",
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "hr"},
				{Op: OpSelfCloseTag},
			},
		},
		"self-closed void element": {
			input: "<br/>",
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "br"},
				{Op: OpSelfCloseTag},
			},
		},
		"attributes in source order": {
			input: `<input disabled type="text" value={v} {rest}>`,
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "input"},
				{Op: OpAttributeName, Text: "disabled"},
				{Op: OpAttributeName, Text: "type"},
				{Op: OpAttributeValue, Value: constant("text")},
				{Op: OpAttributeName, Text: "value"},
				{Op: OpAttributeValue, Value: expr("v")},
				{Op: OpDynamicAttributes, Value: expr("rest")},
				{Op: OpSelfCloseTag},
			},
		},
		"doctype comment text and content": {
			input: "<!DOCTYPE html><!-- c --><p>hi {name}</p>",
			want: []Instruction{
				{Op: OpDoctype, Text: "html"},
				{Op: OpComment, Text: " c "},
				{Op: OpOpenTagStart, Text: "p"},
				{Op: OpOpenTagEnd},
				{Op: OpText, Text: "hi "},
				{Op: OpDynamicContent, Value: expr("name")},
				{Op: OpEndTag, Text: "p"},
			},
		},
		"raw text element": {
			input: "<script>a<b</script>",
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "script"},
				{Op: OpOpenTagEnd},
				{Op: OpRawText, Text: "a<b"},
				{Op: OpEndTag, Text: "script"},
			},
		},
		"punctuated element": {
			input: `<my-el data-x="1"></my-el>`,
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "my-el"},
				{Op: OpAttributeName, Text: "data-x"},
				{Op: OpAttributeValue, Value: constant("1")},
				{Op: OpOpenTagEnd},
				{Op: OpEndTag, Text: "my-el"},
			},
		},
		"fragment emits only its children": {
			input: "<>a{b}</>",
			want: []Instruction{
				{Op: OpText, Text: "a"},
				{Op: OpDynamicContent, Value: expr("b")},
			},
		},
		"statement block": {
			input: "<p>{if x { return \"a\" }; return \"b\"}</p>",
			want: []Instruction{
				{Op: OpOpenTagStart, Text: "p"},
				{Op: OpOpenTagEnd},
				{Op: OpDynamicContent, Value: expr(`if x { return "a" }; return "b"`)},
				{Op: OpEndTag, Text: "p"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpl := lower(t, tt.input)
			require.NoError(t, tmpl.Diagnostics.Err())
			if diff := cmp.Diff(tt.want, tmpl.Instructions, instructionOpts); diff != "" {
				t.Errorf("instructions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVisitor_Components(t *testing.T) {
	type tc struct {
		input string
		want  *Component
	}

	tests := map[string]tc{
		"props": {
			input: `<Card title="x" count={2} active />`,
			want: &Component{Path: "Card", Props: []ComponentProp{
				{Name: "title", Field: "Title", Value: constant("x")},
				{Name: "count", Field: "Count", Value: expr("2")},
				{Name: "active", Field: "Active", Value: AttributeValue{Kind: ValueImplicitTrue, Text: "true"}},
			}},
		},
		"hyphenated prop": {
			input: `<Card data-id="1" />`,
			want: &Component{Path: "Card", Props: []ComponentProp{
				{Name: "data_id", Field: "Data_id", Value: constant("1")},
			}},
		},
		"qualified generic path": {
			input: `<ui.List[int] items={xs} />`,
			want: &Component{Path: "ui.List[int]", Props: []ComponentProp{
				{Name: "items", Field: "Items", Value: expr("xs")},
			}},
		},
		"single block child is an expression": {
			input: "<Card>{body}</Card>",
			want:  &Component{Path: "Card", Children: &Children{Expr: "body"}},
		},
		"markup children become a nested template": {
			input: "<Card><p>x</p></Card>",
			want: &Component{Path: "Card", Children: &Children{Template: &Template{
				Instructions: []Instruction{
					{Op: OpOpenTagStart, Text: "p"},
					{Op: OpOpenTagEnd},
					{Op: OpText, Text: "x"},
					{Op: OpEndTag, Text: "p"},
				},
			}}},
		},
		"whitespace-only children are dropped": {
			input: "<Card>\n\t\n</Card>",
			want:  &Component{Path: "Card"},
		},
		"comment-only block children are dropped": {
			input: "<Card>{/* nothing */}</Card>",
			want:  &Component{Path: "Card"},
		},
		"lowercase dotted name is a component": {
			input: "<ui.card />",
			want:  &Component{Path: "ui.card"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpl := lower(t, tt.input)
			require.NoError(t, tmpl.Diagnostics.Err())
			require.Len(t, tmpl.Instructions, 1)
			assert.Equal(t, OpComponent, tmpl.Instructions[0].Op)
			if diff := cmp.Diff(tt.want, tmpl.Instructions[0].Component, instructionOpts); diff != "" {
				t.Errorf("component mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVisitor_Diagnostics(t *testing.T) {
	type tc struct {
		input   string
		wantErr string
	}

	tests := map[string]tc{
		"dynamic element": {
			input:   "<{tag} />",
			wantErr: "dynamic elements are not supported",
		},
		"void element with children": {
			input:   "<hr>x</hr>",
			wantErr: "empty elements cannot have children: <hr> is a void element",
		},
		"attribute binding": {
			input:   "<a on(click)={x}></a>",
			wantErr: "attribute bindings are not supported: on(click)",
		},
		"dynamic attribute name": {
			input:   `<a {name}="x"></a>`,
			wantErr: "dynamic attribute names are not supported",
		},
		"type arguments on an element": {
			input:   "<div[int] />",
			wantErr: "type arguments are only supported on components",
		},
		"attribute set on a component": {
			input:   "<Card {attrs} />",
			wantErr: "only keyed attributes are supported",
		},
		"dynamic prop name": {
			input:   `<Card {name}="x" />`,
			wantErr: "dynamic attribute names are not supported",
		},
		"dotted prop name": {
			input:   `<Card a.b="x" />`,
			wantErr: "only simple identifiers are supported as component prop names, got a.b",
		},
		"punctuated prop name": {
			input:   `<Card x:y="1" />`,
			wantErr: "invalid prop name `x:y`",
		},
		"keyword prop name": {
			input:   `<Card type="x" />`,
			wantErr: "invalid prop name `type`",
		},
		"prop function": {
			input:   "<Card on(click)={f} />",
			wantErr: "component prop functions are not supported: on(click)",
		},
		"children prop": {
			input:   "<Card children={x} />",
			wantErr: "the `children` prop is reserved for components",
		},
		"capitalized children prop": {
			input:   "<Card Children />",
			wantErr: "the `children` prop is reserved for components",
		},
		"statement prop value": {
			input:   "<Card value={x := 1; return x} />",
			wantErr: "component prop values must be Go expressions: value",
		},
		"statement children block": {
			input:   "<Card>{x := 1; return x}</Card>",
			wantErr: "component children blocks must be Go expressions",
		},
		"diagnostic inside children": {
			input:   "<Card><hr>x</hr></Card>",
			wantErr: "empty elements cannot have children",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpl := lower(t, tt.input)
			require.Error(t, tmpl.Diagnostics.Err())
			assert.Contains(t, tmpl.Diagnostics.Error(), tt.wantErr)
		})
	}
}

func TestVisitor_ContinuesAfterDiagnostics(t *testing.T) {
	tmpl := lower(t, "<div><{x} /><Card children /></div><p></p>")

	require.Equal(t, 2, tmpl.Diagnostics.Len())
	errs := tmpl.Diagnostics.Errors()
	assert.Equal(t, "test.gsx:1:6: error: dynamic elements are not supported (use a component or an HTML element instead)", errs[0].Error())
	assert.Contains(t, errs[1].Message, "reserved")

	var ops []Op
	for _, in := range tmpl.Instructions {
		ops = append(ops, in.Op)
	}
	assert.Equal(t, []Op{
		OpOpenTagStart, OpOpenTagEnd,
		OpComponent,
		OpEndTag,
		OpOpenTagStart, OpOpenTagEnd, OpEndTag,
	}, ops)
}

func TestVisitor_Hints(t *testing.T) {
	tmpl := lower(t, `<Card title="x">y</Card><div class="a"></div>`)
	require.NoError(t, tmpl.Diagnostics.Err())

	want := []Hint{
		{Kind: HintOpenTag, Path: "Card", Pos: Position{File: "test.gsx", Line: 1, Column: 2}, Component: true},
		{Kind: HintProp, Path: "Card", Field: "Title", Pos: Position{File: "test.gsx", Line: 1, Column: 7}, Component: true},
		{Kind: HintCloseTag, Path: "Card", Pos: Position{File: "test.gsx", Line: 1, Column: 20}, Component: true},
		{Kind: HintOpenTag, Path: "div", Pos: Position{File: "test.gsx", Line: 1, Column: 26}},
		{Kind: HintProp, Path: "class", Pos: Position{File: "test.gsx", Line: 1, Column: 30}},
		{Kind: HintCloseTag, Path: "div", Pos: Position{File: "test.gsx", Line: 1, Column: 42}},
	}
	if diff := cmp.Diff(want, tmpl.Hints); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitor_NestedHintsMoveToParent(t *testing.T) {
	tmpl := lower(t, "<Outer><Inner /></Outer>")
	require.NoError(t, tmpl.Diagnostics.Err())

	var paths []string
	for _, h := range tmpl.Hints {
		paths = append(paths, h.Path)
	}
	assert.Equal(t, []string{"Outer", "Inner", "Outer"}, paths)

	children := tmpl.Instructions[0].Component.Children
	require.NotNil(t, children)
	require.NotNil(t, children.Template)
	assert.Empty(t, children.Template.Hints)
}

func TestVisitor_LowerIsRepeatable(t *testing.T) {
	nodes, errs := ParseMarkup("test.gsx", `<main><Card n={1}><b>x</b></Card>{y}<hr></main>`, nil)
	require.NoError(t, errs.Err())

	v := NewVisitor(nil)
	first := v.Lower(nodes)
	second := v.Lower(nodes)

	if diff := cmp.Diff(first.Instructions, second.Instructions, instructionOpts); diff != "" {
		t.Errorf("second lowering differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Hints, second.Hints)
}

func TestVisitorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	piece := gen.OneConstOf(
		"text", " ", "\n", "<p>a</p>", "<hr>", "{x}", "<Card v={1} />",
		"<Card><i>c</i></Card>", "<>{y}</>", "<!-- c -->", `<a href="/">l</a>`,
	)

	properties.Property("lowering is deterministic", prop.ForAll(
		func(pieces []string) bool {
			src := "<div>" + strings.Join(pieces, "") + "</div>"
			nodes, errs := ParseMarkup("p.gsx", src, nil)
			if errs.HasErrors() {
				return false
			}
			a := NewVisitor(nil).Lower(nodes)
			b := NewVisitor(nil).Lower(nodes)
			return cmp.Equal(a.Instructions, b.Instructions, instructionOpts)
		},
		gen.SliceOf(piece),
	))

	properties.Property("a fragment lowers like its children", prop.ForAll(
		func(pieces []string) bool {
			src := strings.Join(pieces, "")
			plain, errs := ParseMarkup("p.gsx", src, nil)
			if errs.HasErrors() {
				return false
			}
			wrapped, errs := ParseMarkup("p.gsx", "<>"+src+"</>", nil)
			if errs.HasErrors() {
				return false
			}
			a := NewVisitor(nil).Lower(plain)
			b := NewVisitor(nil).Lower(wrapped)
			return cmp.Equal(a.Instructions, b.Instructions, instructionOpts)
		},
		gen.SliceOf(piece),
	))

	properties.TestingRun(t)
}

package markupgen

import (
	"unicode"
	"unicode/utf8"
)

// TagKind is the lowering category of a tag name.
type TagKind int

const (
	// TagElement is a literal HTML element.
	TagElement TagKind = iota
	// TagComponent names a Go type that formats itself.
	TagComponent
	// TagDynamic is a tag named by a Go block, which cannot be lowered.
	TagDynamic
)

var tagKindNames = map[TagKind]string{
	TagElement:   "element",
	TagComponent: "component",
	TagDynamic:   "dynamic",
}

func (k TagKind) String() string {
	if name, ok := tagKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify decides how a tag name is lowered. A qualified path or a single
// segment starting with an upper-case letter is a component, a block is
// dynamic, and everything else is an HTML element.
func Classify(name NodeName) TagKind {
	switch name.Kind {
	case NameBlock:
		return TagDynamic
	case NamePunctuated:
		return TagElement
	}

	if len(name.Segments) > 1 {
		return TagComponent
	}
	if r, _ := utf8.DecodeRuneInString(name.Value); unicode.IsUpper(r) {
		return TagComponent
	}
	return TagElement
}

package markupgen

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Config controls how markup is parsed and lowered.
type Config struct {
	// VoidElements never take children and are written as <name />.
	VoidElements map[string]bool
	// RawTextElements hold text that is not parsed as markup.
	RawTextElements map[string]bool
}

var defaultVoidElements = []atom.Atom{
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr,
}

var defaultRawTextElements = []atom.Atom{atom.Script, atom.Style}

// DefaultConfig returns the standard HTML void and raw-text element sets.
func DefaultConfig() *Config {
	return &Config{
		VoidElements:    atomSet(defaultVoidElements),
		RawTextElements: atomSet(defaultRawTextElements),
	}
}

// NewConfig builds a Config from element name lists. An empty list keeps the
// default set for that category.
func NewConfig(voidElements, rawTextElements []string) *Config {
	cfg := DefaultConfig()
	if len(voidElements) > 0 {
		cfg.VoidElements = nameSet(voidElements)
	}
	if len(rawTextElements) > 0 {
		cfg.RawTextElements = nameSet(rawTextElements)
	}
	return cfg
}

// IsVoid reports whether name is a void element.
func (c *Config) IsVoid(name string) bool {
	return c.VoidElements[name]
}

// IsRawText reports whether name is a raw-text element.
func (c *Config) IsRawText(name string) bool {
	return c.RawTextElements[name]
}

func atomSet(atoms []atom.Atom) map[string]bool {
	set := make(map[string]bool, len(atoms))
	for _, a := range atoms {
		set[a.String()] = true
	}
	return set
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = true
		}
	}
	return set
}

package markupgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// SourceMap maps regions of a generated .go file back to the .gsx source.
// All lines and columns are 0-indexed.
type SourceMap struct {
	SourceFile string          `json:"sourceFile"`
	Mappings   []SourceMapping `json:"mappings"`
}

// SourceMapping is one mapped region.
type SourceMapping struct {
	GoLine  int `json:"goLine"`
	GoCol   int `json:"goCol"`
	GsxLine int `json:"gsxLine"`
	GsxCol  int `json:"gsxCol"`
	Length  int `json:"length"`
}

// NewSourceMap creates an empty source map for sourceFile.
func NewSourceMap(sourceFile string) *SourceMap {
	return &SourceMap{
		SourceFile: sourceFile,
		Mappings:   make([]SourceMapping, 0),
	}
}

// AddMapping appends a mapping.
func (sm *SourceMap) AddMapping(m SourceMapping) {
	sm.Mappings = append(sm.Mappings, m)
}

// add maps a region starting at a 1-based .gsx position.
func (sm *SourceMap) add(goLine, goCol int, pos Position, length int) {
	if sm == nil || pos.Line == 0 {
		return
	}
	sm.AddMapping(SourceMapping{
		GoLine:  goLine,
		GoCol:   goCol,
		GsxLine: pos.Line - 1,
		GsxCol:  pos.Column - 1,
		Length:  length,
	})
}

// Shift moves every mapping at or below fromLine by delta lines.
func (sm *SourceMap) Shift(fromLine, delta int) {
	if delta == 0 {
		return
	}
	for i := range sm.Mappings {
		if sm.Mappings[i].GoLine >= fromLine {
			sm.Mappings[i].GoLine += delta
		}
	}
}

// GoToGsx translates a generated position. found is false, and the input is
// returned, when no mapping covers it.
func (sm *SourceMap) GoToGsx(goLine, goCol int) (gsxLine, gsxCol int, found bool) {
	for _, m := range sm.Mappings {
		if m.GoLine == goLine && goCol >= m.GoCol && goCol <= m.GoCol+m.Length {
			return m.GsxLine, m.GsxCol + goCol - m.GoCol, true
		}
	}
	return goLine, goCol, false
}

// GsxToGo translates a source position into the generated file.
func (sm *SourceMap) GsxToGo(gsxLine, gsxCol int) (goLine, goCol int, found bool) {
	for _, m := range sm.Mappings {
		if m.GsxLine == gsxLine && gsxCol >= m.GsxCol && gsxCol <= m.GsxCol+m.Length {
			return m.GoLine, m.GoCol + gsxCol - m.GsxCol, true
		}
	}
	return gsxLine, gsxCol, false
}

// ToJSON serializes the source map.
func (sm *SourceMap) ToJSON() ([]byte, error) {
	return json.MarshalIndent(sm, "", "  ")
}

// ParseSourceMap parses a source map from JSON.
func ParseSourceMap(data []byte) (*SourceMap, error) {
	var sm SourceMap
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, fmt.Errorf("parse source map: %w", err)
	}
	return &sm, nil
}

// WriteFile writes the source map as JSON to path.
func (sm *SourceMap) WriteFile(path string) error {
	data, err := sm.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSourceMap reads a source map written by WriteFile.
func ReadSourceMap(path string) (*SourceMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSourceMap(data)
}

// SourceMapFileName returns the source map name for a generated file, e.g.
// "page_gsx.go" -> "page_gsx.go.map".
func SourceMapFileName(goFile string) string {
	return goFile + ".map"
}

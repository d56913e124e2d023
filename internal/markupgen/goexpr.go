package markupgen

import (
	"go/parser"
	"go/scanner"
	"go/token"
)

// isExpr reports whether code parses as a single Go expression.
func isExpr(code string) bool {
	_, err := parser.ParseExpr(code)
	return err == nil
}

// isEmptyCode reports whether code holds no Go tokens, only whitespace and
// comments.
func isEmptyCode(code string) bool {
	if code == "" {
		return true
	}
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(code))

	var s scanner.Scanner
	s.Init(file, []byte(code), func(token.Position, string) {}, 0)
	_, tok, _ := s.Scan()
	return tok == token.EOF
}

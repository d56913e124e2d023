// Package main provides the CLI for the .gsx markup compiler.
//
// Usage:
//
//	markup generate [path...]    Generate Go code from .gsx files
//	markup check [path...]       Check .gsx files without generating
//	markup watch [path...]       Regenerate whenever .gsx files change
//	markup config init|show      Manage .markup.yml
//	markup version               Print version information
//
// Paths may be files, directories (non-recursive) or "dir/..." patterns,
// which walk the tree below dir.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-markup/internal/markupgen"
)

// diagnostic is one problem in the JSON output of check.
type diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check .gsx files without generating code",
		Long: `Check parses and lowers .gsx files and reports every diagnostic without
writing anything. Useful for CI and editor integration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (use text or json)", format)
			}
			return a.check(cmd.Context(), args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format (text, json)")
	return cmd
}

func (a *app) check(ctx context.Context, paths []string, format string) error {
	log := a.log.WithComponent("check")
	ext := a.cfg.Generate.Extension

	files, err := collectFiles(paths, ext)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", ext)
	}
	log.Debug(ctx, "checking files", "count", len(files))

	diagnostics := []diagnostic{}
	var errorCount int
	for _, inputPath := range files {
		found, err := a.checkFile(inputPath)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			errorCount++
			diagnostics = append(diagnostics, found...)
		}
	}

	if format == "json" {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(diagnostics); err != nil {
			return err
		}
	} else {
		for _, d := range diagnostics {
			fmt.Fprintln(a.stdout, d.String())
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	log.Info(ctx, "all files passed checks", "count", len(files))
	return nil
}

// checkFile returns the diagnostics of one file. The error is reserved for
// failures that are not diagnostics, such as an unreadable file.
func (a *app) checkFile(inputPath string) ([]diagnostic, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	file, err := a.parse(inputPath, source)
	if err == nil {
		err = markupgen.NewGeneratorWithConfig(a.cfg.Markup()).Check(file)
	}
	if err == nil {
		return nil, nil
	}

	var list *markupgen.ErrorList
	if !errors.As(err, &list) {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	list.Sort()

	var out []diagnostic
	for _, e := range list.Errors() {
		out = append(out, diagnostic{
			File:    e.Pos.File,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Message,
			Hint:    e.Hint,
		})
	}
	return out, nil
}

func (d diagnostic) String() string {
	return (&markupgen.Error{
		Pos:     markupgen.Position{File: d.File, Line: d.Line, Column: d.Column},
		Message: d.Message,
		Hint:    d.Hint,
	}).Error()
}

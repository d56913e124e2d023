package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-markup/internal/markupgen"
)

func newGenerateCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "generate [path...]",
		Aliases: []string{"gen"},
		Short:   "Generate Go code from .gsx files",
		Long: `Generate compiles each .gsx file into a Go file next to it, e.g.
header.gsx -> header_gsx.go. Paths default to the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watch(cmd.Context(), args)
			}
			_, err := a.generate(cmd.Context(), args)
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and regenerate files as they change")
	cmd.Flags().Bool("source-map", false, "write a .map source map next to each generated file")
	cmd.Flags().Bool("skip-imports", false, "format output with go/format instead of goimports")
	return cmd
}

// generate compiles every file found under paths and returns the number of
// files written.
func (a *app) generate(ctx context.Context, paths []string) (int, error) {
	log := a.log.WithComponent("generate")
	ext := a.cfg.Generate.Extension

	files, err := collectFiles(paths, ext)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no %s files found", ext)
	}
	log.Debug(ctx, "found files", "count", len(files))

	var written, errorCount int
	for _, inputPath := range files {
		outputPath := outputFileName(inputPath, ext, a.cfg.Generate.Suffix)
		if err := a.generateFile(inputPath, outputPath); err != nil {
			a.reportError(inputPath, err)
			log.Debug(ctx, "generation failed", "file", inputPath)
			errorCount++
			continue
		}
		log.Info(ctx, "generated", "file", outputPath)
		written++
	}

	if errorCount > 0 {
		return written, fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return written, nil
}

// reportError prints the diagnostics of a failed file to stderr. Diagnostics
// already carry their position; other errors are prefixed with the path.
func (a *app) reportError(path string, err error) {
	var list *markupgen.ErrorList
	if errors.As(err, &list) {
		fmt.Fprintln(a.stderr, list.Error())
		return
	}
	fmt.Fprintf(a.stderr, "%s: %v\n", path, err)
}

// collectFiles finds every file ending in ext from paths.
// Supports:
//   - Direct file paths: "header.gsx"
//   - Directory paths: "./components"
//   - Recursive pattern: "./..."
//
// No paths means the current directory. Hidden directories and vendor are
// skipped when walking, and a file named twice is returned once.
func collectFiles(paths []string, ext string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		if root, ok := recursiveRoot(path); ok {
			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != root && skipDir(d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}
				if strings.HasSuffix(p, ext) {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
					add(filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, ext) {
			add(path)
		}
	}

	return files, nil
}

// recursiveRoot returns the directory of a "dir/..." pattern.
func recursiveRoot(path string) (string, bool) {
	if path != "..." && !strings.HasSuffix(path, "/...") {
		return "", false
	}
	root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
	if root == "" {
		root = "."
	}
	return root, true
}

func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// outputFileName converts a source filename to its generated Go filename.
// Examples with the default extension and suffix:
//
//	header.gsx     -> header_gsx.go
//	my-app.gsx     -> my_app_gsx.go
//	components.gsx -> components_gsx.go
func outputFileName(inputPath, ext, suffix string) string {
	dir := filepath.Dir(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext)

	// Go tooling dislikes hyphens in file names.
	name = strings.ReplaceAll(name, "-", "_")

	return filepath.Join(dir, name+suffix)
}

// generateFile compiles inputPath into outputPath, writing a source map
// next to it when configured.
func (a *app) generateFile(inputPath, outputPath string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	file, err := a.parse(inputPath, source)
	if err != nil {
		return err
	}

	generator := markupgen.NewGeneratorWithConfig(a.cfg.Markup())
	generator.SkipImports = a.cfg.Generate.SkipImports
	output, err := generator.Generate(file, filepath.Base(inputPath))
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	if a.cfg.Generate.SourceMap {
		if err := generator.GetSourceMap().WriteFile(markupgen.SourceMapFileName(outputPath)); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
	}
	return nil
}

// parse parses a source file. Diagnostics are reported against path so
// editors can jump to them.
func (a *app) parse(path string, source []byte) (*markupgen.File, error) {
	lexer := markupgen.NewLexer(path, string(source))
	return markupgen.NewParserWithConfig(lexer, a.cfg.Markup()).ParseFile()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-markup/internal/markupgen"
	"github.com/grindlemire/go-markup/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch [path...]",
		Aliases: []string{"w"},
		Short:   "Regenerate Go code whenever .gsx files change",
		Long: `Watch generates every file once, then keeps the generated Go files in
sync with their sources until interrupted. Deleting a source deletes its
generated file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args)
		},
	}
	cmd.Flags().Bool("source-map", false, "write a .map source map next to each generated file")
	cmd.Flags().Bool("skip-imports", false, "format output with go/format instead of goimports")
	return cmd
}

func (a *app) watch(ctx context.Context, paths []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := a.log.WithComponent("watch")
	if _, err := a.generate(ctx, paths); err != nil {
		log.Warn(ctx, err, "initial generation incomplete")
	}

	w, err := watcher.New(a.cfg.Watch.Debounce, a.log,
		watcher.ExtensionFilter(a.cfg.Generate.Extension),
		watcher.SuffixExcludeFilter(a.cfg.Generate.Suffix),
	)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	roots, err := watchRoots(paths)
	if err != nil {
		w.Close()
		return err
	}
	for _, root := range roots {
		if err := w.AddRecursive(root); err != nil {
			w.Close()
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	log.Info(ctx, "watching for changes", "roots", roots)
	return w.Run(ctx, a.regenerate)
}

// regenerate brings the generated files of a batch of changes up to date.
func (a *app) regenerate(ctx context.Context, events []watcher.Event) error {
	log := a.log.WithComponent("watch")
	ext, suffix := a.cfg.Generate.Extension, a.cfg.Generate.Suffix

	var errorCount int
	for _, ev := range events {
		outputPath := outputFileName(ev.Path, ext, suffix)

		if _, err := os.Stat(ev.Path); errors.Is(err, fs.ErrNotExist) {
			if err := removeGenerated(outputPath); err != nil {
				log.Warn(ctx, err, "removing generated file", "file", outputPath)
				continue
			}
			log.Info(ctx, "removed", "file", outputPath)
			continue
		}

		if err := a.generateFile(ev.Path, outputPath); err != nil {
			a.reportError(ev.Path, err)
			errorCount++
			continue
		}
		log.Info(ctx, "generated", "file", outputPath, "change", ev.Op.String())
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return nil
}

// removeGenerated deletes a generated file and its source map. Files that
// are already gone are fine.
func removeGenerated(outputPath string) error {
	var errs []error
	for _, p := range []string{outputPath, markupgen.SourceMapFileName(outputPath)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// watchRoots returns the directories to watch for paths: "dir/..." and
// plain directories watch dir, files watch their directory.
func watchRoots(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var roots []string
	seen := make(map[string]bool)
	for _, path := range paths {
		root, ok := recursiveRoot(path)
		if !ok {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
			root = path
			if !info.IsDir() {
				root = filepath.Dir(path)
			}
		}
		root = filepath.Clean(root)
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots, nil
}

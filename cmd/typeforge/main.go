// Command typeforge renders Go source from declarative module documents.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/typeforge/compiler/gen"
	"github.com/syssam/typeforge/compiler/load"
)

var (
	schemaPath string
	outDir     string
	pkgName    string
	workers    int
	watch      bool
)

func main() {
	root := &cobra.Command{
		Use:           "typeforge",
		Short:         "Assemble types from declarative descriptions and render them to Go source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(generateCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "typeforge:", err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every type in a module document to Go source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()
			sugar := logger.Sugar()

			if err := generate(cmd.Context(), sugar); err != nil {
				if !watch {
					return err
				}
				sugar.Errorw("generation failed", "error", err)
			}
			if !watch {
				return nil
			}
			return watchAndRegenerate(cmd.Context(), sugar)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "file", "f", "types.yaml", "module document to read")
	cmd.Flags().StringVarP(&outDir, "out", "o", "./gen", "output directory")
	cmd.Flags().StringVar(&pkgName, "pkg", "", "output package name (defaults to the output directory name)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel render workers (defaults to GOMAXPROCS)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the module document changes")
	return cmd
}

func generate(ctx context.Context, sugar *zap.SugaredLogger) error {
	start := time.Now()
	f, err := os.Open(schemaPath)
	if err != nil {
		return err
	}
	m, err := load.Read(f)
	f.Close()
	if err != nil {
		return err
	}
	types := m.BuiltTypes()
	sugar.Infow("module loaded",
		"module", m.Name(),
		"container", m.ContainerName(),
		"types", len(types),
	)

	g := gen.NewGenerator(types, outDir).WithPackage(pkgName).WithWorkers(workers)
	if err := g.Generate(ctx); err != nil {
		return err
	}
	metrics := g.Metrics()
	sugar.Infow("generation complete",
		"files", metrics.FilesGenerated,
		"bytes", metrics.TotalBytes,
		"elapsed", time.Since(start),
	)
	return nil
}

// watchAndRegenerate reruns generation whenever the document is rewritten.
// Watching the directory rather than the file keeps the watch alive across
// editors that replace the file on save.
func watchAndRegenerate(ctx context.Context, sugar *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(schemaPath)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(schemaPath)
	sugar.Infow("watching for changes", "file", target)

	// Debounce bursts of events from a single save.
	var timer *time.Timer
	trigger := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sugar.Errorw("watch error", "error", err)
		case <-trigger:
			if err := generate(ctx, sugar); err != nil {
				sugar.Errorw("generation failed", "error", err)
			}
		}
	}
}

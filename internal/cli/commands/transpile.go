package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlport/pkg/transpile"
)

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand() *cobra.Command {
	var (
		expr    string
		outDir  string
		watch   bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "transpile [files...]",
		Short: "Transpile SQL files or an inline expression between dialects",
		Long: `Transpile parses SQL in the source dialect and prints it in the
target dialect. Input comes from file arguments, directories (scanned
for the configured extension) or an inline statement via -e.`,
		Example: `  sqlport transpile -e "SELECT CAST(x AS DOUBLE)" --to postgres
  sqlport transpile queries/ --from ansi --to postgres -o out/
  sqlport transpile queries/ --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			opts := transpile.Options{Strict: cfg.Strict}

			if expr != "" {
				res, err := transpile.Transpile(expr, cfg.From, cfg.To, opts)
				if err != nil {
					return err
				}
				reportDiagnostics(cmd, res)
				fmt.Fprintln(cmd.OutOrStdout(), res.SQL())
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("no input: pass files, directories or -e")
			}

			files, err := collectFiles(args, cfg.Extension)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no %s files found", cfg.Extension)
			}

			run := func() error {
				return transpileFiles(cmd, files, outDir, cfg.From, cfg.To, opts, workers)
			}
			if err := run(); err != nil {
				if !watch {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			if watch {
				return watchAndRun(cmd, args, cfg.Extension, run)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expression", "e", "", "Transpile an inline SQL statement")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write outputs into this directory instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-transpile when input files change")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of files transpiled concurrently")
	return cmd
}

// collectFiles expands directory arguments into the files they contain.
func collectFiles(args []string, ext string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// transpileFiles fans the work out over an errgroup. Results print in a
// deterministic per-file order regardless of completion order.
func transpileFiles(cmd *cobra.Command, files []string, outDir, from, to string, opts transpile.Options, workers int) error {
	results := make([]transpile.Result, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			res, err := transpile.Transpile(string(src), from, to, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range files {
		res := results[i]
		for _, d := range res.Diagnostics {
			slog.Warn("unsupported construct", "file", path, "detail", d.Message)
		}
		out := res.SQL() + ";\n"
		if outDir == "" {
			if len(files) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", path)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			continue
		}
		target := filepath.Join(outDir, filepath.Base(path))
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
			return err
		}
		slog.Debug("wrote output", "file", target)
	}
	return nil
}

// watchAndRun re-runs the transpilation when any watched file changes.
// Events are debounced since editors fire several per save.
func watchAndRun(cmd *cobra.Command, args []string, ext string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			err = filepath.Walk(arg, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if fi.IsDir() {
					return watcher.Add(path)
				}
				return nil
			})
		} else {
			err = watcher.Add(arg)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes, Ctrl-C to stop")

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ext) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			if err := run(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watch error: %v\n", err)
		}
	}
}

func reportDiagnostics(cmd *cobra.Command, res transpile.Result) {
	for _, d := range res.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d.Message)
	}
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlport/pkg/transpile"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively transpile statements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			return runRepl(cmd, cfg.From, cfg.To, transpile.Options{Strict: cfg.Strict})
		},
	}
}

func runRepl(cmd *cobra.Command, from, to string, opts transpile.Options) error {
	historyFile := filepath.Join(os.TempDir(), "sqlport_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          from + "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Fprintf(cmd.OutOrStdout(), "sqlport REPL (%s -> %s)\n", from, to)
	fmt.Fprintln(cmd.OutOrStdout(), "End statements with ';'. Type .quit to exit.")
	fmt.Fprintln(cmd.OutOrStdout())

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(from + "> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".quit" || line == ".exit" {
			return nil
		}

		// Accumulate multi-line SQL until semicolon.
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("  ...> ")
			continue
		}
		rl.SetPrompt(from + "> ")

		sql := strings.TrimSuffix(buffer.String(), ";")
		buffer.Reset()

		res, err := transpile.Transpile(sql, from, to, opts)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		for _, d := range res.Diagnostics {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.SQL())
	}
}

package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlport/pkg/dialect"
	"github.com/leapstack-labs/sqlport/pkg/parser"
	"github.com/leapstack-labs/sqlport/pkg/token"
)

// NewTokensCommand creates the tokens command, a debugging aid that shows
// how the source dialect's lexer classifies the input.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <sql>",
		Short: "Show the token stream for a SQL snippet",
		Example: `  sqlport tokens "x ~~ 'a%'" --from postgres
  sqlport tokens "CREATE EXTENSION hstore" --from postgres`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			d, ok := dialect.Get(cfg.From)
			if !ok {
				return fmt.Errorf("%w: %s", dialect.ErrUnknownDialect, cfg.From)
			}

			sql := strings.Join(args, " ")
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Type", "Literal", "Line", "Col"})

			for i, tok := range parser.Tokenize(sql, d) {
				if tok.Type == token.EOF {
					break
				}
				t.AppendRow(table.Row{i + 1, tok.Type.String(), tok.Literal, tok.Pos.Line, tok.Pos.Column})
			}
			t.Render()
			return nil
		},
	}
}

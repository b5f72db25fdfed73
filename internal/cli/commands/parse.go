package commands

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var (
		dialectName string
		dump        bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a script and print it back in canonical layout",
		Long: `Parse a script and print each statement pretty-printed in the same
dialect. With --dump the syntax tree is printed instead.`,
		Example: `  sqlequiv parse query.sql --dialect oracle
  sqlequiv parse query.sql --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := dialectFlag(dialectName, cc.Cfg.SourceDialect)
			if err != nil {
				return err
			}
			text, err := loader.ReadScript(args[0])
			if err != nil {
				return err
			}
			stmts, err := parser.Parse(text, d)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			if dump {
				printer := pp.New()
				printer.SetOutput(cc.Renderer.Writer())
				printer.SetColoringEnabled(cc.Renderer.IsTTY())
				for _, stmt := range stmts {
					if _, err := printer.Println(stmt); err != nil {
						return err
					}
				}
				return nil
			}

			if len(stmts) > 0 {
				cc.Renderer.Println(strings.TrimRight(format.Script(stmts, d, format.WithPretty()), "\n") + ";")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Dialect of the script (default: source_dialect)")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the syntax tree")
	_ = cmd.RegisterFlagCompletionFunc("dialect", completeDialects)

	return cmd
}

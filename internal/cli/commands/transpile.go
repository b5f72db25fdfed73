package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/transpile"
)

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "transpile FILE",
		Short: "Rewrite a script from the source dialect into the target dialect",
		Example: `  sqlequiv transpile legacy.sql
  sqlequiv transpile legacy.sql --pretty > migrated.sql
  cat legacy.sql | sqlequiv transpile -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			from, err := dialectFlag(cc.Cfg.SourceDialect, "")
			if err != nil {
				return fmt.Errorf("failed to resolve source dialect: %w", err)
			}
			to, err := dialectFlag(cc.Cfg.TargetDialect, "")
			if err != nil {
				return fmt.Errorf("failed to resolve target dialect: %w", err)
			}

			text, err := loader.ReadScript(args[0])
			if err != nil {
				return err
			}
			var opts []format.Option
			if pretty {
				opts = append(opts, format.WithPretty())
			}
			out, err := transpile.TranspileText(text, from, to, opts...)
			if err != nil {
				return err
			}
			if out == "" {
				return nil
			}

			cc.Logger.Debug("transpiled script", "from", from.Name, "to", to.Name)
			cc.Renderer.Println(strings.TrimRight(out, "\n") + ";")
			return nil
		},
	}

	cmd.Flags().String("source-dialect", "", "Dialect of the input script (default oracle)")
	cmd.Flags().String("target-dialect", "", "Dialect to transpile into (default trino)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Print one clause per line")
	_ = cmd.RegisterFlagCompletionFunc("source-dialect", completeDialects)
	_ = cmd.RegisterFlagCompletionFunc("target-dialect", completeDialects)

	return cmd
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/loader"
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/normalize"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand() *cobra.Command {
	var (
		dialectName string
		maps        []string
		pretty      bool
	)

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the canonical form used for comparison",
		Long: `Run a script through the normalization pipeline of one dialect and
print the canonical text of each statement. Comments are dropped,
mapped tables are renamed, dialect constructs are canonicalized and
predicates are put into a stable order.`,
		Example: `  sqlequiv normalize migrated.sql
  sqlequiv normalize legacy.sql --dialect oracle --map sales=lake.default.sales`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := dialectFlag(dialectName, cc.Cfg.TargetDialect)
			if err != nil {
				return err
			}
			m, err := cc.mapping(maps)
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

			canon := normalize.NewCanonicalizer(d,
				normalize.WithBareDateParseUnwrap(cc.Cfg.UnwrapDateParse),
				normalize.WithMaxIterations(cc.Cfg.MaxIterations),
				normalize.WithLogger(cc.Logger),
			)
			pipeline := normalize.NewPipeline(d, canon, normalize.WithCNF(cc.Cfg.CNF))

			out := make([]core.Stmt, len(stmts))
			for i, stmt := range stmts {
				if out[i], err = pipeline.Run(stmt, m); err != nil {
					return fmt.Errorf("failed to normalize statement %d: %w", i+1, err)
				}
			}
			if len(out) == 0 {
				return nil
			}

			var opts []format.Option
			if pretty {
				opts = append(opts, format.WithPretty())
			}
			cc.Renderer.Println(strings.TrimRight(format.Script(out, d, opts...), "\n") + ";")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&dialectName, "dialect", "d", "", "Dialect of the script (default: target_dialect)")
	f.String("mapping", "", "YAML file mapping table names")
	f.StringArrayVar(&maps, "map", nil, "Map a table as name=catalog.schema.table (repeatable)")
	f.Bool("unwrap-date-parse", false, "Treat a bare date-parse call as its first argument")
	f.Bool("no-cnf", false, "Do not convert predicates to conjunctive normal form")
	f.BoolVar(&pretty, "pretty", false, "Print one clause per line")
	_ = cmd.RegisterFlagCompletionFunc("dialect", completeDialects)

	return cmd
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlequiv/internal/cli/output"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/transpile"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects and translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			infos := dialectInfos()

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{info.Name, info.Normalization, strings.Join(info.Translations, ", ")})
			}
			cc.Renderer.Table([]string{"Dialect", "Identifiers", "Transpiles to"}, rows)
			return nil
		},
	}
}

func dialectNames() []string {
	return dialect.List()
}

// dialectInfos describes every registered dialect with the dialects it
// can be transpiled into.
func dialectInfos() []output.DialectJSON {
	targets := make(map[string][]string)
	for _, pair := range transpile.Pairs() {
		from, to, ok := strings.Cut(pair, "->")
		if ok {
			targets[from] = append(targets[from], to)
		}
	}

	names := dialect.List()
	infos := make([]output.DialectJSON, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, output.DialectJSON{
			Name:          d.Name,
			Normalization: d.Identifiers.Normalization.String(),
			Translations:  targets[strings.ToLower(d.Name)],
		})
	}
	return infos
}

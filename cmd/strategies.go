package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dVakulen/tinkerpop/pkg/engine"
	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/structure/memory"
)

// NewStrategiesCommand returns the command printing the resolved strategy order.
func NewStrategiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "Print the order in which the configured strategies are applied",
		Long: `Resolve the configured strategies into their application order and print it.

Strategies are grouped by category (decoration, optimization, verification, finalization)
and ordered within a category by their prior/post constraints.`,
		RunE: printStrategies,
		Args: cobra.NoArgs,
	}

	bindEngineFlags(cmd)

	return cmd
}

func printStrategies(cmd *cobra.Command, _ []string) error {
	cfg, err := ReadConfig()
	if err != nil {
		return err
	}

	e, err := engine.New(cfg, memory.New(), engine.WithLogger(logger.MustNewLogger(cfg.Log.Format, cfg.Log.Level)))
	if err != nil {
		return err
	}
	defer e.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTRATEGY\tCATEGORY\tPRIOR\tPOST")
	for i, s := range e.Registry().Order() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1, s.Name(), s.Category(),
			strings.Join(s.ApplyPrior(), ","),
			strings.Join(s.ApplyPost(), ","),
		)
	}
	return w.Flush()
}

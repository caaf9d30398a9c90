package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dVakulen/tinkerpop/pkg/engine"
	"github.com/dVakulen/tinkerpop/pkg/logger"
	"github.com/dVakulen/tinkerpop/pkg/structure/memory"
	"github.com/dVakulen/tinkerpop/pkg/traversal"
	"github.com/dVakulen/tinkerpop/pkg/traversal/step"
)

const labelFlag = "label"

// NewExplainCommand returns the command compiling and running a sample traversal over
// the modern toy graph.
func NewExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Compile and run a sample groupCount traversal over the modern graph",
		Long: `Compile g.V().hasLabel(label).groupCount("labels").by(label()) with the configured
strategies, then run it over the modern toy graph. The traversal is printed before and
after compilation, followed by its result.`,
		RunE: explain,
		Args: cobra.NoArgs,
	}

	bindEngineFlags(cmd)
	cmd.Flags().String(labelFlag, "", "only count vertices with this label")

	return cmd
}

func explain(cmd *cobra.Command, _ []string) error {
	cfg, err := ReadConfig()
	if err != nil {
		return err
	}

	log := logger.MustNewLogger(cfg.Log.Format, cfg.Log.Level)

	tp := newTracerProvider(cfg.Trace)
	defer func() {
		if err := tp.Close(context.Background()); err != nil {
			log.Error("failed to flush traces", zap.Error(err))
		}
	}()

	e, err := engine.New(cfg, memory.NewModern(), engine.WithLogger(log))
	if err != nil {
		return err
	}
	defer e.Close()

	steps := []traversal.Step{step.NewGraphStep()}
	label, err := cmd.Flags().GetString(labelFlag)
	if err != nil {
		return err
	}
	if label != "" {
		steps = append(steps, step.NewHasLabelStep(label))
	}
	steps = append(steps, step.NewGroupCountStep("labels", traversal.Anonymous(step.NewLabelStep())))
	t := e.Traversal(steps...)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "original:  %s\n", t)

	if err := e.Compile(cmd.Context(), t); err != nil {
		return err
	}
	fmt.Fprintf(out, "compiled:  %s\n", t)

	res, err := e.Execute(cmd.Context(), t)
	if err != nil {
		return err
	}
	for _, v := range traversal.Values(res.Traversers) {
		fmt.Fprintf(out, "result:    %v\n", v)
	}
	return nil
}

package main

import (
	"os"

	"github.com/dVakulen/tinkerpop/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	rootCmd.AddCommand(cmd.NewStrategiesCommand())
	rootCmd.AddCommand(cmd.NewExplainCommand())
	rootCmd.AddCommand(cmd.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

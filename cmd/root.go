// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with TINKERPOP, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("TINKERPOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/tinkerpop", "$HOME/.tinkerpop", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	return &cobra.Command{
		Use:   "tinkerpop",
		Short: "A traversal strategy engine for property graphs",
		Long: `A traversal strategy engine for property graphs.

Traversals are compiled by an ordered set of strategies before they run. Strategies can
optimize a traversal, verify it, or delegate its whole execution to an actor runtime or a
remote provider.`,
		SilenceUsage: true,
	}
}

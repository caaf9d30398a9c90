package util

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestMustBindPFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("actors-partitions", 4, "")
	MustBindPFlag("actors.partitions", flags.Lookup("actors-partitions"))

	require.NoError(t, flags.Parse([]string{"--actors-partitions=7"}))
	require.Equal(t, 7, viper.GetInt("actors.partitions"))
}

func TestMustBindPFlagPanicsOnNilFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.Panics(t, func() {
		MustBindPFlag("missing", nil)
	})
}

func TestMustBindEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TINKERPOP_LOG_LEVEL", "debug")

	MustBindEnv("log.level", "TINKERPOP_LOG_LEVEL")
	require.Equal(t, "debug", viper.GetString("log.level"))
}

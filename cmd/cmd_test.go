package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/dVakulen/tinkerpop/internal/build"
	"github.com/dVakulen/tinkerpop/internal/config"
	"github.com/dVakulen/tinkerpop/pkg/telemetry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	root := NewRootCommand()
	root.AddCommand(NewStrategiesCommand())
	root.AddCommand(NewExplainCommand())
	root.AddCommand(NewVersionCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("tinkerpop version %s date %s commit id %s\n", build.Version, build.Date, build.Commit), out)
}

func TestStrategiesCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out, err := run(t, "strategies", "--log-level", "none")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		require.Equal(t, []string{"#", "STRATEGY", "CATEGORY", "PRIOR", "POST"}, strings.Fields(lines[0]))
		require.Equal(t, []string{"1", "SideEffectCapStrategy", "decoration", "ActorStrategy,RemoteStrategy"}, strings.Fields(lines[1]))
		require.Equal(t, []string{"2", "IdentityRemovalStrategy", "optimization"}, strings.Fields(lines[2]))
		require.Equal(t, []string{"3", "StandardVerificationStrategy", "verification"}, strings.Fields(lines[3]))
	})

	t.Run("actors_from_env", func(t *testing.T) {
		t.Setenv("TINKERPOP_ACTORS_ENABLED", "true")

		out, err := run(t, "strategies", "--log-level", "none", "--strategies", "StandardVerificationStrategy,SideEffectCapStrategy")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		require.Equal(t, "SideEffectCapStrategy", strings.Fields(lines[1])[1])
		require.Equal(t, []string{"2", "ActorStrategy", "decoration", "RemoteStrategy", "VertexProgramStrategy"}, strings.Fields(lines[2]))
		require.Equal(t, "StandardVerificationStrategy", strings.Fields(lines[3])[1])
	})

	t.Run("unknown_strategy", func(t *testing.T) {
		_, err := run(t, "strategies", "--log-level", "none", "--strategies", "NoSuchStrategy")
		require.ErrorContains(t, err, "unknown strategy: NoSuchStrategy")
	})

	t.Run("invalid_partitions", func(t *testing.T) {
		_, err := run(t, "strategies", "--log-level", "none", "--actors-partitions", "0")
		require.ErrorContains(t, err, "config 'actors.partitions' (0) must be greater than zero")
	})
}

func TestExplainCommand(t *testing.T) {
	t.Run("sequential", func(t *testing.T) {
		out, err := run(t, "explain", "--log-level", "none")
		require.NoError(t, err)
		require.Equal(t, strings.Join([]string{
			"original:  [GraphStep(vertex), GroupCountStep(labels,[LabelStep])]",
			"compiled:  [GraphStep(vertex), GroupCountStep(labels,[LabelStep]), SideEffectCapStep(labels)]",
			"result:    map[person:4 software:2]",
		}, "\n")+"\n", out)
	})

	t.Run("actors_with_label", func(t *testing.T) {
		out, err := run(t, "explain", "--log-level", "none", "--actors-enabled", "--actors-partitions", "3", "--label", "software")
		require.NoError(t, err)
		require.Contains(t, out, "compiled:  [ActorStep([GraphStep(vertex), HasLabelStep(software), GroupCountStep(labels,[LabelStep]), SideEffectCapStep(labels)])]")
		require.Contains(t, out, "result:    map[software:2]")
	})
}

func TestNewTracerProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	require.IsType(t, telemetry.Noop(), newTracerProvider(cfg.Trace))
}

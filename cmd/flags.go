package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dVakulen/tinkerpop/cmd/util"
	"github.com/dVakulen/tinkerpop/internal/config"
	"github.com/dVakulen/tinkerpop/pkg/telemetry"
)

var engineFlags = map[string]string{
	"log-format":                    "log.format",
	"log-level":                     "log.level",
	"strategies":                    "strategies.enabled",
	"actors-enabled":                "actors.enabled",
	"actors-partitions":             "actors.partitions",
	"actors-max-concurrent-workers": "actors.maxConcurrentWorkers",
	"remote-max-elapsed-time":       "remote.maxElapsedTime",
	"trace-enabled":                 "trace.enabled",
	"trace-otlp-endpoint":           "trace.otlp.endpoint",
	"trace-sample-ratio":            "trace.sampleRatio",
	"trace-service-name":            "trace.serviceName",
}

// bindEngineFlags registers the engine flags on command. The flags are bound to the
// equivalent config value managed by viper when the command runs, so that several
// commands can share the keys. This bridges the config between cobra flags and viper
// flags.
func bindEngineFlags(command *cobra.Command) {
	defaultConfig := config.DefaultConfig()
	flags := command.Flags()

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in")
	flags.String("log-level", defaultConfig.Log.Level, "the log level to use")
	flags.StringSlice("strategies", defaultConfig.Strategies.Enabled, "the strategies to register, in registration order")
	flags.Bool("actors-enabled", defaultConfig.Actors.Enabled, "execute root traversals on the local actor runtime")
	flags.Int("actors-partitions", defaultConfig.Actors.Partitions, "the number of partitions the graph is split into")
	flags.Int("actors-max-concurrent-workers", defaultConfig.Actors.MaxConcurrentWorkers, "the maximum number of actor workers running at the same time")
	flags.Duration("remote-max-elapsed-time", defaultConfig.Remote.MaxElapsedTime, "the maximum time spent retrying an unavailable remote provider")
	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing")
	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLP.Endpoint, "the endpoint of the trace collector")
	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of traces to sample. 1 means all, 0 means none")
	flags.String("trace-service-name", defaultConfig.Trace.ServiceName, "the service name included in sampled traces")

	// NOTE: if you add a new flag here, add it to engineFlags
	command.PreRun = func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()
		for flag, key := range engineFlags {
			util.MustBindPFlag(key, flags.Lookup(flag))
			util.MustBindEnv(key, "TINKERPOP_"+strings.ToUpper(strings.NewReplacer("-", "_").Replace(flag)))
		}
	}
}

func newTracerProvider(cfg config.TraceConfig) telemetry.TracerProvider {
	if !cfg.Enabled {
		return telemetry.Noop()
	}
	return telemetry.MustNewTracerProvider(
		telemetry.WithOTLPEndpoint(cfg.OTLP.Endpoint),
		telemetry.WithServiceName(cfg.ServiceName),
		telemetry.WithSamplingRatio(cfg.SampleRatio),
	)
}

// ReadConfig returns the configuration read from the config file, the environment and
// the flags, on top of the defaults.
func ReadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

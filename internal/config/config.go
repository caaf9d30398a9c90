// Package config contains all knobs and defaults used to configure the traversal
// engine when running from the command line.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dVakulen/tinkerpop/internal/build"
)

const (
	DefaultActorPartitions           = 4
	DefaultMaxConcurrentActorWorkers = 8
	DefaultRemoteMaxElapsedTime      = 10 * time.Second

	DefaultTraceOTLPEndpoint = "0.0.0.0:4317"
	DefaultTraceSampleRatio  = 0.2
	DefaultTraceServiceName  = build.ProjectName
)

// DefaultStrategies are the strategies enabled when none are configured, in
// registration order.
var DefaultStrategies = []string{
	"SideEffectCapStrategy",
	"IdentityRemovalStrategy",
	"StandardVerificationStrategy",
}

type LogConfig struct {
	// Format is the log format to use in the log output (e.g. 'text' or 'json')
	Format string

	// Level is the log level to use in the log output (e.g. 'none', 'debug', or 'info')
	Level string
}

type StrategiesConfig struct {
	// Enabled lists the names of the strategies to register, in registration order.
	Enabled []string
}

// ActorsConfig configures the in-process actor runtime.
type ActorsConfig struct {
	// Enabled registers the ActorStrategy even when it is not listed in
	// StrategiesConfig.Enabled.
	Enabled bool

	// Partitions is the number of hash partitions the graph is split into. A value
	// of 1 uses a single global partition.
	Partitions int

	MaxConcurrentWorkers int
}

type RemoteConfig struct {
	// MaxElapsedTime bounds the time spent retrying an unavailable remote provider.
	MaxElapsedTime time.Duration
}

type OTLPTraceConfig struct {
	Endpoint string
}

// TraceConfig configures the export of the spans recorded while compiling and
// executing traversals.
type TraceConfig struct {
	Enabled     bool
	OTLP        OTLPTraceConfig `mapstructure:"otlp"`
	SampleRatio float64
	ServiceName string
}

type Config struct {
	Log        LogConfig
	Strategies StrategiesConfig
	Actors     ActorsConfig
	Remote     RemoteConfig
	Trace      TraceConfig
}

// Verify returns an error when the configuration can not be used.
func (cfg *Config) Verify() error {
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("config 'log.format' must be one of ['text', 'json']")
	}

	if !slices.Contains([]string{"none", "debug", "info", "warn", "error"}, cfg.Log.Level) {
		return fmt.Errorf("config 'log.level' must be one of ['none', 'debug', 'info', 'warn', 'error']")
	}

	seen := make(map[string]struct{}, len(cfg.Strategies.Enabled))
	for _, name := range cfg.Strategies.Enabled {
		if name == "" {
			return errors.New("config 'strategies.enabled' contains an empty name")
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("config 'strategies.enabled' lists '%s' more than once", name)
		}
		seen[name] = struct{}{}
	}

	if cfg.Actors.Partitions < 1 {
		return fmt.Errorf("config 'actors.partitions' (%d) must be greater than zero", cfg.Actors.Partitions)
	}

	if cfg.Actors.MaxConcurrentWorkers < 1 {
		return fmt.Errorf(
			"config 'actors.maxConcurrentWorkers' (%d) must be greater than zero",
			cfg.Actors.MaxConcurrentWorkers,
		)
	}

	if cfg.Remote.MaxElapsedTime <= 0 {
		return fmt.Errorf("config 'remote.maxElapsedTime' (%s) must be greater than zero", cfg.Remote.MaxElapsedTime)
	}

	if cfg.Trace.SampleRatio < 0 || cfg.Trace.SampleRatio > 1 {
		return fmt.Errorf("config 'trace.sampleRatio' (%v) must be between 0 and 1", cfg.Trace.SampleRatio)
	}

	if cfg.Trace.Enabled && cfg.Trace.OTLP.Endpoint == "" {
		return errors.New("config 'trace.otlp.endpoint' is required when tracing is enabled")
	}

	return nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Strategies: StrategiesConfig{
			Enabled: slices.Clone(DefaultStrategies),
		},
		Actors: ActorsConfig{
			Partitions:           DefaultActorPartitions,
			MaxConcurrentWorkers: DefaultMaxConcurrentActorWorkers,
		},
		Remote: RemoteConfig{
			MaxElapsedTime: DefaultRemoteMaxElapsedTime,
		},
		Trace: TraceConfig{
			OTLP: OTLPTraceConfig{
				Endpoint: DefaultTraceOTLPEndpoint,
			},
			SampleRatio: DefaultTraceSampleRatio,
			ServiceName: DefaultTraceServiceName,
		},
	}
}

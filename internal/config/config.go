package config

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ydb-platform/decimal-bench/internal/xerrors"
)

const (
	DefaultSize  = 1 << 16
	DefaultSeed  = 12345
	DefaultScale = "1e39"

	DefaultWarmupIterations      = 3
	DefaultWarmupTime            = 5 * time.Second
	DefaultMeasurementIterations = 10
	DefaultMeasurementTime       = 10 * time.Second

	envPrefix = "DECIMAL_BENCH"
)

var (
	ErrWrongArgs = errors.New("wrong args")

	errInvalidConfig = errors.New("invalid config")
)

type Config struct {
	// Size is the number of operands per dataset array, a power of two
	Size  int
	Seed  int64
	Scale string

	WarmupIterations      int
	WarmupTime            time.Duration
	MeasurementIterations int
	MeasurementTime       time.Duration

	// Include is a regular expression selecting scenarios by name, empty selects all
	Include string

	LogLevel  string
	LogFormat string
}

// New parses command line arguments (without the program name) and DECIMAL_BENCH_* environment
// variables. Explicit flags take precedence over the environment.
func New(args []string, out io.Writer) (*Config, error) {
	fs := pflag.NewFlagSet("decimal-bench", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, mainHelp)
	}

	fs.Int("size", DefaultSize, "amount of operands in every dataset array, power of two")
	fs.Int64("seed", DefaultSeed, "seed of the pseudo-random operand source")
	fs.String("scale", DefaultScale, "operand magnitude scale")

	fs.Int("warmup-iterations", DefaultWarmupIterations, "amount of warmup iterations")
	fs.Duration("warmup-time", DefaultWarmupTime, "duration of every warmup iteration")
	fs.IntP("iterations", "i", DefaultMeasurementIterations, "amount of measurement iterations")
	fs.Duration("time", DefaultMeasurementTime, "duration of every measurement iteration")

	fs.StringP("include", "I", "", "regular expression selecting benchmarks to run")

	fs.String("log-level", "info", "lowest log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()

		return nil, ErrWrongArgs
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	cfg := &Config{
		Size:                  v.GetInt("size"),
		Seed:                  v.GetInt64("seed"),
		Scale:                 strings.TrimSpace(v.GetString("scale")),
		WarmupIterations:      v.GetInt("warmup-iterations"),
		WarmupTime:            v.GetDuration("warmup-time"),
		MeasurementIterations: v.GetInt("iterations"),
		MeasurementTime:       v.GetDuration("time"),
		Include:               v.GetString("include"),
		LogLevel:              strings.ToLower(strings.TrimSpace(v.GetString("log-level"))),
		LogFormat:             strings.ToLower(strings.TrimSpace(v.GetString("log-format"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Size < 8 || cfg.Size&(cfg.Size-1) != 0 {
		errs = append(errs, fmt.Errorf("%w: size %d is not a power of two of at least 8", errInvalidConfig, cfg.Size))
	}
	if cfg.Scale == "" {
		errs = append(errs, fmt.Errorf("%w: empty scale", errInvalidConfig))
	}
	if cfg.WarmupIterations < 0 {
		errs = append(errs, fmt.Errorf("%w: negative warmup iterations %d", errInvalidConfig, cfg.WarmupIterations))
	}
	if cfg.WarmupIterations > 0 && cfg.WarmupTime <= 0 {
		errs = append(errs, fmt.Errorf("%w: non-positive warmup time %v", errInvalidConfig, cfg.WarmupTime))
	}
	if cfg.MeasurementIterations < 1 {
		errs = append(errs, fmt.Errorf("%w: measurement iterations %d", errInvalidConfig, cfg.MeasurementIterations))
	}
	if cfg.MeasurementTime <= 0 {
		errs = append(errs, fmt.Errorf("%w: non-positive measurement time %v", errInvalidConfig, cfg.MeasurementTime))
	}
	if _, err := regexp.Compile(cfg.Include); err != nil {
		errs = append(errs, fmt.Errorf("%w: include: %w", errInvalidConfig, err))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log level %q", errInvalidConfig, cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", errInvalidConfig, cfg.LogFormat))
	}

	return xerrors.WithStackTrace(xerrors.Join(errs...))
}

// IncludeRegexp returns the compiled scenario filter or nil when every scenario is selected.
func (cfg *Config) IncludeRegexp() *regexp.Regexp {
	if cfg.Include == "" {
		return nil
	}

	return regexp.MustCompile(cfg.Include)
}

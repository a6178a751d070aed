package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/syssam/classgen/compiler/gen"
)

// defaultConfigFile is read from the working directory when --config is
// not given and the file exists.
const defaultConfigFile = "classgen.yaml"

// envPrefix prefixes the environment variables overriding file values,
// e.g. CLASSGEN_TARGET or CLASSGEN_LOG_LEVEL.
const envPrefix = "CLASSGEN"

// fileConfig is the YAML configuration file. Environment variables
// override the file, and command-line flags override both.
type fileConfig struct {
	Diagram    string       `mapstructure:"diagram"`
	Page       string       `mapstructure:"page"`
	Target     string       `mapstructure:"target"`
	Extension  string       `mapstructure:"extension"`
	Header     string       `mapstructure:"header"`
	Root       string       `mapstructure:"root"`
	Abstract   *string      `mapstructure:"abstract"`
	Allow      []string     `mapstructure:"allow"`
	RootFields []*gen.Field `mapstructure:"root_fields"`
	Plural     string       `mapstructure:"plural"`
	Merge      string       `mapstructure:"merge"`
	Strict     bool         `mapstructure:"strict"`
	Features   []string     `mapstructure:"features"`
	Workers    int          `mapstructure:"workers"`
	Log        logConfig    `mapstructure:"log"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envKeys are the configuration keys that can be set from the environment.
var envKeys = []string{
	"diagram", "page", "target", "extension", "header", "root", "abstract",
	"allow", "plural", "merge", "strict", "features", "workers", "log.level", "log.format",
}

// loadFileConfig reads the configuration file at path. With an empty path,
// defaultConfigFile is used if present.
func loadFileConfig(path string) (*fileConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	f := &fileConfig{}
	if err := v.UnmarshalExact(f); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// options translates the file configuration into generator options.
// Unset values keep the generator defaults.
func (f *fileConfig) options() ([]gen.Option, error) {
	var opts []gen.Option
	if f.Root != "" {
		opts = append(opts, gen.WithRootEntity(f.Root))
	}
	if f.Abstract != nil {
		opts = append(opts, gen.WithAbstractMarker(*f.Abstract))
	}
	if f.Allow != nil {
		opts = append(opts, gen.WithAllowList(f.Allow...))
	}
	if f.RootFields != nil {
		opts = append(opts, gen.WithRootFields(f.RootFields...))
	}
	if f.Target != "" {
		opts = append(opts, gen.WithTarget(f.Target))
	}
	if f.Extension != "" {
		opts = append(opts, gen.WithExtension(f.Extension))
	}
	if f.Header != "" {
		opts = append(opts, gen.WithHeader(f.Header))
	}
	plural, err := gen.PluralizerByName(f.Plural)
	if err != nil {
		return nil, err
	}
	opts = append(opts, gen.WithPluralizer(plural))
	merge, err := gen.MergePolicyByName(f.Merge)
	if err != nil {
		return nil, err
	}
	if f.Strict {
		merge = gen.RejectConflicts
	}
	opts = append(opts, gen.WithMergePolicy(merge))
	for _, name := range f.Features {
		disable := strings.HasPrefix(name, "-")
		feat, err := gen.FeatureByName(strings.TrimPrefix(name, "-"))
		if err != nil {
			return nil, err
		}
		if disable {
			opts = append(opts, gen.WithoutFeatures(feat))
		} else {
			opts = append(opts, gen.WithFeatures(feat))
		}
	}
	if f.Workers != 0 {
		opts = append(opts, gen.WithWorkers(f.Workers))
	}
	return opts, nil
}

// config builds the generator configuration.
func (f *fileConfig) config(log *slog.Logger) (*gen.Config, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(append(opts, gen.WithLogger(log))...)
}

// newLogger returns a slog logger writing to w in the given format
// ("text" or "json") at the given level.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: use text or json", format)
	}
}

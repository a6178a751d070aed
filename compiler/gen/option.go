package gen

import (
	"errors"
	"log/slog"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithRootEntity sets the name of the base entity. The abstract marker
// follows it unless WithAbstractMarker is also given.
func WithRootEntity(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Root", nil, "root entity name cannot be empty")
		}
		c.Root = name
		if !c.abstractSet {
			c.Abstract = name
		}
		return nil
	}
}

// WithAbstractMarker sets the name of the class emitted as abstract,
// regardless of the order it is given relative to WithRootEntity.
// An empty name disables abstract classes.
func WithAbstractMarker(name string) Option {
	return func(c *Config) error {
		c.Abstract = name
		c.abstractSet = true
		return nil
	}
}

// WithAllowList replaces the multi-word labels accepted as classes.
// Entries are normalized like vertex labels.
func WithAllowList(labels ...string) Option {
	return func(c *Config) error {
		allow := make([]string, 0, len(labels))
		for _, l := range labels {
			l = NormalizeLabel(l)
			if l == "" {
				return NewConfigError("Allow", nil, "allow-list entries cannot be empty")
			}
			allow = append(allow, l)
		}
		c.Allow = allow
		return nil
	}
}

// WithRootFields replaces the built-in fields of the root class.
func WithRootFields(fields ...*Field) Option {
	return func(c *Config) error {
		for _, f := range fields {
			if f == nil || f.Name == "" || f.Type == "" {
				return NewConfigError("RootFields", f, "field requires a name and a type")
			}
		}
		c.RootFields = fields
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithExtension sets the file extension of generated files.
// A missing leading dot is added.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		if ext == "" || ext == "." {
			return NewConfigError("Extension", ext, "extension cannot be empty")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extension = ext
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPluralizer sets the pluralizer used for collection field names.
func WithPluralizer(p Pluralizer) Option {
	return func(c *Config) error {
		if p == nil {
			return NewConfigError("Plural", nil, "pluralizer cannot be nil")
		}
		c.Plural = p
		return nil
	}
}

// WithMergePolicy sets the policy for duplicate names and repeated parents.
func WithMergePolicy(m MergePolicy) Option {
	return func(c *Config) error {
		if m == nil {
			return NewConfigError("Merge", nil, "merge policy cannot be nil")
		}
		c.Merge = m
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if _, err := c.FeatureEnabled(f.Name); err != nil {
				return err
			}
			if !c.hasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables specific features, including default ones.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		kept := c.Features[:0]
		for _, f := range c.Features {
			drop := false
			for _, d := range features {
				drop = drop || d.Name == f.Name
			}
			if !drop {
				kept = append(kept, f)
			}
		}
		c.Features = kept
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds the number of files written concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) hasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

package gen

import (
	"log/slog"
	"slices"
)

// Reference values of the ordering-domain diagram.
const (
	DefaultRoot      = "Person"
	DefaultTarget    = "src-gen"
	DefaultExtension = ".java"
)

// Config holds the global configuration of a generation run.
type Config struct {
	// Root is the name of the base entity. An unlabeled edge pointing at it
	// is an inheritance edge, and the root class gets RootFields.
	Root string
	// Abstract is the name of the class emitted as abstract.
	Abstract string
	// Allow lists multi-word labels that still denote classes.
	Allow []string
	// RootFields are emitted ahead of the inferred attributes of the root.
	RootFields []*Field
	// Target is the output directory.
	Target string
	// Extension of the generated files, including the dot.
	Extension string
	// Header is an optional line written at the top of every file.
	Header string
	// Plural derives the field name of collection attributes.
	Plural Pluralizer
	// Merge decides how duplicate names and repeated parents are handled.
	Merge MergePolicy
	// Features are the enabled feature flags.
	Features []Feature
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// Workers bounds the number of files written concurrently.
	// Zero means GOMAXPROCS.
	Workers int

	abstractSet bool
}

// DefaultConfig returns a configuration with the reference values.
func DefaultConfig() *Config {
	c := &Config{
		Root:     DefaultRoot,
		Abstract: DefaultRoot,
		Allow:    []string{"Menu Item"},
		RootFields: []*Field{
			{Name: "name", Type: "String"},
			{Name: "phoneNumber", Type: "String"},
		},
		Target:    DefaultTarget,
		Extension: DefaultExtension,
		Plural:    NaivePlural,
		Merge:     LastWriteWins,
	}
	for _, f := range AllFeatures {
		if f.Default {
			c.Features = append(c.Features, f)
		}
	}
	return c
}

// FeatureEnabled reports whether the given feature-flag name is enabled.
// An error is returned for unknown names.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if !slices.ContainsFunc(AllFeatures, func(f Feature) bool { return f.Name == name }) {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	return slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name }), nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Config) plural() Pluralizer {
	if c.Plural != nil {
		return c.Plural
	}
	return NaivePlural
}

func (c *Config) merge() MergePolicy {
	if c.Merge != nil {
		return c.Merge
	}
	return LastWriteWins
}

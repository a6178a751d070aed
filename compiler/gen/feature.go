package gen

var (
	// FeatureFloatingLabels binds free-standing text shapes to the nearest
	// unlabeled edge when the diagram is loaded. Diagrams drawn without edge
	// labels keep their cardinality text in such shapes.
	FeatureFloatingLabels = Feature{
		Name:        "label/float",
		Stage:       Stable,
		Default:     true,
		Description: "Uses free-standing text shapes next to an unlabeled edge as the edge label",
	}

	// FeatureSnapshot stores a snapshot of the class model in the target
	// directory and removes files of classes that disappeared since the
	// previous run.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Beta,
		Default:     false,
		Description: "Stores a model snapshot in the target and prunes files of removed classes",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureFloatingLabels,
		FeatureSnapshot,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but breaking-changes to their behavior
	// are expected.
	Alpha

	// Beta features are Alpha features that are documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String returns the name of the stage.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the class generator.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature-flag with the given name.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, nil
		}
	}
	return Feature{}, NewConfigError("Features", name, "unknown feature")
}

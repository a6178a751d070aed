package gen

import "strings"

// RelationKind is the outcome of classifying an edge.
type RelationKind int

const (
	_ RelationKind = iota

	// Inherit marks an unlabeled edge to the root entity.
	Inherit

	// Attr marks an edge that becomes an attribute of its source class.
	Attr
)

// String returns the name of the kind.
func (k RelationKind) String() string {
	switch k {
	case Inherit:
		return "inherit"
	case Attr:
		return "attribute"
	default:
		return "unknown"
	}
}

// Relation is a classified edge between two entities.
type Relation struct {
	Kind RelationKind
	From *Entity
	To   *Entity
	// Label is the normalized, lower-cased edge label.
	Label string
	// Attribute is set for Attr relations.
	Attribute *Attribute
}

// Classifier turns resolved edges into relations.
type Classifier struct {
	// Root is the name of the base entity.
	Root string
	// Plural derives collection field names.
	Plural Pluralizer
}

// NewClassifier returns a classifier for the given configuration.
func NewClassifier(c *Config) *Classifier {
	return &Classifier{Root: c.Root, Plural: c.plural()}
}

// Classify applies the rules in priority order: an unlabeled edge to the
// root is inheritance; a labeled edge is an attribute whose multiplicity is
// read from the label; any other edge is a single-valued attribute.
func (c *Classifier) Classify(from, to *Entity, label string) *Relation {
	label = strings.ToLower(NormalizeLabel(label))
	r := &Relation{From: from, To: to, Label: label}
	switch {
	case label == "" && to.Name == c.Root:
		r.Kind = Inherit
	case label != "" && IsManyLabel(label):
		r.Kind = Attr
		r.Attribute = &Attribute{
			Name:   c.Plural(strings.ToLower(to.Name)),
			Target: to.Name,
			Many:   true,
		}
	default:
		r.Kind = Attr
		r.Attribute = &Attribute{
			Name:   strings.ToLower(to.Name),
			Target: to.Name,
		}
	}
	return r
}

// IsManyLabel reports whether an edge label denotes a collection. It is a
// loose substring test: any "n" or "*" counts, so "contains 1" is many.
func IsManyLabel(label string) bool {
	return strings.ContainsAny(label, "n*")
}

package gen

import "github.com/go-openapi/inflect"

// Pluralizer derives the field name of a collection attribute from the
// lower-cased target class name.
type Pluralizer func(string) string

// NaivePlural appends "s", e.g. "delivery" -> "deliverys".
func NaivePlural(s string) string { return s + "s" }

// InflectPlural uses English inflection rules, e.g. "delivery" -> "deliveries".
func InflectPlural(s string) string { return inflect.Pluralize(s) }

// PluralizerByName returns the pluralizer registered under name
// ("naive" or "inflect").
func PluralizerByName(name string) (Pluralizer, error) {
	switch name {
	case "", "naive":
		return NaivePlural, nil
	case "inflect":
		return InflectPlural, nil
	default:
		return nil, NewConfigError("Plural", name, "unsupported pluralizer; use naive or inflect")
	}
}

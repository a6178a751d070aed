package gen

import "strings"

// Collector decides which vertex labels denote classes.
//
// The diagram convention is that multi-word labels are notes or
// annotations, except for the labels on the allow-list.
type Collector struct {
	allow map[string]struct{}
}

// NewCollector returns a collector accepting the given multi-word labels.
func NewCollector(allow []string) *Collector {
	c := &Collector{allow: make(map[string]struct{}, len(allow))}
	for _, a := range allow {
		c.allow[NormalizeLabel(a)] = struct{}{}
	}
	return c
}

// Accept reports whether the normalized label denotes a class and returns
// its class name, i.e. the label without spaces.
func (c *Collector) Accept(label string) (string, bool) {
	if label == "" {
		return "", false
	}
	if strings.Contains(label, " ") {
		if _, ok := c.allow[label]; !ok {
			return "", false
		}
	}
	return strings.ReplaceAll(label, " ", ""), true
}

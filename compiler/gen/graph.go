package gen

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/syssam/classgen/compiler/load"
)

// The following types and their exported methods are used by the emitter
// to render the class sources.
type (
	// Entity is a vertex accepted as denoting a class.
	Entity struct {
		// ID of the vertex in the diagram.
		ID string `json:"id" yaml:"id"`
		// Name of the class, i.e. the label without spaces.
		Name string `json:"name" yaml:"name"`
	}

	// Class holds the accumulated description of one class name.
	Class struct {
		// Name holds the class name.
		Name string `json:"name" yaml:"name" msgpack:"name"`
		// Parent is the name of the super class, or empty.
		Parent string `json:"parent,omitempty" yaml:"parent,omitempty" msgpack:"parent,omitempty"`
		// Attributes in the order their edges appear in the diagram.
		Attributes []*Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	}

	// Attribute is a field of a class pointing at another class.
	Attribute struct {
		// Name of the field.
		Name string `json:"name" yaml:"name" msgpack:"name"`
		// Target is the referenced class name.
		Target string `json:"target" yaml:"target" msgpack:"target"`
		// Many indicates a collection of Target.
		Many bool `json:"many,omitempty" yaml:"many,omitempty" msgpack:"many,omitempty"`
	}

	// Field is a built-in field of primitive type.
	Field struct {
		Name string `json:"name" yaml:"name"`
		Type string `json:"type" yaml:"type"`
	}

	// Graph holds the entity table and the class table of one run.
	Graph struct {
		*Config
		// Entities maps vertex ids to accepted entities.
		Entities map[string]*Entity
		classes  map[string]*Class
		// names in registration order.
		names []string
	}
)

// Getter returns the accessor name of the attribute, e.g. "getOrders".
func (a *Attribute) Getter() string {
	return "get" + capitalize(a.Name)
}

// NewGraph builds the class model of the diagram in a single forward pass:
// vertices are collected into entities and classes, then every edge between
// two entities is classified and folded into its source class.
func NewGraph(c *Config, d *load.Diagram) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{
		Config:   c,
		Entities: make(map[string]*Entity),
		classes:  make(map[string]*Class),
	}
	if d == nil {
		return g, nil
	}
	log := c.logger()
	if err := g.collect(d.Vertices, log); err != nil {
		return nil, err
	}
	if err := g.relate(d.Edges, log); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) collect(vertices []*load.Vertex, log *slog.Logger) error {
	col := NewCollector(g.Allow)
	for _, v := range vertices {
		label := NormalizeLabel(v.Label)
		name, ok := col.Accept(label)
		if !ok {
			log.Debug("vertex skipped", "vertex", v.ID, "label", label)
			continue
		}
		e := &Entity{ID: v.ID, Name: name}
		g.Entities[v.ID] = e
		if c, ok := g.classes[name]; ok {
			if err := g.merge().MergeClass(c, e); err != nil {
				return err
			}
			log.Debug("vertex merged into class", "vertex", v.ID, "class", name)
			continue
		}
		g.classes[name] = &Class{Name: name}
		g.names = append(g.names, name)
	}
	return nil
}

func (g *Graph) relate(edges []*load.Edge, log *slog.Logger) error {
	cl := NewClassifier(g.Config)
	for _, e := range edges {
		from, to := g.Entities[e.Source], g.Entities[e.Target]
		if from == nil || to == nil {
			log.Debug("edge dropped", "edge", e.ID, "source", e.Source, "target", e.Target)
			continue
		}
		r := cl.Classify(from, to, e.Label)
		c := g.classes[from.Name]
		switch r.Kind {
		case Inherit:
			if err := g.merge().SetParent(c, to.Name); err != nil {
				return err
			}
		case Attr:
			c.Attributes = append(c.Attributes, r.Attribute)
		}
		log.Debug("edge classified", "edge", e.ID, "from", from.Name, "to", to.Name, "kind", r.Kind, "label", r.Label)
	}
	return nil
}

// Class returns the class with the given name, or nil.
func (g *Graph) Class(name string) *Class {
	return g.classes[name]
}

// Classes returns all classes sorted by name.
func (g *Graph) Classes() []*Class {
	classes := make([]*Class, 0, len(g.classes))
	for _, name := range g.names {
		classes = append(classes, g.classes[name])
	}
	slices.SortFunc(classes, func(a, b *Class) int {
		return strings.Compare(a.Name, b.Name)
	})
	return classes
}

// Names returns the class names in the order they were first registered.
func (g *Graph) Names() []string {
	return slices.Clone(g.names)
}

// Len returns the number of classes.
func (g *Graph) Len() int {
	return len(g.classes)
}

// IsRoot reports whether c is the root entity.
func (g *Graph) IsRoot(c *Class) bool {
	return c.Name == g.Root
}

// IsAbstract reports whether c is emitted as abstract.
func (g *Graph) IsAbstract(c *Class) bool {
	return g.Abstract != "" && c.Name == g.Abstract
}

package gen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/compiler/load"
)

func vertex(id, label string) *load.Vertex {
	return &load.Vertex{ID: id, Label: label}
}

func edge(id, source, target, label string) *load.Edge {
	return &load.Edge{ID: id, Source: source, Target: target, Label: label}
}

// orderingDiagram is a hand-written variant of the reference diagram with
// labels placed on the edges.
func orderingDiagram() *load.Diagram {
	return &load.Diagram{
		Vertices: []*load.Vertex{
			vertex("1", "Person"),
			vertex("2", "<b>Customer</b>"),
			vertex("3", "Courier"),
			vertex("4", "Order"),
			vertex("5", "Delivery"),
			vertex("6", "Menu Item"),
			vertex("7", "Address"),
			vertex("8", "Menu"),
			vertex("9", "Creates 1"),
		},
		Edges: []*load.Edge{
			edge("e1", "2", "1", ""),
			edge("e2", "2", "4", "Places N"),
			edge("e3", "3", "1", ""),
			edge("e4", "3", "5", "Fulfills N"),
			edge("e5", "4", "5", "Creates 1"),
			edge("e6", "4", "6", "Includes N"),
			edge("e7", "5", "7", "Delivered to 1"),
			edge("e8", "8", "6", "Contains N"),
			edge("e9", "9", "4", "annotates"),
			edge("e10", "4", "", "dangling"),
		},
	}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph(DefaultConfig(), orderingDiagram())
	require.NoError(t, err)

	assert.Equal(t, 8, g.Len())
	assert.Equal(t, []string{"Person", "Customer", "Courier", "Order", "Delivery", "MenuItem", "Address", "Menu"}, g.Names())

	var names []string
	for _, c := range g.Classes() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Address", "Courier", "Customer", "Delivery", "Menu", "MenuItem", "Order", "Person"}, names)

	t.Run("entities", func(t *testing.T) {
		assert.Len(t, g.Entities, 8)
		assert.Equal(t, &Entity{ID: "2", Name: "Customer"}, g.Entities["2"])
		assert.Equal(t, &Entity{ID: "6", Name: "MenuItem"}, g.Entities["6"])
		assert.Nil(t, g.Entities["9"], "annotation vertex must be rejected")
	})

	t.Run("inheritance", func(t *testing.T) {
		assert.Equal(t, "Person", g.Class("Customer").Parent)
		assert.Equal(t, "Person", g.Class("Courier").Parent)
		assert.Empty(t, g.Class("Person").Parent)
		assert.Empty(t, g.Class("Person").Attributes)
		assert.True(t, g.IsRoot(g.Class("Person")))
		assert.True(t, g.IsAbstract(g.Class("Person")))
		assert.False(t, g.IsAbstract(g.Class("Customer")))
	})

	t.Run("attributes keep edge order", func(t *testing.T) {
		assert.Equal(t, []*Attribute{
			{Name: "delivery", Target: "Delivery"},
			{Name: "menuitems", Target: "MenuItem", Many: true},
		}, g.Class("Order").Attributes)
		assert.Equal(t, []*Attribute{{Name: "orders", Target: "Order", Many: true}}, g.Class("Customer").Attributes)
		assert.Equal(t, []*Attribute{{Name: "deliverys", Target: "Delivery", Many: true}}, g.Class("Courier").Attributes)
		assert.Equal(t, []*Attribute{{Name: "address", Target: "Address"}}, g.Class("Delivery").Attributes)
		assert.Equal(t, []*Attribute{{Name: "menuitems", Target: "MenuItem", Many: true}}, g.Class("Menu").Attributes)
		assert.Empty(t, g.Class("MenuItem").Attributes)
		assert.Empty(t, g.Class("Address").Attributes)
	})
}

func TestNewGraphEdgeCases(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewGraph(nil, &load.Diagram{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("empty model", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Places N"), vertex("2", "")},
		})
		require.NoError(t, err)
		assert.Zero(t, g.Len())
		assert.Empty(t, g.Classes())

		g, err = NewGraph(DefaultConfig(), nil)
		require.NoError(t, err)
		assert.Zero(t, g.Len())
	})

	t.Run("edge to unknown vertex is dropped", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Order"), vertex("2", "Contains N")},
			Edges: []*load.Edge{
				edge("e1", "1", "2", "n"),
				edge("e2", "1", "missing", "n"),
				edge("e3", "missing", "1", ""),
				edge("e4", "", "", ""),
			},
		})
		require.NoError(t, err)
		assert.Empty(t, g.Class("Order").Attributes)
		assert.Empty(t, g.Class("Order").Parent)
	})

	t.Run("duplicate names share one class", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Diagram{
			Vertices: []*load.Vertex{
				vertex("1", "Order"),
				vertex("2", "Address"),
				vertex("3", "<i>Order</i>"),
				vertex("4", "Menu"),
			},
			Edges: []*load.Edge{
				edge("e1", "1", "2", ""),
				edge("e2", "3", "4", ""),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Len())
		assert.Equal(t, "Order", g.Entities["3"].Name)
		assert.Equal(t, []*Attribute{
			{Name: "address", Target: "Address"},
			{Name: "menu", Target: "Menu"},
		}, g.Class("Order").Attributes)
	})

	t.Run("repeated inheritance edge", func(t *testing.T) {
		cfg := MustNewConfig(WithRootEntity("Party"))
		g, err := NewGraph(cfg, &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Customer"), vertex("2", "Party"), vertex("3", "Person")},
			Edges: []*load.Edge{
				edge("e1", "1", "2", ""),
				edge("e2", "1", "3", ""),
				edge("e3", "1", "2", ""),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Party", g.Class("Customer").Parent)
		assert.Equal(t, []*Attribute{{Name: "person", Target: "Person"}}, g.Class("Customer").Attributes)
	})

	t.Run("self reference", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Category")},
			Edges:    []*load.Edge{edge("e1", "1", "1", "children *")},
		})
		require.NoError(t, err)
		assert.Equal(t, []*Attribute{{Name: "categorys", Target: "Category", Many: true}}, g.Class("Category").Attributes)
	})
}

func TestNewGraphStrict(t *testing.T) {
	cfg := MustNewConfig(WithMergePolicy(RejectConflicts))

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := NewGraph(cfg, &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Order"), vertex("2", "Order")},
		})
		require.Error(t, err)
		assert.True(t, IsConflictError(err))
		assert.ErrorIs(t, err, ErrConflict)
		assert.Contains(t, err.Error(), "class Order")
		assert.Contains(t, err.Error(), "vertex 2")
	})

	t.Run("accepts a repeated identical parent", func(t *testing.T) {
		g, err := NewGraph(cfg, &load.Diagram{
			Vertices: []*load.Vertex{vertex("1", "Customer"), vertex("2", "Person")},
			Edges:    []*load.Edge{edge("e1", "1", "2", ""), edge("e2", "1", "2", "")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Person", g.Class("Customer").Parent)
	})
}

func TestNewGraphReference(t *testing.T) {
	path := filepath.Join("..", "load", "testdata", "reference.drawio")

	t.Run("edges without labels", func(t *testing.T) {
		d, err := load.ParseFile(path)
		require.NoError(t, err)
		g, err := NewGraph(DefaultConfig(), d)
		require.NoError(t, err)

		assert.Equal(t, []string{"Person", "Customer", "Courier", "Order", "Delivery", "MenuItem", "Address", "Menu"}, g.Names())
		assert.Equal(t, "Person", g.Class("Customer").Parent)
		assert.Equal(t, "Person", g.Class("Courier").Parent)
		assert.Equal(t, []*Attribute{
			{Name: "delivery", Target: "Delivery"},
			{Name: "menuitem", Target: "MenuItem"},
		}, g.Class("Order").Attributes)
	})

	t.Run("floating labels", func(t *testing.T) {
		d, err := load.ParseFile(path, load.WithFloatingLabels(true))
		require.NoError(t, err)
		g, err := NewGraph(DefaultConfig(), d)
		require.NoError(t, err)

		assert.Equal(t, 8, g.Len())
		assert.Equal(t, []*Attribute{
			{Name: "delivery", Target: "Delivery"},
			{Name: "menuitems", Target: "MenuItem", Many: true},
		}, g.Class("Order").Attributes)
		assert.Equal(t, []*Attribute{{Name: "orders", Target: "Order", Many: true}}, g.Class("Customer").Attributes)
	})
}

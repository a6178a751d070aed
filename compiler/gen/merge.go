package gen

import "fmt"

// MergePolicy decides what happens when the model receives conflicting
// information. NewGraph calls it before mutating the class table.
type MergePolicy interface {
	// MergeClass is called when a vertex maps to an already registered
	// class name. Returning nil makes both vertices share the class.
	MergeClass(c *Class, e *Entity) error
	// SetParent is called for every inheritance edge and must set the
	// parent of c, or return an error.
	SetParent(c *Class, parent string) error
}

var (
	// LastWriteWins shares classes between duplicate names and lets the
	// last inheritance edge decide the parent.
	LastWriteWins MergePolicy = lastWriteWins{}

	// RejectConflicts fails on duplicate class names and on a second,
	// different parent.
	RejectConflicts MergePolicy = rejectConflicts{}
)

type lastWriteWins struct{}

func (lastWriteWins) MergeClass(*Class, *Entity) error { return nil }

func (lastWriteWins) SetParent(c *Class, parent string) error {
	c.Parent = parent
	return nil
}

type rejectConflicts struct{}

func (rejectConflicts) MergeClass(c *Class, e *Entity) error {
	return NewConflictError(c.Name, e.ID, "class name already defined by another vertex")
}

func (rejectConflicts) SetParent(c *Class, parent string) error {
	if c.Parent != "" && c.Parent != parent {
		return NewConflictError(c.Name, "", fmt.Sprintf("parent %s already set, got %s", c.Parent, parent))
	}
	c.Parent = parent
	return nil
}

// MergePolicyByName returns the policy registered under name
// ("last-write-wins" or "strict").
func MergePolicyByName(name string) (MergePolicy, error) {
	switch name {
	case "", "last-write-wins":
		return LastWriteWins, nil
	case "strict":
		return RejectConflicts, nil
	default:
		return nil, NewConfigError("Merge", name, "unsupported merge policy; use last-write-wins or strict")
	}
}

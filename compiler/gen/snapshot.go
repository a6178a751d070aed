package gen

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotFile is the name of the snapshot stored in the target directory.
const SnapshotFile = ".classgen.snapshot"

// Snapshot is the persisted class model of a generation run.
type Snapshot struct {
	RunID     string   `msgpack:"run_id"`
	Extension string   `msgpack:"extension"`
	Classes   []*Class `msgpack:"classes"`
}

// SnapshotDiff lists the class names that changed between two snapshots.
type SnapshotDiff struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the two snapshots describe the same model.
func (d *SnapshotDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// NewSnapshot captures the classes of g under a fresh run id.
func NewSnapshot(g *Graph) *Snapshot {
	return &Snapshot{
		RunID:     uuid.NewString(),
		Extension: g.Extension,
		Classes:   g.Classes(),
	}
}

// ReadSnapshot loads the snapshot stored in dir. It returns nil and no
// error if there is none.
func ReadSnapshot(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, NewGenerationError("snapshot", SnapshotFile, "read snapshot", err)
	}
	s := &Snapshot{}
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, NewGenerationError("snapshot", SnapshotFile, "decode snapshot", err)
	}
	return s, nil
}

// Write stores the snapshot in dir.
func (s *Snapshot) Write(dir string) error {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return NewGenerationError("snapshot", SnapshotFile, "encode snapshot", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), b, 0o644); err != nil {
		return NewGenerationError("snapshot", SnapshotFile, "write snapshot", err)
	}
	return nil
}

// Diff compares s, the previous snapshot, with next. A nil s counts as
// an empty model.
func (s *Snapshot) Diff(next *Snapshot) *SnapshotDiff {
	prev := make(map[string]*Class)
	if s != nil {
		for _, c := range s.Classes {
			prev[c.Name] = c
		}
	}
	d := &SnapshotDiff{}
	seen := make(map[string]bool, len(next.Classes))
	for _, c := range next.Classes {
		seen[c.Name] = true
		old, ok := prev[c.Name]
		switch {
		case !ok:
			d.Added = append(d.Added, c.Name)
		case !sameClass(old, c):
			d.Changed = append(d.Changed, c.Name)
		}
	}
	for name := range prev {
		if !seen[name] {
			d.Removed = append(d.Removed, name)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.Sort(d.Changed)
	return d
}

func sameClass(a, b *Class) bool {
	return a.Name == b.Name && a.Parent == b.Parent &&
		slices.EqualFunc(a.Attributes, b.Attributes, func(x, y *Attribute) bool { return *x == *y })
}

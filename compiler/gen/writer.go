package gen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer persists emitted files into the target directory with parallel
// execution. Files whose content did not change are left untouched.
type Writer struct {
	outDir  string
	ext     string
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation results.
type WriterMetrics struct {
	FilesWritten   int
	FilesUnchanged int
	FilesRemoved   int
	TotalBytes     int64
}

// NewWriter creates a writer for the target and extension of c.
func NewWriter(c *Config) *Writer {
	w := &Writer{
		outDir:  c.Target,
		ext:     c.Extension,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
	return w.WithWorkers(c.Workers)
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Path returns the output path of the given class.
func (w *Writer) Path(className string) string {
	return filepath.Join(w.outDir, className+w.ext)
}

// Write persists all files in parallel.
func (w *Writer) Write(ctx context.Context, files []File) error {
	if w.outDir == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	// Ensure output directory exists
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError("write", w.outDir, "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

// writeFile writes a single file unless its content is unchanged.
func (w *Writer) writeFile(f File) error {
	path := w.Path(f.ClassName)
	content := []byte(f.Source)
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, content) {
		w.mu.Lock()
		w.metrics.FilesUnchanged++
		w.mu.Unlock()
		return nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return NewGenerationError("write", filepath.Base(path), "write file", err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	return nil
}

// Remove deletes the files of the given classes. Missing files are ignored.
func (w *Writer) Remove(classNames ...string) error {
	for _, name := range classNames {
		path := w.Path(name)
		err := os.Remove(path)
		switch {
		case err == nil:
			w.mu.Lock()
			w.metrics.FilesRemoved++
			w.mu.Unlock()
		case !errors.Is(err, os.ErrNotExist):
			return NewGenerationError("prune", filepath.Base(path), "remove stale file", err)
		}
	}
	return nil
}

// Generate emits the classes of g and writes them to the configured
// target. With FeatureSnapshot enabled, files of classes that disappeared
// since the previous run are removed and a new snapshot is stored.
func Generate(ctx context.Context, g *Graph) (*WriterMetrics, error) {
	if g.Config == nil || g.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	files, err := NewEmitter(g.Config).Emit(g)
	if err != nil {
		return nil, err
	}
	return WriteFiles(ctx, g, files)
}

// WriteFiles writes files emitted from g, see Generate.
func WriteFiles(ctx context.Context, g *Graph, files []File) (*WriterMetrics, error) {
	if g.Config == nil || g.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	w := NewWriter(g.Config)
	if err := w.Write(ctx, files); err != nil {
		return nil, err
	}
	log := g.logger()
	if enabled, _ := g.FeatureEnabled(FeatureSnapshot.Name); enabled {
		prev, err := ReadSnapshot(g.Target)
		if err != nil {
			return nil, err
		}
		next := NewSnapshot(g)
		diff := prev.Diff(next)
		if prev != nil && prev.Extension == next.Extension {
			if err := w.Remove(diff.Removed...); err != nil {
				return nil, err
			}
		}
		if err := next.Write(g.Target); err != nil {
			return nil, err
		}
		log.Info("model snapshot stored", "run", next.RunID,
			"added", diff.Added, "removed", diff.Removed, "changed", diff.Changed)
	}
	m := w.Metrics()
	log.Info("classes generated", "target", g.Target, "classes", len(files),
		"written", m.FilesWritten, "unchanged", m.FilesUnchanged, "removed", m.FilesRemoved)
	return m, nil
}

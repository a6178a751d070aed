// Package compiler runs the full generation pipeline: it loads a diagram,
// builds the class model and writes the class sources.
package compiler

import (
	"context"

	"github.com/syssam/classgen/compiler/gen"
	"github.com/syssam/classgen/compiler/load"
)

// Result describes a finished generation run.
type Result struct {
	Graph   *gen.Graph
	Files   []gen.File
	Metrics *gen.WriterMetrics
}

// LoadGraph loads the diagram at path and builds its class model.
func LoadGraph(path string, cfg *gen.Config, opts ...load.Option) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	floating, _ := cfg.FeatureEnabled(gen.FeatureFloatingLabels.Name)
	opts = append([]load.Option{load.WithFloatingLabels(floating)}, opts...)
	d, err := load.ParseFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, d)
}

// Build loads the diagram and renders the class sources without writing
// them.
func Build(path string, cfg *gen.Config, opts ...load.Option) (*gen.Graph, []gen.File, error) {
	g, err := LoadGraph(path, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	files, err := gen.NewEmitter(cfg).Emit(g)
	if err != nil {
		return nil, nil, err
	}
	return g, files, nil
}

// Generate loads the diagram at path and writes one source file per class
// into cfg.Target.
func Generate(ctx context.Context, path string, cfg *gen.Config, opts ...load.Option) (*Result, error) {
	g, files, err := Build(path, cfg, opts...)
	if err != nil {
		return nil, err
	}
	m, err := gen.WriteFiles(ctx, g, files)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Files: files, Metrics: m}, nil
}

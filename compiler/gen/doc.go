// Package gen infers a class model from diagram records and renders one
// class source file per class.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	load.Diagram (vertices, edges)
//	        ↓
//	   NormalizeLabel (markup stripped, whitespace trimmed)
//	        ↓
//	   Collector (vertex -> Entity, one Class per distinct name)
//	        ↓
//	   Classifier (edge -> inheritance or attribute)
//	        ↓
//	   Graph (class table)
//	        ↓
//	   Emitter (Class -> File)
//	        ↓
//	   Writer (File -> <Target>/<Class><Extension>)
//
// Everything up to the Emitter is pure and runs on a single goroutine.
// Each call to NewGraph owns its entity and class tables.
//
// # Key Types
//
//   - Graph: the entity table and the class table of one run
//   - Class: name, optional parent and ordered attributes of a class
//   - Attribute: a single or collection valued field pointing at a class
//   - Config: root entity, abstract marker, allow-list and output settings
//   - MergePolicy: what happens on duplicate names and repeated parents
//
// # Error Handling
//
//   - ConfigError: invalid options
//   - ConflictError: duplicate names or parents rejected by RejectConflicts
//   - GenerationError: template or file system failures
//
// Example:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./src-gen"),
//	    gen.WithAllowList("Menu Item", "Line Item"),
//	)
//	g, err := gen.NewGraph(cfg, diagram)
//	files, err := gen.NewEmitter(cfg).Emit(g)
package gen

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/classgen/compiler"
	"github.com/syssam/classgen/compiler/gen"
	"github.com/syssam/classgen/compiler/load"
)

// app holds the command-line state shared by all commands.
type app struct {
	configPath string
	flags      fileConfig
	abstract   string
	watch      bool
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "classgen [diagram]",
		Short: "Generate class sources from a draw.io class diagram",
		Long: `classgen reads a draw.io class diagram and writes one source file per
entity. Unlabeled edges into the root entity declare inheritance, every
other edge becomes a field of the source class.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         a.runGenerate,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default is ./"+defaultConfigFile+" if present)")
	pf.StringVar(&a.flags.Root, "root", "", "name of the root entity (default \""+gen.DefaultRoot+"\")")
	pf.StringVar(&a.abstract, "abstract", "", "name of the class emitted as abstract (default: the root entity)")
	pf.StringSliceVar(&a.flags.Allow, "allow", nil, "multi-word labels accepted as classes (default \"Menu Item\")")
	pf.StringVar(&a.flags.Plural, "plural", "naive", "pluralizer for collection fields: naive or inflect")
	pf.StringVar(&a.flags.Merge, "merge", "", "merge policy for duplicate names: last-write-wins or strict (default last-write-wins)")
	pf.BoolVar(&a.flags.Strict, "strict", false, "shorthand for --merge strict")
	pf.StringVar(&a.flags.Page, "page", "", "diagram page to load (default: first page)")
	pf.StringSliceVar(&a.flags.Features, "feature", nil, "enable a feature flag, or disable it with a leading '-'")
	pf.StringVar(&a.flags.Log.Level, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.Log.Format, "log-format", "text", "log format: text or json")

	f := cmd.Flags()
	f.StringVarP(&a.flags.Target, "target", "t", "", "output directory (default \""+gen.DefaultTarget+"\")")
	f.StringVar(&a.flags.Extension, "ext", "", "file extension (default \""+gen.DefaultExtension+"\")")
	f.StringVar(&a.flags.Header, "header", "", "line written at the top of every file")
	f.IntVar(&a.flags.Workers, "workers", 0, "number of files written concurrently (default GOMAXPROCS)")
	f.BoolVarP(&a.watch, "watch", "w", false, "regenerate whenever the diagram changes")
	f.BoolVar(&a.dryRun, "dry-run", false, "print the generated sources instead of writing them")

	cmd.AddCommand(newInspectCmd(a))
	return cmd
}

// resolve merges the configuration file, the changed flags and the
// diagram argument.
func (a *app) resolve(cmd *cobra.Command, args []string) (*fileConfig, error) {
	f, err := loadFileConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("root", func() { f.Root = a.flags.Root })
	set("abstract", func() { f.Abstract = &a.abstract })
	set("allow", func() { f.Allow = a.flags.Allow })
	set("plural", func() { f.Plural = a.flags.Plural })
	set("merge", func() { f.Merge = a.flags.Merge })
	set("strict", func() { f.Strict = a.flags.Strict })
	set("page", func() { f.Page = a.flags.Page })
	set("feature", func() { f.Features = append(f.Features, a.flags.Features...) })
	set("target", func() { f.Target = a.flags.Target })
	set("ext", func() { f.Extension = a.flags.Extension })
	set("header", func() { f.Header = a.flags.Header })
	set("workers", func() { f.Workers = a.flags.Workers })
	if fl.Changed("log-level") || f.Log.Level == "" {
		f.Log.Level = a.flags.Log.Level
	}
	if fl.Changed("log-format") || f.Log.Format == "" {
		f.Log.Format = a.flags.Log.Format
	}
	if len(args) > 0 {
		f.Diagram = args[0]
	}
	if f.Diagram == "" {
		return nil, errors.New("no diagram given: pass a path or set diagram in the config file")
	}
	return f, nil
}

// setup resolves the configuration and builds the logger and the
// generator configuration.
func (a *app) setup(cmd *cobra.Command, args []string) (*fileConfig, *gen.Config, error) {
	f, err := a.resolve(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cmd.ErrOrStderr(), f.Log.Level, f.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := f.config(log)
	if err != nil {
		return nil, nil, err
	}
	return f, cfg, nil
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	f, cfg, err := a.setup(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	opts := loadOptions(f)
	if a.dryRun {
		return printSources(cmd.OutOrStdout(), f.Diagram, cfg, opts...)
	}
	log := cfg.Logger
	_, err = compiler.Generate(ctx, f.Diagram, cfg, opts...)
	if !a.watch {
		return err
	}
	if err != nil {
		log.Error("generation failed", "diagram", f.Diagram, "error", err)
	}
	return watchDiagram(ctx, f.Diagram, defaultWatchDelay, log, func() {
		if _, err := compiler.Generate(ctx, f.Diagram, cfg, opts...); err != nil {
			log.Error("generation failed", "diagram", f.Diagram, "error", err)
		}
	})
}

func loadOptions(f *fileConfig) []load.Option {
	if f.Page == "" {
		return nil
	}
	return []load.Option{load.WithPage(f.Page)}
}

// printSources writes the rendered sources to w, each preceded by a
// comment naming its file.
func printSources(w io.Writer, path string, cfg *gen.Config, opts ...load.Option) error {
	_, files, err := compiler.Build(path, cfg, opts...)
	if err != nil {
		return err
	}
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "// %s%s\n%s", f.ClassName, cfg.Extension, f.Source)
	}
	cfg.Logger.Debug("dry run finished", "classes", len(files))
	return nil
}

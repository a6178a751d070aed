package main

import (
	"cmp"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/classgen/compiler"
	"github.com/syssam/classgen/compiler/gen"
)

// model is the YAML document printed by the inspect command.
type model struct {
	Root     string        `yaml:"root"`
	Abstract string        `yaml:"abstract,omitempty"`
	Entities []*gen.Entity `yaml:"entities"`
	Classes  []*gen.Class  `yaml:"classes"`
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [diagram]",
		Short: "Print the class model inferred from a diagram as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, cfg, err := a.setup(cmd, args)
			if err != nil {
				return err
			}
			g, err := compiler.LoadGraph(f.Diagram, cfg, loadOptions(f)...)
			if err != nil {
				return err
			}
			m := model{
				Root:     g.Root,
				Abstract: g.Abstract,
				Entities: make([]*gen.Entity, 0, len(g.Entities)),
				Classes:  g.Classes(),
			}
			for _, e := range g.Entities {
				m.Entities = append(m.Entities, e)
			}
			slices.SortFunc(m.Entities, func(x, y *gen.Entity) int {
				return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID, y.ID))
			})
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(m); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

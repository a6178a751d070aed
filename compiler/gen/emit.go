package gen

import (
	"bytes"
	"text/template"
)

// File is the rendered source of one class.
type File struct {
	ClassName string
	Source    string
}

// Emitter renders class models into source text. It performs no I/O.
type Emitter struct {
	cfg  *Config
	tmpl *template.Template
}

// NewEmitter returns an emitter using the built-in class template.
func NewEmitter(c *Config) *Emitter {
	return &Emitter{
		cfg:  c,
		tmpl: template.Must(parseTemplate(classTemplate)),
	}
}

// NewEmitterTemplate returns an emitter rendering classes with a custom
// template. The template receives the fields Header, Name, Parent,
// Abstract, Fields and Attributes, and the functions in Funcs.
func NewEmitterTemplate(c *Config, text string) (*Emitter, error) {
	tmpl, err := parseTemplate(text)
	if err != nil {
		return nil, NewGenerationError("emit", "", "parse template", err)
	}
	return &Emitter{cfg: c, tmpl: tmpl}, nil
}

// Emit renders every class of the graph, sorted by class name. An empty
// graph yields no files.
func (e *Emitter) Emit(g *Graph) ([]File, error) {
	classes := g.Classes()
	files := make([]File, 0, len(classes))
	for _, c := range classes {
		f, err := e.EmitClass(g, c)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// EmitClass renders a single class of the graph.
func (e *Emitter) EmitClass(g *Graph, c *Class) (File, error) {
	v := classView{
		Header:     e.cfg.Header,
		Name:       c.Name,
		Parent:     c.Parent,
		Abstract:   g.IsAbstract(c),
		Attributes: c.Attributes,
	}
	if g.IsRoot(c) {
		v.Fields = e.cfg.RootFields
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, v); err != nil {
		return File{}, NewGenerationError("emit", c.Name+e.cfg.Extension, "execute template", err)
	}
	return File{ClassName: c.Name, Source: buf.String()}, nil
}

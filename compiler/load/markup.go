package load

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// file is the <mxfile> wrapper written by draw.io.
type file struct {
	Pages []page `xml:"diagram"`
}

// page is a <diagram> element. It holds either an inline model or the
// compressed model as character data.
type page struct {
	ID    string      `xml:"id,attr"`
	Name  string      `xml:"name,attr"`
	Model *graphModel `xml:"mxGraphModel"`
	Data  string      `xml:",chardata"`
}

// model returns the graph model of the requested page, or of the first page
// if name is empty.
func (f *file) model(name string) (string, *graphModel, error) {
	if len(f.Pages) == 0 {
		return "", nil, newParseError("", "mxfile has no diagram pages", nil)
	}
	p := &f.Pages[0]
	if name != "" {
		p = nil
		for i := range f.Pages {
			if f.Pages[i].Name == name {
				p = &f.Pages[i]
				break
			}
		}
		if p == nil {
			return "", nil, newParseError(name, "page not found", nil)
		}
	}
	if p.Model != nil {
		return p.Name, p.Model, nil
	}
	m, err := inflate(p.Data)
	if err != nil {
		return "", nil, newParseError(p.Name, "malformed compressed page", err)
	}
	return p.Name, m, nil
}

// inflate decodes a compressed page: base64, then raw deflate, then
// URI component encoding.
func inflate(data string) (*graphModel, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, fmt.Errorf("empty page")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	zr := flate.NewReader(bytes.NewReader(raw))
	defer zr.Close()
	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	text, err := url.PathUnescape(string(b))
	if err != nil {
		return nil, fmt.Errorf("unescape: %w", err)
	}
	text = strings.ReplaceAll(text, "\u00a0", " ")
	var m graphModel
	if err := xml.Unmarshal([]byte(text), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

type graphModel struct {
	Root root `xml:"root"`
}

// root keeps cells in document order. Cells wrapped in <object> or
// <UserObject> take their id and label from the wrapper.
type root struct {
	Cells []cell
}

func (r *root) UnmarshalXML(dec *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			switch t.Name.Local {
			case "mxCell":
				var c cell
				if err := dec.DecodeElement(&c, &t); err != nil {
					return err
				}
				r.Cells = append(r.Cells, c)
			case "object", "UserObject":
				var o object
				if err := dec.DecodeElement(&o, &t); err != nil {
					return err
				}
				c := o.Cell
				c.ID = o.ID
				c.Value = o.Label
				r.Cells = append(r.Cells, c)
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		}
	}
}

type object struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
	Cell  cell   `xml:"mxCell"`
}

type cell struct {
	ID       string    `xml:"id,attr"`
	Value    string    `xml:"value,attr"`
	Style    string    `xml:"style,attr"`
	Parent   string    `xml:"parent,attr"`
	Source   string    `xml:"source,attr"`
	Target   string    `xml:"target,attr"`
	Vertex   string    `xml:"vertex,attr"`
	Edge     string    `xml:"edge,attr"`
	Geometry *geometry `xml:"mxGeometry"`
}

type geometry struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
	Points []point `xml:"Array>mxPoint"`
}

type point struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// diagram flattens the model into records. Vertices whose parent is an edge
// are that edge's labels and are folded into it.
func (m *graphModel) diagram() *Diagram {
	var (
		d        = &Diagram{}
		edges    = make(map[string]*Edge)
		vertices = make(map[string]*cell)
	)
	for i := range m.Root.Cells {
		c := &m.Root.Cells[i]
		switch {
		case c.Edge == "1":
			e := &Edge{ID: c.ID, Source: c.Source, Target: c.Target, Label: c.Value}
			if c.Geometry != nil {
				for _, p := range c.Geometry.Points {
					e.Points = append(e.Points, Point{X: p.X, Y: p.Y})
				}
			}
			edges[c.ID] = e
			d.Edges = append(d.Edges, e)
		case c.Vertex == "1":
			vertices[c.ID] = c
		}
	}
	for i := range m.Root.Cells {
		c := &m.Root.Cells[i]
		if c.Vertex != "1" {
			continue
		}
		if e, ok := edges[c.Parent]; ok {
			if c.Value != "" {
				e.Label = strings.TrimSpace(e.Label + " " + c.Value)
			}
			continue
		}
		d.Vertices = append(d.Vertices, &Vertex{
			ID:     c.ID,
			Label:  c.Value,
			Style:  c.Style,
			Parent: c.Parent,
			Bounds: absBounds(c, vertices),
		})
	}
	return d
}

// absBounds resolves the absolute geometry of a vertex nested in containers.
func absBounds(c *cell, vertices map[string]*cell) Rect {
	var r Rect
	if c.Geometry != nil {
		r = Rect{X: c.Geometry.X, Y: c.Geometry.Y, Width: c.Geometry.Width, Height: c.Geometry.Height}
	}
	seen := map[string]bool{c.ID: true}
	for p := vertices[c.Parent]; p != nil && !seen[p.ID]; p = vertices[p.Parent] {
		seen[p.ID] = true
		if p.Geometry != nil {
			r.X += p.Geometry.X
			r.Y += p.Geometry.Y
		}
	}
	return r
}

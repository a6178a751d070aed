// Package load reads draw.io diagrams into flat vertex and edge records
// that are consumed by the class generator.
package load

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Diagram holds the records of a single diagram page.
type Diagram struct {
	// Page is the name of the loaded page. Empty for bare mxGraphModel documents.
	Page     string    `json:"page,omitempty"`
	Vertices []*Vertex `json:"vertices,omitempty"`
	Edges    []*Edge   `json:"edges,omitempty"`
}

// Vertex is a shape flagged with vertex="1" in the markup.
type Vertex struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Style  string `json:"style,omitempty"`
	Parent string `json:"parent,omitempty"`
	// Bounds are absolute, i.e. offsets of enclosing containers are applied.
	Bounds Rect `json:"bounds"`
}

// Edge is a connector flagged with edge="1" in the markup. Source and Target
// are empty when the edge is not attached to a shape.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source,omitempty"`
	Target string  `json:"target,omitempty"`
	Label  string  `json:"label,omitempty"`
	Points []Point `json:"points,omitempty"`
}

// Connected reports whether both endpoints of the edge are set.
func (e *Edge) Connected() bool { return e.Source != "" && e.Target != "" }

// Point is a position on the diagram canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the geometry of a vertex.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Vertex returns the vertex with the given id, or nil.
func (d *Diagram) Vertex(id string) *Vertex {
	for _, v := range d.Vertices {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// ParseFile loads the diagram stored in the file at path.
func ParseFile(path string, opts ...Option) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: open diagram: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse reads a diagram document. Both a bare <mxGraphModel> and an <mxfile>
// wrapper (plain or compressed pages) are accepted.
func Parse(r io.Reader, opts ...Option) (*Diagram, error) {
	o := newOptions(opts...)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("load: read diagram: %w", err)
	}
	data = bytes.TrimSpace(bytes.ReplaceAll(data, []byte("\u00a0"), []byte(" ")))
	page, model, err := decodeDocument(data, o.page)
	if err != nil {
		return nil, err
	}
	d := model.diagram()
	d.Page = page
	if o.floating {
		bindFloatingLabels(d, o.distance)
	}
	return d, nil
}

// decodeDocument dispatches on the document root element.
func decodeDocument(data []byte, pageName string) (string, *graphModel, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", nil, newParseError("", "empty document", nil)
		}
		if err != nil {
			return "", nil, newParseError("", "malformed markup", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "mxGraphModel":
			var m graphModel
			if err := dec.DecodeElement(&m, &se); err != nil {
				return "", nil, newParseError("", "malformed graph model", err)
			}
			return "", &m, nil
		case "mxfile":
			var f file
			if err := dec.DecodeElement(&f, &se); err != nil {
				return "", nil, newParseError("", "malformed mxfile", err)
			}
			return f.model(pageName)
		default:
			return "", nil, newParseError("", fmt.Sprintf("unexpected root element <%s>", se.Name.Local), nil)
		}
	}
}

package load

import (
	"math"
	"regexp"
	"strings"
)

// tagRe matches one markup tag, e.g. "<br>".
var tagRe = regexp.MustCompile(`<[^<]+?>`)

// bindFloatingLabels moves the text of free-standing text shapes onto the
// nearest unlabeled edge within limit. Every text binds to at most one edge
// and an edge keeps the closest text. Bound shapes are dropped from the
// vertex list. Shapes that are an edge endpoint are never bound.
func bindFloatingLabels(d *Diagram, limit float64) {
	byID := make(map[string]*Vertex, len(d.Vertices))
	for _, v := range d.Vertices {
		byID[v.ID] = v
	}
	endpoints := make(map[string]bool, 2*len(d.Edges))
	for _, e := range d.Edges {
		endpoints[e.Source] = true
		endpoints[e.Target] = true
	}
	type route struct {
		edge *Edge
		path []Point
	}
	var routes []route
	for _, e := range d.Edges {
		if !e.Connected() || !blank(e.Label) {
			continue
		}
		src, tgt := byID[e.Source], byID[e.Target]
		if src == nil || tgt == nil {
			continue
		}
		path := make([]Point, 0, len(e.Points)+2)
		path = append(path, src.Bounds.Center())
		path = append(path, e.Points...)
		path = append(path, tgt.Bounds.Center())
		routes = append(routes, route{edge: e, path: path})
	}
	type match struct {
		text *Vertex
		dist float64
	}
	best := make(map[*Edge]match)
	for _, v := range d.Vertices {
		if !isText(v) || endpoints[v.ID] || blank(v.Label) {
			continue
		}
		var (
			nearest *Edge
			dist    = math.Inf(1)
		)
		c := v.Bounds.Center()
		for _, r := range routes {
			if dd := polylineDistance(c, r.path); dd < dist {
				nearest, dist = r.edge, dd
			}
		}
		if nearest == nil || dist > limit {
			continue
		}
		if m, ok := best[nearest]; !ok || dist < m.dist {
			best[nearest] = match{text: v, dist: dist}
		}
	}
	if len(best) == 0 {
		return
	}
	bound := make(map[*Vertex]bool, len(best))
	for e, m := range best {
		e.Label = m.text.Label
		bound[m.text] = true
	}
	vertices := d.Vertices[:0]
	for _, v := range d.Vertices {
		if !bound[v] {
			vertices = append(vertices, v)
		}
	}
	d.Vertices = vertices
}

// isText reports whether the vertex is a plain text shape.
func isText(v *Vertex) bool {
	return v.Style == "text" || strings.HasPrefix(v.Style, "text;")
}

// blank reports whether label has no text once markup is removed.
func blank(label string) bool {
	label = tagRe.ReplaceAllString(label, "")
	label = strings.ReplaceAll(label, "&nbsp;", " ")
	label = strings.ReplaceAll(label, "\u00a0", " ")
	return strings.TrimSpace(label) == ""
}

func polylineDistance(p Point, path []Point) float64 {
	if len(path) == 1 {
		return math.Hypot(p.X-path[0].X, p.Y-path[0].Y)
	}
	dist := math.Inf(1)
	for i := 1; i < len(path); i++ {
		dist = math.Min(dist, segmentDistance(p, path[i-1], path[i]))
	}
	return dist
}

func segmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

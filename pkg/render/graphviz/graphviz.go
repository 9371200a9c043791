// Package graphviz renders rho diagram documents to SVG using Graphviz.
//
// The diagram document is an otherwise opaque mapping; this engine reads the
// two keys it understands ("nodes" and "edges"), translates them to DOT, and
// lays the graph out with goccy/go-graphviz. The merged style document's
// "graph", "node", and "edge" sections become DOT attribute defaults. The
// mathjax config and typeset documents are not interpreted here: they are
// embedded into the SVG as a metadata payload so a downstream typesetting
// pass can pick them up.
package graphviz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/deverte/rho/pkg/document"
	"github.com/deverte/rho/pkg/errors"
	"github.com/deverte/rho/pkg/render"
)

// Engine is the Graphviz-backed rendering engine.
type Engine struct{}

// New returns a Graphviz rendering engine.
func New() *Engine {
	return &Engine{}
}

// node is one diagram node after validation.
type node struct {
	id    string
	label string
	attrs map[string]any
}

// edge is one diagram edge after validation.
type edge struct {
	from  string
	to    string
	label string
}

// diagram is a validated, renderable diagram.
type diagram struct {
	dot  string
	meta []byte // mathjax metadata payload, nil when both documents are absent
}

// NewDiagram validates doc and compiles it to DOT. The construction contract
// is deliberately narrow: every "nodes" entry needs a string id, every
// "edges" entry needs known endpoints, and everything else in the document
// is ignored. A diagram with no nodes is valid and renders an empty graph.
func (e *Engine) NewDiagram(doc document.Document, opts render.Options) (render.Diagram, error) {
	nodes, err := parseNodes(doc)
	if err != nil {
		return nil, err
	}
	edges, err := parseEdges(doc, nodes)
	if err != nil {
		return nil, err
	}

	meta, err := mathjaxMetadata(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode mathjax metadata")
	}

	return &diagram{
		dot:  toDOT(nodes, edges, opts.Style),
		meta: meta,
	}, nil
}

// parseNodes extracts and validates the "nodes" array.
func parseNodes(doc document.Document) ([]node, error) {
	raw, ok := doc["nodes"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "\"nodes\" must be an array, got %T", raw)
	}

	seen := make(map[string]bool, len(list))
	nodes := make([]node, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d must be an object, got %T", i, entry)
		}
		id, ok := m["id"].(string)
		if !ok || id == "" {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "node %d has no id", i)
		}
		if seen[id] {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "duplicate node id %q", id)
		}
		seen[id] = true

		n := node{id: id, label: id}
		if l, ok := m["label"].(string); ok {
			n.label = l
		}
		if a, ok := m["attrs"].(map[string]any); ok {
			n.attrs = a
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// parseEdges extracts and validates the "edges" array against known nodes.
func parseEdges(doc document.Document, nodes []node) ([]edge, error) {
	raw, ok := doc["edges"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "\"edges\" must be an array, got %T", raw)
	}

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.id] = true
	}

	edges := make([]edge, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "edge %d must be an object, got %T", i, entry)
		}
		from, _ := m["from"].(string)
		to, _ := m["to"].(string)
		if from == "" || to == "" {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "edge %d needs \"from\" and \"to\"", i)
		}
		if !known[from] {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "edge %s->%s references unknown node %q", from, to, from)
		}
		if !known[to] {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "edge %s->%s references unknown node %q", from, to, to)
		}

		e := edge{from: from, to: to}
		if l, ok := m["label"].(string); ok {
			e.label = l
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// toDOT compiles validated nodes and edges to Graphviz DOT, with the style
// document's graph/node/edge sections as attribute defaults.
func toDOT(nodes []node, edges []edge, style document.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph rho {\n")

	writeDefaults(&buf, "graph", style, map[string]any{
		"rankdir": "TB",
		"bgcolor": "transparent",
	})
	writeDefaults(&buf, "node", style, map[string]any{
		"shape":     "box",
		"style":     "rounded,filled",
		"fillcolor": "white",
	})
	writeDefaults(&buf, "edge", style, nil)
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.label)}
		for _, k := range slices.Sorted(maps.Keys(n.attrs)) {
			attrs = append(attrs, fmt.Sprintf("%s=%q", k, fmt.Sprint(n.attrs[k])))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeDefaults emits one DOT default-attribute statement for kind
// ("graph", "node", or "edge"). The style document's section of the same
// name overrides the built-in defaults key by key.
func writeDefaults(buf *bytes.Buffer, kind string, style document.Document, builtin map[string]any) {
	merged := make(map[string]any, len(builtin))
	maps.Copy(merged, builtin)
	if style != nil {
		if section, ok := style[kind].(map[string]any); ok {
			maps.Copy(merged, section)
		}
	}
	if len(merged) == 0 {
		return
	}

	attrs := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		attrs = append(attrs, fmt.Sprintf("%s=%q", k, fmt.Sprint(merged[k])))
	}
	fmt.Fprintf(buf, "  %s [%s];\n", kind, strings.Join(attrs, ", "))
}

// mathjaxMetadata encodes the mathjax documents as the SVG metadata payload.
// Returns nil when both documents are absent.
func mathjaxMetadata(opts render.Options) ([]byte, error) {
	if opts.MathJaxConfig == nil && opts.MathJaxTypeset == nil {
		return nil, nil
	}
	payload := map[string]any{}
	if opts.MathJaxConfig != nil {
		payload["config"] = opts.MathJaxConfig
	}
	if opts.MathJaxTypeset != nil {
		payload["typeset"] = opts.MathJaxTypeset
	}
	return json.Marshal(payload)
}

// Generate lays out the diagram and renders SVG.
func (d *diagram) Generate(ctx context.Context) (*render.Result, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(d.dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render")
	}

	svg := normalizeViewBox(buf.Bytes())
	if d.meta != nil {
		svg = embedMetadata(svg, d.meta)
	}
	return render.NewResult(svg), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the viewBox starts at
// the origin and width/height match, which keeps the output embeddable.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// embedMetadata inserts the mathjax payload as a metadata element directly
// after the opening svg tag.
func embedMetadata(svg, meta []byte) []byte {
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}

	element := fmt.Sprintf(`<metadata id="rho-mathjax">%s</metadata>`, meta)
	var out bytes.Buffer
	out.Grow(len(svg) + len(element))
	out.Write(svg[:loc[1]])
	out.WriteString(element)
	out.Write(svg[loc[1]:])
	return out.Bytes()
}

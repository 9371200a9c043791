// Package render defines the contract between rho's resolution pipeline and
// a rendering engine.
//
// The pipeline assembles a diagram document plus an options bag of style and
// mathjax documents, all of which may be absent; an [Engine] turns them into
// a [Diagram] or rejects them with a structured error. Generation is the one
// asynchronous boundary in rho: the resolution pipeline completes fully,
// synchronously, before [Diagram.Generate] is called, and Generate honors
// context cancellation.
//
// The graphviz subpackage provides the default engine.
package render

import (
	"context"

	"github.com/deverte/rho/pkg/document"
)

// Options is the bag of optional documents handed to an engine alongside
// the diagram. Any member may be nil (absent); engines must tolerate that.
type Options struct {
	// Style is the merged style overlay document.
	Style document.Document

	// MathJaxConfig and MathJaxTypeset configure downstream math
	// typesetting. Engines that do not typeset themselves carry them
	// through into the output for a later pass.
	MathJaxConfig  document.Document
	MathJaxTypeset document.Document
}

// Engine constructs diagrams from resolved documents.
type Engine interface {
	// NewDiagram validates doc and builds a renderable diagram.
	// A rejected document produces a structured error and no diagram.
	NewDiagram(doc document.Document, opts Options) (Diagram, error)
}

// Diagram is a constructed diagram awaiting generation.
type Diagram interface {
	// Generate renders the diagram. It blocks until rendering completes
	// or ctx is cancelled.
	Generate(ctx context.Context) (*Result, error)
}

// Result is a generated rendering.
type Result struct {
	svg []byte
}

// NewResult wraps rendered SVG bytes.
func NewResult(svg []byte) *Result {
	return &Result{svg: svg}
}

// SVG returns the textual SVG serialization of the result.
func (r *Result) SVG() string {
	return string(r.svg)
}

// Package drawio builds scatterplot diagrams in the draw.io (mxGraph) file
// format.
//
// Building and rendering are separate steps: Assemble produces a Document,
// an ordered list of drawable elements with their geometry and style, and
// Encode serializes a Document into the mxfile XML envelope. Tests and the
// PNG preview work on the Document directly.
package drawio

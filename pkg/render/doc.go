// Package render exports filtered proof graphs as Graphviz diagrams.
//
// [ToDOT] produces a DOT document from a filter result, styling nodes by
// declaration kind and drawing virtual edges dashed. [RenderSVG] turns the
// DOT text into an SVG via the embedded Graphviz engine.
//
//	dot := render.ToDOT(filtered, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
package render

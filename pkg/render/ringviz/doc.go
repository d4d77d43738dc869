// Package ringviz draws an I/O ring floorplan with Graphviz.
//
// # Usage
//
// Convert a resolved component list to DOT, then render to SVG:
//
//	dot, err := ringviz.ToDOT(components, ringviz.Config{Ring: rc})
//	svg, err := ringviz.RenderSVG(ctx, dot)
//
// # DOT Format
//
// Every component becomes a fixed-size box pinned at the centre of its
// body (pos="x,y!") and the graph asks for the neato engine, so Graphviz
// keeps the computed positions instead of laying the graph out itself. The
// chip outline is drawn as one dashed box behind the ring. Layout units map
// to points through [Config.Scale].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package ringviz

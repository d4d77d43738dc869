// Package render turns resolved ring layouts into pictures.
//
// # Overview
//
// Rendering is a read-only consumer of the same component list the command
// emitter uses. It never changes positions; it only draws them.
//
//   - Ring floorplans (in [ringviz] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := ringviz.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ringviz]: github.com/LiixTT/AMS-IO-Agent/pkg/render/ringviz
package render

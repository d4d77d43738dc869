// Package ring models an I/O ring and resolves pad placements around the
// chip perimeter.
//
// # Coordinates
//
// The chip occupies [0, ChipWidth] x [0, ChipHeight]. Every side has one
// [Orientation]:
//
//	R0   bottom  y = 0           body along x: [x, x+w]
//	R90  right   x = ChipWidth   body along y: [y, y+w]
//	R180 top     y = ChipHeight  body along x: [x-w, x]
//	R270 left    x = 0           body along y: [y-w, y]
//
// A component's Position is its cell origin; [Span] converts it to the
// interval its body covers along the side.
//
// # Placement order
//
// Pads are numbered along a walk of the perimeter. Clockwise walks the top
// left to right, the right side top to bottom, the bottom right to left and
// the left side bottom to top. Counterclockwise walks the left side top to
// bottom, the bottom left to right, the right side bottom to top and the top
// right to left. [Calculator.Regroup] sorts any component set into this
// order and is idempotent.
package ring

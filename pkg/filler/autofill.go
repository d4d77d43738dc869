package filler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// AutoFiller closes every gap in a resolved ring. It holds no state between
// calls.
type AutoFiller struct {
	ring       ring.RingConfig
	chooser    *Chooser
	strategy   Strategy
	classifier *process.Classifier
}

// NewAutoFiller returns an auto-filler for one ring.
func NewAutoFiller(rc ring.RingConfig, chooser *Chooser, strategy Strategy, classifier *process.Classifier) *AutoFiller {
	return &AutoFiller{ring: rc, chooser: chooser, strategy: strategy, classifier: classifier}
}

// Strategy returns the geometry strategy in use.
func (f *AutoFiller) Strategy() Strategy { return f.strategy }

// Filled reports whether components already contain filler or separator
// cells, by kind or by device.
func (f *AutoFiller) Filled(components []ring.Component) bool {
	for _, c := range components {
		if c.IsSpacer() || f.classifier.IsFiller(c.Device) || f.classifier.IsSeparator(c.Device) {
			return true
		}
	}
	return false
}

// Fill returns components followed by the cells closing every gap between
// consecutive outer pads and between each side's end pads and the chip
// corners. A gap named in gaps gets two narrow cells, one flush to each pad,
// leaving the centre for an inner pad. Components that are already filled
// are returned unchanged.
func (f *AutoFiller) Fill(components []ring.Component, gaps []ring.PadPair) ([]ring.Component, error) {
	if f.Filled(components) {
		return components, nil
	}

	order := f.ring.PlacementOrder
	sides, err := ring.Regroup(ring.OuterPads(components), order)
	if err != nil {
		return nil, err
	}

	pending := make(map[[2]string]bool, len(gaps))
	for _, g := range gaps {
		pending[gapKey(g[0], g[1])] = true
	}

	out := append([]ring.Component(nil), components...)
	for _, side := range order.Sides() {
		pads := sides[side]
		if len(pads) == 0 {
			continue
		}
		cells, err := f.fillSide(side, pads, sides, pending)
		if err != nil {
			return nil, fmt.Errorf("%s side: %w", side, err)
		}
		out = append(out, cells...)
	}

	if len(pending) > 0 {
		var unused []string
		for k := range pending {
			unused = append(unused, k[0]+"/"+k[1])
		}
		sort.Strings(unused)
		return nil, errors.New(errors.ErrCodeInvalidPlacement,
			"inner pad gap %s does not name two adjacent outer pads on one side", strings.Join(unused, ", "))
	}
	return out, nil
}

type sideWalk struct {
	side   ring.Side
	orient ring.Orientation
	perp   float64
	asc    bool
}

func (f *AutoFiller) fillSide(side ring.Side, pads []ring.Component, sides ring.Sides, pending map[[2]string]bool) ([]ring.Component, error) {
	o, err := side.Orientation()
	if err != nil {
		return nil, err
	}
	perp, err := f.strategy.Perpendicular(f.ring, side)
	if err != nil {
		return nil, err
	}
	w := sideWalk{side: side, orient: o, perp: perp, asc: f.ring.PlacementOrder.Ascending(side)}

	startEnd, finishEnd := lowEnd(side), highEnd(side)
	if !w.asc {
		startEnd, finishEnd = finishEnd, startEnd
	}

	var cells []ring.Component
	first, err := f.cornerCells(w, pads[0], startEnd, sides)
	if err != nil {
		return nil, err
	}
	cells = append(cells, first...)

	narrow := f.strategy.Width(true)
	for i := 0; i+1 < len(pads); i++ {
		curr, next := pads[i], pads[i+1]
		currLo, currHi, err := ring.Span(curr, f.ring.PadWidth)
		if err != nil {
			return nil, err
		}
		nextLo, nextHi, err := ring.Span(next, f.ring.PadWidth)
		if err != nil {
			return nil, err
		}

		device := f.chooser.Choose(curr, next)
		var slots []slot
		key := gapKey(curr.Name, next.Name)
		if pending[key] {
			// Narrow cells flush to each pad; the centre is left for the
			// inner pad.
			delete(pending, key)
			device = f.chooser.Narrow(device)
			if w.asc {
				slots = []slot{{currHi, narrow}, {nextLo - narrow, narrow}}
			} else {
				slots = []slot{{currLo - narrow, narrow}, {nextHi, narrow}}
			}
		} else {
			n, cw := f.cellsFor(device, 2)
			slots = run(n, cw, currLo, currHi, w.asc)
		}

		for j, s := range slots {
			c, err := f.cell(w, fmt.Sprintf("filler_%s_%d_%d", side, i+1, j+1), device, s.lo, s.width)
			if err != nil {
				return nil, err
			}
			cells = append(cells, c)
		}
	}

	last, err := f.cornerCells(w, pads[len(pads)-1], finishEnd, sides)
	if err != nil {
		return nil, err
	}
	return append(cells, last...), nil
}

// cornerCells closes the gap between pad and the chip corner at end.
func (f *AutoFiller) cornerCells(w sideWalk, pad ring.Component, end ring.Corner, sides ring.Sides) ([]ring.Component, error) {
	device := f.chooser.ChooseForCorner(sides.Flanks(end))
	lo, hi, err := ring.Span(pad, f.ring.PadWidth)
	if err != nil {
		return nil, err
	}
	n, width := f.cellsFor(device, f.strategy.CornerCells())
	base := fmt.Sprintf("filler_%s_%s_corner", w.side, endName(w.side, end))

	cells := make([]ring.Component, 0, n)
	for k, s := range run(n, width, lo, hi, end != lowEnd(w.side)) {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s_%d", base, k+1)
		}
		c, err := f.cell(w, name, device, s.lo, s.width)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// slot is the body of one spacer cell along its side.
type slot struct{ lo, width float64 }

// cellsFor returns the count and width of the cells device needs to cover
// the span of n standard cells.
func (f *AutoFiller) cellsFor(device string, n int) (int, float64) {
	if f.chooser.IsSeparator(device) {
		return f.strategy.Separator(n)
	}
	return n, f.strategy.Width(false)
}

// run lays n cells of width end to end from a pad spanning [lo, hi]: upward
// from hi, or downward from lo.
func run(n int, width, lo, hi float64, up bool) []slot {
	slots := make([]slot, n)
	for k := range slots {
		at := hi + float64(k)*width
		if !up {
			at = lo - float64(k+1)*width
		}
		slots[k] = slot{at, width}
	}
	return slots
}

func (f *AutoFiller) cell(w sideWalk, name, device string, lo, width float64) (ring.Component, error) {
	pt, err := ring.OriginFor(w.orient, lo, width, w.perp)
	if err != nil {
		return ring.Component{}, err
	}
	kind := ring.KindFiller
	if f.chooser.IsSeparator(device) {
		kind = ring.KindSeparator
	}
	return ring.Component{
		Kind:        kind,
		Name:        name,
		Device:      device,
		Position:    pt,
		Orientation: w.orient,
	}, nil
}

// lowEnd and highEnd name the chip corners at either end of a side, by
// coordinate.
func lowEnd(s ring.Side) ring.Corner {
	switch s {
	case ring.Bottom, ring.Left:
		return ring.BottomLeft
	case ring.Right:
		return ring.BottomRight
	default:
		return ring.TopLeft
	}
}

func highEnd(s ring.Side) ring.Corner {
	switch s {
	case ring.Bottom:
		return ring.BottomRight
	case ring.Left:
		return ring.TopLeft
	default:
		return ring.TopRight
	}
}

// endName is the part of a corner's name not shared with side: the right
// end of the bottom side is "right", the top end of the left side is "top".
func endName(side ring.Side, c ring.Corner) string {
	vertical, horizontal, _ := strings.Cut(c.String(), "_")
	if side == ring.Top || side == ring.Bottom {
		return horizontal
	}
	return vertical
}

func gapKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

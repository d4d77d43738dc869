package skill

import (
	"slices"
	"sort"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// eps absorbs float noise when comparing cell origins.
const eps = 1e-9

// substrate emits the tie-down rectangles under each pad, the polygon at
// each corner cell and the continuous band along each side. A side's band
// is split once around every run of touching separators placed on it.
func (g *Generator) substrate(l *layout, b *builder) error {
	if len(l.outer) == 0 {
		return nil
	}
	s := g.cfg.Substrate
	b.comment("--- " + s.Layer + " edge rectangles and corner polygons")

	pw := g.ring.PadWidth
	for _, p := range l.outer {
		if slices.Contains(s.SkipDevices, p.Device) {
			continue
		}
		f, err := frameOf(p.Orientation)
		if err != nil {
			return err
		}
		p1 := f.shift(p.Position, s.PadEdge, s.PadLow)
		p2 := f.shift(f.shift(p.Position, pw, s.PadHigh), -s.PadEdge)
		b.rect(s.Layer, p1, p2)
	}

	for _, c := range l.corners {
		pts, err := g.cornerPolygon(c)
		if err != nil {
			return err
		}
		b.polygon(s.Layer, pts)
	}

	cuts, err := g.cuts(l.spacers)
	if err != nil {
		return err
	}
	for _, o := range ring.Orientations {
		rects, err := g.band(o, cuts[o])
		if err != nil {
			return err
		}
		for _, r := range rects {
			b.rect(s.Layer, r[0], r[1])
		}
	}
	return nil
}

// cut is the stretch of a side's band left open around a run of separators.
type cut struct{ lo, hi float64 }

// cuts groups the separators of each side into runs of touching cells,
// one separator width apart, and opens the band around each run from its
// first to its last cell origin, widened by the cut half width.
func (g *Generator) cuts(spacers []ring.Component) (map[ring.Orientation][]cut, error) {
	at := make(map[ring.Orientation][]float64)
	for _, c := range spacers {
		if c.Kind != ring.KindSeparator {
			continue
		}
		a, err := ring.Along(c)
		if err != nil {
			return nil, err
		}
		at[c.Orientation] = append(at[c.Orientation], a)
	}

	half, step := g.cfg.Substrate.CutHalfWidth, g.cfg.Fillers.SeparatorWidth
	out := make(map[ring.Orientation][]cut, len(at))
	for o, xs := range at {
		sort.Float64s(xs)
		first, last := xs[0], xs[0]
		for _, x := range xs[1:] {
			if x-last > step+eps {
				out[o] = append(out[o], cut{first - half, last + half})
				first = x
			}
			last = x
		}
		out[o] = append(out[o], cut{first - half, last + half})
	}
	return out, nil
}

// cornerPolygon traces the substrate outline of a corner cell.
func (g *Generator) cornerPolygon(c ring.Component) ([]ring.Point, error) {
	s := g.cfg.Substrate
	lo, hi, reach, cs := s.BandLow, s.BandHigh, s.CornerReach, g.ring.CornerSize
	var offs [][2]float64
	switch c.Orientation {
	case ring.R0:
		offs = [][2]float64{{0, lo}, {reach, lo}, {reach, hi}, {hi, hi}, {hi, reach}, {lo, reach}, {lo, cs}, {0, cs}}
	case ring.R90:
		offs = [][2]float64{{-lo, 0}, {-reach, 0}, {-reach, lo}, {-hi, lo}, {-hi, reach}, {-lo, reach}, {-lo, cs}, {0, cs}}
	case ring.R180:
		offs = [][2]float64{{0, -lo}, {-reach, -lo}, {-reach, -hi}, {-hi, -hi}, {-hi, -reach}, {-lo, -reach}, {-lo, -cs}, {0, -cs}}
	case ring.R270:
		offs = [][2]float64{{lo, 0}, {reach, 0}, {reach, -lo}, {hi, -lo}, {hi, -reach}, {lo, -reach}, {lo, -cs}, {0, -cs}}
	default:
		return nil, invalid(c)
	}
	pts := make([]ring.Point, len(offs))
	for i, d := range offs {
		pts[i] = ring.Point{X: c.Position.X + d[0], Y: c.Position.Y + d[1]}
	}
	return pts, nil
}

// band returns the rectangles covering side o between the corner reaches,
// interrupted at each cut.
func (g *Generator) band(o ring.Orientation, cuts []cut) ([][2]ring.Point, error) {
	s := g.cfg.Substrate
	w, h := g.ring.ChipWidth, g.ring.ChipHeight
	length := w
	if o == ring.R90 || o == ring.R270 {
		length = h
	}

	type span struct{ a, b float64 }
	spans := []span{{a: s.CornerReach}}
	for _, c := range cuts {
		spans[len(spans)-1].b = c.lo
		spans = append(spans, span{a: c.hi})
	}
	spans[len(spans)-1].b = length - s.CornerReach

	out := make([][2]ring.Point, 0, len(spans))
	for i, sp := range spans {
		var p1, p2 ring.Point
		switch o {
		case ring.R0:
			p1, p2 = ring.Point{X: sp.a, Y: s.BandLow}, ring.Point{X: sp.b, Y: s.BandHigh}
		case ring.R90:
			p1, p2 = ring.Point{X: w - s.BandLow, Y: sp.a}, ring.Point{X: w - s.BandHigh, Y: sp.b}
		case ring.R180:
			switch {
			case len(cuts) == 0:
				p1, p2 = ring.Point{X: sp.b, Y: h - s.BandHigh}, ring.Point{X: sp.a, Y: h - s.BandLow}
			case i == 0:
				p1, p2 = ring.Point{X: sp.a, Y: h - s.BandLow}, ring.Point{X: sp.b, Y: h - s.BandHigh}
			default:
				p1, p2 = ring.Point{X: sp.a, Y: h - s.BandHigh}, ring.Point{X: sp.b, Y: h - s.BandLow}
			}
		case ring.R270:
			p1, p2 = ring.Point{X: s.BandLow, Y: sp.a}, ring.Point{X: s.BandHigh, Y: sp.b}
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidOrientation, ring.ErrInvalidOrientation,
				"substrate band for orientation %v", o)
		}
		out = append(out, [2]ring.Point{p1, p2})
	}
	return out, nil
}

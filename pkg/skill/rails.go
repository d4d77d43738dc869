package skill

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// rail is one straight configuration line. fixed is the coordinate that
// does not vary; lo and hi bound the other.
type rail struct {
	fixed, lo, hi float64
}

type railPair struct {
	vdd, gnd rail
}

// railPairs computes the VDD/GND line pair for every side holding at least
// one of pads.
func (g *Generator) railPairs(pads []ring.Component) (map[ring.Orientation]railPair, error) {
	type extent struct {
		minX, maxX, minY, maxY float64
		seen                   bool
	}
	ext := make(map[ring.Orientation]*extent)
	for _, p := range pads {
		if !p.Orientation.Valid() {
			return nil, invalid(p)
		}
		e, ok := ext[p.Orientation]
		if !ok {
			e = &extent{}
			ext[p.Orientation] = e
		}
		x, y := p.Position.X, p.Position.Y
		if !e.seen {
			*e = extent{minX: x, maxX: x, minY: y, maxY: y, seen: true}
			continue
		}
		e.minX, e.maxX = min(e.minX, x), max(e.maxX, x)
		e.minY, e.maxY = min(e.minY, y), max(e.maxY, y)
	}

	ph, pw := g.ring.PadHeight, g.ring.PadWidth
	r := g.cfg.Skill.Rails
	out := make(map[ring.Orientation]railPair, len(ext))
	for o, e := range ext {
		line := func(off float64) (rail, error) {
			switch o {
			case ring.R0:
				return rail{fixed: e.maxY + ph + off, lo: e.minX, hi: e.maxX + pw}, nil
			case ring.R90:
				return rail{fixed: e.minX - ph - off, lo: e.minY, hi: e.maxY + pw}, nil
			case ring.R180:
				return rail{fixed: e.minY - ph - off, lo: e.minX - pw, hi: e.maxX}, nil
			case ring.R270:
				return rail{fixed: e.maxX + ph + off, lo: e.minY - pw, hi: e.maxY}, nil
			}
			return rail{}, errors.Wrap(errors.ErrCodeInvalidOrientation, ring.ErrInvalidOrientation,
				"rail for orientation %v", o)
		}
		vdd, err := line(r.VDDOffset)
		if err != nil {
			return nil, err
		}
		gnd, err := line(r.GNDOffset)
		if err != nil {
			return nil, err
		}
		out[o] = railPair{vdd: vdd, gnd: gnd}
	}
	return out, nil
}

func (g *Generator) emitRails(pairs map[ring.Orientation]railPair, b *builder) {
	r := g.cfg.Skill.Rails
	for _, o := range ring.Orientations {
		pair, ok := pairs[o]
		if !ok {
			continue
		}
		for _, l := range []rail{pair.vdd, pair.gnd} {
			if o == ring.R0 || o == ring.R180 {
				b.path(r.Layer, ring.Point{X: l.lo, Y: l.fixed}, ring.Point{X: l.hi, Y: l.fixed}, r.Width, "")
			} else {
				b.path(r.Layer, ring.Point{X: l.fixed, Y: l.lo}, ring.Point{X: l.fixed, Y: l.hi}, r.Width, "")
			}
		}
	}

	if len(pairs) < 2 {
		return
	}
	jumpers := []struct {
		horizontal, vertical ring.Orientation
		// hiEnd picks the high end of the horizontal rail; hiVert that of
		// the vertical one.
		hiEnd, hiVert bool
	}{
		{ring.R180, ring.R270, false, true}, // top left
		{ring.R180, ring.R90, true, true},   // top right
		{ring.R0, ring.R270, false, false},  // bottom left
		{ring.R0, ring.R90, true, false},    // bottom right
	}
	for _, j := range jumpers {
		h, okH := pairs[j.horizontal]
		v, okV := pairs[j.vertical]
		if !okH || !okV {
			continue
		}
		for _, lines := range [][2]rail{{h.vdd, v.vdd}, {h.gnd, v.gnd}} {
			hr, vr := lines[0], lines[1]
			x1, y1 := pick(hr, j.hiEnd), hr.fixed
			x2, y2 := vr.fixed, pick(vr, j.hiVert)
			b.path(r.Layer, ring.Point{X: x1, Y: y1}, ring.Point{X: x2, Y: y1}, r.Width, r.JumperStyle)
			b.path(r.Layer, ring.Point{X: x2, Y: y1}, ring.Point{X: x2, Y: y2}, r.Width, r.JumperStyle)
		}
	}
}

func pick(r rail, hi bool) float64 {
	if hi {
		return r.hi
	}
	return r.lo
}

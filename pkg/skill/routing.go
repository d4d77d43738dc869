package skill

import (
	"slices"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Signal ends for digital-IO control pins.
const (
	toVDD   = "vdd"
	toGND   = "gnd"
	toLabel = "label"
)

type pinRoute struct {
	signal string
	end    string
}

// Control pin routing by direction, in emission order. Output pads leave C
// unconnected.
var (
	inputRoutes = []pinRoute{
		{"OEN", toVDD}, {"I", toGND}, {"C", toLabel}, {"DS", toVDD}, {"PE", toGND}, {"IE", toVDD},
	}
	outputRoutes = []pinRoute{
		{"OEN", toGND}, {"I", toLabel}, {"DS", toVDD}, {"PE", toGND}, {"IE", toGND},
	}
)

func routesFor(d ring.Direction) []pinRoute {
	if d == ring.DirectionInput {
		return inputRoutes
	}
	return outputRoutes
}

// digital emits the rails, rail taps and digital-IO routing for every
// digital-domain pad.
func (g *Generator) digital(l *layout, b *builder) error {
	var pads []ring.Component
	for _, p := range l.pads() {
		if g.domains.DomainOf(p) == ring.DomainDigital {
			pads = append(pads, p)
		}
	}
	if len(pads) == 0 {
		return nil
	}

	pairs, err := g.railPairs(pads)
	if err != nil {
		return err
	}
	g.emitRails(pairs, b)

	for _, p := range pads {
		if err := g.tap(p, b); err != nil {
			return err
		}
	}
	for _, p := range pads {
		if !g.domains.IsDigitalIO(p) {
			continue
		}
		if err := g.routeIO(p, b); err != nil {
			return err
		}
	}
	return nil
}

// tap connects a digital power pad to its rail.
func (g *Generator) tap(p ring.Component, b *builder) error {
	t := g.cfg.Skill.Taps
	r := g.cfg.Skill.Rails
	var off float64
	switch {
	case slices.Contains(t.VDDDevices, p.Device):
		off = r.VDDOffset
	case slices.Contains(t.GNDDevices, p.Device):
		off = r.GNDOffset
	default:
		return nil
	}
	f, err := frameOf(p.Orientation)
	if err != nil {
		return err
	}
	ph := g.ring.PadHeight
	config := f.shift(p.Position, t.AlongOffset, ph, -t.EdgeOffset)
	via := f.shift(p.Position, t.AlongOffset, ph, off)
	b.path(t.Layer, f.shift(via, 0, t.Width/2), config, t.Width, "")
	b.via(g.cfg.Skill.Via, via, p.Orientation)
	return nil
}

// routeIO wires each control pin of a digital-IO pad to a rail, or labels
// it when it stays local.
func (g *Generator) routeIO(p ring.Component, b *builder) error {
	d := g.cfg.Skill.DigitalIO
	r := g.cfg.Skill.Rails
	f, err := frameOf(p.Orientation)
	if err != nil {
		return err
	}
	ph := g.ring.PadHeight
	for _, route := range routesFor(p.IODirection) {
		offset, ok := d.PinOffsets[route.signal]
		if !ok {
			return errors.New(errors.ErrCodeConfigMalformed, "%s: skill.digital_io.pin_offsets has no %s", g.cfg.Source, route.signal)
		}
		base := f.shift(p.Position, offset, ph, -d.BaseInset)
		if route.end == toLabel {
			b.label(d.PinLayer, base, p.Name+"_CORE", f.inwardJust, f.labelOrient, d.PinSize)
			continue
		}
		railOff := r.VDDOffset
		if route.end == toGND {
			railOff = r.GNDOffset
		}
		end := f.shift(p.Position, offset, ph, railOff, r.Width/2)
		via := f.shift(p.Position, offset, ph, railOff)
		b.path(d.Layer, base, end, d.Width, "")
		b.via(g.cfg.Skill.Via, via, p.Orientation)
	}
	return nil
}

func invalid(c ring.Component) error {
	return errors.Wrap(errors.ErrCodeInvalidOrientation, ring.ErrInvalidOrientation,
		"component %q has orientation %v", c.Name, c.Orientation)
}

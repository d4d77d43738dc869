package skill

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// labels emits a primary label for every pad and a core label for every
// voltage-domain provider. Outer labels sit outside the chip edge; inner
// labels are pushed into the core.
func (g *Generator) labels(l *layout, b *builder) error {
	spec := g.cfg.Skill.Labels
	for _, p := range l.outer {
		f, err := frameOf(p.Orientation)
		if err != nil {
			return err
		}
		at := f.shift(p.Position, spec.Outer.Along, -spec.Outer.Depth)
		b.label(spec.Outer.Layer, at, p.Name, f.outwardJust, f.labelOrient, spec.Outer.Size)
		g.coreLabel(p, f, b)
	}
	for _, p := range l.inner {
		f, err := frameOf(p.Orientation)
		if err != nil {
			return err
		}
		at := f.shift(p.Position, spec.Inner.Along, spec.Inner.Depth)
		b.label(spec.Inner.Layer, at, p.Name, f.inwardJust, f.labelOrient, spec.Inner.Size)
		g.coreLabel(p, f, b)
	}
	return nil
}

func (g *Generator) coreLabel(p ring.Component, f frame, b *builder) {
	if !g.domains.IsProvider(p) {
		return
	}
	core := g.cfg.Skill.Labels.Core
	at := f.shift(p.Position, core.Along, g.ring.PadHeight, -core.Depth)
	b.label(core.Layer, at, p.Name+"_CORE", f.inwardJust, f.labelOrient, core.Size)
}

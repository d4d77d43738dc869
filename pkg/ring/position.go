package ring

import (
	"fmt"
	"sort"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// Corner is one chip corner.
type Corner uint8

const (
	BottomLeft Corner = iota + 1
	BottomRight
	TopRight
	TopLeft
)

// Corners lists the chip corners in the order corner cells are emitted.
var Corners = [4]Corner{BottomLeft, BottomRight, TopRight, TopLeft}

func (c Corner) String() string {
	switch c {
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	}
	return fmt.Sprintf("Corner(%d)", uint8(c))
}

// CornerOrigin returns the position and orientation of the corner cell at c.
func (rc RingConfig) CornerOrigin(c Corner) (Point, Orientation, error) {
	switch c {
	case BottomLeft:
		return Point{0, 0}, R0, nil
	case BottomRight:
		return Point{rc.ChipWidth, 0}, R90, nil
	case TopRight:
		return Point{rc.ChipWidth, rc.ChipHeight}, R180, nil
	case TopLeft:
		return Point{0, rc.ChipHeight}, R270, nil
	}
	return Point{}, Orientation(0), invalidOrientation(c)
}

// Sides holds components grouped by side, each in walk order.
type Sides map[Side][]Component

// Walk concatenates the sides in the order the walk visits them.
func (s Sides) Walk(order PlacementOrder) []Component {
	var out []Component
	for _, side := range order.Sides() {
		out = append(out, s[side]...)
	}
	return out
}

// Flanks returns the two outer pads adjacent to corner c: the extreme pad of
// each side meeting there. A side without pads yields nil.
func (s Sides) Flanks(c Corner) (a, b *Component) {
	switch c {
	case BottomLeft:
		return s.extreme(Bottom, false), s.extreme(Left, false)
	case BottomRight:
		return s.extreme(Bottom, true), s.extreme(Right, false)
	case TopRight:
		return s.extreme(Top, true), s.extreme(Right, true)
	case TopLeft:
		return s.extreme(Top, false), s.extreme(Left, true)
	}
	return nil, nil
}

func (s Sides) extreme(side Side, highest bool) *Component {
	var best *Component
	var bestAt float64
	for i := range s[side] {
		c := &s[side][i]
		if !c.IsOuterPad() {
			continue
		}
		at, err := Along(*c)
		if err != nil {
			continue
		}
		if best == nil || (highest && at > bestAt) || (!highest && at < bestAt) {
			best, bestAt = c, at
		}
	}
	return best
}

// CornerPicker returns the corner device for corner c given its two flanking
// pads, either of which may be nil.
type CornerPicker func(c Corner, a, b *Component) string

// Calculator resolves relative placements against one ring configuration.
// It holds no mutable state.
type Calculator struct {
	cfg RingConfig
}

// NewCalculator returns a calculator for cfg.
func NewCalculator(cfg RingConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Config returns the ring configuration.
func (c *Calculator) Config() RingConfig { return c.cfg }

// Place returns the origin and orientation of the pad at p.
func (c *Calculator) Place(p Placement) (Point, Orientation, error) {
	o, err := p.Side.Orientation()
	if err != nil {
		return Point{}, 0, err
	}
	edge, err := c.cfg.Edge(p.Side)
	if err != nil {
		return Point{}, 0, err
	}
	w := c.cfg.PadWidth
	start := c.cfg.CornerSize + c.cfg.PadOffset + float64(p.Index)*c.cfg.PadSpacing
	lo := start
	if !c.cfg.PlacementOrder.Ascending(p.Side) {
		lo = c.cfg.SideLength(p.Side) - start - w
	}
	if lo < 0 || lo+w > c.cfg.SideLength(p.Side) {
		return Point{}, 0, errors.New(errors.ErrCodeInvalidPlacement, "%s falls outside the %s side (length %v)", p, p.Side, c.cfg.SideLength(p.Side))
	}
	pt, err := OriginFor(o, lo, w, edge)
	return pt, o, err
}

// Resolve converts g into absolute components: outer pads in declaration
// order, then inner pads, then one corner per chip corner when corners is
// non-nil and g declares none.
func (c *Calculator) Resolve(g *IntentGraph, corners CornerPicker) ([]Component, error) {
	var (
		out    []Component
		inner  []Instance
		names  = make(map[string]int)
		places = make(map[Placement]string)
	)
	add := func(comp Component) error {
		if err := comp.Validate(); err != nil {
			return err
		}
		if _, dup := names[comp.Name]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate instance name %q", comp.Name)
		}
		names[comp.Name] = len(out)
		out = append(out, comp)
		return nil
	}

	for _, in := range g.Instances {
		if in.IsInner() {
			inner = append(inner, in)
			continue
		}
		comp, err := in.component()
		if err != nil {
			return nil, err
		}
		rel, abs, err := in.placement()
		if err != nil {
			return nil, err
		}
		if rel != nil {
			if prev, taken := places[*rel]; taken {
				return nil, errors.New(errors.ErrCodeInvalidPlacement, "%q and %q both claim %s", prev, in.Name, rel)
			}
			places[*rel] = in.Name
			if comp.Position, comp.Orientation, err = c.Place(*rel); err != nil {
				return nil, fmt.Errorf("instance %q: %w", in.Name, err)
			}
		} else {
			comp.Position = *abs
			if comp.Orientation, err = ParseOrientation(in.Orientation); err != nil {
				return nil, fmt.Errorf("instance %q: %w", in.Name, err)
			}
		}
		if err := add(comp); err != nil {
			return nil, err
		}
	}
	for _, comp := range g.Components {
		if err := add(comp); err != nil {
			return nil, err
		}
	}

	for _, in := range inner {
		comp, err := c.placeInner(in, out, names)
		if err != nil {
			return nil, err
		}
		if err := add(comp); err != nil {
			return nil, err
		}
	}

	if corners == nil || HasKind(out, KindCorner) {
		return out, nil
	}
	sides, err := c.Regroup(OuterPads(out))
	if err != nil {
		return nil, err
	}
	for _, corner := range Corners {
		pt, o, err := c.cfg.CornerOrigin(corner)
		if err != nil {
			return nil, err
		}
		a, b := sides.Flanks(corner)
		comp := Component{
			Kind:        KindCorner,
			Name:        "corner_" + corner.String(),
			Device:      corners(corner, a, b),
			Position:    pt,
			Orientation: o,
		}
		if err := add(comp); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// placeInner centres an inner pad in the gap between its two outer pads.
func (c *Calculator) placeInner(in Instance, placed []Component, names map[string]int) (Component, error) {
	comp, err := in.component()
	if err != nil {
		return Component{}, err
	}
	if len(in.Between) != 2 {
		return Component{}, errors.New(errors.ErrCodeInvalidPlacement, "inner pad %q must name exactly two outer pads in between", in.Name)
	}
	var pair [2]Component
	for i, name := range in.Between {
		idx, ok := names[name]
		if !ok || !placed[idx].IsOuterPad() {
			return Component{}, errors.New(errors.ErrCodeInvalidPlacement, "inner pad %q: %q is not an outer pad", in.Name, name)
		}
		pair[i] = placed[idx]
	}
	if pair[0].Orientation != pair[1].Orientation {
		return Component{}, errors.New(errors.ErrCodeInvalidPlacement, "inner pad %q: %q and %q are on different sides", in.Name, pair[0].Name, pair[1].Name)
	}
	w := c.cfg.PadWidth
	aLo, aHi, err := Span(pair[0], w)
	if err != nil {
		return Component{}, err
	}
	bLo, bHi, err := Span(pair[1], w)
	if err != nil {
		return Component{}, err
	}
	var gapLo, gapHi float64
	switch {
	case aHi <= bLo:
		gapLo, gapHi = aHi, bLo
	case bHi <= aLo:
		gapLo, gapHi = bHi, aLo
	default:
		return Component{}, errors.New(errors.ErrCodeInvalidPlacement, "inner pad %q: %q and %q overlap", in.Name, pair[0].Name, pair[1].Name)
	}
	side, err := pair[0].Orientation.Side()
	if err != nil {
		return Component{}, err
	}
	edge, err := c.cfg.Edge(side)
	if err != nil {
		return Component{}, err
	}
	comp.Orientation = pair[0].Orientation
	comp.Position, err = OriginFor(comp.Orientation, (gapLo+gapHi-w)/2, w, edge)
	return comp, err
}

// Regroup partitions components by orientation and sorts each side in walk
// order. Ties on the along-side coordinate are broken by name, so
// regrouping an already regrouped set reproduces it.
func (c *Calculator) Regroup(components []Component) (Sides, error) {
	return Regroup(components, c.cfg.PlacementOrder)
}

// Regroup is [Calculator.Regroup] for an explicit order.
func Regroup(components []Component, order PlacementOrder) (Sides, error) {
	sides := make(Sides)
	for _, comp := range components {
		side, err := comp.Orientation.Side()
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", comp.Name, err)
		}
		sides[side] = append(sides[side], comp)
	}
	for side, list := range sides {
		asc := order.Ascending(side)
		sort.SliceStable(list, func(i, j int) bool {
			ai, _ := Along(list[i])
			aj, _ := Along(list[j])
			if ai != aj {
				return (ai < aj) == asc
			}
			return list[i].Name < list[j].Name
		})
	}
	return sides, nil
}

// OuterPads returns the outer-ring pads of components in their input order.
func OuterPads(components []Component) []Component {
	var out []Component
	for _, c := range components {
		if c.IsOuterPad() {
			out = append(out, c)
		}
	}
	return out
}

// HasKind reports whether any component has kind k.
func HasKind(components []Component, k Kind) bool {
	for _, c := range components {
		if c.Kind == k {
			return true
		}
	}
	return false
}

package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Check names reported in diagnostics.
const (
	CheckNode       = "node"
	CheckComponent  = "component"
	CheckUnique     = "unique_names"
	CheckCorners    = "corners"
	CheckBounds     = "bounds"
	CheckOverlap    = "overlap"
	CheckClassified = "classified"
)

// eps absorbs float noise when comparing coordinates.
const eps = 1e-9

// Structural validates component geometry against one ring.
type Structural struct {
	ring       ring.RingConfig
	classifier *process.Classifier
}

// NewStructural returns a validator for rc whose devices are looked up in
// classifier.
func NewStructural(rc ring.RingConfig, classifier *process.Classifier) *Structural {
	return &Structural{ring: rc, classifier: classifier}
}

// Validate runs every structural check and collects the findings in check
// order.
func (s *Structural) Validate(components []ring.Component, node process.Node) Report {
	var diags []Diagnostic
	if node != s.classifier.Node() {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Check:    CheckNode,
			Message:  fmt.Sprintf("components are for %s but the device library is %s", node, s.classifier.Node()),
		})
	}

	// Geometry checks need well-formed components.
	var valid []ring.Component
	for _, c := range components {
		if err := c.Validate(); err != nil {
			diags = append(diags, errorf(CheckComponent, c.Name, "%v", err))
			continue
		}
		valid = append(valid, c)
	}

	for _, check := range []func([]ring.Component) []Diagnostic{
		s.uniqueNames,
		s.corners,
		s.bounds,
		s.overlap,
		s.classified,
	} {
		diags = append(diags, check(valid)...)
	}
	return newReport(diags)
}

func (s *Structural) uniqueNames(components []ring.Component) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]bool, len(components))
	for _, c := range components {
		if seen[c.Name] {
			diags = append(diags, errorf(CheckUnique, c.Name, "name is used more than once"))
			continue
		}
		seen[c.Name] = true
	}
	return diags
}

// corners requires exactly one corner cell at each chip corner once any
// corner is present.
func (s *Structural) corners(components []ring.Component) []Diagnostic {
	var diags []Diagnostic
	count := make(map[ring.Corner]int)
	found := false
	for _, c := range components {
		if c.Kind != ring.KindCorner {
			continue
		}
		found = true
		at, ok := s.cornerAt(c)
		if !ok {
			diags = append(diags, errorf(CheckCorners, c.Name, "corner at %v %s is not on a chip corner", c.Position, c.Orientation))
			continue
		}
		count[at]++
	}
	if !found {
		return diags
	}
	for _, at := range ring.Corners {
		switch n := count[at]; {
		case n == 0:
			diags = append(diags, errorf(CheckCorners, "", "no corner cell at %s", at))
		case n > 1:
			diags = append(diags, errorf(CheckCorners, "", "%d corner cells at %s", n, at))
		}
	}
	return diags
}

func (s *Structural) cornerAt(c ring.Component) (ring.Corner, bool) {
	for _, at := range ring.Corners {
		p, o, err := s.ring.CornerOrigin(at)
		if err != nil {
			continue
		}
		if o == c.Orientation && near(p.X, c.Position.X) && near(p.Y, c.Position.Y) {
			return at, true
		}
	}
	return 0, false
}

// bounds keeps every pad body on its side between the two chip corners.
// Outer pads must also sit on the chip edge.
func (s *Structural) bounds(components []ring.Component) []Diagnostic {
	var diags []Diagnostic
	for _, c := range components {
		if !c.IsPad() {
			continue
		}
		side, err := c.Orientation.Side()
		if err != nil {
			diags = append(diags, errorf(CheckBounds, c.Name, "%v", err))
			continue
		}
		lo, hi, err := ring.Span(c, s.ring.PadWidth)
		if err != nil {
			diags = append(diags, errorf(CheckBounds, c.Name, "%v", err))
			continue
		}
		if lo < -eps || hi > s.ring.SideLength(side)+eps {
			diags = append(diags, errorf(CheckBounds, c.Name, "body [%v, %v] leaves the %s side (length %v)",
				lo, hi, side, s.ring.SideLength(side)))
		}
		if c.Inner {
			continue
		}
		edge, err := s.ring.Edge(side)
		if err != nil {
			diags = append(diags, errorf(CheckBounds, c.Name, "%v", err))
			continue
		}
		perp := c.Position.Y
		if side == ring.Left || side == ring.Right {
			perp = c.Position.X
		}
		if !near(perp, edge) {
			diags = append(diags, errorf(CheckBounds, c.Name, "pad is %v from the %s edge", math.Abs(perp-edge), side))
		}
	}
	return diags
}

// overlap reports pads on the same side whose bodies intersect. Outer and
// inner pads are checked separately since they occupy different rows.
func (s *Structural) overlap(components []ring.Component) []Diagnostic {
	type body struct {
		name   string
		lo, hi float64
	}
	type row struct {
		side  ring.Side
		inner bool
	}
	rows := make(map[row][]body)
	for _, c := range components {
		if !c.IsPad() {
			continue
		}
		side, err := c.Orientation.Side()
		if err != nil {
			continue
		}
		lo, hi, err := ring.Span(c, s.ring.PadWidth)
		if err != nil {
			continue
		}
		k := row{side, c.Inner}
		rows[k] = append(rows[k], body{c.Name, lo, hi})
	}

	keys := make([]row, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].side != keys[j].side {
			return keys[i].side < keys[j].side
		}
		return !keys[i].inner && keys[j].inner
	})

	var diags []Diagnostic
	for _, k := range keys {
		bodies := rows[k]
		sort.SliceStable(bodies, func(i, j int) bool { return bodies[i].lo < bodies[j].lo })
		for i := 1; i < len(bodies); i++ {
			prev, cur := bodies[i-1], bodies[i]
			if cur.lo < prev.hi-eps {
				diags = append(diags, errorf(CheckOverlap, cur.name, "body overlaps %s on the %s side by %v",
					prev.name, k.side, prev.hi-cur.lo))
			}
		}
	}
	return diags
}

// classified warns about devices the node library does not list.
func (s *Structural) classified(components []ring.Component) []Diagnostic {
	var diags []Diagnostic
	for _, c := range components {
		if s.classifier.Classify(c.Device) == process.ClassUnknown {
			diags = append(diags, Diagnostic{
				Severity:  SeverityWarning,
				Check:     CheckClassified,
				Component: c.Name,
				Message:   fmt.Sprintf("device %s is not in the %s library", c.Device, s.classifier.Node()),
			})
		}
	}
	return diags
}

func errorf(check, component, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Check: check, Component: component, Message: fmt.Sprintf(format, args...)}
}

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

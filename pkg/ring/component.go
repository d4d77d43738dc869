package ring

import (
	"encoding/json"
	"fmt"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// Kind is the role of a placed component.
type Kind string

const (
	KindPad       Kind = "pad"
	KindCorner    Kind = "corner"
	KindFiller    Kind = "filler"
	KindSeparator Kind = "separator"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPad, KindCorner, KindFiller, KindSeparator:
		return true
	}
	return false
}

// Direction is the signal direction of a digital-IO pad.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Domain tags.
const (
	DomainDigital = "digital"
	DomainAnalog  = "analog"
)

// Point is a layout coordinate.
type Point struct {
	X float64
	Y float64
}

// MarshalJSON encodes a point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%s,%s]", formatNumber(p.X), formatNumber(p.Y)), nil
}

// UnmarshalJSON decodes a point from [x, y].
func (p *Point) UnmarshalJSON(b []byte) error {
	var xy []float64
	if err := json.Unmarshal(b, &xy); err != nil || len(xy) != 2 {
		return errors.New(errors.ErrCodeInvalidInput, "position %s is not an [x, y] pair", string(b))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Nets is the power/ground net pair a pad provides or consumes.
type Nets struct {
	Power  string `json:"power"`
	Ground string `json:"ground"`
}

// Component is one placed cell. Components are values: stages copy them and
// never modify a collection they did not create.
type Component struct {
	Kind        Kind
	Name        string
	Device      string
	Position    Point
	Orientation Orientation
	// Domain is an explicit "digital"/"analog" tag, empty when not given.
	Domain      string
	Nets        *Nets
	IODirection Direction
	// Inner marks a pad on the inner ring.
	Inner bool
}

const innerPadType = "inner_pad"

type componentJSON struct {
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Device      string      `json:"device"`
	Position    Point       `json:"position"`
	Orientation Orientation `json:"orientation"`
	Domain      string      `json:"domain,omitempty"`
	Nets        *Nets       `json:"voltage_domain,omitempty"`
	IODirection Direction   `json:"direction,omitempty"`
}

// MarshalJSON writes the layout_components form. Inner pads use the
// "inner_pad" type.
func (c Component) MarshalJSON() ([]byte, error) {
	typ := string(c.Kind)
	if c.Kind == KindPad && c.Inner {
		typ = innerPadType
	}
	return json.Marshal(componentJSON{
		Type:        typ,
		Name:        c.Name,
		Device:      c.Device,
		Position:    c.Position,
		Orientation: c.Orientation,
		Domain:      c.Domain,
		Nets:        c.Nets,
		IODirection: c.IODirection,
	})
}

// UnmarshalJSON reads the layout_components form. A missing type means pad.
func (c *Component) UnmarshalJSON(b []byte) error {
	var v componentJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Component{
		Kind:        Kind(v.Type),
		Name:        v.Name,
		Device:      v.Device,
		Position:    v.Position,
		Orientation: v.Orientation,
		Domain:      v.Domain,
		Nets:        v.Nets,
		IODirection: v.IODirection,
	}
	switch v.Type {
	case "":
		c.Kind = KindPad
	case innerPadType:
		c.Kind, c.Inner = KindPad, true
	}
	return nil
}

// IsPad reports whether c is an outer- or inner-ring pad.
func (c Component) IsPad() bool { return c.Kind == KindPad }

// IsOuterPad reports whether c is a pad on the outer ring.
func (c Component) IsOuterPad() bool { return c.Kind == KindPad && !c.Inner }

// IsSpacer reports whether c is a filler or separator.
func (c Component) IsSpacer() bool { return c.Kind == KindFiller || c.Kind == KindSeparator }

// Span returns the interval c's body covers along its side for a cell of
// the given width.
func Span(c Component, width float64) (lo, hi float64, err error) {
	switch c.Orientation {
	case R0:
		return c.Position.X, c.Position.X + width, nil
	case R90:
		return c.Position.Y, c.Position.Y + width, nil
	case R180:
		return c.Position.X - width, c.Position.X, nil
	case R270:
		return c.Position.Y - width, c.Position.Y, nil
	}
	return 0, 0, invalidOrientation(c.Orientation)
}

// Along returns the coordinate that varies along c's side.
func Along(c Component) (float64, error) {
	switch c.Orientation {
	case R0, R180:
		return c.Position.X, nil
	case R90, R270:
		return c.Position.Y, nil
	}
	return 0, invalidOrientation(c.Orientation)
}

// OriginFor returns the origin of a cell of orientation o whose body starts
// at lo along the side, with perp as the fixed perpendicular coordinate.
func OriginFor(o Orientation, lo, width, perp float64) (Point, error) {
	switch o {
	case R0:
		return Point{X: lo, Y: perp}, nil
	case R90:
		return Point{X: perp, Y: lo}, nil
	case R180:
		return Point{X: lo + width, Y: perp}, nil
	case R270:
		return Point{X: perp, Y: lo + width}, nil
	}
	return Point{}, invalidOrientation(o)
}

// Validate checks the fields every stage relies on.
func (c Component) Validate() error {
	if !c.Kind.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "component %q: unknown type %q", c.Name, c.Kind)
	}
	if err := errors.ValidateInstanceName(c.Name); err != nil {
		return err
	}
	if err := errors.ValidateDeviceName(c.Device); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "component %q", c.Name)
	}
	if !c.Orientation.Valid() {
		return fmt.Errorf("component %q: %w", c.Name, invalidOrientation(c.Orientation))
	}
	switch c.Domain {
	case "", DomainDigital, DomainAnalog:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "component %q: unknown domain %q", c.Name, c.Domain)
	}
	switch c.IODirection {
	case DirectionNone:
	case DirectionInput, DirectionOutput:
		if c.Kind != KindPad {
			return errors.New(errors.ErrCodeInvalidInput, "component %q: only pads carry a direction", c.Name)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "component %q: unknown direction %q", c.Name, c.IODirection)
	}
	return nil
}

package ring

import (
	stderrors "errors"
	"fmt"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// Orientation is the rotation of a cell on the perimeter. Each value
// corresponds to exactly one chip side.
type Orientation uint8

// The zero value is invalid so that an unset orientation is never mistaken
// for R0.
const (
	R0 Orientation = iota + 1
	R90
	R180
	R270
)

// ErrInvalidOrientation is wrapped by every error raised for an orientation
// outside the four recognized values.
var ErrInvalidOrientation = stderrors.New("invalid orientation")

// Orientations lists the four orientations in R0, R90, R180, R270 order.
var Orientations = [4]Orientation{R0, R90, R180, R270}

// ParseOrientation parses "R0", "R90", "R180" or "R270".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "R0":
		return R0, nil
	case "R90":
		return R90, nil
	case "R180":
		return R180, nil
	case "R270":
		return R270, nil
	}
	return 0, invalidOrientation(s)
}

// String returns the tag used in emitted commands.
func (o Orientation) String() string {
	switch o {
	case R0:
		return "R0"
	case R90:
		return "R90"
	case R180:
		return "R180"
	case R270:
		return "R270"
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// Valid reports whether o is one of the four recognized values.
func (o Orientation) Valid() bool {
	return o >= R0 && o <= R270
}

// Side returns the chip side o belongs to.
func (o Orientation) Side() (Side, error) {
	switch o {
	case R0:
		return Bottom, nil
	case R90:
		return Right, nil
	case R180:
		return Top, nil
	case R270:
		return Left, nil
	}
	return 0, invalidOrientation(o)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, invalidOrientation(o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func invalidOrientation(v any) error {
	return errors.Wrap(errors.ErrCodeInvalidOrientation, ErrInvalidOrientation,
		"orientation %v is not one of R0, R90, R180, R270", v)
}

// Side is one edge of the chip.
type Side uint8

const (
	Bottom Side = iota + 1
	Right
	Top
	Left
)

// ParseSide parses "bottom", "right", "top" or "left".
func ParseSide(s string) (Side, error) {
	switch s {
	case "bottom":
		return Bottom, nil
	case "right":
		return Right, nil
	case "top":
		return Top, nil
	case "left":
		return Left, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPlacement, "unknown side %q (want left, right, top or bottom)", s)
}

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Right:
		return "right"
	case Top:
		return "top"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Orientation returns the orientation of cells on side s.
func (s Side) Orientation() (Orientation, error) {
	switch s {
	case Bottom:
		return R0, nil
	case Right:
		return R90, nil
	case Top:
		return R180, nil
	case Left:
		return R270, nil
	}
	return 0, invalidOrientation(s)
}

package ring

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
)

// PlacementOrder is the direction of the perimeter walk.
type PlacementOrder string

const (
	Clockwise        PlacementOrder = "clockwise"
	Counterclockwise PlacementOrder = "counterclockwise"
)

// ParsePlacementOrder accepts "clockwise" or "counterclockwise".
func ParsePlacementOrder(s string) (PlacementOrder, error) {
	switch PlacementOrder(s) {
	case Clockwise, Counterclockwise:
		return PlacementOrder(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidRingConfig, "placement_order %q must be clockwise or counterclockwise", s)
}

// Sides returns the four sides in the order the walk visits them.
func (p PlacementOrder) Sides() [4]Side {
	if p == Clockwise {
		return [4]Side{Top, Right, Bottom, Left}
	}
	return [4]Side{Left, Bottom, Right, Top}
}

// Ascending reports whether the walk moves toward larger coordinates on s.
func (p PlacementOrder) Ascending(s Side) bool {
	switch s {
	case Top, Left:
		return p == Clockwise
	default:
		return p != Clockwise
	}
}

// RingConfig holds the physical constants of one generation run. It is
// immutable once completed.
type RingConfig struct {
	ProcessNode    process.Node   `json:"process_node"`
	PadWidth       float64        `json:"pad_width"`
	PadHeight      float64        `json:"pad_height"`
	CornerSize     float64        `json:"corner_size"`
	PadSpacing     float64        `json:"pad_spacing"`
	PadOffset      float64        `json:"pad_offset"`
	ChipWidth      float64        `json:"chip_width"`
	ChipHeight     float64        `json:"chip_height"`
	PlacementOrder PlacementOrder `json:"placement_order"`
}

// RingSpec is the ring_config block of an intent graph. Any field left nil
// is taken from the node's configuration document or derived.
type RingSpec struct {
	ProcessNode    string   `json:"process_node,omitempty"`
	PadWidth       *float64 `json:"pad_width,omitempty"`
	PadHeight      *float64 `json:"pad_height,omitempty"`
	CornerSize     *float64 `json:"corner_size,omitempty"`
	PadSpacing     *float64 `json:"pad_spacing,omitempty"`
	PadOffset      *float64 `json:"pad_offset,omitempty"`
	ChipWidth      *float64 `json:"chip_width,omitempty"`
	ChipHeight     *float64 `json:"chip_height,omitempty"`
	PlacementOrder string   `json:"placement_order,omitempty"`
}

// Complete fills the unset fields of s from cfg. counts holds the number of
// relative outer pads per side and is used to derive a missing chip
// dimension.
func (s RingSpec) Complete(cfg *process.Config, counts map[Side]int) (RingConfig, error) {
	l := cfg.Layout
	rc := RingConfig{
		ProcessNode:    cfg.Node,
		PadWidth:       orDefault(s.PadWidth, l.PadWidth),
		PadHeight:      orDefault(s.PadHeight, l.PadHeight),
		CornerSize:     orDefault(s.CornerSize, l.CornerSize),
		PadSpacing:     orDefault(s.PadSpacing, l.PadSpacing),
		PadOffset:      orDefault(s.PadOffset, l.PadOffset),
		PlacementOrder: PlacementOrder(l.PlacementOrder),
	}
	if s.PlacementOrder != "" {
		order, err := ParsePlacementOrder(s.PlacementOrder)
		if err != nil {
			return RingConfig{}, err
		}
		rc.PlacementOrder = order
	}

	var err error
	if rc.ChipWidth, err = rc.dimension(s.ChipWidth, "chip_width", counts[Top], counts[Bottom]); err != nil {
		return RingConfig{}, err
	}
	if rc.ChipHeight, err = rc.dimension(s.ChipHeight, "chip_height", counts[Left], counts[Right]); err != nil {
		return RingConfig{}, err
	}
	return rc, rc.Validate()
}

func (rc RingConfig) dimension(explicit *float64, name string, a, b int) (float64, error) {
	if explicit != nil {
		return *explicit, nil
	}
	n := max(a, b)
	if n == 0 {
		return 0, errors.New(errors.ErrCodeInvalidRingConfig, "%s is not set and cannot be derived from an empty side pair", name)
	}
	return 2*(rc.CornerSize+rc.PadOffset) + float64(n-1)*rc.PadSpacing + rc.PadWidth, nil
}

// Validate checks that every dimension is usable.
func (rc RingConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pad_width", rc.PadWidth},
		{"pad_height", rc.PadHeight},
		{"corner_size", rc.CornerSize},
		{"pad_spacing", rc.PadSpacing},
		{"chip_width", rc.ChipWidth},
		{"chip_height", rc.ChipHeight},
	} {
		if f.v <= 0 {
			return errors.New(errors.ErrCodeInvalidRingConfig, "%s must be positive, got %v", f.name, f.v)
		}
	}
	if rc.PadOffset < 0 {
		return errors.New(errors.ErrCodeInvalidRingConfig, "pad_offset must not be negative, got %v", rc.PadOffset)
	}
	if rc.PadSpacing < rc.PadWidth {
		return errors.New(errors.ErrCodeInvalidRingConfig, "pad_spacing %v is smaller than pad_width %v", rc.PadSpacing, rc.PadWidth)
	}
	if _, err := ParsePlacementOrder(string(rc.PlacementOrder)); err != nil {
		return err
	}
	return nil
}

// SideLength returns the chip extent along s.
func (rc RingConfig) SideLength(s Side) float64 {
	if s == Top || s == Bottom {
		return rc.ChipWidth
	}
	return rc.ChipHeight
}

// Edge returns the fixed perpendicular coordinate of side s.
func (rc RingConfig) Edge(s Side) (float64, error) {
	switch s {
	case Bottom, Left:
		return 0, nil
	case Right:
		return rc.ChipWidth, nil
	case Top:
		return rc.ChipHeight, nil
	}
	return 0, invalidOrientation(s)
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

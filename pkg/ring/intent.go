package ring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// IntentGraph is the declarative description of one ring.
type IntentGraph struct {
	Ring RingSpec `json:"ring_config"`
	// Instances are relative ("left_0") or absolute ([x, y]) placements.
	Instances []Instance `json:"instances,omitempty"`
	// Components is the legacy layout_components form: already absolute.
	Components   []Component `json:"layout_components,omitempty"`
	InnerPadGaps []PadPair   `json:"inner_pad_gaps,omitempty"`
}

// PadPair names two adjacent outer pads.
type PadPair [2]string

// Instance is one entry of the instances list.
type Instance struct {
	Name   string `json:"name"`
	Device string `json:"device"`
	// Type is pad, inner_pad, corner, filler or separator. Empty means pad.
	Type        string          `json:"type,omitempty"`
	Position    json.RawMessage `json:"position,omitempty"`
	Orientation string          `json:"orientation,omitempty"`
	Domain      string          `json:"domain,omitempty"`
	Nets        *Nets           `json:"voltage_domain,omitempty"`
	Direction   Direction       `json:"direction,omitempty"`
	// Between names the outer pads an inner pad sits between.
	Between []string `json:"between,omitempty"`
}

// Placement is a relative position: the index-th pad along side.
type Placement struct {
	Side  Side
	Index int
}

func (p Placement) String() string { return fmt.Sprintf("%s_%d", p.Side, p.Index) }

// ParsePlacement parses "<side>_<index>".
func ParsePlacement(s string) (Placement, error) {
	side, idx, ok := strings.Cut(s, "_")
	if !ok {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement, "position %q is not <side>_<index>", s)
	}
	sd, err := ParseSide(side)
	if err != nil {
		return Placement{}, err
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement, "position %q has a bad index", s)
	}
	return Placement{Side: sd, Index: n}, nil
}

// IsInner reports whether the instance is an inner-ring pad.
func (in Instance) IsInner() bool { return in.Type == innerPadType }

func (in Instance) kind() (Kind, error) {
	switch in.Type {
	case "", innerPadType:
		return KindPad, nil
	}
	k := Kind(in.Type)
	if !k.Valid() {
		return "", errors.New(errors.ErrCodeInvalidInput, "instance %q: unknown type %q", in.Name, in.Type)
	}
	return k, nil
}

// placement decodes Position. Exactly one of the results is non-nil for an
// outer instance; inner pads have neither.
func (in Instance) placement() (*Placement, *Point, error) {
	raw := bytes.TrimSpace(in.Position)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		if in.IsInner() {
			return nil, nil, nil
		}
		return nil, nil, errors.New(errors.ErrCodeInvalidPlacement, "instance %q has no position", in.Name)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidPlacement, err, "instance %q", in.Name)
		}
		p, err := ParsePlacement(s)
		if err != nil {
			return nil, nil, fmt.Errorf("instance %q: %w", in.Name, err)
		}
		return &p, nil, nil
	}
	var pt Point
	if err := json.Unmarshal(raw, &pt); err != nil {
		return nil, nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	return nil, &pt, nil
}

// component builds the Component for in, leaving Position and Orientation
// for the caller.
func (in Instance) component() (Component, error) {
	k, err := in.kind()
	if err != nil {
		return Component{}, err
	}
	return Component{
		Kind:        k,
		Name:        in.Name,
		Device:      in.Device,
		Domain:      in.Domain,
		Nets:        in.Nets,
		IODirection: in.Direction,
		Inner:       in.IsInner(),
	}, nil
}

// Prefilled reports whether the graph already declares fillers, separators
// or corners. Such graphs are placed as given.
func (g *IntentGraph) Prefilled() bool {
	for _, in := range g.Instances {
		switch Kind(in.Type) {
		case KindCorner, KindFiller, KindSeparator:
			return true
		}
	}
	for _, c := range g.Components {
		if c.Kind != KindPad {
			return true
		}
	}
	return false
}

// SideCounts returns the number of relative outer pads declared per side.
func (g *IntentGraph) SideCounts() (map[Side]int, error) {
	counts := make(map[Side]int)
	for _, in := range g.Instances {
		rel, _, err := in.placement()
		if err != nil {
			return nil, err
		}
		if rel != nil && !in.IsInner() {
			counts[rel.Side]++
		}
	}
	return counts, nil
}

// Gaps returns every declared inner-pad gap: the explicit list plus one per
// inner pad instance.
func (g *IntentGraph) Gaps() ([]PadPair, error) {
	gaps := append([]PadPair(nil), g.InnerPadGaps...)
	for _, in := range g.Instances {
		if !in.IsInner() {
			continue
		}
		if len(in.Between) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidPlacement, "inner pad %q must name exactly two outer pads in between", in.Name)
		}
		gaps = append(gaps, PadPair{in.Between[0], in.Between[1]})
	}
	return gaps, nil
}

// ReadIntent decodes an intent graph.
func ReadIntent(r io.Reader) (*IntentGraph, error) {
	var g IntentGraph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode intent graph")
	}
	if len(g.Instances) == 0 && len(g.Components) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "intent graph has neither instances nor layout_components")
	}
	return &g, nil
}

// ReadIntentFile opens and decodes path.
func ReadIntentFile(path string) (*IntentGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "intent file %s", path)
		}
		return nil, err
	}
	defer f.Close()
	g, err := ReadIntent(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Spec converts a completed configuration back to the intent form.
func (rc RingConfig) Spec() RingSpec {
	f := func(v float64) *float64 { return &v }
	return RingSpec{
		ProcessNode:    string(rc.ProcessNode),
		PadWidth:       f(rc.PadWidth),
		PadHeight:      f(rc.PadHeight),
		CornerSize:     f(rc.CornerSize),
		PadSpacing:     f(rc.PadSpacing),
		PadOffset:      f(rc.PadOffset),
		ChipWidth:      f(rc.ChipWidth),
		ChipHeight:     f(rc.ChipHeight),
		PlacementOrder: string(rc.PlacementOrder),
	}
}

// WriteComponents writes an absolute intent graph that reproduces
// components when read back.
func WriteComponents(w io.Writer, rc RingConfig, components []Component, gaps []PadPair) error {
	g := IntentGraph{Ring: rc.Spec(), Components: components, InnerPadGaps: gaps}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

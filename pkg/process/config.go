package process

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

// Config is one node's configuration document.
type Config struct {
	Node      Node      `toml:"node"`
	Layout    Layout    `toml:"layout"`
	Devices   Devices   `toml:"devices"`
	Fillers   Fillers   `toml:"fillers"`
	Corners   Corners   `toml:"corners"`
	Skill     Skill     `toml:"skill"`
	Substrate Substrate `toml:"substrate"`

	// Source is the path (or embedded name) the document was read from.
	Source string `toml:"-"`
	// Hash is the SHA-256 of the raw document, used in cache keys.
	Hash string `toml:"-"`
}

// Layout holds the physical constants of the pad library.
type Layout struct {
	Library        string  `toml:"library"`
	PadWidth       float64 `toml:"pad_width"`
	PadHeight      float64 `toml:"pad_height"`
	CornerSize     float64 `toml:"corner_size"`
	PadSpacing     float64 `toml:"pad_spacing"`
	PadOffset      float64 `toml:"pad_offset"`
	PlacementOrder string  `toml:"placement_order"`
}

// Devices holds the classification sets. The six sets used by the
// classifier must be disjoint; AnalogIO is informational.
type Devices struct {
	Digital   []string `toml:"digital"`
	Analog    []string `toml:"analog"`
	DigitalIO []string `toml:"digital_io"`
	AnalogIO  []string `toml:"analog_io"`
	Corner    []string `toml:"corner"`
	Filler    []string `toml:"filler"`
	Separator []string `toml:"separator"`
}

// Fillers is the filler/separator device table and its geometry.
type Fillers struct {
	Digital       string  `toml:"digital"`
	Analog        string  `toml:"analog"`
	DigitalNarrow string  `toml:"digital_narrow"`
	AnalogNarrow  string  `toml:"analog_narrow"`
	Separator     string  `toml:"separator"`
	Width         float64 `toml:"width"`
	NarrowWidth   float64 `toml:"narrow_width"`
	// SeparatorWidth is the body width of the separator cell. A separator
	// replaces the standard cells of a gap with as many separator cells as
	// cover the same span.
	SeparatorWidth float64 `toml:"separator_width"`
	// CornerCells is how many standard cells close each corner-to-pad gap.
	CornerCells int `toml:"corner_cells"`
	// Inset is the inward distance of filler origins from each chip edge.
	Inset SideInset `toml:"inset"`
}

// SeparatorCells returns how many separator cells cover the span of n
// standard cells.
func (f Fillers) SeparatorCells(n int) int {
	return int(math.Round(float64(n) * f.Width / f.SeparatorWidth))
}

// SideInset is a per-side distance, measured inward from the chip edge.
type SideInset struct {
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
	Left   float64 `toml:"left"`
}

// Corners controls corner cell synthesis.
type Corners struct {
	Modeled bool   `toml:"modeled"`
	Digital string `toml:"digital"`
	Analog  string `toml:"analog"`
}

// Skill holds the emission constants.
type Skill struct {
	Rails     Rails     `toml:"rails"`
	Taps      Taps      `toml:"taps"`
	Via       Via       `toml:"via"`
	DigitalIO DigitalIO `toml:"digital_io"`
	Labels    Labels    `toml:"labels"`
}

// Rails configures the power/ground configuration lines.
type Rails struct {
	Layer       string  `toml:"layer"`
	Width       float64 `toml:"width"`
	VDDOffset   float64 `toml:"vdd_offset"`
	GNDOffset   float64 `toml:"gnd_offset"`
	JumperStyle string  `toml:"jumper_style"`
}

// Taps configures the short wire from a digital power pad to its rail.
type Taps struct {
	VDDDevices  []string `toml:"vdd_devices"`
	GNDDevices  []string `toml:"gnd_devices"`
	Layer       string   `toml:"layer"`
	Width       float64  `toml:"width"`
	AlongOffset float64  `toml:"along_offset"`
	EdgeOffset  float64  `toml:"edge_offset"`
}

// Via configures the via placed where a wire lands on a rail.
type Via struct {
	Def  string `toml:"def"`
	Rows int    `toml:"rows"`
	Cols int    `toml:"cols"`
}

// DigitalIO configures digital-IO control-signal routing.
type DigitalIO struct {
	Layer      string             `toml:"layer"`
	Width      float64            `toml:"width"`
	BaseInset  float64            `toml:"base_inset"`
	PinOffsets map[string]float64 `toml:"pin_offsets"`
	PinLayer   string             `toml:"pin_layer"`
	PinSize    float64            `toml:"pin_size"`
}

// Labels configures pin label placement.
type Labels struct {
	Outer LabelSpec `toml:"outer"`
	Core  LabelSpec `toml:"core"`
	Inner LabelSpec `toml:"inner"`
}

// LabelSpec places one kind of label relative to a pad origin. Along is
// measured along the side; Depth is measured perpendicular to it.
type LabelSpec struct {
	Layer string  `toml:"layer"`
	Size  float64 `toml:"size"`
	Along float64 `toml:"along"`
	Depth float64 `toml:"depth"`
}

// Substrate configures the substrate tie-down geometry.
type Substrate struct {
	Enabled     bool     `toml:"enabled"`
	Layer       string   `toml:"layer"`
	SkipDevices []string `toml:"skip_devices"`
	// Per-pad rectangle
	PadEdge float64 `toml:"pad_edge"`
	PadLow  float64 `toml:"pad_low"`
	PadHigh float64 `toml:"pad_high"`
	// Edge bands and corner polygons
	BandLow      float64 `toml:"band_low"`
	BandHigh     float64 `toml:"band_high"`
	CornerReach  float64 `toml:"corner_reach"`
	CutHalfWidth float64 `toml:"cut_half_width"`
}

// Parse decodes and validates a configuration document. source names the
// document in error messages.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigMalformed, err, "parse %s", source)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeConfigMalformed, "%s: unknown keys: %s", source, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigMalformed, err, "%s", source)
	}
	cfg.Source = source
	cfg.Hash = cache.Hash(data)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Node != T28 && c.Node != T180 {
		return fmt.Errorf("node %q is not a canonical node identifier", c.Node)
	}

	l := c.Layout
	if l.Library == "" {
		return fmt.Errorf("layout.library is required")
	}
	for name, v := range map[string]float64{
		"pad_width":   l.PadWidth,
		"pad_height":  l.PadHeight,
		"corner_size": l.CornerSize,
		"pad_spacing": l.PadSpacing,
	} {
		if v <= 0 {
			return fmt.Errorf("layout.%s must be positive, got %v", name, v)
		}
	}
	if l.PadSpacing < l.PadWidth {
		return fmt.Errorf("layout.pad_spacing (%v) is smaller than pad_width (%v)", l.PadSpacing, l.PadWidth)
	}
	switch l.PlacementOrder {
	case "clockwise", "counterclockwise":
	default:
		return fmt.Errorf("layout.placement_order must be clockwise or counterclockwise, got %q", l.PlacementOrder)
	}

	f := c.Fillers
	if f.Digital == "" || f.Analog == "" || f.DigitalNarrow == "" || f.AnalogNarrow == "" || f.Separator == "" {
		return fmt.Errorf("fillers: every device name must be set")
	}
	if f.Width <= 0 || f.NarrowWidth <= 0 || f.NarrowWidth > f.Width {
		return fmt.Errorf("fillers: need 0 < narrow_width <= width, got %v and %v", f.NarrowWidth, f.Width)
	}
	if f.CornerCells < 1 {
		return fmt.Errorf("fillers.corner_cells must be at least 1")
	}
	if f.SeparatorWidth <= 0 {
		return fmt.Errorf("fillers.separator_width must be positive")
	}
	for _, n := range []int{2, f.CornerCells} {
		span := float64(n) * f.Width
		if k := f.SeparatorCells(n); k < 1 || math.Abs(float64(k)*f.SeparatorWidth-span) > 1e-9 {
			return fmt.Errorf("fillers: separator_width %v does not tile a %v span of standard cells", f.SeparatorWidth, span)
		}
	}
	if c.Corners.Modeled && (c.Corners.Digital == "" || c.Corners.Analog == "") {
		return fmt.Errorf("corners: digital and analog devices are required when modeled")
	}

	return c.Devices.checkDisjoint()
}

func (d Devices) checkDisjoint() error {
	sets := []struct {
		name  string
		names []string
	}{
		{"digital", d.Digital},
		{"analog", d.Analog},
		{"digital_io", d.DigitalIO},
		{"corner", d.Corner},
		{"filler", d.Filler},
		{"separator", d.Separator},
	}
	owner := make(map[string]string)
	var clashes []string
	for _, s := range sets {
		for _, n := range s.names {
			if prev, ok := owner[n]; ok && prev != s.name {
				clashes = append(clashes, fmt.Sprintf("%s (%s, %s)", n, prev, s.name))
				continue
			}
			owner[n] = s.name
		}
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return fmt.Errorf("devices: sets overlap: %s", strings.Join(clashes, "; "))
	}
	return nil
}

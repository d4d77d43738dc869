package filler

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiixTT/AMS-IO-Agent/pkg/domain"
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

type fixture struct {
	cfg     *process.Config
	domains *domain.Handler
	chooser *Chooser
}

func newFixture(t *testing.T, node process.Node) fixture {
	t.Helper()
	cfg, err := process.NewLoader("").Load(node)
	require.NoError(t, err)
	h := domain.NewHandler(process.NewClassifier(cfg))
	return fixture{cfg: cfg, domains: h, chooser: NewChooser(cfg, h)}
}

func (fx fixture) autoFiller(t *testing.T, rc ring.RingConfig) *AutoFiller {
	t.Helper()
	s, err := StrategyFor(fx.cfg)
	require.NoError(t, err)
	return NewAutoFiller(rc, fx.chooser, s, fx.domains.Classifier())
}

type padSpec struct {
	name, device, pos string
	nets              *ring.Nets
}

// resolve places pads and returns the ring with corners synthesized.
func (fx fixture) resolve(t *testing.T, pads []padSpec, extra ...ring.Instance) (ring.RingConfig, []ring.Component) {
	t.Helper()
	g := &ring.IntentGraph{}
	for _, p := range pads {
		g.Instances = append(g.Instances, ring.Instance{
			Name: p.name, Device: p.device, Nets: p.nets,
			Position: json.RawMessage(`"` + p.pos + `"`),
		})
	}
	g.Instances = append(g.Instances, extra...)
	counts, err := g.SideCounts()
	require.NoError(t, err)
	rc, err := g.Ring.Complete(fx.cfg, counts)
	require.NoError(t, err)
	components, err := ring.NewCalculator(rc).Resolve(g, fx.chooser.CornerDevice)
	require.NoError(t, err)
	return rc, components
}

var vddVss = &ring.Nets{Power: "VDD", Ground: "VSS"}

func uniformPads(n int, device string, nets *ring.Nets) []padSpec {
	var pads []padSpec
	for _, side := range []string{"left", "bottom", "right", "top"} {
		for i := 0; i < n; i++ {
			pads = append(pads, padSpec{fmt.Sprintf("%s%d", side, i), device, fmt.Sprintf("%s_%d", side, i), nets})
		}
	}
	return pads
}

func spacers(components []ring.Component) map[string]ring.Component {
	out := make(map[string]ring.Component)
	for _, c := range components {
		if c.IsSpacer() {
			out[c.Name] = c
		}
	}
	return out
}

func comp(name, device, domainTag string, nets *ring.Nets) ring.Component {
	return ring.Component{Kind: ring.KindPad, Name: name, Device: device, Orientation: ring.R0, Domain: domainTag, Nets: nets}
}

func TestChooseDomainConsistency(t *testing.T) {
	fx := newFixture(t, process.T28)
	other := &ring.Nets{Power: "VDD2", Ground: "VSS"}
	tests := []struct {
		name string
		a, b ring.Component
		want string
	}{
		{"digital same nets", comp("A", "PVDD1DGZ_H_G", "", vddVss), comp("B", "PVSS1DGZ_H_G", "", vddVss), "PFILLER20_G"},
		{"analog same nets", comp("A", "PVDD3AC_H_G", "", vddVss), comp("B", "PDB3AC_H_G", "", vddVss), "PFILLER20A_G"},
		{"same tag different nets", comp("A", "PVDD1DGZ_H_G", "", vddVss), comp("B", "PVSS1DGZ_H_G", "", other), "PRCUTA_G"},
		{"digital analog boundary", comp("A", "PVDD1DGZ_H_G", "", vddVss), comp("B", "PVDD3AC_H_G", "", vddVss), "PRCUTA_G"},
		{"explicit tags differ", comp("A", "PVDD1DGZ_H_G", ring.DomainDigital, nil), comp("B", "PVDD1DGZ_H_G", ring.DomainAnalog, nil), "PRCUTA_G"},
		{"tags without nets", comp("A", "PVDD1DGZ_H_G", "", nil), comp("B", "PVSS1DGZ_H_G", "", nil), "PFILLER20_G"},
		{"unknown device", comp("A", "MYSTERY", "", nil), comp("B", "PVDD3AC_H_G", "", nil), "PFILLER20_G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fx.chooser.Choose(tt.a, tt.b))
			assert.Equal(t, tt.want, fx.chooser.Choose(tt.b, tt.a), "argument order changed the result")
		})
	}
}

// A digital/analog pair whose device tags and nets are otherwise identical
// gets the separator in both argument orders.
func TestDomainBoundaryYieldsSeparator(t *testing.T) {
	fx := newFixture(t, process.T180)
	a := comp("A", "PVDD1CDG", ring.DomainDigital, vddVss)
	b := comp("B", "PVDD1CDG", ring.DomainAnalog, vddVss)
	assert.Equal(t, "PFILLER10", fx.chooser.Choose(a, b))
	assert.Equal(t, "PFILLER10", fx.chooser.Choose(b, a))
	assert.True(t, fx.chooser.IsSeparator(fx.chooser.Choose(a, b)))
}

func TestChooseForCornerMissingFlank(t *testing.T) {
	fx := newFixture(t, process.T28)
	a := comp("A", "PVDD1DGZ_H_G", "", vddVss)
	assert.Equal(t, "PRCUTA_G", fx.chooser.ChooseForCorner(&a, nil))
	assert.Equal(t, "PRCUTA_G", fx.chooser.ChooseForCorner(nil, &a))
	assert.Equal(t, "PFILLER20_G", fx.chooser.ChooseForCorner(&a, &a))
}

func TestNarrow(t *testing.T) {
	fx := newFixture(t, process.T28)
	assert.Equal(t, "PFILLER10_G", fx.chooser.Narrow("PFILLER20_G"))
	assert.Equal(t, "PFILLER10A_G", fx.chooser.Narrow("PFILLER20A_G"))
	assert.Equal(t, "PRCUTA_G", fx.chooser.Narrow("PRCUTA_G"))
}

func TestDigitalSquareFill(t *testing.T) {
	fx := newFixture(t, process.T28)
	rc, components := fx.resolve(t, uniformPads(3, "PVDD1DGZ_H_G", vddVss))
	assert.Equal(t, 400.0, rc.ChipWidth)

	filled, err := fx.autoFiller(t, rc).Fill(components, nil)
	require.NoError(t, err)

	cells := spacers(filled)
	require.Len(t, cells, 24)
	for name, c := range cells {
		assert.Equal(t, ring.KindFiller, c.Kind, name)
		assert.Equal(t, "PFILLER20_G", c.Device, name)
	}
	for _, side := range []string{"left", "bottom", "right", "top"} {
		for i := 1; i <= 2; i++ {
			for j := 1; j <= 2; j++ {
				assert.Contains(t, cells, fmt.Sprintf("filler_%s_%d_%d", side, i, j))
			}
		}
	}
	for _, name := range []string{
		"filler_bottom_left_corner", "filler_left_bottom_corner",
		"filler_bottom_right_corner", "filler_right_bottom_corner",
		"filler_top_right_corner", "filler_right_top_corner",
		"filler_top_left_corner", "filler_left_top_corner",
	} {
		assert.Contains(t, cells, name)
	}

	positions := map[string]ring.Point{
		"filler_bottom_left_corner":  {X: 110, Y: 0},
		"filler_bottom_1_1":          {X: 150, Y: 0},
		"filler_bottom_1_2":          {X: 170, Y: 0},
		"filler_bottom_2_2":          {X: 230, Y: 0},
		"filler_bottom_right_corner": {X: 270, Y: 0},
		"filler_top_right_corner":    {X: 290, Y: 400},
		"filler_top_1_1":             {X: 250, Y: 400},
		"filler_top_1_2":             {X: 230, Y: 400},
		"filler_top_left_corner":     {X: 130, Y: 400},
		"filler_left_top_corner":     {X: 0, Y: 290},
		"filler_left_1_1":            {X: 0, Y: 250},
		"filler_left_bottom_corner":  {X: 0, Y: 130},
		"filler_right_bottom_corner": {X: 400, Y: 110},
		"filler_right_top_corner":    {X: 400, Y: 270},
	}
	for name, want := range positions {
		assert.Equal(t, want, cells[name].Position, name)
	}
}

func TestInnerPadGapUsesNarrowCells(t *testing.T) {
	fx := newFixture(t, process.T28)
	inner := ring.Instance{Name: "IN0", Device: "PDB3AC_H_G", Type: "inner_pad", Between: []string{"bottom1", "bottom0"}}
	rc, components := fx.resolve(t, uniformPads(3, "PVDD1DGZ_H_G", vddVss), inner)

	filled, err := fx.autoFiller(t, rc).Fill(components, []ring.PadPair{{"bottom1", "bottom0"}})
	require.NoError(t, err)
	cells := spacers(filled)
	require.Len(t, cells, 24)

	first, second := cells["filler_bottom_1_1"], cells["filler_bottom_1_2"]
	assert.Equal(t, "PFILLER10_G", first.Device)
	assert.Equal(t, "PFILLER10_G", second.Device)
	assert.Equal(t, ring.Point{X: 150, Y: 0}, first.Position)
	assert.Equal(t, ring.Point{X: 180, Y: 0}, second.Position)

	var innerPad ring.Component
	for _, c := range filled {
		if c.Inner {
			innerPad = c
		}
	}
	lo, hi, err := ring.Span(innerPad, rc.PadWidth)
	require.NoError(t, err)
	assert.Equal(t, 160.0, lo, "reserved space starts after the first narrow cell")
	assert.Equal(t, 180.0, hi, "reserved space ends at the second narrow cell")

	for name, c := range cells {
		if name == "filler_bottom_1_1" || name == "filler_bottom_1_2" {
			continue
		}
		assert.Equal(t, "PFILLER20_G", c.Device, name)
	}
}

func TestInnerGapAcrossDomainsUsesSeparator(t *testing.T) {
	fx := newFixture(t, process.T28)
	pads := []padSpec{
		{"A", "PVDD1DGZ_H_G", "bottom_0", vddVss},
		{"B", "PVDD3AC_H_G", "bottom_1", vddVss},
		{"C", "PVDD3AC_H_G", "left_0", vddVss},
	}
	rc, components := fx.resolve(t, pads)
	filled, err := fx.autoFiller(t, rc).Fill(components, []ring.PadPair{{"A", "B"}})
	require.NoError(t, err)
	cells := spacers(filled)
	assert.Equal(t, "PRCUTA_G", cells["filler_bottom_1_1"].Device)
	assert.Equal(t, ring.KindSeparator, cells["filler_bottom_1_2"].Kind)
}

func TestFillIsIdempotent(t *testing.T) {
	for _, node := range []process.Node{process.T28, process.T180} {
		t.Run(string(node), func(t *testing.T) {
			fx := newFixture(t, node)
			device := fx.cfg.Devices.Digital[0]
			rc, components := fx.resolve(t, uniformPads(2, device, vddVss))
			f := fx.autoFiller(t, rc)

			once, err := f.Fill(components, nil)
			require.NoError(t, err)
			twice, err := f.Fill(once, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("second fill changed the ring (-once +twice):\n%s", diff)
			}
			assert.True(t, f.Filled(once))
			assert.False(t, f.Filled(components))
		})
	}
}

func TestCornerFillerIgnoresCornerDevice(t *testing.T) {
	fx := newFixture(t, process.T28)
	pads := uniformPads(2, "PVDD1DGZ_H_G", vddVss)
	// Analog left side: the two left corners sit on a domain boundary.
	for i := range pads {
		if strings.HasPrefix(pads[i].name, "left") {
			pads[i].device = "PVDD3AC_H_G"
		}
	}
	rc, components := fx.resolve(t, pads)
	f := fx.autoFiller(t, rc)

	base, err := f.Fill(components, nil)
	require.NoError(t, err)

	for _, device := range []string{"PCORNER_G", "PCORNERA_G"} {
		swapped := append([]ring.Component(nil), components...)
		for i := range swapped {
			if swapped[i].Kind == ring.KindCorner {
				swapped[i].Device = device
			}
		}
		got, err := f.Fill(swapped, nil)
		require.NoError(t, err)
		if diff := cmp.Diff(spacers(base), spacers(got)); diff != "" {
			t.Errorf("corner device %s changed the fillers (-want +got):\n%s", device, diff)
		}
	}

	cells := spacers(base)
	for _, name := range []string{"filler_bottom_left_corner", "filler_left_bottom_corner", "filler_top_left_corner", "filler_left_top_corner"} {
		assert.Equal(t, "PRCUTA_G", cells[name].Device, name)
	}
	for _, name := range []string{"filler_bottom_right_corner", "filler_right_bottom_corner", "filler_top_right_corner", "filler_right_top_corner"} {
		assert.Equal(t, "PFILLER20_G", cells[name].Device, name)
	}
}

func TestCornerDevice(t *testing.T) {
	fx := newFixture(t, process.T28)
	_, components := fx.resolve(t, []padSpec{
		{"D0", "PVDD1DGZ_H_G", "bottom_0", vddVss},
		{"D1", "PVDD1DGZ_H_G", "left_0", vddVss},
		{"A0", "PVDD3AC_H_G", "right_0", vddVss},
		{"A1", "PVDD3AC_H_G", "top_0", vddVss},
	})
	devices := make(map[string]string)
	for _, c := range components {
		if c.Kind == ring.KindCorner {
			devices[c.Name] = c.Device
		}
	}
	assert.Equal(t, map[string]string{
		"corner_bottom_left":  "PCORNER_G",
		"corner_bottom_right": "PCORNERA_G",
		"corner_top_right":    "PCORNERA_G",
		"corner_top_left":     "PCORNERA_G",
	}, devices)
}

func TestEmptySideYieldsCornerSeparators(t *testing.T) {
	fx := newFixture(t, process.T28)
	rc, components := fx.resolve(t, []padSpec{
		{"A", "PVDD1DGZ_H_G", "bottom_0", vddVss},
		{"B", "PVDD1DGZ_H_G", "bottom_1", vddVss},
		{"C", "PVDD1DGZ_H_G", "left_0", vddVss},
	})
	filled, err := fx.autoFiller(t, rc).Fill(components, nil)
	require.NoError(t, err)
	cells := spacers(filled)
	assert.Equal(t, ring.KindSeparator, cells["filler_bottom_right_corner"].Kind)
	assert.Equal(t, ring.KindSeparator, cells["filler_left_top_corner"].Kind)
	assert.Equal(t, ring.KindFiller, cells["filler_bottom_left_corner"].Kind)
	assert.NotContains(t, cells, "filler_right_bottom_corner")
}

func TestT180Geometry(t *testing.T) {
	fx := newFixture(t, process.T180)
	rc, components := fx.resolve(t, uniformPads(2, "PVDD1CDG", vddVss))
	// 2*(130+10) + 90 + 80
	assert.Equal(t, 450.0, rc.ChipWidth)

	filled, err := fx.autoFiller(t, rc).Fill(components, nil)
	require.NoError(t, err)
	cells := spacers(filled)
	// per side: one gap of two cells and two cells at each end
	require.Len(t, cells, 4*(2+2*2))

	for name, c := range cells {
		assert.Equal(t, "PFILLER5", c.Device, name)
		switch c.Orientation {
		case ring.R0:
			assert.Equal(t, 0.0, c.Position.Y, name)
		case ring.R90:
			assert.Equal(t, 450.0-120, c.Position.X, name)
		case ring.R180:
			assert.Equal(t, 450.0-120, c.Position.Y, name)
		case ring.R270:
			assert.Equal(t, 0.0, c.Position.X, name)
		}
	}
	// bottom0 body [140, 220]: corner cells step toward x = 130.
	assert.Equal(t, ring.Point{X: 135, Y: 0}, cells["filler_bottom_left_corner_1"].Position)
	assert.Equal(t, ring.Point{X: 130, Y: 0}, cells["filler_bottom_left_corner_2"].Position)
	assert.Equal(t, ring.Point{X: 220, Y: 0}, cells["filler_bottom_1_1"].Position)
	assert.Equal(t, ring.Point{X: 225, Y: 0}, cells["filler_bottom_1_2"].Position)
}

// mixedT180Pads is a two-pad-per-side T180 ring whose left side and first
// bottom pad are analog: one boundary mid bottom, one at the top-left corner.
func mixedT180Pads() []padSpec {
	analog := &ring.Nets{Power: "AVDD", Ground: "AVSS"}
	pads := uniformPads(2, "PVDD1CDG", vddVss)
	for i := range pads {
		if strings.HasPrefix(pads[i].name, "left") || pads[i].name == "bottom0" {
			pads[i].device, pads[i].nets = "PVDD1ANA", analog
		}
	}
	return pads
}

func TestT180SeparatorSpansGap(t *testing.T) {
	fx := newFixture(t, process.T180)
	rc, components := fx.resolve(t, mixedT180Pads())
	filled, err := fx.autoFiller(t, rc).Fill(components, nil)
	require.NoError(t, err)
	cells := spacers(filled)

	var seps []string
	for name, c := range cells {
		if c.Kind == ring.KindSeparator {
			assert.Equal(t, "PFILLER10", c.Device, name)
			seps = append(seps, name)
		}
	}
	assert.ElementsMatch(t, []string{"filler_bottom_1_1", "filler_top_left_corner", "filler_left_top_corner"}, seps)

	// One 10-wide cell fills the 10-unit pad gap [220, 230].
	assert.Equal(t, ring.Point{X: 220, Y: 0}, cells["filler_bottom_1_1"].Position)
	assert.NotContains(t, cells, "filler_bottom_1_2")
	// Corner gaps [130, 140] and [310, 320], origins at the high end for
	// R180 and R270.
	assert.Equal(t, ring.Point{X: 140, Y: 330}, cells["filler_top_left_corner"].Position)
	assert.Equal(t, ring.Point{X: 0, Y: 320}, cells["filler_left_top_corner"].Position)
	assert.NotContains(t, cells, "filler_top_left_corner_1")

	assert.Equal(t, "PFILLER5", cells["filler_bottom_left_corner_1"].Device)
	assert.Equal(t, "PFILLER5", cells["filler_bottom_left_corner_2"].Device)
}

func TestFillRejectsUnknownGap(t *testing.T) {
	fx := newFixture(t, process.T28)
	rc, components := fx.resolve(t, uniformPads(2, "PVDD1DGZ_H_G", vddVss))
	_, err := fx.autoFiller(t, rc).Fill(components, []ring.PadPair{{"bottom0", "left0"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPlacement, errors.GetCode(err))
}

func TestStrategyFor(t *testing.T) {
	fx := newFixture(t, process.T28)
	s, err := StrategyFor(fx.cfg)
	require.NoError(t, err)
	assert.Equal(t, process.T28, s.Node())
	assert.Equal(t, 20.0, s.Width(false))
	assert.Equal(t, 10.0, s.Width(true))
	assert.Equal(t, 1, s.CornerCells())
	n, w := s.Separator(2)
	assert.Equal(t, 2, n)
	assert.Equal(t, 20.0, w)

	t180, err := StrategyFor(newFixture(t, process.T180).cfg)
	require.NoError(t, err)
	n, w = t180.Separator(2)
	assert.Equal(t, 1, n)
	assert.Equal(t, 10.0, w)
	n, _ = t180.Separator(t180.CornerCells())
	assert.Equal(t, 1, n)

	_, err = StrategyFor(&process.Config{Node: "T7"})
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
}

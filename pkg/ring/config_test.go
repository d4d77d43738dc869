package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
)

func nodeConfig() *process.Config {
	return &process.Config{
		Node: process.T28,
		Layout: process.Layout{
			PadWidth:       20,
			PadHeight:      110,
			CornerSize:     110,
			PadSpacing:     60,
			PadOffset:      20,
			PlacementOrder: "counterclockwise",
		},
	}
}

func TestCompleteDerivesChipSize(t *testing.T) {
	rc, err := RingSpec{}.Complete(nodeConfig(), map[Side]int{Left: 3, Right: 2, Top: 1, Bottom: 4})
	require.NoError(t, err)
	// 2*(110+20) + (n-1)*60 + 20
	assert.Equal(t, 460.0, rc.ChipWidth)
	assert.Equal(t, 400.0, rc.ChipHeight)
	assert.Equal(t, Counterclockwise, rc.PlacementOrder)
	assert.Equal(t, 20.0, rc.PadWidth)
}

func TestCompleteExplicitValuesWin(t *testing.T) {
	w, h, pitch := 1000.0, 900.0, 70.0
	spec := RingSpec{ChipWidth: &w, ChipHeight: &h, PadSpacing: &pitch, PlacementOrder: "clockwise"}
	rc, err := spec.Complete(nodeConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, rc.ChipWidth)
	assert.Equal(t, 900.0, rc.ChipHeight)
	assert.Equal(t, 70.0, rc.PadSpacing)
	assert.Equal(t, Clockwise, rc.PlacementOrder)
}

func TestCompleteErrors(t *testing.T) {
	tiny := 5.0
	tests := []struct {
		name   string
		spec   RingSpec
		counts map[Side]int
	}{
		{"no pads no width", RingSpec{}, map[Side]int{Left: 1}},
		{"bad order", RingSpec{PlacementOrder: "spiral"}, map[Side]int{Left: 1, Top: 1}},
		{"pitch below width", RingSpec{PadSpacing: &tiny}, map[Side]int{Left: 1, Top: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.spec.Complete(nodeConfig(), tt.counts)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRingConfig, errors.GetCode(err))
		})
	}
}

func TestPlacementOrderSides(t *testing.T) {
	assert.Equal(t, [4]Side{Top, Right, Bottom, Left}, Clockwise.Sides())
	assert.Equal(t, [4]Side{Left, Bottom, Right, Top}, Counterclockwise.Sides())
	assert.True(t, Clockwise.Ascending(Top))
	assert.False(t, Clockwise.Ascending(Right))
	assert.True(t, Counterclockwise.Ascending(Bottom))
	assert.False(t, Counterclockwise.Ascending(Left))
}

package ring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

const sampleIntent = `{
  "ring_config": {"process_node": "T28", "chip_width": 400, "chip_height": 400,
                  "placement_order": "counterclockwise"},
  "instances": [
    {"name": "VDD", "device": "PVDD1DGZ_H_G", "position": "left_0", "type": "pad",
     "voltage_domain": {"power": "VDD", "ground": "VSS"}, "domain": "digital"},
    {"name": "D0", "device": "PDDW16SDGZ_H_G", "position": "left_1", "direction": "input"},
    {"name": "X", "device": "PDB3AC_H_G", "position": [0, 150], "orientation": "R270"},
    {"name": "IN1", "device": "PDB3AC_H_G", "type": "inner_pad", "between": ["VDD", "D0"]}
  ],
  "inner_pad_gaps": [["D0", "X"]]
}`

func TestReadIntent(t *testing.T) {
	g, err := ReadIntent(strings.NewReader(sampleIntent))
	require.NoError(t, err)
	require.Len(t, g.Instances, 4)
	assert.Equal(t, "T28", g.Ring.ProcessNode)
	require.NotNil(t, g.Ring.ChipWidth)
	assert.Equal(t, 400.0, *g.Ring.ChipWidth)
	assert.Nil(t, g.Ring.PadWidth)
	assert.False(t, g.Prefilled())

	counts, err := g.SideCounts()
	require.NoError(t, err)
	assert.Equal(t, map[Side]int{Left: 2}, counts)

	gaps, err := g.Gaps()
	require.NoError(t, err)
	assert.Equal(t, []PadPair{{"D0", "X"}, {"VDD", "D0"}}, gaps)

	components, err := NewCalculator(testConfig(Counterclockwise)).Resolve(g, nil)
	require.NoError(t, err)
	require.Len(t, components, 4)
	assert.Equal(t, &Nets{Power: "VDD", Ground: "VSS"}, components[0].Nets)
	assert.Equal(t, DomainDigital, components[0].Domain)
	assert.Equal(t, DirectionInput, components[1].IODirection)
	assert.Equal(t, Point{0, 150}, components[2].Position)
	assert.True(t, components[3].Inner)
}

func TestReadIntentRejectsEmpty(t *testing.T) {
	_, err := ReadIntent(strings.NewReader(`{"ring_config": {}}`))
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, err = ReadIntent(strings.NewReader(`{`))
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestWriteComponentsRoundTrip(t *testing.T) {
	rc := testConfig(Counterclockwise)
	components := []Component{
		{Kind: KindPad, Name: "A", Device: "PVDD1DGZ_H_G", Position: Point{0, 270}, Orientation: R270,
			Nets: &Nets{Power: "VDD", Ground: "VSS"}},
		{Kind: KindPad, Name: "IN", Device: "PDB3AC_H_G", Position: Point{0, 190}, Orientation: R270, Inner: true},
		{Kind: KindFiller, Name: "filler_left_1_1", Device: "PFILLER20_G", Position: Point{0, 250}, Orientation: R270},
		{Kind: KindCorner, Name: "corner_bottom_left", Device: "PCORNER_G", Position: Point{0, 0}, Orientation: R0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteComponents(&buf, rc, components, []PadPair{{"A", "B"}}))
	assert.Contains(t, buf.String(), `"type": "inner_pad"`)
	assert.Contains(t, buf.String(), `"position": [`)

	g, err := ReadIntent(&buf)
	require.NoError(t, err)
	assert.True(t, g.Prefilled())
	if diff := cmp.Diff(components, g.Components); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	back, err := g.Ring.Complete(nodeConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, rc, back)
}

package process

import (
	"testing"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    Node
		wantErr bool
	}{
		{"T28", T28, false},
		{"T180", T180, false},
		{"t28", T28, false},
		{"28nm", T28, false},
		{"tsmc28", T28, false},
		{"180", T180, false},
		{"0.18um-180", T180, false},
		{" t180 ", T180, false},
		{"T65", "", true},
		{"", "", true},
		{"ninety", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidProcessNode) {
				t.Errorf("Normalize(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidProcessNode)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	nodes := Supported()
	if len(nodes) != 2 || nodes[0] != T28 || nodes[1] != T180 {
		t.Errorf("Supported() = %v, want [T28 T180]", nodes)
	}
}

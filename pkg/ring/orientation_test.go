package ring

import (
	stderrors "errors"
	"testing"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		side    Side
		wantErr bool
	}{
		{"R0", R0, Bottom, false},
		{"R90", R90, Right, false},
		{"R180", R180, Top, false},
		{"R270", R270, Left, false},
		{"r0", 0, 0, true},
		{"MX", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseOrientation(%q) = %v, want error", tt.in, got)
				}
				if !stderrors.Is(err, ErrInvalidOrientation) {
					t.Errorf("error %v does not wrap ErrInvalidOrientation", err)
				}
				if errors.GetCode(err) != errors.ErrCodeInvalidOrientation {
					t.Errorf("code = %s", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrientation(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			side, err := got.Side()
			if err != nil || side != tt.side {
				t.Errorf("Side() = %v, %v; want %v", side, err, tt.side)
			}
			back, err := side.Orientation()
			if err != nil || back != got {
				t.Errorf("round trip through side: %v, %v", back, err)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}

func TestInvalidOrientationFailsGeometry(t *testing.T) {
	bad := Component{Kind: KindPad, Name: "P", Device: "PVDD1CDG"}
	if _, _, err := Span(bad, 10); !stderrors.Is(err, ErrInvalidOrientation) {
		t.Errorf("Span: err = %v", err)
	}
	if _, err := Along(bad); !stderrors.Is(err, ErrInvalidOrientation) {
		t.Errorf("Along: err = %v", err)
	}
	if _, err := OriginFor(Orientation(9), 0, 10, 0); !stderrors.Is(err, ErrInvalidOrientation) {
		t.Errorf("OriginFor: err = %v", err)
	}
	if _, err := bad.Orientation.Side(); err == nil {
		t.Error("Side of zero orientation succeeded")
	}
	if err := bad.Validate(); err == nil {
		t.Error("Validate accepted a component without orientation")
	}
	if _, err := bad.Orientation.MarshalText(); err == nil {
		t.Error("MarshalText accepted the zero orientation")
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range []Side{Bottom, Right, Top, Left} {
		got, err := ParseSide(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSide(%q) = %v, %v", s, got, err)
		}
	}
	_, err := ParseSide("north")
	if errors.GetCode(err) != errors.ErrCodeInvalidPlacement {
		t.Errorf("ParseSide(north) code = %s", errors.GetCode(err))
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		o      Orientation
		pt     Point
		lo, hi float64
	}{
		{R0, Point{130, 0}, 130, 150},
		{R90, Point{400, 130}, 130, 150},
		{R180, Point{270, 400}, 250, 270},
		{R270, Point{0, 270}, 250, 270},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			lo, hi, err := Span(Component{Orientation: tt.o, Position: tt.pt}, 20)
			if err != nil {
				t.Fatal(err)
			}
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Span = [%v, %v], want [%v, %v]", lo, hi, tt.lo, tt.hi)
			}
			side, _ := tt.o.Side()
			edge := map[Side]float64{Bottom: 0, Right: 400, Top: 400, Left: 0}[side]
			pt, err := OriginFor(tt.o, lo, 20, edge)
			if err != nil || pt != tt.pt {
				t.Errorf("OriginFor = %v, %v; want %v", pt, err, tt.pt)
			}
		})
	}
}

package skill

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// frame describes a pad's local axes: along runs in the direction the pad
// body extends from its origin; inward points from the chip edge into the
// core.
type frame struct {
	ax, ay float64
	nx, ny float64
	// inwardJust and outwardJust justify labels reading into and out of the
	// core.
	inwardJust  string
	outwardJust string
	labelOrient string
}

func frameOf(o ring.Orientation) (frame, error) {
	switch o {
	case ring.R0:
		return frame{ax: 1, ny: 1, inwardJust: "centerLeft", outwardJust: "centerRight", labelOrient: "R90"}, nil
	case ring.R90:
		return frame{ay: 1, nx: -1, inwardJust: "centerRight", outwardJust: "centerLeft", labelOrient: "R0"}, nil
	case ring.R180:
		return frame{ax: -1, ny: -1, inwardJust: "centerRight", outwardJust: "centerLeft", labelOrient: "R90"}, nil
	case ring.R270:
		return frame{ay: -1, nx: 1, inwardJust: "centerLeft", outwardJust: "centerRight", labelOrient: "R0"}, nil
	}
	return frame{}, errors.Wrap(errors.ErrCodeInvalidOrientation, ring.ErrInvalidOrientation,
		"orientation %v is not one of R0, R90, R180, R270", o)
}

// shift moves p by along units along the side, then by each inward term in
// turn. Terms are applied one at a time so results round the same way as
// the equivalent chain of additions written out per orientation.
func (f frame) shift(p ring.Point, along float64, inward ...float64) ring.Point {
	if f.ax != 0 {
		p.X += f.ax * along
	}
	if f.ay != 0 {
		p.Y += f.ay * along
	}
	for _, d := range inward {
		if f.nx != 0 {
			p.X += f.nx * d
		}
		if f.ny != 0 {
			p.Y += f.ny * d
		}
	}
	return p
}

package filler

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Strategy supplies the node-specific geometry of filler cells.
type Strategy interface {
	// Node is the process node the strategy serves.
	Node() process.Node
	// Perpendicular returns the fixed coordinate of filler origins on side.
	Perpendicular(rc ring.RingConfig, side ring.Side) (float64, error)
	// Width returns the standard or narrow cell width.
	Width(narrow bool) float64
	// CornerCells is the number of cells closing each corner-to-pad gap.
	CornerCells() int
	// Separator returns how many separator cells replace n standard cells,
	// and their width.
	Separator(n int) (cells int, width float64)
}

// StrategyFor returns the strategy for cfg's node.
func StrategyFor(cfg *process.Config) (Strategy, error) {
	switch cfg.Node {
	case process.T28:
		return edgeStrategy{node: cfg.Node, table: cfg.Fillers}, nil
	case process.T180:
		return insetStrategy{edgeStrategy: edgeStrategy{node: cfg.Node, table: cfg.Fillers}, inset: cfg.Fillers.Inset}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no filler strategy for node %q", cfg.Node)
}

// edgeStrategy places fillers on the chip edge, level with the pads.
type edgeStrategy struct {
	node  process.Node
	table process.Fillers
}

func (s edgeStrategy) Node() process.Node { return s.node }

func (s edgeStrategy) Perpendicular(rc ring.RingConfig, side ring.Side) (float64, error) {
	return rc.Edge(side)
}

func (s edgeStrategy) Width(narrow bool) float64 {
	if narrow {
		return s.table.NarrowWidth
	}
	return s.table.Width
}

func (s edgeStrategy) CornerCells() int { return s.table.CornerCells }

func (s edgeStrategy) Separator(n int) (int, float64) {
	return s.table.SeparatorCells(n), s.table.SeparatorWidth
}

// insetStrategy moves filler origins inward from each edge by a per-side
// distance.
type insetStrategy struct {
	edgeStrategy
	inset process.SideInset
}

func (s insetStrategy) Perpendicular(rc ring.RingConfig, side ring.Side) (float64, error) {
	edge, err := rc.Edge(side)
	if err != nil {
		return 0, err
	}
	switch side {
	case ring.Bottom:
		return edge + s.inset.Bottom, nil
	case ring.Left:
		return edge + s.inset.Left, nil
	case ring.Right:
		return edge - s.inset.Right, nil
	case ring.Top:
		return edge - s.inset.Top, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation, "unknown side %v", side)
}

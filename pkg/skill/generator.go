package skill

import (
	"fmt"

	"github.com/LiixTT/AMS-IO-Agent/pkg/domain"
	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Strategy adds the node-specific sections that follow the pin labels.
type Strategy interface {
	Node() process.Node
	emitExtra(g *Generator, l *layout, b *builder) error
}

// StrategyFor returns the emission strategy for node.
func StrategyFor(node process.Node) (Strategy, error) {
	switch node {
	case process.T28:
		return t28Strategy{}, nil
	case process.T180:
		return t180Strategy{}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no SKILL strategy for node %q", node)
}

// t28Strategy has no sections beyond the common ones.
type t28Strategy struct{}

func (t28Strategy) Node() process.Node { return process.T28 }

func (t28Strategy) emitExtra(*Generator, *layout, *builder) error { return nil }

// t180Strategy adds substrate tie-down geometry.
type t180Strategy struct{}

func (t180Strategy) Node() process.Node { return process.T180 }

func (t180Strategy) emitExtra(g *Generator, l *layout, b *builder) error {
	if !g.cfg.Substrate.Enabled {
		return nil
	}
	return g.substrate(l, b)
}

// Generator emits scripts for one ring. It is stateless between calls.
type Generator struct {
	cfg      *process.Config
	ring     ring.RingConfig
	domains  *domain.Handler
	strategy Strategy
}

// New returns a generator using the strategy for cfg's node.
func New(cfg *process.Config, rc ring.RingConfig, domains *domain.Handler) (*Generator, error) {
	s, err := StrategyFor(cfg.Node)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, ring: rc, domains: domains, strategy: s}, nil
}

// Strategy returns the node strategy in use.
func (g *Generator) Strategy() Strategy { return g.strategy }

// layout is a component set split by role, each list in input order.
type layout struct {
	all     []ring.Component
	outer   []ring.Component
	inner   []ring.Component
	corners []ring.Component
	spacers []ring.Component
}

func split(components []ring.Component) (*layout, error) {
	l := &layout{all: components}
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		switch {
		case c.Kind == ring.KindCorner:
			l.corners = append(l.corners, c)
		case c.IsSpacer():
			l.spacers = append(l.spacers, c)
		case c.Inner:
			l.inner = append(l.inner, c)
		default:
			l.outer = append(l.outer, c)
		}
	}
	return l, nil
}

// pads returns outer pads followed by inner pads.
func (l *layout) pads() []ring.Component {
	return append(append([]ring.Component(nil), l.outer...), l.inner...)
}

// Generate emits the script for a resolved, filled component set.
func (g *Generator) Generate(components []ring.Component) (*Script, error) {
	l, err := split(components)
	if err != nil {
		return nil, err
	}

	b := &builder{}
	b.comment(fmt.Sprintf("I/O ring layout, node %s, library %s", g.cfg.Node, g.cfg.Layout.Library))
	b.add("cv = geGetEditCellView()")
	for _, c := range l.all {
		b.instance(g.cfg.Layout.Library, c)
	}

	steps := []struct {
		name string
		fn   func(*layout, *builder) error
	}{
		{"digital routing", g.digital},
		{"labels", g.labels},
	}
	for _, s := range steps {
		if err := s.fn(l, b); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if err := g.strategy.emitExtra(g, l, b); err != nil {
		return nil, fmt.Errorf("%s geometry: %w", g.strategy.Node(), err)
	}

	b.add("dbSave(cv)")
	return &Script{Node: g.cfg.Node, Lines: b.lines}, nil
}

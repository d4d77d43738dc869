package pipeline

import (
	"github.com/LiixTT/AMS-IO-Agent/pkg/domain"
	"github.com/LiixTT/AMS-IO-Agent/pkg/filler"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
	"github.com/LiixTT/AMS-IO-Agent/pkg/skill"
	"github.com/LiixTT/AMS-IO-Agent/pkg/validate"
)

// =============================================================================
// Engine - the per-run collaborators
// =============================================================================

// engine bundles the node-specific collaborators for one intent graph.
type engine struct {
	cfg        *process.Config
	ring       ring.RingConfig
	classifier *process.Classifier
	domains    *domain.Handler
	chooser    *filler.Chooser
}

// newEngine loads node's configuration and completes g's ring against it.
func newEngine(loader *process.Loader, node process.Node, g *ring.IntentGraph) (*engine, error) {
	cfg, err := loader.Load(node)
	if err != nil {
		return nil, err
	}
	counts, err := g.SideCounts()
	if err != nil {
		return nil, err
	}
	rc, err := g.Ring.Complete(cfg, counts)
	if err != nil {
		return nil, err
	}
	return newEngineFor(cfg, rc), nil
}

// newEngineFor builds the collaborators for an already completed ring.
func newEngineFor(cfg *process.Config, rc ring.RingConfig) *engine {
	classifier := process.NewClassifier(cfg)
	domains := domain.NewHandler(classifier)
	return &engine{
		cfg:        cfg,
		ring:       rc,
		classifier: classifier,
		domains:    domains,
		chooser:    filler.NewChooser(cfg, domains),
	}
}

// =============================================================================
// Stages
// =============================================================================

// resolve places every instance. Corner cells are synthesized only for
// graphs that do not already carry spacers or corners, and only when the
// node models corners.
func (e *engine) resolve(g *ring.IntentGraph) ([]ring.Component, error) {
	var picker ring.CornerPicker
	if e.cfg.Corners.Modeled && !g.Prefilled() {
		picker = e.chooser.CornerDevice
	}
	return ring.NewCalculator(e.ring).Resolve(g, picker)
}

// fill inserts spacers. It returns components unchanged when they already
// contain spacers.
func (e *engine) fill(components []ring.Component, gaps []ring.PadPair) ([]ring.Component, error) {
	strategy, err := filler.StrategyFor(e.cfg)
	if err != nil {
		return nil, err
	}
	f := filler.NewAutoFiller(e.ring, e.chooser, strategy, e.classifier)
	if f.Filled(components) {
		return components, nil
	}
	return f.Fill(components, gaps)
}

func (e *engine) emit(components []ring.Component) (*skill.Script, error) {
	gen, err := skill.New(e.cfg, e.ring, e.domains)
	if err != nil {
		return nil, err
	}
	return gen.Generate(components)
}

func (e *engine) validator() validate.Validator {
	return validate.NewStructural(e.ring, e.classifier)
}

// spacerWidths maps every spacer device of the node to its width.
func (e *engine) spacerWidths() map[string]float64 {
	f := e.cfg.Fillers
	return map[string]float64{
		f.Digital:       f.Width,
		f.Analog:        f.Width,
		f.Separator:     f.SeparatorWidth,
		f.DigitalNarrow: f.NarrowWidth,
		f.AnalogNarrow:  f.NarrowWidth,
	}
}

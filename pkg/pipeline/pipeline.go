// Package pipeline ties the layout engine together: intent graph in,
// command script out.
//
// This package implements the resolve → fill → emit pipeline used by every
// CLI command. Centralizing it keeps caching, logging and validation the
// same whether one graph or a whole batch is generated.
//
// # Architecture
//
// The pipeline consists of three stages, run in order for one graph:
//
//  1. Resolve: turn relative placements into absolute components and add
//     the corner cells
//  2. Fill: insert fillers and separators into every gap
//  3. Emit: produce the SKILL command script for the node
//
// Graphs that already declare corners, fillers or separators are placed as
// given and skip corner synthesis and filling.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger, process.DefaultLoader())
//	g, err := ring.ReadIntentFile("intent.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("ring.il", result.Script.Bytes(), 0o644)
//
// Run the placement stages only:
//
//	result, err := runner.Plan(ctx, g, pipeline.Options{})
//	ring.WriteComponents(w, result.Ring, result.Components, result.Gaps)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
	"github.com/LiixTT/AMS-IO-Agent/pkg/skill"
	"github.com/LiixTT/AMS-IO-Agent/pkg/validate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and batch runs
// =============================================================================

// DefaultNode is used when neither the options nor the intent graph name a
// process node.
const DefaultNode = process.T28

// Format constants for output artifacts.
const (
	FormatSkill = "il"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSkill: true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Node overrides the intent graph's process_node when set. Loose
	// spellings ("180nm") are accepted.
	Node string `json:"node,omitempty"`

	// NoFill skips filler insertion; corner cells are still added.
	NoFill bool `json:"no_fill,omitempty"`

	// Validate runs the structural validator after placement.
	Validate bool `json:"validate,omitempty"`

	// Refresh bypasses cached scripts and regenerates them.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Validator replaces the structural validator.
	Validator validate.Validator `json:"-"`

	// node is the normalized form of Node, set by ValidateAndSetDefaults.
	node process.Node
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and batch reports.
	RunID string

	// Node is the process node the graph was generated for.
	Node process.Node

	// Ring is the completed ring configuration.
	Ring ring.RingConfig

	// IntentHash is the content hash of the intent graph.
	IntentHash string

	// Components are the placed pads, corners, fillers and separators.
	Components []ring.Component

	// Gaps are the inner-pad gaps the fill stage reserved.
	Gaps []ring.PadPair

	// Script is the emitted command sequence. Nil for placement-only runs.
	Script *skill.Script

	// Report is the validation report when Options.Validate is set.
	Report *validate.Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pads       int
	InnerPads  int
	Corners    int
	Fillers    int
	Separators int
	Commands   int

	ResolveTime time.Duration
	FillTime    time.Duration
	EmitTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ScriptHit bool // Whether the script and components came from cache
}

// count tallies components by role.
func (s *Stats) count(components []ring.Component) {
	s.Pads, s.InnerPads, s.Corners, s.Fillers, s.Separators = 0, 0, 0, 0, 0
	for _, c := range components {
		switch {
		case c.Kind == ring.KindCorner:
			s.Corners++
		case c.Kind == ring.KindFiller:
			s.Fillers++
		case c.Kind == ring.KindSeparator:
			s.Separators++
		case c.Inner:
			s.InnerPads++
		default:
			s.Pads++
		}
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: il, json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes the node override and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Node != "" {
		n, err := process.Normalize(o.Node)
		if err != nil {
			return err
		}
		o.node = n
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// NodeFor picks the node for g: the override, then the graph's own
// process_node, then DefaultNode.
func (o *Options) NodeFor(g *ring.IntentGraph) (process.Node, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return "", err
	}
	if o.node != "" {
		return o.node, nil
	}
	if g.Ring.ProcessNode != "" {
		return process.Normalize(g.Ring.ProcessNode)
	}
	return DefaultNode, nil
}

// ScriptKeyOpts returns cache key options for an emitted script.
func (o *Options) ScriptKeyOpts(cfg *process.Config, generator string) cache.ScriptKeyOpts {
	return cache.ScriptKeyOpts{
		ConfigHash: cfg.Hash,
		AutoFill:   !o.NoFill,
		Generator:  generator,
	}
}

package ringviz

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Config describes how components are sized and coloured.
type Config struct {
	Ring ring.RingConfig
	// SpacerWidths maps filler and separator devices to their width along
	// the side. Unknown spacers are drawn one unit wide.
	SpacerWidths map[string]float64
	// Domain reports a pad's domain for colouring. Nil uses the explicit
	// tag only.
	Domain func(ring.Component) string
	// Scale converts layout units to points. Zero means 1.
	Scale float64
}

// Fill colours per component role.
const (
	colorDigital   = "lightblue"
	colorAnalog    = "palegreen"
	colorPad       = "white"
	colorCorner    = "grey70"
	colorFiller    = "grey92"
	colorSeparator = "tomato"
)

// box is a component body in layout units.
type box struct {
	cx, cy float64
	w, h   float64
}

// ToDOT converts components into a neato graph with every body pinned in
// place.
func ToDOT(components []ring.Component, cfg Config) (string, error) {
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	rc := cfg.Ring

	var buf bytes.Buffer
	buf.WriteString("graph ring {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fontsize=8, penwidth=0.5];\n")
	buf.WriteString("\n")

	chip := box{cx: rc.ChipWidth / 2, cy: rc.ChipHeight / 2, w: rc.ChipWidth, h: rc.ChipHeight}
	fmt.Fprintf(&buf, "  %q [%s];\n", "__chip__", strings.Join(append(geometry(chip, scale),
		`label=""`, `style="dashed"`, "fillcolor=none"), ", "))

	for _, c := range components {
		b, err := body(c, cfg)
		if err != nil {
			return "", err
		}
		attrs := geometry(b, scale)
		attrs = append(attrs, fmt.Sprintf("label=%q", label(c)), "fillcolor="+fill(c, cfg))
		if c.Inner {
			attrs = append(attrs, `style="filled,dashed"`)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Name, strings.Join(attrs, ", "))
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func geometry(b box, scale float64) []string {
	return []string{
		fmt.Sprintf(`pos="%s,%s!"`, num(b.cx*scale), num(b.cy*scale)),
		"width=" + num(b.w*scale/72),
		"height=" + num(b.h*scale/72),
	}
}

// body returns the drawn extent of c. Pads and spacers extend inward from
// their origin by the pad height; corners are squares in the chip corner.
func body(c ring.Component, cfg Config) (box, error) {
	rc := cfg.Ring
	if c.Kind == ring.KindCorner {
		half := rc.CornerSize / 2
		switch c.Orientation {
		case ring.R0:
			return box{c.Position.X + half, c.Position.Y + half, rc.CornerSize, rc.CornerSize}, nil
		case ring.R90:
			return box{c.Position.X - half, c.Position.Y + half, rc.CornerSize, rc.CornerSize}, nil
		case ring.R180:
			return box{c.Position.X - half, c.Position.Y - half, rc.CornerSize, rc.CornerSize}, nil
		case ring.R270:
			return box{c.Position.X + half, c.Position.Y - half, rc.CornerSize, rc.CornerSize}, nil
		}
		return box{}, invalid(c)
	}

	w := rc.PadWidth
	if c.IsSpacer() {
		w = 1
		if sw, ok := cfg.SpacerWidths[c.Device]; ok {
			w = sw
		}
	}
	lo, hi, err := ring.Span(c, w)
	if err != nil {
		return box{}, err
	}
	mid, depth := (lo+hi)/2, rc.PadHeight/2
	switch c.Orientation {
	case ring.R0:
		return box{mid, c.Position.Y + depth, w, rc.PadHeight}, nil
	case ring.R90:
		return box{c.Position.X - depth, mid, rc.PadHeight, w}, nil
	case ring.R180:
		return box{mid, c.Position.Y - depth, w, rc.PadHeight}, nil
	case ring.R270:
		return box{c.Position.X + depth, mid, rc.PadHeight, w}, nil
	}
	return box{}, invalid(c)
}

func label(c ring.Component) string {
	if c.IsSpacer() {
		return ""
	}
	return c.Name
}

func fill(c ring.Component, cfg Config) string {
	switch c.Kind {
	case ring.KindCorner:
		return colorCorner
	case ring.KindFiller:
		return colorFiller
	case ring.KindSeparator:
		return colorSeparator
	}
	dom := c.Domain
	if cfg.Domain != nil {
		dom = cfg.Domain(c)
	}
	switch dom {
	case ring.DomainDigital:
		return colorDigital
	case ring.DomainAnalog:
		return colorAnalog
	}
	return colorPad
}

func invalid(c ring.Component) error {
	return errors.Wrap(errors.ErrCodeInvalidOrientation, ring.ErrInvalidOrientation,
		"component %q has orientation %v", c.Name, c.Orientation)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

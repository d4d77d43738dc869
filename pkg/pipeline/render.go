package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
	"github.com/LiixTT/AMS-IO-Agent/pkg/render"
	"github.com/LiixTT/AMS-IO-Agent/pkg/render/ringviz"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Render produces the requested artifacts from a finished run. The script
// format needs a result from Execute; every other format works on a Plan
// result too.
func (r *Runner) Render(ctx context.Context, result *Result, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "render")
	}
	cfg, err := r.Loader.Load(result.Node)
	if err != nil {
		return nil, err
	}
	e := newEngineFor(cfg, result.Ring)

	var dot string
	floorplan := func() (string, error) {
		if dot != "" {
			return dot, nil
		}
		d, err := ringviz.ToDOT(result.Components, ringviz.Config{
			Ring:         result.Ring,
			SpacerWidths: e.spacerWidths(),
			Domain:       e.domains.DomainOf,
		})
		dot = d
		return d, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := r.renderFormat(ctx, result, format, floorplan)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func (r *Runner) renderFormat(ctx context.Context, result *Result, format string, floorplan func() (string, error)) ([]byte, error) {
	switch format {
	case FormatSkill:
		if result.Script == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no script was generated for this run")
		}
		return result.Script.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		err := ring.WriteComponents(&buf, result.Ring, result.Components, result.Gaps)
		return buf.Bytes(), err
	}

	dot, err := floorplan()
	if err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}
	svg, err := ringviz.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return render.ToPNG(ctx, svg, 2.0)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	}
	return svg, nil
}

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"

	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/validate"
)

// =============================================================================
// Tables
// =============================================================================

// summaryTable prints per-stage counts and timings of one run.
func summaryTable(w io.Writer, result *pipeline.Result) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Stage").SetAlign(tabulate.ML)
	tab.Header("Output").SetAlign(tabulate.MR)
	tab.Header("Time").SetAlign(tabulate.MR)

	s := result.Stats
	row := tab.Row()
	row.Column("resolve")
	row.Column(fmt.Sprintf("%d pads, %d inner, %d corners", s.Pads, s.InnerPads, s.Corners))
	row.Column(s.ResolveTime.String())

	row = tab.Row()
	row.Column("fill")
	row.Column(fmt.Sprintf("%d fillers, %d separators", s.Fillers, s.Separators))
	row.Column(s.FillTime.String())

	row = tab.Row()
	row.Column("emit")
	row.Column(fmt.Sprintf("%d commands", s.Commands))
	row.Column(s.EmitTime.String())

	row = tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d components", len(result.Components))).SetFormat(tabulate.FmtBold)
	row.Column((s.ResolveTime + s.FillTime + s.EmitTime).String()).SetFormat(tabulate.FmtBold)

	tab.Print(w)
}

// reportTable prints every diagnostic of a validation report.
func reportTable(w io.Writer, report *validate.Report) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Severity").SetAlign(tabulate.ML)
	tab.Header("Check").SetAlign(tabulate.ML)
	tab.Header("Component").SetAlign(tabulate.ML)
	tab.Header("Message").SetAlign(tabulate.ML)

	for _, d := range report.Diagnostics {
		row := tab.Row()
		sev := row.Column(string(d.Severity))
		if d.Severity == validate.SeverityError {
			sev.SetFormat(tabulate.FmtBold)
		}
		row.Column(d.Check)
		row.Column(d.Component)
		row.Column(d.Message).SetFormat(tabulate.FmtItalic)
	}
	tab.Print(w)
}

// nodesTable prints the physical constants of each node document.
func nodesTable(w io.Writer, configs []*process.Config) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Node").SetAlign(tabulate.ML)
	tab.Header("Library").SetAlign(tabulate.ML)
	tab.Header("Pad").SetAlign(tabulate.MR)
	tab.Header("Corner").SetAlign(tabulate.MR)
	tab.Header("Pitch").SetAlign(tabulate.MR)
	tab.Header("Offset").SetAlign(tabulate.MR)
	tab.Header("Order").SetAlign(tabulate.ML)
	tab.Header("Corners").SetAlign(tabulate.ML)
	tab.Header("Substrate").SetAlign(tabulate.ML)
	tab.Header("Source").SetAlign(tabulate.ML)

	for _, cfg := range configs {
		l := cfg.Layout
		row := tab.Row()
		row.Column(string(cfg.Node)).SetFormat(tabulate.FmtBold)
		row.Column(l.Library)
		row.Column(num(l.PadWidth) + "x" + num(l.PadHeight))
		row.Column(num(l.CornerSize))
		row.Column(num(l.PadSpacing))
		row.Column(num(l.PadOffset))
		row.Column(l.PlacementOrder)
		row.Column(modeled(cfg.Corners.Modeled))
		row.Column(modeled(cfg.Substrate.Enabled))
		row.Column(cfg.Source).SetFormat(tabulate.FmtItalic)
	}
	tab.Print(w)
}

// batchTable prints one line per intent graph of a batch run.
func batchTable(w io.Writer, entries []batchEntry) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Run").SetAlign(tabulate.ML)
	tab.Header("Input").SetAlign(tabulate.ML)
	tab.Header("Node").SetAlign(tabulate.ML)
	tab.Header("Components").SetAlign(tabulate.MR)
	tab.Header("Commands").SetAlign(tabulate.MR)
	tab.Header("Status").SetAlign(tabulate.ML)

	for _, e := range entries {
		row := tab.Row()
		row.Column(e.RunID)
		row.Column(e.Input)
		row.Column(e.Node)
		row.Column(strconv.Itoa(e.Components))
		row.Column(strconv.Itoa(e.Commands))
		if e.Err != "" {
			row.Column(e.Err).SetFormat(tabulate.FmtItalic)
			continue
		}
		status := "ok"
		if e.Cached {
			status = iconCached
		}
		row.Column(status)
	}
	tab.Print(w)
}

func modeled(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

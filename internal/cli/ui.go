package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LiixTT/AMS-IO-Agent/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// StyleDim is used for secondary text and the spinner message.
var StyleDim = lipgloss.NewStyle().Foreground(colorDim)

var (
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNode    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Lines
// =============================================================================

func printStatus(icon lipgloss.Style, glyph, msg string) {
	fmt.Println(icon.Render(glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(styleIconWarning, iconWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// =============================================================================
// Ring Stats
// =============================================================================

// statsLine renders the component counts of a run on one line, e.g.
// "12 pads · 4 corners · 24 fillers · 40 commands · fresh".
func statsLine(stats pipeline.Stats, cached bool) string {
	parts := []string{fmt.Sprintf("%d pads", stats.Pads)}
	if stats.InnerPads > 0 {
		parts = append(parts, fmt.Sprintf("%d inner", stats.InnerPads))
	}
	if stats.Corners > 0 {
		parts = append(parts, fmt.Sprintf("%d corners", stats.Corners))
	}
	if stats.Fillers > 0 {
		parts = append(parts, fmt.Sprintf("%d fillers", stats.Fillers))
	}
	if stats.Separators > 0 {
		parts = append(parts, fmt.Sprintf("%d separators", stats.Separators))
	}
	if stats.Commands > 0 {
		parts = append(parts, fmt.Sprintf("%d commands", stats.Commands))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println("  " + statsLine(stats, cached))
}

// nodeLabel styles a process node name.
func nodeLabel(node fmt.Stringer) string {
	return styleNode.Render(node.String())
}

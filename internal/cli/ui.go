package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isosort/pkg/scene"
	"github.com/matzehuels/isosort/pkg/sorter"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // dynamic sprites
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleDynamic  = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleMatch    = lipgloss.NewStyle().Foreground(colorYellow).Underline(true)
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
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Draw Order Display
// =============================================================================

// orderTable renders entries back to front. highlight, when set, styles
// the ID column.
func orderTable(entries []scene.Entry, highlight func(i int, id string) string) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		id := e.ID
		if highlight != nil {
			id = highlight(i, id)
		}
		secondary := ""
		if e.SecondaryOrder != nil {
			secondary = strconv.Itoa(*e.SecondaryOrder)
		}
		motion := "static"
		if e.Dynamic {
			motion = "dynamic"
		}
		rows[i] = []string{
			strconv.Itoa(e.Order),
			secondary,
			id,
			e.Kind,
			motion,
			fmt.Sprintf("%.2f, %.2f", e.Anchor.X, e.Anchor.Y),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Order", "2nd", "ID", "Kind", "Motion", "Anchor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case col == 0 || col == 1:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case row < len(entries) && entries[row].Dynamic:
				return base.Foreground(colorBlue)
			}
			return base
		})
	return t.Render()
}

// statsLine summarizes a frame on one line.
func statsLine(s sorter.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d static", s.Static),
		styleDynamic.Render(fmt.Sprintf("%d dynamic", s.Dynamic)),
		fmt.Sprintf("%d edges", s.StaticEdges+s.DynamicEdges),
	}
	if s.CyclesBroken > 0 {
		parts = append(parts, fmt.Sprintf("%d cycles broken", s.CyclesBroken))
	}
	if s.Unresolved > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unresolved", s.Unresolved)))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(p))
	}
	return b.String()
}

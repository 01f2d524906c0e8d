package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/geometry"
	"golang.org/x/term"
)

var (
	titleStyle   = lipgloss.NewStyle()
	labelStyle   = lipgloss.NewStyle()
	successStyle = lipgloss.NewStyle()
	timingStyle  = lipgloss.NewStyle()
)

// setupStyles enables colors when forced by configuration or when out is
// a terminal.
func setupStyles(out io.Writer, color *bool) {
	enabled := false
	if color != nil {
		enabled = *color
	} else if f, ok := out.(*os.File); ok {
		enabled = term.IsTerminal(int(f.Fd()))
	}

	if !enabled {
		titleStyle = lipgloss.NewStyle()
		labelStyle = lipgloss.NewStyle()
		successStyle = lipgloss.NewStyle()
		timingStyle = lipgloss.NewStyle()
		return
	}

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700"))
	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))
	successStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))
	timingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, "====================")
}

// printField writes an aligned "label: value" line
func printField(w io.Writer, indent, label string, value any) {
	fmt.Fprintf(w, "%s%s %v\n", indent, labelStyle.Render(fmt.Sprintf("%-13s:", label)), value)
}

func printTiming(w io.Writer, what string, d time.Duration) {
	fmt.Fprintln(w, timingStyle.Render(fmt.Sprintf("%s in %s", what, d.Round(time.Microsecond))))
}

// formatCentroid prints undefined centroids as n/a
func formatCentroid(v geometry.Vertex3D) string {
	if v.IsNaN() {
		return "n/a"
	}
	return analysis.FormatVector(v)
}

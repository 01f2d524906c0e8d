package main

import (
	"fmt"
	"slices"

	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/spf13/cobra"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
)

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles in an STL file",
	Long:  "Display information about triangles including area, perimeter, and vertex positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := loadDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	m, err := newMesh(s)
	if err != nil {
		return err
	}
	report := analysis.Analyze(m)
	triangles := m.Triangles()

	var order []int
	var title string
	switch {
	case triLargest:
		order = mesh.SortedByArea(triangles)
		slices.Reverse(order)
		title = "Largest Triangles"
	case triSmallest:
		order = mesh.SortedByArea(triangles)
		title = "Smallest Triangles"
	default:
		order = make([]int, len(triangles))
		for i := range order {
			order[i] = i
		}
		title = "First Triangles"
	}
	order = order[:min(len(order), max(triCount, 0))]

	printTitle(out, fmt.Sprintf("%s (showing %d)", title, len(order)))
	fmt.Fprintf(out, "Total triangles: %d\n", report.Triangles)
	fmt.Fprintf(out, "Total surface area: %.6f square units\n", report.Area)
	fmt.Fprintf(out, "Min triangle area: %.6f square units\n", report.MinTriangleArea)
	fmt.Fprintf(out, "Max triangle area: %.6f square units\n", report.MaxTriangleArea)
	fmt.Fprintf(out, "Avg triangle area: %.6f square units\n\n", report.AvgTriangleArea)

	for _, i := range order {
		tri := triangles[i]
		fmt.Fprintf(out, "Triangle #%d:\n", i)
		fmt.Fprintf(out, "  Area: %.6f square units\n", tri.Area())
		fmt.Fprintf(out, "  Perimeter: %.6f units\n", tri.Perimeter())
		fmt.Fprintf(out, "  Normal: %s\n", analysis.FormatVector(tri.Normal()))
		fmt.Fprintf(out, "  Vertices: %s, %s, %s\n\n",
			analysis.FormatVector(tri.A),
			analysis.FormatVector(tri.B),
			analysis.FormatVector(tri.C))
	}
	return nil
}

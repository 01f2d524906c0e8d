package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	point1X, point1Y, point1Z float32
	point2X, point2Y, point2Z float32
)

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points.
The nearest model vertex to each point is reported as well, together with
the distance between those two vertices.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float32Var(&point1X, "x1", 0.0, "X coordinate of first point")
	measureCmd.Flags().Float32Var(&point1Y, "y1", 0.0, "Y coordinate of first point")
	measureCmd.Flags().Float32Var(&point1Z, "z1", 0.0, "Z coordinate of first point")
	measureCmd.Flags().Float32Var(&point2X, "x2", 0.0, "X coordinate of second point")
	measureCmd.Flags().Float32Var(&point2Y, "y2", 0.0, "Y coordinate of second point")
	measureCmd.Flags().Float32Var(&point2Z, "z2", 0.0, "Z coordinate of second point")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "z1", "x2", "y2", "z2")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	p1 := geometry.NewVertex3D(point1X, point1Y, point1Z)
	p2 := geometry.NewVertex3D(point2X, point2Y, point2Z)

	s, err := loadDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	m, err := newMesh(s)
	if err != nil {
		return err
	}

	printTitle(out, "Point-to-Point Measurement")

	nearest1, dist1 := analysis.FindNearestVertex(m, p1)
	nearest2, dist2 := analysis.FindNearestVertex(m, p2)
	hasVertices := !math.IsInf(float64(dist1), 1)

	fmt.Fprintf(out, "\nPoint 1: %s\n", analysis.FormatVector(p1))
	if hasVertices && dist1 > 0 {
		fmt.Fprintf(out, "  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest1), dist1)
	}

	fmt.Fprintf(out, "\nPoint 2: %s\n", analysis.FormatVector(p2))
	if hasVertices && dist2 > 0 {
		fmt.Fprintf(out, "  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(nearest2), dist2)
	}

	distance := analysis.DistanceBetweenPoints(p1, p2)
	fmt.Fprintf(out, "\nDirect distance: %.6f units\n", distance)

	if hasVertices && (dist1 > 0 || dist2 > 0) {
		vertexDistance := analysis.DistanceBetweenPoints(nearest1, nearest2)
		fmt.Fprintf(out, "Distance between nearest vertices: %.6f units\n", vertexDistance)
	}
	return nil
}

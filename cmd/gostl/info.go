package main

import (
	"fmt"
	"io"
	"time"

	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/spf13/cobra"
)

var infoFormat string

var infoCmd = &cobra.Command{
	Use:   "info [file] [target]",
	Short: "Display general information about an STL file",
	Long: `Show the solid name, header, facet count, surface area, volume and the
vertex, area and volume centroids, along with dimensions and edge statistics.
When a target path is given the document is written there as well.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "", "Output format for the target file (binary or ascii)")
	infoCmd.Flags().StringVar(&strategyOverride, "strategy", "", "Analysis strategy (auto, sequential or parallel)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	filename := args[0]

	fmt.Fprintf(out, "%s %s\n", successStyle.Render("Reading STL:"), filename)
	start := time.Now()
	s, err := loadDocument(cmd.Context(), filename)
	if err != nil {
		return err
	}
	printTiming(out, "Read", time.Since(start))

	if err := printInfo(out, s); err != nil {
		return err
	}

	if len(args) == 2 {
		return export(out, s, args[1], infoFormat)
	}
	return nil
}

func printInfo(out io.Writer, s *stl.Stl) error {
	m, err := newMesh(s)
	if err != nil {
		return err
	}

	start := time.Now()
	report := analysis.Analyze(m)
	elapsed := time.Since(start)

	fmt.Fprintln(out)
	printTitle(out, "STL Info")
	printField(out, "  ", "Name", s.Name)
	printField(out, "  ", "Header", s.Header)
	printField(out, "  ", "Facet Count", s.Len())
	printField(out, "  ", "Surface Area", fmt.Sprintf("%.6f square units", report.Area))
	printField(out, "  ", "Volume", fmt.Sprintf("%.6f cubic units", report.Volume))
	fmt.Fprintln(out, labelStyle.Render("  Centroids:"))
	printField(out, "    ", "Vertex", formatCentroid(report.VertexCentroid))
	printField(out, "    ", "Area", formatCentroid(report.AreaCentroid))
	printField(out, "    ", "Volume", formatCentroid(report.VolumeCentroid))
	printTiming(out, fmt.Sprintf("Analyzed (%s)", m.Strategy().Name()), elapsed)

	if report.Triangles == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, labelStyle.Render("Bounding Box:"))
	printField(out, "  ", "Min", analysis.FormatVector(report.BoundingBox.Min))
	printField(out, "  ", "Max", analysis.FormatVector(report.BoundingBox.Max))
	printField(out, "  ", "Center", analysis.FormatVector(report.BoundingBox.Center()))

	fmt.Fprintln(out)
	fmt.Fprintln(out, labelStyle.Render("Dimensions:"))
	printField(out, "  ", "Width (X)", analysis.FormatMeasurement(float64(report.Dimensions.X), ""))
	printField(out, "  ", "Depth (Y)", analysis.FormatMeasurement(float64(report.Dimensions.Y), ""))
	printField(out, "  ", "Height (Z)", analysis.FormatMeasurement(float64(report.Dimensions.Z), ""))
	printField(out, "  ", "Diagonal", analysis.FormatMeasurement(float64(report.BoundingBox.Diagonal()), ""))

	fmt.Fprintln(out)
	fmt.Fprintln(out, labelStyle.Render("Edge Lengths:"))
	printField(out, "  ", "Edges", report.EdgeCount)
	printField(out, "  ", "Minimum", analysis.FormatMeasurement(float64(report.MinEdgeLength), ""))
	printField(out, "  ", "Maximum", analysis.FormatMeasurement(float64(report.MaxEdgeLength), ""))
	printField(out, "  ", "Average", analysis.FormatMeasurement(float64(report.AvgEdgeLength), ""))
	return nil
}

func export(out io.Writer, s *stl.Stl, target, formatFlag string) error {
	format, err := outputFormat(formatFlag)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := stl.WriteFile(target, s, format); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Wrote %s STL to %s in %s", format, target, time.Since(start).Round(time.Microsecond))))
	return nil
}

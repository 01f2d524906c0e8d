package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/shape"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	generateFormat string
	generateCells  int
	generateSize   string
	generateRadius float64
	generateHeight float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write primitive solids as STL files",
	Long: `Generate a box, sphere or cylinder. Boxes are exact; spheres and cylinders
are tessellated with marching cubes at the given resolution.`,
}

var generateBoxCmd = &cobra.Command{
	Use:   "box [output]",
	Short: "Generate an axis-aligned box with its minimum corner at the origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := parseSize(generateSize)
		if err != nil {
			return err
		}
		return writeShape(cmd, shape.Box(geometry.Vertex3D{}, size, "box"), args[0])
	},
}

var generateSphereCmd = &cobra.Command{
	Use:   "sphere [output]",
	Short: "Generate a sphere centered at the origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solid, err := shape.Sphere(generateRadius)
		if err != nil {
			return err
		}
		return writeShape(cmd, shape.Tessellate(solid, generateCells, "sphere"), args[0])
	},
}

var generateCylinderCmd = &cobra.Command{
	Use:   "cylinder [output]",
	Short: "Generate a Z-aligned cylinder centered at the origin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solid, err := shape.Cylinder(generateHeight, generateRadius)
		if err != nil {
			return err
		}
		return writeShape(cmd, shape.Tessellate(solid, generateCells, "cylinder"), args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateBoxCmd, generateSphereCmd, generateCylinderCmd)

	generateCmd.PersistentFlags().StringVarP(&generateFormat, "format", "f", "", "Output format (binary or ascii)")
	generateCmd.PersistentFlags().IntVar(&generateCells, "cells", shape.DefaultCells, "Marching cubes cells along the longest axis")
	generateBoxCmd.Flags().StringVar(&generateSize, "size", "1,1,1", "Box size as x,y,z")
	generateSphereCmd.Flags().Float64VarP(&generateRadius, "radius", "r", 1, "Sphere radius")
	generateCylinderCmd.Flags().Float64VarP(&generateRadius, "radius", "r", 1, "Cylinder radius")
	generateCylinderCmd.Flags().Float64Var(&generateHeight, "height", 1, "Cylinder height")
}

func writeShape(cmd *cobra.Command, s *stl.Stl, target string) error {
	out := cmd.OutOrStdout()
	if err := export(out, s, target, generateFormat); err != nil {
		return err
	}
	return printInfo(out, s)
}

// parseSize parses "x,y,z" into a vertex
func parseSize(value string) (geometry.Vertex3D, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return geometry.Vertex3D{}, fmt.Errorf("--size needs 3 comma separated values, got %q", value)
	}
	var xyz [3]float32
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return geometry.Vertex3D{}, fmt.Errorf("--size: %w", err)
		}
		xyz[i] = float32(v)
	}
	return geometry.NewVertex3D(xyz[0], xyz[1], xyz[2]), nil
}

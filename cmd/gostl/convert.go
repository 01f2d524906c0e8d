package main

import (
	"github.com/spf13/cobra"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Re-encode an STL file as binary or ASCII",
	Long: `Read an STL (or render an OpenSCAD source) and write it in the requested
format. Facet normals are recomputed from the vertex winding.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format (binary or ascii)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := loadDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return export(cmd.OutOrStdout(), s, args[1], convertFormat)
}

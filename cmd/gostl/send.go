package main

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/stlmesh/pkg/peer"
	"github.com/spf13/cobra"
)

var sendTimeout time.Duration

var sendCmd = &cobra.Command{
	Use:   "send [file] [url]",
	Short: "Send an STL document to a gostl server and print its analysis",
	Args:  cobra.ExactArgs(2),
	RunE:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 30*time.Second, "Overall timeout for the transfer")
}

func runSend(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := loadDocument(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sendTimeout)
	defer cancel()

	start := time.Now()
	result, err := peer.Send(ctx, args[1], s)
	if err != nil {
		return err
	}
	printTiming(out, "Round trip", time.Since(start))

	printTitle(out, "Remote Analysis")
	printField(out, "  ", "Name", result.Name)
	printField(out, "  ", "Header", result.Header)
	printField(out, "  ", "Facet Count", result.Facets)
	printField(out, "  ", "Surface Area", fmt.Sprintf("%.6f square units", result.Area))
	printField(out, "  ", "Volume", fmt.Sprintf("%.6f cubic units", result.Volume))
	fmt.Fprintln(out, labelStyle.Render("  Centroids:"))
	printField(out, "    ", "Vertex", formatCentroid(result.VertexCentroid.Vertex()))
	printField(out, "    ", "Area", formatCentroid(result.AreaCentroid.Vertex()))
	printField(out, "    ", "Volume", formatCentroid(result.VolumeCentroid.Vertex()))
	return nil
}

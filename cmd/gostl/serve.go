package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/stlmesh/pkg/peer"
	"github.com/spf13/cobra"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept STL documents over a websocket and reply with their analysis",
	Long: `Listen for websocket connections on /ws. Every binary message is decoded as
a binary STL and answered with a JSON analysis result.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&strategyOverride, "strategy", "", "Analysis strategy (auto, sequential or parallel)")
}

func runServe(cmd *cobra.Command, args []string) error {
	address := cfg.Serve.Address
	if serveAddress != "" {
		address = serveAddress
	}

	strategy, err := analysisStrategy()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", peer.NewHandler(
		peer.WithDecodeOptions(cfg.DecodeOptions()...),
		peer.WithStrategy(strategy),
	))
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "%s ws://%s/ws\n", successStyle.Render("Listening on"), address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

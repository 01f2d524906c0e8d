package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/stlmesh/internal/loader"
	"github.com/philipparndt/stlmesh/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-analyze a file whenever it changes",
	Long: `Print the file information and print it again after every change.
For OpenSCAD sources every use/include dependency is watched too.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before re-analyzing (default from config)")
	watchCmd.Flags().StringVar(&strategyOverride, "strategy", "", "Analysis strategy (auto, sequential or parallel)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	filename := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debounce := cfg.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}
	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	var refresh func(string)
	refresh = func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		if changed != "" {
			fmt.Fprintf(out, "\n%s %s\n", successStyle.Render("File changed:"), changed)
		}
		if err := analyzeOnce(ctx, out, filename); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}

		// Dependencies of OpenSCAD sources can change between renders
		files, err := loader.WatchList(filename)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		if err := fw.Watch(files, refresh); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}

	refresh("")
	fmt.Fprintln(out, timingStyle.Render("Watching for changes, press Ctrl+C to stop"))

	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func analyzeOnce(ctx context.Context, out io.Writer, filename string) error {
	start := time.Now()
	s, err := loadDocument(ctx, filename)
	if err != nil {
		return err
	}
	printTiming(out, "Read", time.Since(start))
	return printInfo(out, s)
}

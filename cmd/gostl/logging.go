package main

import (
	"fmt"

	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/openscad"
	"github.com/philipparndt/stlmesh/pkg/peer"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/philipparndt/stlmesh/pkg/watcher"
	"go.uber.org/zap"
)

// setupLogging builds the process logger and hands it to every library package
func setupLogging(verbose bool) error {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		config.Encoding = "console"
		config.OutputPaths = []string{"stderr"}
		logger, err = config.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	stl.SetLogger(logger.Named("stl"))
	mesh.SetLogger(logger.Named("mesh"))
	peer.SetLogger(logger.Named("peer"))
	watcher.SetLogger(logger.Named("watcher"))
	openscad.SetLogger(logger.Named("openscad"))
	return nil
}

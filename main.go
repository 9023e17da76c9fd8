package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/gol-engine/engine"
	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/utils"
)

const configFile = "config.json"

func main() {
	h, err := setup(configFile, model.NewTerminalRenderer())
	if err != nil {
		log.Fatalf("failed to start simulation: %v", err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	displayGameInfo(h)
	run(ctx, h)
}

// setup loads the configuration and builds the host. A missing config file means
// defaults; any other configuration problem is returned.
func setup(configPath string, terminal *model.TerminalRenderer) (*host, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	eng, err := newEngine(config)
	if err != nil {
		return nil, err
	}
	return newHost(config, eng, terminal), nil
}

// run drives the loop on this goroutine until ctx ends or the host finishes
func run(ctx context.Context, h *host) {
	scheduler := utils.NewChannelScheduler()
	defer scheduler.Close()

	loop := engine.NewLoop(h.engine, h.config.FrameRate, h)
	loop.OnStep(h.onStep)
	loop.Start(scheduler)
	defer loop.Stop()

	for !h.finished {
		select {
		case <-ctx.Done():
			displayFinalStats(h)
			return
		case next := <-scheduler.Ready():
			next()
		}
	}
	displayFinalStats(h)
}

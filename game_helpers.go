package main

import (
	"fmt"
	"time"

	"github.com/sheikhrachel/gol-engine/engine"
	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/utils"
)

// newEngine builds the engine described by config and seeds its first generation
func newEngine(config utils.Config) (*engine.Engine, error) {
	opts := []engine.Option{}
	if config.Seed != 0 {
		opts = append(opts, engine.WithSeed(config.Seed))
	}
	if config.UseMemoryPool {
		opts = append(opts, engine.WithGridPool(model.NewGridPool()))
	}
	if config.UseBoundedGrid {
		opts = append(opts, engine.WithStrategy(model.StrategyBounded))
	}

	eng, err := engine.New(config.CellSize, config.ViewportWidth, config.ViewportHeight, opts...)
	if err != nil {
		return nil, err
	}
	eng.SetGridLineVisibility(config.ShowGridLines)
	eng.PopulateRandom(config.RandomDensity)
	return eng, nil
}

// host renders each tick and reacts to every computed generation
type host struct {
	config     utils.Config
	engine     *engine.Engine
	terminal   *model.TerminalRenderer
	stats      *utils.Stats
	stagnation utils.StagnationTracker
	now        func() time.Time

	totalGenerations int
	restarts         int
	status           string
	finished         bool
}

func newHost(config utils.Config, eng *engine.Engine, terminal *model.TerminalRenderer) *host {
	return &host{
		config:   config,
		engine:   eng,
		terminal: terminal,
		stats:    utils.NewStats(),
		now:      time.Now,
		status:   "Active",
	}
}

// Render draws the board followed by the status lines
func (h *host) Render(v engine.View) {
	h.terminal.Render(v)
	displayGameStatus(h)
}

// onStep updates stats and restarts the board when it dies out or stagnates
func (h *host) onStep(e *engine.Engine) {
	h.totalGenerations++
	livingCells := e.LivingCells()
	h.stats.Update(h.totalGenerations, livingCells, h.now())
	streak := h.stagnation.Observe(e.Hash())

	h.status = "Active"
	if streak > 0 {
		h.status = fmt.Sprintf("Stagnant (%d)", streak)
	}
	if livingCells == 0 {
		h.status = "Extinct"
	}

	if h.config.MaxGenerations > 0 && h.totalGenerations >= h.config.MaxGenerations {
		h.status = fmt.Sprintf("Reached maximum generations limit (%d)", h.config.MaxGenerations)
		h.finished = true
		return
	}

	shouldRestart, reason := checkRestartConditions(livingCells, streak, h.config)
	if shouldRestart && h.config.AutoRestart {
		restartGame(h, reason)
	}
}

// checkRestartConditions determines if the board should be reseeded
func checkRestartConditions(livingCells, stagnantStreak int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantStreak >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the board in place
func restartGame(h *host, reason string) {
	h.engine.PopulateRandom(h.config.RandomDensity)
	h.stagnation.Reset()
	h.restarts++
	h.status = fmt.Sprintf("Restarted due to %s", reason)
}

// displayGameInfo shows the initial game information
func displayGameInfo(h *host) {
	out := h.terminal.Writer()
	fmt.Fprintf(out, "Features: Memory Pool: %v, Bounded: %v, Grid lines: %v\n",
		h.config.UseMemoryPool, h.config.UseBoundedGrid, h.engine.GridLineVisible())
	fmt.Fprintf(out, "Grid: %dx%d cells of %dpx | Initial living cells: %d\n",
		h.engine.WidthCells(), h.engine.HeightCells(), h.engine.CellSize(), h.engine.LivingCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// displayGameStatus shows the current game status
func displayGameStatus(h *host) {
	var (
		livingCells = h.engine.LivingCells()
		cells       = h.engine.WidthCells() * h.engine.HeightCells()
		density     = float64(livingCells) / float64(cells) * 100
	)

	boundingInfo := ""
	if h.config.UseBoundedGrid {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", h.engine.BoundingBoxSize())
	}

	fmt.Fprintf(h.terminal.Writer(), "Gen: %d | Living: %d | Density: %.1f%% | Status: %s%s\n",
		h.engine.Generation(), livingCells, density, h.status, boundingInfo)
	fmt.Fprintf(h.terminal.Writer(), "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs | Restarts: %d\n",
		h.stats.GenerationsPerSecond, h.stats.AveragePopulation, h.stats.Runtime(h.now()).Seconds(), h.restarts)
}

// displayFinalStats prints the summary on shutdown
func displayFinalStats(h *host) {
	out := h.terminal.Writer()
	fmt.Fprintf(out, "\nShutting down: %s\n", h.status)
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
		h.totalGenerations, h.stats.Runtime(h.now()).Seconds())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population\n",
		h.stats.GenerationsPerSecond, h.stats.AveragePopulation)
}

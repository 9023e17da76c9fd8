// Package engine owns the Game of Life state for one visualization session.
//
// The engine runs no goroutines and owns no timers. It is driven from outside,
// either by direct calls or by a Loop bound to a host Scheduler. All methods are
// serialized by one lock, so a grid is never observed mid-evolve or mid-resize.
package engine

import (
	"math/rand/v2"
	"sync"

	"github.com/sheikhrachel/gol-engine/model"
)

// DefaultDensity is the share of cells Populate brings to life
const DefaultDensity = 0.5

// RunState tells the driving loop whether to step automatically
type RunState int

const (
	Running RunState = iota
	Paused
)

func (s RunState) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// View is the read-only query surface handed to renderers
type View = model.View

// Engine is the simulation engine: a fixed-boundary grid sized from a viewport and a cell size
type Engine struct {
	mu sync.RWMutex

	cellSize       int
	viewportWidth  int
	viewportHeight int
	widthCells     int
	heightCells    int

	grid            *model.Grid
	state           RunState
	gridLineVisible bool
	generation      int

	rng      *rand.Rand
	pool     *model.GridPool
	strategy model.Strategy
}

// New builds an engine with an all-dead grid of viewport/cellSize cells, in the Running state
func New(cellSize, viewportWidth, viewportHeight int, opts ...Option) (*Engine, error) {
	widthCells, heightCells, err := validateGeometry("New", cellSize, viewportWidth, viewportHeight)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cellSize:        cellSize,
		viewportWidth:   viewportWidth,
		viewportHeight:  viewportHeight,
		widthCells:      widthCells,
		heightCells:     heightCells,
		state:           Running,
		gridLineVisible: true,
		strategy:        model.StrategyParallel,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand(timeSeed())
	}
	e.grid = model.NewGrid(widthCells, heightCells)

	return e, nil
}

// IsAlive reports the state of (x, y); anything outside the grid is dead
func (e *Engine) IsAlive(x, y int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Get(x, y)
}

// NeighborCount returns how many of the 8 cells around (x, y) are alive
func (e *Engine) NeighborCount(x, y int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.CountNeighbors(x, y)
}

// Evolve advances one generation. It works in any RunState.
func (e *Engine) Evolve() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evolveLocked()
}

func (e *Engine) evolveLocked() {
	next := e.grid.NextGeneration(e.strategy, e.pool)
	model.GridToPool(e.grid, e.pool)
	e.grid = next
	e.generation++
}

// autoStep evolves only while Running, reporting whether it did
func (e *Engine) autoStep() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Paused {
		return false
	}
	e.evolveLocked()
	return true
}

// ResizeViewport rederives the cell grid for a new viewport, keeping the overlap
func (e *Engine) ResizeViewport(width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	widthCells, heightCells, err := validateGeometry("ResizeViewport", e.cellSize, width, height)
	if err != nil {
		return err
	}

	e.viewportWidth, e.viewportHeight = width, height
	e.resizeGrid(widthCells, heightCells)
	return nil
}

// SetTileSize changes the cell size and retiles the current viewport, then resumes
// automatic stepping. The exclusive lock holds off the loop for the transition.
func (e *Engine) SetTileSize(size int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	widthCells, heightCells, err := validateGeometry("SetTileSize", size, e.viewportWidth, e.viewportHeight)
	if err != nil {
		return err
	}

	e.cellSize = size
	e.resizeGrid(widthCells, heightCells)
	e.state = Running
	return nil
}

// resizeGrid swaps in a grid of the given size; callers hold mu
func (e *Engine) resizeGrid(widthCells, heightCells int) {
	e.widthCells, e.heightCells = widthCells, heightCells
	if widthCells == e.grid.GetWidth() && heightCells == e.grid.GetHeight() {
		return
	}

	next := e.grid.Resized(widthCells, heightCells, e.pool)
	model.GridToPool(e.grid, e.pool)
	e.grid = next
}

// ToggleCell flips (x, y); out of range coordinates are ignored
func (e *Engine) ToggleCell(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.Toggle(x, y)
}

// PopulateRandom sets each cell alive with probability density, clamped to [0, 1]
func (e *Engine) PopulateRandom(density float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.Randomize(density, e.rng)
	e.generation = 0
}

// Populate fills the grid at DefaultDensity
func (e *Engine) Populate() {
	e.PopulateRandom(DefaultDensity)
}

// Clear kills every cell
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid.Clear()
	e.generation = 0
}

// SetGridLineVisibility records the grid-line hint for renderers
func (e *Engine) SetGridLineVisibility(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gridLineVisible = visible
}

// Pause stops automatic stepping; manual Evolve calls still work
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Paused
}

// Resume restarts automatic stepping
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Running
}

func (e *Engine) State() RunState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) Paused() bool {
	return e.State() == Paused
}

func (e *Engine) WidthCells() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.widthCells
}

func (e *Engine) HeightCells() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.heightCells
}

func (e *Engine) CellSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cellSize
}

func (e *Engine) GridLineVisible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gridLineVisible
}

// Generation returns the number of evolutions since construction or the last Clear/PopulateRandom
func (e *Engine) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// LivingCells counts the live cells of the current generation
func (e *Engine) LivingCells() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.CountLivingCells()
}

// BoundingBoxSize returns the area of the smallest box holding every live cell
func (e *Engine) BoundingBoxSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.GetBoundingBoxSize()
}

// Snapshot returns a copy of the grid as rows (y) of columns (x)
func (e *Engine) Snapshot() [][]bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Snapshot()
}

// Hash fingerprints the current generation
func (e *Engine) Hash() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.GetGridHash()
}

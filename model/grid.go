package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-engine/rules"
)

// Strategy selects how the next generation is computed
type Strategy int

const (
	// StrategyParallel evaluates every row, fanned out across CPUs
	StrategyParallel Strategy = iota
	// StrategyBounded evaluates only the bounding box of living cells plus a one cell margin
	StrategyBounded
)

// String returns the strategy name used in logs and config
func (s Strategy) String() string {
	switch s {
	case StrategyParallel:
		return "parallel"
	case StrategyBounded:
		return "bounded"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Grid is a bounded board of boolean cells, stored row-major as cells[y][x].
// Coordinates outside the grid always read as dead.
type Grid struct {
	width  int
	height int
	cells  [][]bool

	// Optional bounded grid optimization
	activeBounds struct {
		minX, maxX, minY, maxY int
		valid                  bool
	}
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	width, height = max(0, width), max(0, height)
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resets the grid to new dimensions, all cells dead
func (g *Grid) Reset(width, height int) {
	width, height = max(0, width), max(0, height)
	g.width = width
	g.height = height
	g.activeBounds.valid = false

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear clears all cells
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
	g.activeBounds.valid = false
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set sets a cell to alive (true) or dead (false), ignoring out of range coordinates
func (g *Grid) Set(x, y int, alive bool) {
	if g.InBounds(x, y) {
		g.cells[y][x] = alive
		g.activeBounds.valid = false
	}
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y][x]
}

// Toggle flips a cell and reports whether the coordinates were in range
func (g *Grid) Toggle(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = !g.cells[y][x]
	g.activeBounds.valid = false
	return true
}

// CountNeighbors counts living neighbors of (x, y). The bounds are clamped once, so
// coordinates on or beyond the edge simply see fewer cells.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for y := range g.height {
		for x := range g.width {
			if !g.cells[y][x] {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minX, g.activeBounds.maxX = x, x
				g.activeBounds.minY, g.activeBounds.maxY = y, y
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minX = min(g.activeBounds.minX, x)
			g.activeBounds.maxX = max(g.activeBounds.maxX, x)
			g.activeBounds.minY = min(g.activeBounds.minY, y)
			g.activeBounds.maxY = max(g.activeBounds.maxY, y)
		}
	}
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxX - g.activeBounds.minX + 1) *
		(g.activeBounds.maxY - g.activeBounds.minY + 1)
}

// newSized takes a grid of the given size from the pool, or allocates one
func newSized(width, height int, pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(width, height)
	}
	return NewGrid(width, height)
}

// NextGenerationParallel calculates the next generation into a fresh grid using parallel processing.
// The receiver is only read.
func (g *Grid) NextGenerationParallel(pool *GridPool) *Grid {
	next := newSized(g.width, g.height, pool)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		// each worker owns rows [startRow, endRow) of next
		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := range g.width {
					next.cells[y][x] = rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cells[y][x])
				}
			}
			return nil
		})
	}

	// workers never fail, Wait only joins them
	_ = eg.Wait()

	return next
}

// NextGenerationBounded calculates the next generation only in the active region
func (g *Grid) NextGenerationBounded(pool *GridPool) *Grid {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := newSized(g.width, g.height, pool)

	// If no active cells, the next generation is empty
	if !g.activeBounds.valid {
		return next
	}

	// Process only the active region + 1 margin
	minX := max(0, g.activeBounds.minX-1)
	maxX := min(g.width-1, g.activeBounds.maxX+1)
	minY := max(0, g.activeBounds.minY-1)
	maxY := min(g.height-1, g.activeBounds.maxY+1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cells[y][x])
		}
	}

	next.calculateActiveBounds()
	return next
}

// NextGeneration calculates the next generation with the given strategy
func (g *Grid) NextGeneration(strategy Strategy, pool *GridPool) *Grid {
	if strategy == StrategyBounded {
		return g.NextGenerationBounded(pool)
	}
	return g.NextGenerationParallel(pool)
}

// Resized returns a new grid of the given size holding the overlapping region of g.
// Cells outside the old footprint start dead, cells outside the new one are dropped.
func (g *Grid) Resized(width, height int, pool *GridPool) *Grid {
	next := newSized(width, height, pool)

	overlapW := min(g.width, next.width)
	overlapH := min(g.height, next.height)
	for y := range overlapH {
		copy(next.cells[y][:overlapW], g.cells[y][:overlapW])
	}

	return next
}

// Snapshot returns a copy of the cells as rows of columns
func (g *Grid) Snapshot() [][]bool {
	rows := make([][]bool, g.height)
	for y := range g.height {
		rows[y] = append([]bool(nil), g.cells[y]...)
	}
	return rows
}

// Equal reports whether both grids have the same size and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	row := make([]byte, g.width)
	for y := range g.height {
		for x := range g.width {
			row[x] = 0
			if g.cells[y][x] {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize sets every cell alive with probability density, drawing from rng
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	density = min(1, max(0, density))
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < density
		}
	}
	g.activeBounds.valid = false
}

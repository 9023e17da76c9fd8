package engine

import (
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
)

// newTestEngine builds an engine with 1px cells so viewport size equals cell count
func newTestEngine(t *testing.T, w, h int, opts ...Option) *Engine {
	t.Helper()
	e, err := New(1, w, h, opts...)
	if err != nil {
		t.Fatalf("New(1, %d, %d): %v", w, h, err)
	}
	return e
}

func setAlive(e *Engine, cells ...[2]int) {
	for _, c := range cells {
		if !e.IsAlive(c[0], c[1]) {
			e.ToggleCell(c[0], c[1])
		}
	}
}

func assertAlive(t *testing.T, e *Engine, expects map[[2]int]bool) {
	t.Helper()
	for y := range e.HeightCells() {
		for x := range e.WidthCells() {
			if got, want := e.IsAlive(x, y), expects[[2]int{x, y}]; got != want {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, got, want)
			}
		}
	}
}

func snapshotsEqual(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name             string
		cellSize, vw, vh int
	}{
		{"zero cell size", 0, 100, 100},
		{"negative cell size", -4, 100, 100},
		{"zero viewport width", 10, 0, 100},
		{"negative viewport height", 10, 100, -1},
		{"viewport narrower than a cell", 50, 40, 100},
		{"viewport shorter than a cell", 50, 100, 49},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.cellSize, tt.vw, tt.vh)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
			}
			if e != nil {
				t.Fatal("engine should be nil on error")
			}
		})
	}
}

func TestNewDerivesDimensions(t *testing.T) {
	e, err := New(20, 105, 61)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if e.WidthCells() != 5 || e.HeightCells() != 3 {
		t.Fatalf("cells = %dx%d, want 5x3", e.WidthCells(), e.HeightCells())
	}
	if e.CellSize() != 20 {
		t.Fatalf("cell size = %d, want 20", e.CellSize())
	}
	if e.State() != Running {
		t.Fatalf("state = %s, want running", e.State())
	}
	if e.LivingCells() != 0 {
		t.Fatal("new grid should be all dead")
	}

	snap := e.Snapshot()
	if len(snap) != 3 || len(snap[0]) != 5 {
		t.Fatalf("snapshot = %d rows of %d, want 3 rows of 5", len(snap), len(snap[0]))
	}
}

func TestOutOfBoundsIsDeadAndToggleIsNoop(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	e.PopulateRandom(1)
	before := e.Snapshot()

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-9, 99}} {
		if e.IsAlive(c[0], c[1]) {
			t.Errorf("IsAlive(%d,%d) = true, want false", c[0], c[1])
		}
		e.ToggleCell(c[0], c[1])
	}

	if !snapshotsEqual(before, e.Snapshot()) {
		t.Fatal("out of range toggles changed the grid")
	}
}

func TestToggleCell(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	e.ToggleCell(1, 2)
	if !e.IsAlive(1, 2) {
		t.Fatal("toggle should bring a dead cell to life")
	}
	e.ToggleCell(1, 2)
	if e.IsAlive(1, 2) {
		t.Fatal("second toggle should kill the cell")
	}
}

func TestNeighborCountRotationSymmetry(t *testing.T) {
	const size = 12
	pattern := [][2]int{{4, 4}, {5, 4}, {6, 5}, {4, 6}, {5, 7}, {7, 7}}

	original := newTestEngine(t, size, size)
	rotated := newTestEngine(t, size, size)
	for _, c := range pattern {
		setAlive(original, c)
		setAlive(rotated, [2]int{size - 1 - c[0], size - 1 - c[1]})
	}

	for y := range size {
		for x := range size {
			got := original.NeighborCount(x, y)
			want := rotated.NeighborCount(size-1-x, size-1-y)
			if got != want {
				t.Fatalf("NeighborCount(%d,%d) = %d, rotated counterpart = %d", x, y, got, want)
			}
			if got < 0 || got > 8 {
				t.Fatalf("NeighborCount(%d,%d) = %d out of range", x, y, got)
			}
		}
	}
}

func TestEvolveIsDeterministic(t *testing.T) {
	a := newTestEngine(t, 30, 20, WithSeed(99))
	b := newTestEngine(t, 30, 20, WithSeed(99))
	a.Populate()
	b.Populate()

	if !snapshotsEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatal("same seed should populate identically")
	}

	for range 2 {
		a.Evolve()
		b.Evolve()
	}
	if !snapshotsEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatal("evolution from identical grids diverged")
	}
	if a.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", a.Generation())
	}
}

func TestBlockIsStillLife(t *testing.T) {
	e := newTestEngine(t, 6, 6)
	block := [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	setAlive(e, block...)

	want := map[[2]int]bool{}
	for _, c := range block {
		want[c] = true
	}

	for range 3 {
		e.Evolve()
		assertAlive(t, e, want)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, strategy := range []model.Strategy{model.StrategyParallel, model.StrategyBounded} {
		t.Run(strategy.String(), func(t *testing.T) {
			e := newTestEngine(t, 7, 7, WithStrategy(strategy), WithGridPool(model.NewGridPool()))
			setAlive(e, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})

			e.Evolve()
			assertAlive(t, e, map[[2]int]bool{{2, 3}: true, {3, 3}: true, {4, 3}: true})

			e.Evolve()
			assertAlive(t, e, map[[2]int]bool{{3, 2}: true, {3, 3}: true, {3, 4}: true})
		})
	}
}

func TestEvolveIgnoresPause(t *testing.T) {
	e := newTestEngine(t, 7, 7)
	setAlive(e, [2]int{3, 2}, [2]int{3, 3}, [2]int{3, 4})

	e.Pause()
	e.Evolve()

	if !e.Paused() {
		t.Fatal("Evolve must not change the run state")
	}
	assertAlive(t, e, map[[2]int]bool{{2, 3}: true, {3, 3}: true, {4, 3}: true})
}

func TestPauseResume(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	e.Pause()
	if e.State() != Paused {
		t.Fatalf("state = %s, want paused", e.State())
	}
	e.Resume()
	if e.State() != Running {
		t.Fatalf("state = %s, want running", e.State())
	}
}

func TestResizeViewportRoundTrip(t *testing.T) {
	e := newTestEngine(t, 10, 10, WithSeed(5))
	e.PopulateRandom(0.4)
	original := e.Snapshot()

	if err := e.ResizeViewport(15, 13); err != nil {
		t.Fatalf("grow: %v", err)
	}
	if e.WidthCells() != 15 || e.HeightCells() != 13 {
		t.Fatalf("cells = %dx%d, want 15x13", e.WidthCells(), e.HeightCells())
	}
	for y := range 13 {
		for x := range 15 {
			if x >= 10 || y >= 10 {
				if e.IsAlive(x, y) {
					t.Fatalf("newly exposed cell (%d,%d) should be dead", x, y)
				}
			} else if e.IsAlive(x, y) != original[y][x] {
				t.Fatalf("overlapping cell (%d,%d) changed on grow", x, y)
			}
		}
	}

	if err := e.ResizeViewport(10, 10); err != nil {
		t.Fatalf("shrink back: %v", err)
	}
	if !snapshotsEqual(original, e.Snapshot()) {
		t.Fatal("grow then shrink back should restore the original grid")
	}

	if err := e.ResizeViewport(4, 6); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if err := e.ResizeViewport(10, 10); err != nil {
		t.Fatalf("regrow: %v", err)
	}
	for y := range 10 {
		for x := range 10 {
			want := x < 4 && y < 6 && original[y][x]
			if got := e.IsAlive(x, y); got != want {
				t.Fatalf("cell (%d,%d) alive=%v after shrink/regrow, expected %v", x, y, got, want)
			}
		}
	}
}

func TestResizeViewportRejectsInvalid(t *testing.T) {
	e, err := New(10, 100, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.ToggleCell(9, 4)

	for _, size := range [][2]int{{0, 50}, {100, -1}, {9, 50}} {
		if err := e.ResizeViewport(size[0], size[1]); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("ResizeViewport(%d,%d) err = %v, want ErrInvalidConfiguration", size[0], size[1], err)
		}
	}
	if e.WidthCells() != 10 || e.HeightCells() != 5 || !e.IsAlive(9, 4) {
		t.Fatal("failed resize must leave the engine unchanged")
	}
}

func TestSetTileSize(t *testing.T) {
	e, err := New(10, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	setAlive(e, [2]int{2, 3}, [2]int{9, 9})

	if err := e.SetTileSize(20); err != nil {
		t.Fatalf("SetTileSize(20): %v", err)
	}
	if e.CellSize() != 20 || e.WidthCells() != 5 || e.HeightCells() != 5 {
		t.Fatalf("after retile: size %d, cells %dx%d", e.CellSize(), e.WidthCells(), e.HeightCells())
	}
	assertAlive(t, e, map[[2]int]bool{{2, 3}: true})
	if e.State() != Running {
		t.Fatal("SetTileSize should resume stepping")
	}

	if err := e.SetTileSize(10); err != nil {
		t.Fatalf("SetTileSize(10): %v", err)
	}
	if e.WidthCells() != 10 || e.HeightCells() != 10 {
		t.Fatalf("cells = %dx%d, want 10x10", e.WidthCells(), e.HeightCells())
	}
	assertAlive(t, e, map[[2]int]bool{{2, 3}: true})
}

func TestSetTileSizeResumesStepping(t *testing.T) {
	e, err := New(10, 100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Pause()
	if err := e.SetTileSize(25); err != nil {
		t.Fatalf("SetTileSize: %v", err)
	}
	if e.State() != Running {
		t.Fatalf("state after retile = %s, want running", e.State())
	}

	if !NewLoop(e, 0, nil).Tick() {
		t.Fatal("loop should step again after a retile")
	}
}

func TestSetTileSizeRejectsInvalid(t *testing.T) {
	e, err := New(10, 100, 80, WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Populate()
	before := e.Snapshot()

	for _, size := range []int{0, -3, 81} {
		if err := e.SetTileSize(size); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("SetTileSize(%d) err = %v, want ErrInvalidConfiguration", size, err)
		}
	}

	if e.CellSize() != 10 {
		t.Fatalf("cell size = %d, want 10", e.CellSize())
	}
	if !snapshotsEqual(before, e.Snapshot()) {
		t.Fatal("failed SetTileSize changed the grid")
	}
	if e.State() != Running {
		t.Fatal("failed SetTileSize changed the run state")
	}
}

func TestPopulateAndClear(t *testing.T) {
	e := newTestEngine(t, 8, 6, WithSeed(11))

	e.Clear()
	e.PopulateRandom(0)
	if got := e.LivingCells(); got != 0 {
		t.Fatalf("density 0: living = %d, want 0", got)
	}

	e.PopulateRandom(1)
	if got := e.LivingCells(); got != 48 {
		t.Fatalf("density 1: living = %d, want 48", got)
	}

	e.Evolve()
	e.Clear()
	if e.LivingCells() != 0 || e.Generation() != 0 {
		t.Fatal("Clear should kill every cell and reset the generation")
	}
}

func TestGridLineVisibility(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	setAlive(e, [2]int{1, 1})
	before := e.Snapshot()

	e.SetGridLineVisibility(false)
	if e.GridLineVisible() {
		t.Fatal("grid lines should be hidden")
	}
	e.SetGridLineVisibility(true)
	if !e.GridLineVisible() {
		t.Fatal("grid lines should be shown")
	}
	if !snapshotsEqual(before, e.Snapshot()) {
		t.Fatal("grid line visibility must not touch cells")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	snap := e.Snapshot()
	snap[1][1] = true
	if e.IsAlive(1, 1) {
		t.Fatal("mutating a snapshot must not change the engine")
	}
}

func TestConcurrentCallsAreSerialized(t *testing.T) {
	e := newTestEngine(t, 20, 20, WithSeed(1), WithGridPool(model.NewGridPool()))
	e.Populate()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				switch (i + j) % 4 {
				case 0:
					e.Evolve()
				case 1:
					e.ToggleCell(j%20, i)
				case 2:
					_ = e.ResizeViewport(20-j%3, 20)
				default:
					if snap := e.Snapshot(); len(snap) == 0 {
						t.Error("empty snapshot")
					}
				}
			}
		}()
	}
	wg.Wait()

	snap := e.Snapshot()
	if len(snap) != e.HeightCells() || len(snap[0]) != e.WidthCells() {
		t.Fatalf("grid %dx%d does not match derived %dx%d",
			len(snap[0]), len(snap), e.WidthCells(), e.HeightCells())
	}
}

package model

import (
	"bufio"
	"io"
	"os"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
	gridPosLined = "· "

	ansiClearScreen = "\033[H\033[2J"
)

// View is the read-only surface a renderer draws from
type View interface {
	IsAlive(x, y int) bool
	WidthCells() int
	HeightCells() int
	GridLineVisible() bool
}

// TerminalRenderer draws a View as text, two columns per cell
type TerminalRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Writer returns the output, defaulting to stdout
func (r *TerminalRenderer) Writer() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Render clears the screen and draws the current cells
func (r *TerminalRenderer) Render(v View) {
	r.Clear()
	r.Display(v)
}

// Display renders the cells without clearing. Dead cells show a dot when grid lines are on.
func (r *TerminalRenderer) Display(v View) {
	w := bufio.NewWriter(r.Writer())
	defer w.Flush()

	empty := gridPosEmpty
	if v.GridLineVisible() {
		empty = gridPosLined
	}

	for y := range v.HeightCells() {
		for x := range v.WidthCells() {
			if v.IsAlive(x, y) {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(empty)
			}
		}
		w.WriteByte('\n')
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	io.WriteString(r.Writer(), ansiClearScreen)
}

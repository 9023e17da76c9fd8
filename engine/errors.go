package engine

import "github.com/pkg/errors"

// ErrInvalidConfiguration is returned when a cell size, viewport dimension or the
// derived cell grid would be non-positive. Match it with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// validateGeometry checks a cell size against a viewport and returns the derived cell dimensions
func validateGeometry(op string, cellSize, viewportWidth, viewportHeight int) (int, int, error) {
	if cellSize <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidConfiguration, "[%s] cell size must be positive, got %d", op, cellSize)
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidConfiguration,
			"[%s] viewport must be positive, got %dx%d", op, viewportWidth, viewportHeight)
	}

	widthCells, heightCells := viewportWidth/cellSize, viewportHeight/cellSize
	if widthCells <= 0 || heightCells <= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidConfiguration,
			"[%s] viewport %dx%d holds no cells of size %d", op, viewportWidth, viewportHeight, cellSize)
	}
	return widthCells, heightCells, nil
}

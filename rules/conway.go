package rules

const (
	// SurviveLow and SurviveHigh bound the neighbor counts a live cell survives with
	SurviveLow  = 2
	SurviveHigh = 3
	// Birth is the exact neighbor count that brings a dead cell to life
	Birth = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with exactly 3,
every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveLow && neighbors <= SurviveHigh
	}
	return neighbors == Birth
}

package utils

// stagnationWindow is how many past generations are kept; it catches still lifes and period 2-3 oscillators
const stagnationWindow = 3

// StagnationTracker counts consecutive generations that repeat a recent one
type StagnationTracker struct {
	history []string
	streak  int
}

// Observe records a generation hash and returns the current streak of repeating generations
func (t *StagnationTracker) Observe(hash string) int {
	repeated := false
	for _, h := range t.history {
		if h == hash {
			repeated = true
			break
		}
	}

	if repeated {
		t.streak++
	} else {
		t.streak = 0
	}

	t.history = append(t.history, hash)
	if len(t.history) > stagnationWindow {
		t.history = t.history[1:]
	}
	return t.streak
}

// Streak returns how many consecutive observations repeated a recent generation
func (t *StagnationTracker) Streak() int {
	return t.streak
}

// Reset forgets all history
func (t *StagnationTracker) Reset() {
	t.history = nil
	t.streak = 0
}

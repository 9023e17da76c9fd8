package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time

	lastUpdate time.Time
}

func NewStats() *Stats {
	return NewStatsAt(time.Now())
}

// NewStatsAt starts the stats clock at now
func NewStatsAt(now time.Time) *Stats {
	return &Stats{StartTime: now, lastUpdate: now}
}

// Update records one generation observed at now
func (s *Stats) Update(generation int, population int, now time.Time) {
	s.TotalGenerations = generation
	if d := now.Sub(s.lastUpdate); d > 0 {
		s.GenerationsPerSecond = 1.0 / d.Seconds()
	}
	s.lastUpdate = now

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime is the time elapsed since the stats were started
func (s *Stats) Runtime(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}

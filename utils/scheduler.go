package utils

import (
	"sync"
	"time"
)

// ChannelScheduler delays callbacks with timers and hands them to a single consumer
// through Ready, so every callback runs on the consumer's goroutine.
type ChannelScheduler struct {
	ready chan func()
	done  chan struct{}
	once  sync.Once
}

func NewChannelScheduler() *ChannelScheduler {
	return &ChannelScheduler{
		ready: make(chan func()),
		done:  make(chan struct{}),
	}
}

// Schedule delivers fn on Ready after delay, unless the scheduler is closed first
func (s *ChannelScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		select {
		case s.ready <- fn:
		case <-s.done:
		}
	})
}

// Ready yields callbacks whose delay has elapsed
func (s *ChannelScheduler) Ready() <-chan func() {
	return s.ready
}

// Close drops pending and future callbacks
func (s *ChannelScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

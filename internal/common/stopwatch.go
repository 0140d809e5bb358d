package common

import (
	"time"
)

// This stopwatch keeps track of time. You can set a timeout for it,
// make it start counting time, and ask it if the timeout has been reached
type Stopwatch struct {
	Timeout   time.Duration
	startTime time.Time
	Running   bool
}

func NewStopwatch(timeout time.Duration) Stopwatch {
	return Stopwatch{Timeout: timeout}
}

// Create a stopwatch without timeout that is already counting
func StartStopwatch() Stopwatch {
	s := Stopwatch{}
	s.Start()
	return s
}

func (s *Stopwatch) Start() {
	s.Running = true
	s.startTime = time.Now()
}

func (s *Stopwatch) Stop() {
	s.Running = false
}

// Time since the stopwatch was last started
func (s *Stopwatch) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Return the time elapsed since this stopwatch
// stopped (reached its timeout).
// Note that if the number is negative, the timeout still
// has not been reached
func (s *Stopwatch) TimeStopped() time.Duration {
	currentTime := time.Now()
	return currentTime.Sub(s.startTime.Add(s.Timeout))
}

// Remaining time until the timeout is reached.
// A stopwatch that is not running has nothing remaining
func (s *Stopwatch) Remaining() time.Duration {
	if !s.Running {
		return 0
	}
	if stopped := s.TimeStopped(); stopped < 0 {
		return -stopped
	}
	return 0
}

package common

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// How long every request is held back after the server reports
// that we went over its limit
const DefaultRateLimitBackoff = 5 * time.Second

type RateLimiter struct {
	restrictions []Restriction   // Restrictions to consider
	limiters     []*rate.Limiter // One bucket per restriction
	mutex        sync.Mutex
	stopwatch    Stopwatch // Running while the server asked us to back off
}

func NewRateLimiter(restrictions []Restriction, backoff time.Duration) (*RateLimiter, error) {
	rl := &RateLimiter{
		restrictions: make([]Restriction, len(restrictions)),
		limiters:     make([]*rate.Limiter, 0, len(restrictions)),
		stopwatch:    NewStopwatch(backoff),
	}
	copy(rl.restrictions, restrictions)
	for _, restriction := range restrictions {
		limiter, err := restriction.Limiter()
		if err != nil {
			return nil, err
		}
		rl.limiters = append(rl.limiters, limiter)
	}
	return rl, nil
}

// Block until every restriction allows one more request.
// Returns early with the context error if the context is done first
func (rl *RateLimiter) Wait(ctx context.Context) error {

	// Give this request a unique identifier for the logs
	thisuuid := uuid.New()

	// Honour a backoff requested by the server first
	if wait := rl.backoff(); wait > 0 {
		log.Warn().Str("request", thisuuid.String()).Dur("wait", wait).Msg("Request delayed by server rate limit")
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	stopwatch := StartStopwatch()
	for _, limiter := range rl.limiters {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if elapsed := stopwatch.Elapsed(); elapsed > time.Millisecond {
		log.Debug().Str("request", thisuuid.String()).Dur("waited", elapsed).Msg("Request delayed by restrictions")
	}
	return nil
}

// Signal that the server answered with a rate limit response
func (rl *RateLimiter) ReceivedRateLimit() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.stopwatch.Start()
}

func (rl *RateLimiter) backoff() time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	remaining := rl.stopwatch.Remaining()
	if remaining == 0 {
		rl.stopwatch.Stop()
	}
	return remaining
}

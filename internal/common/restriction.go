package common

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// A restriction means that only the specified number of requests
// are allowed for a specific time duration
type Restriction struct {
	Requests int
	Duration time.Duration
}

func (rest Restriction) String() string {
	return fmt.Sprintf("%d requests every %s", rest.Requests, rest.Duration)
}

// Token bucket equivalent to this restriction: the whole budget can be
// spent at once and it refills evenly over the duration
func (rest Restriction) Limiter() (*rate.Limiter, error) {
	if rest.Requests <= 0 {
		return nil, fmt.Errorf("restriction must allow at least one request, got %d", rest.Requests)
	}
	if rest.Duration <= 0 {
		return nil, fmt.Errorf("restriction duration must be positive, got %s", rest.Duration)
	}
	every := rest.Duration / time.Duration(rest.Requests)
	return rate.NewLimiter(rate.Every(every), rest.Requests), nil
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pace drives a jevent.Parser at a bounded rate of events.
package pace

import (
	"context"

	"github.com/creachadair/jevent"
	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter that admits perSecond events per second, with
// a burst of one. If perSecond <= 0, the limiter admits events without delay.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Drive steps p until its input is exhausted, waiting on lim before each
// step. It returns the number of events delivered.
//
// If ctx ends while Drive is waiting, Drive stops and reports the context
// error; the parser is left between events, and the caller may resume by
// calling Drive again or by calling p.Next directly.
func Drive(ctx context.Context, p *jevent.Parser, lim *rate.Limiter) (int, error) {
	var n int
	for {
		if err := lim.Wait(ctx); err != nil {
			return n, err
		}
		ok, err := p.Next()
		if err != nil {
			return n, err
		} else if !ok {
			return n, nil
		}
		n++
	}
}

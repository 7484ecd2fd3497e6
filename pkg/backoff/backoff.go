// Package backoff computes capped exponential delays for retried work.
package backoff

import "time"

// Policy doubles Base for every attempt and never exceeds Max.
type Policy struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns Base * 2^attempt, capped at Max.
// A negative attempt is treated as the first one.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	d := p.Base
	for i := 0; i < attempt; i++ {
		if d >= p.Max/2 {
			return p.Max
		}
		d *= 2
	}
	if d > p.Max {
		return p.Max
	}
	return d
}

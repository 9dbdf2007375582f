package indexer

import (
	"math"
	"time"
)

// maxJitter bounds the random term added to every wait. It only spreads
// concurrent callers apart; the exponential term is never replaced.
const maxJitter = time.Second

// delay returns the wait before the retry following attempt (0-indexed):
// base*2^attempt plus a jitter in [0, maxJitter).
//
// The exponential term is not capped. It only saturates where time.Duration
// would overflow.
func delay(base time.Duration, attempt int, rnd func() float64) time.Duration {
	var d time.Duration
	switch {
	case base <= 0:
		d = 0
	case attempt >= 62 || base > (math.MaxInt64-maxJitter)>>attempt:
		d = math.MaxInt64 - maxJitter
	default:
		d = base << attempt
	}

	j := time.Duration(rnd() * float64(maxJitter))
	if j < 0 {
		j = 0
	}
	if j >= maxJitter {
		j = maxJitter - 1
	}
	return d + j
}

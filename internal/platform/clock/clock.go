package clock

import (
	"time"

	k8sclock "k8s.io/utils/clock"
)

// Passive reports the current time. Usecases that never wait only need this.
type Passive interface {
	Now() time.Time
}

// Clock adds timers and tickers so the tracking loops can run against a fake
// clock in tests.
type Clock interface {
	k8sclock.WithTicker
}

type SystemClock struct {
	k8sclock.RealClock
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

package assess

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// LinearBackOff waits Step, 2*Step, 3*Step ... and stops once the last wait
// it handed out exceeded Ceiling.
type LinearBackOff struct {
	Step    time.Duration
	Ceiling time.Duration

	current time.Duration
}

var _ backoff.BackOff = (*LinearBackOff)(nil)

func NewLinearBackOff(step, ceiling time.Duration) *LinearBackOff {
	return &LinearBackOff{Step: step, Ceiling: ceiling}
}

func (b *LinearBackOff) NextBackOff() time.Duration {
	if b.current > b.Ceiling {
		return backoff.Stop
	}
	b.current += b.Step
	return b.current
}

func (b *LinearBackOff) Reset() {
	b.current = 0
}

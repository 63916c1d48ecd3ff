package browser

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay waits for a random duration between min and max milliseconds,
// returning early if ctx is done.
func RandomDelay(ctx context.Context, min, max int) error {
	if max <= 0 {
		return nil
	}
	duration := min
	if max > min {
		duration = rand.Intn(max-min+1) + min
	}

	timer := time.NewTimer(time.Duration(duration) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package clock

import "time"

// Clock abstracts time so cache staleness and grace periods stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

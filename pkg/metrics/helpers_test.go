package metrics_test

import "time"

type lineRecorder struct {
	lines []string
	err   error
}

func (r *lineRecorder) WriteLine(line string) error {
	if r.err != nil {
		return r.err
	}
	r.lines = append(r.lines, line)
	return nil
}

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		current := now
		now = now.Add(step)
		return current
	}
}

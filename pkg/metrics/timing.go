package metrics

import "time"

// QueryTimings records how long each upstream step of a weather query took.
type QueryTimings struct {
	ResolveMs int64 `json:"resolveMs"`
	FetchMs   int64 `json:"fetchMs"`
	TotalMs   int64 `json:"totalMs"`
}

// Stopwatch measures consecutive steps from a shared start.
type Stopwatch struct {
	now   func() time.Time
	start time.Time
	lap   time.Time
}

// StartStopwatch begins timing using the provided clock.
func StartStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	ts := now()
	return &Stopwatch{now: now, start: ts, lap: ts}
}

// Lap returns the milliseconds elapsed since the previous lap.
func (s *Stopwatch) Lap() int64 {
	ts := s.now()
	elapsed := ts.Sub(s.lap).Milliseconds()
	s.lap = ts
	return elapsed
}

// Total returns the milliseconds elapsed since the stopwatch started.
func (s *Stopwatch) Total() int64 {
	return s.now().Sub(s.start).Milliseconds()
}

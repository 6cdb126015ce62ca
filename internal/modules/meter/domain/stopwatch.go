package domain

import "time"

// MinSampleInterval caps accepted samples at 20 per second.
const MinSampleInterval = 50 * time.Millisecond

type ClockState struct {
	Running bool
	Elapsed time.Duration
}

func (c ClockState) ElapsedSeconds() float64 {
	return c.Elapsed.Seconds()
}

// Stopwatch accumulates measured wall-clock deltas while running. Deltas are
// never assumed: a throttled or suspended caller simply reports a larger gap
// on its next sample. Not safe for concurrent use.
type Stopwatch struct {
	running   bool
	elapsed   time.Duration
	last      time.Time
	baselined bool
}

// Start reports whether the stopwatch transitioned from paused to running.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	s.baselined = false
	return true
}

// Pause reports whether the stopwatch was running.
func (s *Stopwatch) Pause() bool {
	was := s.running
	s.running = false
	s.baselined = false
	return was
}

func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
	s.baselined = false
	s.last = time.Time{}
}

// Sample folds the time since the previous accepted sample into the elapsed
// total. The first sample after Start only sets the baseline. Samples closer
// than MinSampleInterval to the previous one are rejected and do not move the
// baseline, so their time is counted by the next accepted sample.
func (s *Stopwatch) Sample(now time.Time) bool {
	if !s.running {
		return false
	}
	if !s.baselined {
		s.last = now
		s.baselined = true
		return true
	}
	delta := now.Sub(s.last)
	if delta < 0 {
		// clock stepped backwards: rebase without subtracting
		s.last = now
		return false
	}
	if delta < MinSampleInterval {
		return false
	}
	s.elapsed += delta
	s.last = now
	return true
}

// Flush folds any non-negative delta since the last sample, ignoring
// MinSampleInterval. Pause uses it so a short final stretch is not lost.
func (s *Stopwatch) Flush(now time.Time) {
	if !s.running || !s.baselined {
		return
	}
	if delta := now.Sub(s.last); delta > 0 {
		s.elapsed += delta
	}
	s.last = now
}

func (s *Stopwatch) Running() bool { return s.running }

func (s *Stopwatch) Elapsed() time.Duration { return s.elapsed }

func (s *Stopwatch) State() ClockState {
	return ClockState{Running: s.running, Elapsed: s.elapsed}
}

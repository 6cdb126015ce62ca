package domain_test

import (
	"testing"
	"time"

	"airtime/internal/modules/meter/domain"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestStopwatchFirstSampleIsBaseline(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	if !sw.Start() {
		t.Fatalf("start from idle should transition")
	}
	if !sw.Sample(t0) {
		t.Fatalf("baseline sample should be accepted")
	}
	if sw.Elapsed() != 0 {
		t.Fatalf("baseline must not add time, got %s", sw.Elapsed())
	}
	sw.Sample(t0.Add(2 * time.Second))
	if sw.Elapsed() != 2*time.Second {
		t.Fatalf("expected 2s, got %s", sw.Elapsed())
	}
}

func TestStopwatchRejectsFastSamplesWithoutLosingTime(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	if sw.Sample(t0.Add(20 * time.Millisecond)) {
		t.Fatalf("a sample 20ms after the last accepted one should be rejected")
	}
	if sw.Elapsed() != 0 {
		t.Fatalf("rejected sample must not add time, got %s", sw.Elapsed())
	}
	if !sw.Sample(t0.Add(60 * time.Millisecond)) {
		t.Fatalf("a sample 60ms after the baseline should be accepted")
	}
	if sw.Elapsed() != 60*time.Millisecond {
		t.Fatalf("expected the full 60ms, got %s", sw.Elapsed())
	}
}

func TestStopwatchPauseFreezesAndResumeSkipsGap(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	sw.Sample(t0.Add(10 * time.Second))
	if !sw.Pause() {
		t.Fatalf("pause of a running stopwatch should report true")
	}
	if sw.Sample(t0.Add(20 * time.Second)) {
		t.Fatalf("paused stopwatch must ignore samples")
	}
	if sw.Elapsed() != 10*time.Second {
		t.Fatalf("expected frozen 10s, got %s", sw.Elapsed())
	}

	sw.Start()
	sw.Sample(t0.Add(5 * time.Minute))
	sw.Sample(t0.Add(5*time.Minute + 3*time.Second))
	if sw.Elapsed() != 13*time.Second {
		t.Fatalf("time spent paused must not be counted, got %s", sw.Elapsed())
	}
}

func TestStopwatchStartWhileRunningIsNoop(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	if sw.Start() {
		t.Fatalf("second start should be a no-op")
	}
	sw.Sample(t0.Add(time.Second))
	if sw.Elapsed() != time.Second {
		t.Fatalf("second start must not reset the baseline, got %s", sw.Elapsed())
	}
}

func TestStopwatchNeverDecreases(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	sw.Sample(t0.Add(time.Second))
	if sw.Sample(t0.Add(-time.Hour)) {
		t.Fatalf("a sample from the past should not be accepted")
	}
	if sw.Elapsed() != time.Second {
		t.Fatalf("backwards clock must not subtract, got %s", sw.Elapsed())
	}
	sw.Sample(t0.Add(-time.Hour + 500*time.Millisecond))
	if sw.Elapsed() != 1500*time.Millisecond {
		t.Fatalf("expected accumulation to continue from the rebased sample, got %s", sw.Elapsed())
	}
}

func TestStopwatchResetAlwaysZeroesAndStops(t *testing.T) {
	t.Parallel()
	idle := &domain.Stopwatch{}
	idle.Reset()
	if st := idle.State(); st.Running || st.Elapsed != 0 {
		t.Fatalf("reset of a fresh stopwatch: %+v", st)
	}

	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	sw.Sample(t0.Add(time.Minute))
	sw.Reset()
	if st := sw.State(); st.Running || st.Elapsed != 0 || st.ElapsedSeconds() != 0 {
		t.Fatalf("reset of a running stopwatch: %+v", st)
	}
	if sw.Pause() {
		t.Fatalf("reset must leave the stopwatch paused")
	}
}

func TestStopwatchFlushIgnoresCadence(t *testing.T) {
	t.Parallel()
	sw := &domain.Stopwatch{}
	sw.Start()
	sw.Sample(t0)
	sw.Flush(t0.Add(20 * time.Millisecond))
	if sw.Elapsed() != 20*time.Millisecond {
		t.Fatalf("flush must fold the short delta, got %s", sw.Elapsed())
	}
	sw.Flush(t0)
	if sw.Elapsed() != 20*time.Millisecond {
		t.Fatalf("backwards flush must not subtract, got %s", sw.Elapsed())
	}
	sw.Pause()
	sw.Flush(t0.Add(time.Hour))
	if sw.Elapsed() != 20*time.Millisecond {
		t.Fatalf("paused stopwatch must ignore flush, got %s", sw.Elapsed())
	}
}

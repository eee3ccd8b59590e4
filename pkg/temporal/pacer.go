package temporal

import "time"

// rateSamples is the number of recent ticks the measured rate spans.
const rateSamples = 16

// tickInterval converts a target rate into the spacing between ticks,
// truncated to whole milliseconds (60/s gives 16ms).
func tickInterval(stepsPerSecond float64) time.Duration {
	d := time.Duration(float64(time.Second) / stepsPerSecond).Truncate(time.Millisecond)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// nextDeadline schedules the tick after the one due at prev. A driver that
// fell behind ticks again immediately instead of bursting through the
// backlog.
func nextDeadline(prev time.Time, interval time.Duration, now time.Time) time.Time {
	next := prev.Add(interval)
	if next.Before(now) {
		return now
	}
	return next
}

type sample struct {
	at          time.Time
	generations uint64
}

// rateWindow measures generations per second over the most recent ticks.
// The first sample is the moment the run started, so early readings cover
// the whole run.
type rateWindow struct {
	samples []sample
	total   uint64
}

func (w *rateWindow) reset(start time.Time) {
	w.total = 0
	w.samples = append(w.samples[:0], sample{at: start})
}

func (w *rateWindow) add(at time.Time, generations int) {
	w.total += uint64(generations)
	if len(w.samples) == rateSamples+1 {
		w.samples = append(w.samples[:0], w.samples[1:]...)
	}
	w.samples = append(w.samples, sample{at: at, generations: w.total})
}

func (w *rateWindow) rate() float64 {
	if len(w.samples) < 2 {
		return 0
	}
	first, last := w.samples[0], w.samples[len(w.samples)-1]
	elapsed := last.at.Sub(first.at)
	if elapsed <= 0 {
		return 0
	}
	return float64(last.generations-first.generations) / elapsed.Seconds()
}

package rundown

import (
	"fmt"
	"math"
	"time"
)

// Totals is a planned/real duration pair in seconds.
// Real is nil when any contributing item has no real duration.
type Totals struct {
	Planned int
	Real    *int
}

// AggregateBlock sums the item durations of a block.
// An empty block totals zero for both planned and real.
func AggregateBlock(b *Block) Totals {
	t := Totals{}
	if b == nil {
		return t
	}
	realSum := 0
	complete := true
	for _, it := range b.Items {
		if it.Planned > 0 {
			t.Planned += it.Planned
		}
		if it.Real == nil {
			complete = false
			continue
		}
		realSum += *it.Real
	}
	if complete {
		t.Real = &realSum
	}
	return t
}

// AggregateRundown sums the block aggregates of a rundown with the same
// null propagation as AggregateBlock.
func AggregateRundown(r *Rundown) Totals {
	t := Totals{}
	if r == nil {
		return t
	}
	realSum := 0
	complete := true
	for _, b := range r.Blocks {
		bt := AggregateBlock(b)
		t.Planned += bt.Planned
		if bt.Real == nil {
			complete = false
			continue
		}
		realSum += *bt.Real
	}
	if complete {
		t.Real = &realSum
	}
	return t
}

// EstimatedTotal sums, per item, the real duration when known and the
// planned duration otherwise.
func EstimatedTotal(r *Rundown) int {
	total := 0
	if r == nil {
		return total
	}
	for _, b := range r.Blocks {
		for _, it := range b.Items {
			switch {
			case it.Real != nil:
				total += *it.Real
			case it.Planned > 0:
				total += it.Planned
			}
		}
	}
	return total
}

// ProgressPercent returns clamp(round(100*elapsed/planned), 0, 100), or nil
// when either operand is absent or planned is zero.
func ProgressPercent(elapsed, planned *int) *int {
	if elapsed == nil || planned == nil || *planned == 0 {
		return nil
	}
	p := int(math.Round(100 * float64(*elapsed) / float64(*planned)))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return &p
}

// Timing is the live clock view of a rundown at a given instant.
type Timing struct {
	ScheduledStart time.Time
	Planned        int
	Real           *int
	Estimated      int
	Elapsed        *int // only while on air
	Progress       *int // only while on air
	Difference     int  // estimated - planned
	Overrun        bool
	Remaining      *int // planned - elapsed, only while on air
}

// ScheduledStart combines the air date and air time in loc.
func ScheduledStart(r *Rundown, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	airTime := r.AirTime
	if airTime == "" {
		airTime = "00:00:00"
	}
	start, err := time.ParseInLocation("2006-01-02 15:04:05", r.AirDate+" "+airTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid air date/time %q %q: %w", r.AirDate, r.AirTime, err)
	}
	return start, nil
}

// ComputeTiming evaluates the timing view at now. The caller supplies the
// clock; nothing here reads the current time.
func ComputeTiming(r *Rundown, now time.Time, loc *time.Location) (Timing, error) {
	start, err := ScheduledStart(r, loc)
	if err != nil {
		return Timing{}, err
	}

	totals := AggregateRundown(r)
	t := Timing{
		ScheduledStart: start,
		Planned:        totals.Planned,
		Real:           totals.Real,
		Estimated:      EstimatedTotal(r),
	}
	t.Difference = t.Estimated - t.Planned
	t.Overrun = t.Difference > 0

	if r.Status != StatusOnAir {
		return t, nil
	}

	elapsed := int(now.Sub(start) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := t.Planned - elapsed
	planned := t.Planned
	t.Elapsed = &elapsed
	t.Remaining = &remaining
	t.Progress = ProgressPercent(&elapsed, &planned)
	return t, nil
}

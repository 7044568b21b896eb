package refresh

import (
	"fmt"
	"slices"
	"time"
)

const day = 24 * time.Hour

// validateSchedule checks that every entry is a time of day.
func validateSchedule(schedule []time.Duration) error {
	for _, d := range schedule {
		if d < 0 || d >= day {
			return fmt.Errorf("schedule entry %s is not a time of day", d)
		}
	}
	return nil
}

// buildQueue turns times of day into the next pending instants after now,
// sorted ascending. An instant at or before now moves to the next day.
func buildQueue(schedule []time.Duration, now time.Time, loc *time.Location) []time.Time {
	now = now.In(loc)
	queue := make([]time.Time, 0, len(schedule))
	for _, d := range schedule {
		t := atTimeOfDay(now, d)
		if !t.After(now) {
			t = t.AddDate(0, 0, 1)
		}
		queue = append(queue, t)
	}
	slices.SortFunc(queue, func(a, b time.Time) int { return a.Compare(b) })
	return queue
}

// atTimeOfDay returns the wall-clock time d after midnight on ref's date.
func atTimeOfDay(ref time.Time, d time.Duration) time.Time {
	y, m, dd := ref.Date()
	h := int(d / time.Hour)
	mins := int(d % time.Hour / time.Minute)
	secs := int(d % time.Minute / time.Second)
	return time.Date(y, m, dd, h, mins, secs, int(d%time.Second), ref.Location())
}

// advance pops the earliest entry and re-enqueues it one day later.
func advance(queue []time.Time) []time.Time {
	if len(queue) == 0 {
		return queue
	}
	next := queue[0].AddDate(0, 0, 1)
	queue = queue[1:]
	i, _ := slices.BinarySearchFunc(queue, next, func(a, b time.Time) int { return a.Compare(b) })
	return slices.Insert(queue, i, next)
}

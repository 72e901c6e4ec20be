package balancegraph

import (
	"fmt"
	"strings"
	"time"
)

// Scale is a selectable time span for the balance graph
type Scale string

const (
	ScaleHour     Scale = "1H"
	ScaleDay      Scale = "1D"
	ScaleWeek     Scale = "1W"
	ScaleMonth    Scale = "1M"
	ScaleQuarter  Scale = "3M"
	ScaleHalfYear Scale = "6M"
)

// DefaultScale is the scale shown when none is selected
const DefaultScale = ScaleMonth

// Scales lists every supported scale, shortest first
var Scales = []Scale{ScaleHour, ScaleDay, ScaleWeek, ScaleMonth, ScaleQuarter, ScaleHalfYear}

// ParseScale parses a scale name such as "1W". Lowercase input is accepted.
func ParseScale(raw string) (Scale, error) {
	s := Scale(strings.ToUpper(strings.TrimSpace(raw)))
	for _, scale := range Scales {
		if s == scale {
			return scale, nil
		}
	}
	return "", fmt.Errorf("unknown graph scale %q", raw)
}

// Window is the visible time range of the graph
type Window struct {
	Scale Scale
	Min   time.Time
	Max   time.Time
}

// NewWindow builds the window for a scale ending at now.
// 1H and 1D are fixed durations; longer scales step back whole calendar days.
// An unknown scale falls back to DefaultScale.
func NewWindow(scale Scale, now time.Time) Window {
	w := Window{Scale: scale, Max: now}

	switch scale {
	case ScaleHour:
		w.Min = now.Add(-time.Hour)
	case ScaleDay:
		w.Min = now.Add(-24 * time.Hour)
	case ScaleWeek:
		w.Min = now.AddDate(0, 0, -7)
	case ScaleQuarter:
		w.Min = now.AddDate(0, 0, -90)
	case ScaleHalfYear:
		w.Min = now.AddDate(0, 0, -180)
	default:
		w.Scale = ScaleMonth
		w.Min = now.AddDate(0, 0, -30)
	}

	return w
}

// Labels returns the axis label timestamps for a window in ascending order.
// Labels never fall outside [Min, Max].
func Labels(w Window) []time.Time {
	switch w.Scale {
	case ScaleHour:
		return stepForward(w.Min, 7, 10*time.Minute)
	case ScaleDay:
		return stepForward(w.Min, 7, 4*time.Hour)
	case ScaleWeek:
		return daysBack(w.Max, 6, 1, 1)
	case ScaleQuarter:
		return daysBack(w.Max, 8, 12, 3)
	case ScaleHalfYear:
		return daysBack(w.Max, 8, 24, 6)
	default:
		return daysBack(w.Max, 8, 4, 1)
	}
}

func stepForward(from time.Time, count int, step time.Duration) []time.Time {
	labels := make([]time.Time, count)
	for i := range labels {
		labels[i] = from.Add(time.Duration(i) * step)
	}
	return labels
}

// daysBack produces count dates going back from end: the first is initial days before end,
// each following one offset days earlier. The result is reversed into ascending order.
func daysBack(end time.Time, count, offset, initial int) []time.Time {
	labels := make([]time.Time, count)
	for i := range labels {
		labels[count-1-i] = end.AddDate(0, 0, -(initial + i*offset))
	}
	return labels
}

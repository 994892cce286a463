package property

import (
	"sort"
	"time"
)

// Default visiting hours for properties without any availability configuration
var (
	DefaultWindowStart = MustParseTimeOfDay("09:00")
	DefaultWindowEnd   = MustParseTimeOfDay("18:00")
)

// Window is a half-open [Start, End) visiting window
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func newWindow(start, end string) (Window, bool) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, false
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, false
	}
	return Window{Start: s, End: e}, true
}

// Slots steps through the window by duration minutes, emitting each start
// time whose visit still ends within the window.
func (w Window) Slots(duration int) []TimeOfDay {
	if duration <= 0 {
		duration = DefaultVisitDuration
	}
	var out []TimeOfDay
	for t := w.Start; t.Add(duration) <= w.End; t = t.Add(duration) {
		out = append(out, t)
	}
	return out
}

// ResolveWindows picks the visiting windows that apply on date.
//
// Priority: a BLOCKED override closes the day; any other override on the
// date replaces the weekly schedule with its EXTRA windows; otherwise the
// weekly slots for that weekday apply. A property with overrides elsewhere
// but no weekly slots is closed, and only a property with no configuration
// at all falls back to the default 09:00-18:00 window.
func ResolveWindows(schedule Schedule, date time.Time) []Window {
	day := NormalizeDate(date)

	var dayOverrides []DateOverride
	for _, o := range schedule.Overrides {
		if NormalizeDate(o.Date).Equal(day) {
			dayOverrides = append(dayOverrides, o)
		}
	}

	for _, o := range dayOverrides {
		if o.Type == OverrideTypeBlocked {
			return nil
		}
	}

	var windows []Window
	switch {
	case len(dayOverrides) > 0:
		for _, o := range dayOverrides {
			if w, ok := o.Window(); ok {
				windows = append(windows, w)
			}
		}
	case len(schedule.Slots) > 0:
		weekday := day.Weekday()
		for _, s := range schedule.Slots {
			if s.DayOfWeek != weekday {
				continue
			}
			if w, ok := s.Window(); ok {
				windows = append(windows, w)
			}
		}
	case len(schedule.Overrides) > 0:
		return nil
	default:
		windows = append(windows, Window{Start: DefaultWindowStart, End: DefaultWindowEnd})
	}
	return windows
}

// GenerateSlots expands windows into a sorted, de-duplicated list of "HH:MM" times
func GenerateSlots(windows []Window, duration int) []string {
	seen := make(map[TimeOfDay]struct{})
	var times []TimeOfDay
	for _, w := range windows {
		for _, t := range w.Slots(duration) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			times = append(times, t)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.String()
	}
	return out
}

// ResolveSlots computes the bookable slots of a property on date, excluding
// the visit times already held by active bookings.
func ResolveSlots(schedule Schedule, date time.Time, duration int, bookedTimes []string) []string {
	all := GenerateSlots(ResolveWindows(schedule, date), duration)
	if len(bookedTimes) == 0 {
		return all
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}
	free := make([]string, 0, len(all))
	for _, t := range all {
		if _, taken := booked[t]; !taken {
			free = append(free, t)
		}
	}
	return free
}

// ContainsSlot reports whether slot is one of slots
func ContainsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

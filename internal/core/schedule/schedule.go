// Package schedule holds the wall-clock arithmetic for the daily voting
// window: the countdown to the next voting closure, the progress fraction
// since the task release, and the 1..7 competition day index. Everything
// here is a pure function of the supplied instant.
package schedule

import "time"

// Window describes the competition calendar. Tasks release at OpenHourUTC
// and voting closes at CloseHourUTC every day; both are civil times in UTC
// (the show runs on WAT, UTC+1, so 09:00/21:00 local).
type Window struct {
	Start        time.Time
	Days         int
	OpenHourUTC  int
	CloseHourUTC int
}

// Default is the season-one window: April 15-21 2025, tasks at 09:00 WAT,
// voting closes at 21:00 WAT.
func Default() Window {
	return Window{
		Start:        time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
		Days:         7,
		OpenHourUTC:  8,
		CloseHourUTC: 20,
	}
}

type Countdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// NextClose returns the smallest closing instant at or after now.
func (w Window) NextClose(now time.Time) time.Time {
	now = now.UTC()
	target := time.Date(now.Year(), now.Month(), now.Day(), w.CloseHourUTC, 0, 0, 0, time.UTC)
	if now.After(target) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// LastOpen returns the most recent task-release instant at or before now:
// today's if now has reached it, otherwise yesterday's.
func (w Window) LastOpen(now time.Time) time.Time {
	now = now.UTC()
	open := time.Date(now.Year(), now.Month(), now.Day(), w.OpenHourUTC, 0, 0, 0, time.UTC)
	if now.Before(open) {
		open = open.AddDate(0, 0, -1)
	}
	return open
}

// ClosingCountdown returns the time remaining until the next closing
// instant, broken into display digits. It is never negative; past today's
// closure it counts toward tomorrow's.
func (w Window) ClosingCountdown(now time.Time) Countdown {
	d := w.NextClose(now).Sub(now.UTC())
	if d < 0 {
		d = 0
	}
	return Countdown{
		Hours:   int(d / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// ElapsedFraction returns how far now sits between the last task release
// and the next voting closure, clamped to [0,1]. A misconfigured window
// whose total duration is not positive yields 1 rather than dividing by
// zero.
func (w Window) ElapsedFraction(now time.Time) float64 {
	now = now.UTC()
	open := w.LastOpen(now)
	close := w.NextClose(now)

	total := close.Sub(open)
	if total <= 0 {
		return 1
	}

	f := float64(now.Sub(open)) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// DayIndex maps now to the 1-based competition day by calendar date.
// ok is false before the start date and after the final day; that is the
// normal pre/post-season state, not an error.
func (w Window) DayIndex(now time.Time) (day int, ok bool) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)

	elapsed := int(today.Sub(start).Hours() / 24)
	if elapsed < 0 || elapsed >= w.Days {
		return 0, false
	}
	return elapsed + 1, true
}

// ScheduledDate is the calendar date day-index falls on.
func (w Window) ScheduledDate(day int) time.Time {
	return w.Start.AddDate(0, 0, day-1)
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCloseRollsToTomorrow(t *testing.T) {
	w := Default()

	beforeClose := time.Date(2025, 4, 16, 19, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 16, 20, 0, 0, 0, time.UTC), w.NextClose(beforeClose))

	atClose := time.Date(2025, 4, 16, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, atClose, w.NextClose(atClose), "the closing instant itself is still today's target")

	afterClose := time.Date(2025, 4, 16, 20, 0, 1, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 17, 20, 0, 0, 0, time.UTC), w.NextClose(afterClose))
}

func TestClosingCountdownNeverNegative(t *testing.T) {
	w := Default()

	instants := []time.Time{
		time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 16, 19, 59, 59, 0, time.UTC),
		time.Date(2025, 4, 16, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 16, 23, 59, 59, 0, time.UTC),
	}
	for _, now := range instants {
		cd := w.ClosingCountdown(now)
		assert.GreaterOrEqual(t, cd.Hours, 0, "at %s", now)
		assert.GreaterOrEqual(t, cd.Minutes, 0, "at %s", now)
		assert.GreaterOrEqual(t, cd.Seconds, 0, "at %s", now)

		target := w.NextClose(now)
		assert.False(t, target.Before(now), "target must not precede now at %s", now)
	}
}

func TestClosingCountdownDigits(t *testing.T) {
	w := Default()

	now := time.Date(2025, 4, 16, 17, 30, 15, 0, time.UTC)
	cd := w.ClosingCountdown(now)
	assert.Equal(t, Countdown{Hours: 2, Minutes: 29, Seconds: 45}, cd)

	// Just past closure: counting toward tomorrow, 23h59m59s away.
	now = time.Date(2025, 4, 16, 20, 0, 1, 0, time.UTC)
	cd = w.ClosingCountdown(now)
	assert.Equal(t, Countdown{Hours: 23, Minutes: 59, Seconds: 59}, cd)
}

func TestElapsedFractionBounds(t *testing.T) {
	w := Default()

	atOpen := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, w.ElapsedFraction(atOpen))

	atClose := time.Date(2025, 4, 16, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, w.ElapsedFraction(atClose))

	midday := time.Date(2025, 4, 16, 14, 0, 0, 0, time.UTC)
	assert.InDelta(t, 0.5, w.ElapsedFraction(midday), 1e-9)

	// Before today's release the reference is yesterday's release.
	earlyMorning := time.Date(2025, 4, 16, 2, 0, 0, 0, time.UTC)
	f := w.ElapsedFraction(earlyMorning)
	assert.GreaterOrEqual(t, f, 0.0)
	assert.LessOrEqual(t, f, 1.0)
}

func TestElapsedFractionDegenerateWindow(t *testing.T) {
	// Release at or after closure is a configuration error; the bar pins
	// at full instead of dividing by zero.
	w := Default()
	w.OpenHourUTC = 20
	w.CloseHourUTC = 20

	now := time.Date(2025, 4, 16, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, w.ElapsedFraction(now))
}

func TestDayIndexWindow(t *testing.T) {
	w := Default()

	_, ok := w.DayIndex(time.Date(2025, 4, 14, 23, 59, 59, 0, time.UTC))
	assert.False(t, ok, "day before start")

	for i := 0; i < 7; i++ {
		date := time.Date(2025, 4, 15+i, 0, 0, 0, 0, time.UTC)
		day, ok := w.DayIndex(date)
		require.True(t, ok, "date %s", date)
		assert.Equal(t, i+1, day)

		// Independent of time of day.
		day, ok = w.DayIndex(date.Add(23*time.Hour + 59*time.Minute))
		require.True(t, ok)
		assert.Equal(t, i+1, day)
	}

	_, ok = w.DayIndex(time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "day after final day")
}

func TestScheduledDate(t *testing.T) {
	w := Default()
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), w.ScheduledDate(1))
	assert.Equal(t, time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), w.ScheduledDate(7))
}

package tz

import (
	"testing"
	"time"

	"github.com/flachnetz/timeutil/lib/clock"
	"github.com/stretchr/testify/require"
)

func berlin(t *testing.T) *Chronology {
	t.Helper()

	chronology := NewRegistry([]string{"Europe/Berlin"}).Chronology("Europe/Berlin")
	require.NotNil(t, chronology)

	return chronology
}

func TestChronologyFields(t *testing.T) {
	chronology := berlin(t)

	instant := time.Date(2021, 1, 3, 12, 30, 15, 250*int(time.Millisecond), time.UTC)

	require.Equal(t, Fields{
		Year:        2021,
		Month:       time.January,
		Day:         3,
		Hour:        13,
		Minute:      30,
		Second:      15,
		Millisecond: 250,
		Weekday:     time.Sunday,
		YearDay:     3,
		WeekYear:    2020,
		Week:        53,
		Offset:      time.Hour,
	}, chronology.Fields(instant))
}

func TestChronologyOffset(t *testing.T) {
	chronology := berlin(t)

	require.Equal(t, time.Hour, chronology.Offset(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 2*time.Hour, chronology.Offset(time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestChronologyStartOfDay(t *testing.T) {
	chronology := berlin(t)

	// the day daylight saving time starts
	start := chronology.StartOfDay(time.Date(2021, 3, 28, 12, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2021, 3, 27, 23, 0, 0, 0, time.UTC), start.UTC())

	// late evening UTC already is the next day in Berlin
	start = chronology.StartOfDay(time.Date(2021, 7, 1, 23, 30, 0, 0, time.UTC))
	require.Equal(t, time.Date(2021, 7, 1, 22, 0, 0, 0, time.UTC), start.UTC())
}

func TestChronologyDate(t *testing.T) {
	chronology := berlin(t)

	date := chronology.Date(2012, time.July, 3, 11, 14, 0, 500)
	require.Equal(t, time.Date(2012, 7, 3, 9, 14, 0, 500*int(time.Millisecond), time.UTC), date.UTC())
	require.Same(t, chronology.Zone(), date.Location())
}

func TestChronologyMillis(t *testing.T) {
	chronology := berlin(t)

	instant := chronology.FromMillis(1341306840000)
	require.Equal(t, int64(1341306840000), chronology.Millis(instant))
	require.Equal(t, 11, instant.Hour())
	require.Same(t, chronology.Zone(), instant.Location())
}

func TestChronologyNow(t *testing.T) {
	t.Cleanup(clock.ResetNow)

	chronology := berlin(t)
	now := time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC)

	injected := chronology.Now(clock.NewFixed(now))
	require.True(t, now.Equal(injected))
	require.Same(t, chronology.Zone(), injected.Location())

	clock.SetNow(now.Add(time.Hour))
	require.True(t, now.Add(time.Hour).Equal(chronology.Now(nil)))
}

func TestChronologyString(t *testing.T) {
	require.Equal(t, "ISOChronology[Europe/Berlin]", berlin(t).String())
	require.Equal(t, "ISOChronology[UTC]", ChronologyOf("").String())
}

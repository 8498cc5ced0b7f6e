package clock

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/oklog/ulid"
	"github.com/stretchr/testify/require"
)

func TestSetNow(t *testing.T) {
	t.Cleanup(ResetNow)

	now := time.Date(2012, 7, 3, 11, 14, 0, 123456789, time.UTC)
	SetNow(now)

	require.True(t, IsFrozen())
	require.Equal(t, now.UnixMilli(), CurrentTimeMillis())
	require.Equal(t, time.Date(2012, 7, 3, 11, 14, 0, 123000000, time.UTC), GlobalClock.Now())

	// time does not pass while frozen
	time.Sleep(5 * time.Millisecond)
	require.Equal(t, now.UnixMilli(), CurrentTimeMillis())
}

func TestSetNowTwice(t *testing.T) {
	t.Cleanup(ResetNow)

	SetNow(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	SetNow(time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC))

	require.Equal(t, time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC), GlobalClock.Now())
}

func TestSetNowWithOtherLocation(t *testing.T) {
	t.Cleanup(ResetNow)

	now := time.Date(2021, 3, 28, 2, 30, 0, 0, time.FixedZone("test", 2*3600))
	SetNow(now)

	require.True(t, now.Equal(GlobalClock.Now()))
	require.Equal(t, time.UTC, GlobalClock.Now().Location())
}

func TestAdvanceNow(t *testing.T) {
	t.Cleanup(ResetNow)

	now := time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC)
	SetNow(now)

	AdvanceNow(90 * time.Minute)
	require.Equal(t, now.Add(90*time.Minute).UnixMilli(), CurrentTimeMillis())

	AdvanceNow(-30 * time.Minute)
	require.Equal(t, now.Add(time.Hour).UnixMilli(), CurrentTimeMillis())
}

func TestAdvanceNowFreezesRealtimeClock(t *testing.T) {
	t.Cleanup(ResetNow)

	before := time.Now()
	AdvanceNow(time.Hour)
	after := time.Now()

	require.True(t, IsFrozen())

	frozen := GlobalClock.Now()
	require.False(t, frozen.Before(before.Add(time.Hour).Truncate(time.Millisecond)))
	require.False(t, frozen.After(after.Add(time.Hour)))
}

func TestResetNow(t *testing.T) {
	SetNow(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	ResetNow()

	require.False(t, IsFrozen())
	require.WithinDuration(t, time.Now(), GlobalClock.Now(), time.Second)
	require.Equal(t, time.UTC, GlobalClock.Now().Location())
}

func TestNewFixed(t *testing.T) {
	now := time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC)

	clk := NewFixed(now)
	require.Equal(t, now, clk.Now())

	clk.Add(time.Second)
	require.Equal(t, now.Add(time.Second), clk.Now())

	// an injected clock does not touch the global one
	require.False(t, IsFrozen())
}

func TestGenerateIdUsesGlobalClock(t *testing.T) {
	t.Cleanup(ResetNow)

	now := time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC)
	SetNow(now)

	first := GenerateId()
	second := GenerateId()
	require.NotEqual(t, first, second)
	require.Less(t, first, second)

	parsed, err := ulid.Parse(first)
	require.NoError(t, err)
	require.Equal(t, ulid.Timestamp(now), parsed.Time())
}

func TestAdjustTimeInLog(t *testing.T) {
	t.Cleanup(ResetNow)

	recordTime := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	record := slog.NewRecord(recordTime, slog.LevelInfo, "message", 0)

	adjusted, ok, err := AdjustTimeInLog(context.Background(), record)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, recordTime, adjusted.Time)

	now := time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC)
	SetNow(now)

	adjusted, ok, err = AdjustTimeInLog(context.Background(), record)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, now, adjusted.Time)
}

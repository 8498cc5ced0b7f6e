package clock

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/oklog/ulid"
)

// Clock is the clock abstraction used throughout this module. Components that need
// the current time should accept one instead of reading GlobalClock directly.
type Clock = clock.Clock

// GlobalClock is the process wide source of "now". Use SetNow and AdvanceNow
// to freeze it in tests, ResetNow to return to real time.
var GlobalClock Clock = realtimeClock{clock.New()}

// the monotonic instance is not thread safe
var (
	monotonicLock = sync.Mutex{}
	monotonic     = ulid.Monotonic(rand.New(rand.NewSource(GlobalClock.Now().UnixNano())), 0)
)

func GenerateId() string {
	monotonicLock.Lock()
	defer monotonicLock.Unlock()

	id := ulid.MustNew(ulid.Timestamp(GlobalClock.Now()), monotonic)
	return id.String()
}

func AdjustTimeInLog(ctx context.Context, record slog.Record) (slog.Record, bool, error) {
	if IsFrozen() {
		record.Time = GlobalClock.Now()
	}

	return record, true, nil
}

// CurrentTimeMillis returns the current time of the GlobalClock in milliseconds since the epoch.
func CurrentTimeMillis() int64 {
	return GlobalClock.Now().UnixMilli()
}

// NewFixed returns a mock clock standing still at the given time. The clock only
// moves if Set or Add is called on it.
func NewFixed(now time.Time) *clock.Mock {
	mock := clock.NewMock()
	mock.Set(truncate(now))
	return mock
}

// IsFrozen returns true if the GlobalClock was frozen using SetNow or AdvanceNow.
func IsFrozen() bool {
	_, ok := GlobalClock.(realtimeClock)
	return !ok
}

// SetNow freezes the GlobalClock at the given instant, truncated to milliseconds.
//
// Manipulating the GlobalClock is not thread safe. Only call this during
// single threaded test setup.
func SetNow(now time.Time) {
	if mock, ok := GlobalClock.(*clock.Mock); ok {
		mock.Set(truncate(now))
		return
	}

	GlobalClock = NewFixed(now)
}

// AdvanceNow reads the current time from the GlobalClock, adds the given duration
// and freezes the GlobalClock at the result. Not thread safe, see SetNow.
func AdvanceNow(duration time.Duration) {
	SetNow(GlobalClock.Now().Add(duration))
}

// ResetNow switches the GlobalClock back to real time.
func ResetNow() {
	GlobalClock = realtimeClock{clock.New()}
}

func truncate(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}

type realtimeClock struct {
	clock.Clock
}

// Now returns the current time in UTC, this is different to the original clock implementation which returned the local time.
func (receiver realtimeClock) Now() time.Time {
	return receiver.Clock.Now().UTC()
}

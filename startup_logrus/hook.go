package startup_logrus

import (
	"github.com/flachnetz/timeutil/lib/clock"
	"github.com/sirupsen/logrus"
)

type clockHook struct{}

// NewClockHook returns a hook that stamps log entries with the time of
// the frozen global clock. Entries keep their real time while the clock runs normally.
func NewClockHook() logrus.Hook {
	return clockHook{}
}

func (clockHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (clockHook) Fire(entry *logrus.Entry) error {
	if clock.IsFrozen() {
		entry.Time = clock.GlobalClock.Now()
	}

	return nil
}

// Package timing logs how long a chunk of code takes to run.
package timing

import (
	"time"

	"github.com/flachnetz/timeutil/lib"
	"github.com/flachnetz/timeutil/lib/clock"
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Logger receives one info line per timed task.
var Logger logrus.FieldLogger = logrus.WithField("prefix", "timing")

// Registry receives a timer "timing.<tag>" and a counter "timing-failed.<tag>" per tag.
// Timer and counter names never collide, whatever the tags are.
// Uses metrics.DefaultRegistry if nil.
var Registry metrics.Registry

// LogElapsedTime runs the task and logs the elapsed time, whether it succeeded or not.
// The error of the task is returned unchanged.
func LogElapsedTime(tag string, task func() error) error {
	_, err := LogElapsedTimeValue(tag, func() (struct{}, error) {
		return struct{}{}, task()
	})

	return err
}

// LogElapsedTimeValue runs the task and logs the elapsed time, whether it succeeded or not.
// Returns the value of the task on success, the zero value and the unchanged error otherwise.
// A panic inside the task is logged as failure and keeps on panicking.
func LogElapsedTimeValue[V any](tag string, task func() (V, error)) (V, error) {
	start := clock.GlobalClock.Now()
	success := false

	defer func() {
		record(tag, success, clock.GlobalClock.Now().Sub(start))
	}()

	value, err := task()
	if err != nil {
		var zero V
		return zero, err
	}

	success = true
	return value, nil
}

func record(tag string, success bool, elapsed time.Duration) {
	// the clock might have been set back while the task was running
	elapsed = lib.Max(elapsed, 0)

	Logger.Infof("%s (%t) elapsed time(ms): %d", tag, success, elapsed.Milliseconds())

	registry := Registry
	if registry == nil {
		registry = metrics.DefaultRegistry
	}

	metrics.GetOrRegisterTimer("timing."+tag, registry).Update(elapsed)

	if !success {
		metrics.GetOrRegisterCounter("timing-failed."+tag, registry).Inc(1)
	}
}

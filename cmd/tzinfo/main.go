package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/flachnetz/timeutil"
	"github.com/flachnetz/timeutil/lib/clock"
	"github.com/flachnetz/timeutil/lib/timing"
	"github.com/flachnetz/timeutil/lib/tz"
	"github.com/flachnetz/timeutil/startup_base"
	"github.com/flachnetz/timeutil/startup_metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "main")

type options struct {
	Base    startup_base.BaseOptions
	Metrics startup_metrics.MetricsOptions

	Zone    string             `long:"zone" validate:"timezone" description:"Show details of a single zone instead of listing all of them."`
	At      timeutil.Timestamp `long:"at" description:"Freeze the clock at this RFC 3339 timestamp."`
	Advance time.Duration      `long:"advance" description:"Move the clock forward by this duration before printing."`
}

func main() {
	var opts options
	opts.Metrics.Inputs.MetricsPrefix = "tzinfo"
	opts.Metrics.Inputs.NoRuntimeMetrics = true

	timeutil.MustParseCommandLine(&opts)

	applyClock(opts.At, opts.Advance)

	err := timing.LogElapsedTime("tzinfo", func() error {
		if opts.Zone != "" {
			return printZone(os.Stdout, tz.Default, opts.Zone)
		}

		return printZones(os.Stdout, tz.Default)
	})

	startup_base.FatalOnError(err, "Failed to print zones")
}

// applyClock freezes the global clock if requested on the command line.
func applyClock(at timeutil.Timestamp, advance time.Duration) {
	if !at.IsZero() {
		clock.SetNow(at.Time)
		log.Infof("Clock frozen at %s", clock.GlobalClock.Now().Format(time.RFC3339Nano))
	}

	if advance != 0 {
		clock.AdvanceNow(advance)
		log.Infof("Clock advanced to %s", clock.GlobalClock.Now().Format(time.RFC3339Nano))
	}
}

func printZone(w io.Writer, registry *tz.Registry, id string) error {
	chronology, ok := registry.LookupChronology(id)
	if !ok {
		return errors.Errorf("unknown timezone %q", id)
	}

	now := chronology.Now(clock.GlobalClock)
	fields := chronology.Fields(now)

	_, err := fmt.Fprintf(w, "zone:         %s\nnow:          %s\noffset:       %s\niso week:     %d-W%02d\nstart of day: %s\n",
		chronology.ID(),
		now.Format(time.RFC3339),
		formatOffset(fields.Offset),
		fields.WeekYear, fields.Week,
		chronology.StartOfDay(now).Format(time.RFC3339))

	return err
}

func printZones(w io.Writer, registry *tz.Registry) error {
	now := clock.GlobalClock.Now()

	for _, id := range registry.IDs() {
		chronology := registry.Chronology(id)
		if _, err := fmt.Fprintf(w, "%-32s %s\n", id, formatOffset(chronology.Offset(now))); err != nil {
			return err
		}
	}

	return nil
}

func formatOffset(offset time.Duration) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
}

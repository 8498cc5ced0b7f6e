package startup_metrics

import (
	"net"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/flachnetz/go-datadog"
	"github.com/flachnetz/timeutil/startup_base"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "metrics")

// MetricsOptions reports the metrics of the default registry, most notably the
// timers written by the timing package.
type MetricsOptions struct {
	Datadog struct {
		ApiKey        string        `long:"datadog-apikey" description:"Datadog app key to enable datadog metrics reporting."`
		Tags          string        `long:"datadog-tags" description:"Extra datadog tags to add to every metric. Comma or space separated list of key:value pairs."`
		Interval      time.Duration `long:"datadog-report-interval" default:"60s" description:"Data collection and reporting interval."`
		StatsDAddress string        `long:"datadog-statsd-address" validate:"omitempty,hostport" description:"Address of statsd,e.g. 127.0.0.1:8125"`
	}

	Inputs struct {
		// Prefix to apply to all metrics. This must not be empty.
		MetricsPrefix string `validate:"required"`

		// Disable capture of runtime metrics for some reasons
		NoRuntimeMetrics bool
	}

	once sync.Once
}

func (opts *MetricsOptions) Initialize() {
	opts.once.Do(func() {
		prefix := strings.TrimSuffix(opts.Inputs.MetricsPrefix, ".")
		if prefix == "" {
			startup_base.Panicf("Metrics prefix must be set")
			return
		}

		log.Debugf("Prefixing all metrics with '%s'", prefix)
		registry := prefixRegistry(metrics.DefaultRegistry, prefix)
		metrics.DefaultRegistry = registry

		if !opts.Inputs.NoRuntimeMetrics {
			captureRuntimeMetrics(registry)
		}

		if opts.Datadog.ApiKey != "" {
			err := opts.setupDatadogMetricsReporter(registry)
			startup_base.PanicOnError(err, "Cannot start datadog metrics reporter")
		}

		if opts.Datadog.StatsDAddress != "" {
			err := opts.setupStatsDReporter(registry)
			startup_base.PanicOnError(err, "Cannot start datadog statsd metrics reporter")
		}

		if opts.Datadog.ApiKey != "" && opts.Datadog.StatsDAddress != "" {
			log.Warn("there are two datadog reports active now: statsd address has been configured and api key has been set")
		}
	})
}

func captureRuntimeMetrics(registry metrics.Registry) {
	log.Debug("Start capturing of golang runtime metrics")

	metrics.RegisterRuntimeMemStats(registry)
	go metrics.CaptureRuntimeMemStats(registry, 5*time.Second)
}

func (opts *MetricsOptions) setupDatadogMetricsReporter(registry metrics.Registry) error {
	tags, err := opts.baseTags()
	if err != nil {
		return err
	}

	log.Infof("Starting datadog metrics reporting with tags: %s", strings.Join(tags, ", "))
	client := datadog.New("", opts.Datadog.ApiKey)
	reporter := datadog.Reporter(client, registry, tags)
	go reporter.Start(opts.Datadog.Interval)

	return nil
}

func (opts *MetricsOptions) setupStatsDReporter(registry metrics.Registry) error {
	tags, err := opts.baseTags()
	if err != nil {
		return err
	}

	udpAddr, err := net.ResolveUDPAddr("udp", opts.Datadog.StatsDAddress)
	if err != nil {
		return errors.WithMessagef(err, "resolve %s", opts.Datadog.StatsDAddress)
	}

	client, err := statsd.New(opts.Datadog.StatsDAddress, statsd.WithTags(tags))
	if err != nil {
		return errors.WithMessage(err, "create statsd client")
	}

	log.Infof("Activating statsd for metrics: '%s' (%+v)", opts.Datadog.StatsDAddress, udpAddr)
	reporter, err := datadog.NewReporter(registry, client, opts.Datadog.Interval)
	if err != nil {
		return errors.WithMessage(err, "create statsd reporter")
	}

	go reporter.Flush()
	return nil
}

func (opts *MetricsOptions) baseTags() ([]string, error) {
	node, err := os.Hostname()
	if err != nil {
		return nil, errors.WithMessage(err, "get hostname of machine")
	}

	tags := splitTags(opts.Datadog.Tags)
	tags = append(tags, "node:"+node)
	return tags, nil
}

func splitTags(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// prefixRegistry moves all metrics of r into a new registry that prefixes every name with "<prefix>.".
func prefixRegistry(r metrics.Registry, prefix string) metrics.Registry {
	backup := make(map[string]interface{})
	r.Each(func(name string, metric interface{}) {
		backup[name] = metric
	})

	// We must not unregister everything from r, as this would
	// stop the Meters from updating.

	prefixed := metrics.NewPrefixedRegistry(prefix + ".")
	for name, metric := range backup {
		err := prefixed.Register(name, metric)
		startup_base.PanicOnError(err, "init prefixed registry")
	}

	return prefixed
}

package timeutil

import (
	"fmt"
	"net"
	"os"
	"reflect"
	"time"

	"github.com/flachnetz/timeutil/lib/tz"
	"github.com/flachnetz/timeutil/startup_base"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
)

var log = logrus.WithField("prefix", "startup")

func init() {
	if os.Getenv("STARTUP_VERBOSE") == "true" {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func MustParseCommandLine(opts interface{}) {
	MustParseCommandLineWithOptions(opts, flags.HelpFlag|flags.PassDoubleDash)
}

func MustParseCommandLineWithOptions(opts interface{}, options flags.Options) {
	if err := ParseCommandLineWithOptions(opts, options); err != nil {
		cause := errors.Cause(err)

		if cause, ok := cause.(*flags.Error); ok && cause.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, cause)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

func ParseCommandLine(opts interface{}) error {
	return ParseCommandLineWithOptions(opts, flags.HelpFlag|flags.PassDoubleDash)
}

// Parses command line.
func ParseCommandLineWithOptions(opts interface{}, options flags.Options) error {
	return ParseArgsWithOptions(opts, options, os.Args[1:])
}

// ParseArgsWithOptions parses the given arguments into opts, validates the result and
// calls the Initialize() method of every struct field that has one.
func ParseArgsWithOptions(opts interface{}, options flags.Options, args []string) error {
	if reflect.ValueOf(opts).Kind() != reflect.Ptr {
		return errors.New("options parameter must be pointer")
	}

	parser := flags.NewParser(opts, options)
	parser.NamespaceDelimiter = "-"

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if err := newValidator().Struct(opts); err != nil {
		return errors.WithMessage(err, "validate options struct")
	}

	seen := make(map[reflect.Type]reflect.Value)

	// now do the initialization for all fields
	value := reflect.ValueOf(opts).Elem()
	for idx := 0; idx < value.NumField(); idx++ {
		fieldValue := value.Field(idx)
		if fieldValue.Kind() != reflect.Struct {
			continue
		}

		// we remember the values we've seen so we can inject those into
		// the Initializer() functions
		seen[fieldValue.Type()] = fieldValue
		seen[reflect.PointerTo(fieldValue.Type())] = fieldValue.Addr()

		if init := findInitializerMethod(fieldValue); init.IsValid() {
			var inputValues []reflect.Value

			initType := init.Type()
			for idx := 0; idx < initType.NumIn(); idx++ {
				inputValue := seen[initType.In(idx)]
				if !inputValue.IsValid() {
					startup_base.Panicf("Can not find value of type %s to inject into %s",
						initType.In(idx).String(), fieldValue.Type())
				}

				inputValues = append(inputValues, inputValue)
			}

			log.Infof("Calling %s.Initialize()", fieldValue.Type().String())
			init.Call(inputValues)
		}
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()

	// validate host:port values
	v.RegisterValidation("hostport", func(fl validator.FieldLevel) bool {
		value := fl.Field().Interface().(string)
		_, _, err := net.SplitHostPort(value)
		return err == nil
	})

	// validate zone ids, the empty id is accepted and means UTC
	v.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || tz.IsKnown(value)
	})

	return v
}

func findInitializerMethod(v reflect.Value) reflect.Value {
	m := v.MethodByName("Initialize")
	if !m.IsValid() && v.CanAddr() {
		m = v.Addr().MethodByName("Initialize")
	}

	return m
}

// Timezone is a flag value holding a zone from the registry.
type Timezone struct {
	*time.Location
}

func (flag *Timezone) MarshalFlag() (string, error) {
	if flag.Location == nil {
		return "", errors.New("timezone flag not set")
	}

	return flag.String(), nil
}

func (flag *Timezone) UnmarshalFlag(value string) error {
	location, ok := tz.Lookup(value)
	if !ok {
		return errors.Errorf("unknown timezone %q", value)
	}

	flag.Location = location
	return nil
}

// Timestamp is a flag value parsed from an RFC 3339 string.
type Timestamp struct {
	time.Time
}

func (flag *Timestamp) MarshalFlag() (string, error) {
	return flag.Format(time.RFC3339Nano), nil
}

func (flag *Timestamp) UnmarshalFlag(value string) error {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return errors.WithMessage(err, "parse timestamp")
	}

	flag.Time = parsed
	return nil
}

package timeutil

import (
	"os"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Zone string `long:"zone" validate:"timezone" description:"Zone to show."`
}

func TestParseCommandLineWithOptions(t *testing.T) {
	type args struct {
		opts    testStruct
		options flags.Options
		args    []string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "ignored args",
			args: args{
				options: flags.IgnoreUnknown,
				args:    []string{"cmd", "-user=bla", "--zone=UTC"},
			},
			wantErr: false,
		},
		{
			name: "empty zone",
			args: args{
				options: flags.Default,
				args:    []string{"cmd"},
			},
			wantErr: false,
		},
		{
			name: "unknown zone",
			args: args{
				options: flags.Default,
				args:    []string{"cmd", "--zone=Not/AZone"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := os.Args
			t.Cleanup(func() { os.Args = previous })

			os.Args = tt.args.args
			if err := ParseCommandLineWithOptions(&tt.args.opts, tt.args.options); (err != nil) != tt.wantErr {
				t.Errorf("ParseCommandLineWithOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseArgsRequiresPointer(t *testing.T) {
	err := ParseArgsWithOptions(testStruct{}, flags.Default, nil)
	require.EqualError(t, err, "options parameter must be pointer")
}

type zoneOptions struct {
	Zone Timezone  `long:"zone" required:"true"`
	At   Timestamp `long:"at"`
}

func TestTimezoneFlag(t *testing.T) {
	var opts zoneOptions
	err := ParseArgsWithOptions(&opts, flags.Default, []string{"--zone=Europe/Berlin", "--at=2012-07-03T11:14:00Z"})
	require.NoError(t, err)

	require.Equal(t, "Europe/Berlin", opts.Zone.String())
	require.Equal(t, time.Date(2012, 7, 3, 11, 14, 0, 0, time.UTC), opts.At.Time)

	value, err := opts.Zone.MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", value)
}

func TestTimezoneFlagUnknown(t *testing.T) {
	var opts zoneOptions
	err := ParseArgsWithOptions(&opts, flags.Default, []string{"--zone=Not/AZone"})
	require.ErrorContains(t, err, `unknown timezone "Not/AZone"`)
}

func TestTimestampFlagInvalid(t *testing.T) {
	var opts zoneOptions
	err := ParseArgsWithOptions(&opts, flags.Default, []string{"--zone=UTC", "--at=yesterday"})
	require.ErrorContains(t, err, "parse timestamp")
}

type initialized struct {
	Value  string `long:"value" default:"set"`
	called string
}

func (i *initialized) Initialize() {
	i.called = i.Value
}

func TestInitializeIsCalled(t *testing.T) {
	var opts struct {
		Init initialized
	}

	require.NoError(t, ParseArgsWithOptions(&opts, flags.Default, nil))
	require.Equal(t, "set", opts.Init.called)
}

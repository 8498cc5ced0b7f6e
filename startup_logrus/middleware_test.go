package startup_logrus

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	var buf bytes.Buffer

	handler := Wrap(slog.NewTextHandler(&buf, nil), func(ctx context.Context, record slog.Record) (slog.Record, bool, error) {
		record.AddAttrs(slog.String("zone", "UTC"))
		return record, record.Message != "drop", nil
	})

	logger := slog.New(handler)
	logger.Info("keep")
	logger.Info("drop")

	require.Contains(t, buf.String(), "msg=keep zone=UTC")
	require.NotContains(t, buf.String(), "drop")
}

func TestWrapError(t *testing.T) {
	handler := Wrap(slog.NewTextHandler(&bytes.Buffer{}, nil), func(ctx context.Context, record slog.Record) (slog.Record, bool, error) {
		return record, false, errors.New("broken")
	})

	err := handler.Handle(context.Background(), slog.Record{})
	require.ErrorContains(t, err, "apply middleware: broken")
}

func TestWrapKeepsMiddlewareOnDerivedHandlers(t *testing.T) {
	var buf bytes.Buffer

	handler := Wrap(slog.NewTextHandler(&buf, nil), func(ctx context.Context, record slog.Record) (slog.Record, bool, error) {
		record.AddAttrs(slog.Bool("adjusted", true))
		return record, true, nil
	})

	slog.New(handler).With("zone", "UTC").WithGroup("tz").Info("derived")

	require.Contains(t, buf.String(), "msg=derived zone=UTC tz.adjusted=true")
}

package startup_logrus

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetLogger(t *testing.T) {
	ctx := context.Background()

	log := logrus.WithField("a", 1)
	ctx = WithLogger(ctx, log)

	entry := GetLogger(ctx, "tz")

	value := entry.Data["a"].(int)
	if value != 1 {
		t.Fatalf("value should be 1, but was %d", value)
	}

	if prefix := entry.Data["prefix"]; prefix != "tz" {
		t.Fatalf("expected prefix 'tz' but got '%s'", prefix)
	}
}

func TestGetLoggerWithoutLogger(t *testing.T) {
	entry := GetLogger(context.Background(), "timing")
	if prefix := entry.Data["prefix"]; prefix != "timing" {
		t.Fatalf("expected prefix 'timing' but got '%s'", prefix)
	}

	entry = GetLogger(nil, "timing")
	if prefix := entry.Data["prefix"]; prefix != "timing" {
		t.Fatalf("expected prefix 'timing' but got '%s'", prefix)
	}
}

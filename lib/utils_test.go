package lib

import (
	"testing"
	"time"
)

func TestMinMax(t *testing.T) {
	if value := Max(-5*time.Millisecond, 0); value != 0 {
		t.Fatalf("expected 0 but got %s", value)
	}

	if value := Max(7, 3); value != 7 {
		t.Fatalf("expected 7 but got %d", value)
	}

	if value := Min("b", "a"); value != "a" {
		t.Fatalf("expected 'a' but got '%s'", value)
	}
}

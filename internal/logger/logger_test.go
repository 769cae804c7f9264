package logger

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	l, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(-1) {
		t.Fatalf("debug level should be enabled")
	}

	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

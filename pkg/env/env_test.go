package env

import "testing"

func TestGetReturnsValueWhenSet(t *testing.T) {
	t.Setenv("STOCKYARD_TEST_KEY", "configured")
	if got := Get("STOCKYARD_TEST_KEY", "fallback"); got != "configured" {
		t.Fatalf("expected configured, got %s", got)
	}
}

func TestGetReturnsFallbackWhenUnset(t *testing.T) {
	if got := Get("STOCKYARD_MISSING_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

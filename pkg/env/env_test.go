package env

import "testing"

func TestGetFallsBack(t *testing.T) {
	if got := Get("TIMEEASY_TEST_UNSET_VAR", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("TIMEEASY_TEST_SET_VAR", "value")
	if got := Get("TIMEEASY_TEST_SET_VAR", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestGetBool(t *testing.T) {
	if got := GetBool("TIMEEASY_TEST_UNSET_BOOL", true); !got {
		t.Fatal("expected fallback true")
	}
	t.Setenv("TIMEEASY_TEST_BOOL", "not-a-bool")
	if got := GetBool("TIMEEASY_TEST_BOOL", false); got {
		t.Fatal("invalid value should fall back")
	}
	t.Setenv("TIMEEASY_TEST_BOOL", "true")
	if got := GetBool("TIMEEASY_TEST_BOOL", false); !got {
		t.Fatal("expected parsed true")
	}
}

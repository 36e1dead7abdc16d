package config

import "testing"

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "value")
	if got := getEnv("CFG_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("getEnv = %q", got)
	}
	if got := getEnv("CFG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("getEnv fallback = %q", got)
	}

	t.Setenv("CFG_TEST_INT", "42")
	if got := getEnvInt("CFG_TEST_INT", 7); got != 42 {
		t.Fatalf("getEnvInt = %d", got)
	}
	t.Setenv("CFG_TEST_BAD_INT", "not-a-number")
	if got := getEnvInt("CFG_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("getEnvInt must fall back on parse failure, got %d", got)
	}

	t.Setenv("CFG_TEST_BOOL", "true")
	if !getEnvBool("CFG_TEST_BOOL", false) {
		t.Fatal("getEnvBool = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port == "" {
		t.Fatal("Port must have a default")
	}
	if cfg.DefaultPageSize <= 0 {
		t.Fatal("DefaultPageSize must have a positive default")
	}
	if cfg.StreamTTLMinutes <= 0 {
		t.Fatal("StreamTTLMinutes must have a positive default")
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MAILVET_FRESHNESS_WINDOW", "MAILVET_LISTEN_ADDR",
		"MAILVET_ENABLE_COMMENTS", "MAILVET_ENABLE_CHECKOUT", "MAILVET_ENABLE_FORMS",
	} {
		t.Setenv(key, "")
	}

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if settings.FreshnessWindow != 30*24*time.Hour {
		t.Errorf("FreshnessWindow = %v, want %v", settings.FreshnessWindow, 30*24*time.Hour)
	}
	if settings.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", settings.ListenAddr, ":8080")
	}
	if !settings.EnableComments || !settings.EnableCheckout || !settings.EnableForms {
		t.Error("feature flags default to enabled")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MAILVET_API_KEY", "secret")
	t.Setenv("MAILVET_FRESHNESS_WINDOW", "72h")
	t.Setenv("MAILVET_ENABLE_CHECKOUT", "no")
	t.Setenv("MAILVET_LISTEN_ADDR", ":9090")
	t.Setenv("MAILVET_REDIS_ADDR", "localhost:6379")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if settings.APIKey != "secret" {
		t.Errorf("APIKey = %q, want %q", settings.APIKey, "secret")
	}
	if settings.FreshnessWindow != 72*time.Hour {
		t.Errorf("FreshnessWindow = %v, want 72h", settings.FreshnessWindow)
	}
	if settings.EnableCheckout {
		t.Error("EnableCheckout = true, want false")
	}
	if !settings.EnableComments {
		t.Error("EnableComments = false, want true")
	}
	if settings.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", settings.ListenAddr, ":9090")
	}
	if settings.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want %q", settings.RedisAddr, "localhost:6379")
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a duration", value: "thirty days"},
		{name: "zero", value: "0s"},
		{name: "negative", value: "-24h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAILVET_FRESHNESS_WINDOW", tt.value)
			if _, err := Load(); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{name: "unset default true", value: "", defaultValue: true, want: true},
		{name: "unset default false", value: "", defaultValue: false, want: false},
		{name: "yes", value: "yes", defaultValue: false, want: true},
		{name: "true", value: "true", defaultValue: false, want: true},
		{name: "1", value: "1", defaultValue: false, want: true},
		{name: "no", value: "no", defaultValue: true, want: false},
		{name: "false", value: "false", defaultValue: true, want: false},
		{name: "0", value: "0", defaultValue: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAILVET_TEST_FLAG", tt.value)
			if got := envBool("MAILVET_TEST_FLAG", tt.defaultValue); got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

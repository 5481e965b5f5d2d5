package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// inEmptyDir runs the test from a directory without an appsettings.json.
func inEmptyDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := LoadConfig(Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Primary.Env != "development" {
		t.Errorf("Primary.Env = %q, want development", cfg.Primary.Env)
	}
	if cfg.Server.Address() != ":8080" {
		t.Errorf("Address() = %q, want :8080", cfg.Server.Address())
	}
	if cfg.Server.ReadTimeout != 15 || cfg.Server.ShutdownTimeout != 30 {
		t.Errorf("timeouts = %+v", cfg.Server)
	}
	if cfg.Server.RateLimit.Enabled {
		t.Error("rate limiting should be off by default")
	}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.Server.CORSAllowedOrigins)
	}

	obs := cfg.Observability
	if obs == nil {
		t.Fatal("Observability is nil")
	}
	if obs.ServiceName != ServiceName || obs.Environment != "development" {
		t.Errorf("observability identity = %q/%q", obs.ServiceName, obs.Environment)
	}
	if obs.Logging.SlowRequestThreshold != 500*time.Millisecond {
		t.Errorf("SlowRequestThreshold = %v", obs.Logging.SlowRequestThreshold)
	}
	if obs.NewRelicEnabled() {
		t.Error("New Relic should be disabled without a licence key")
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	inEmptyDir(t)

	t.Setenv("CONTACTS_PRIMARY__ENV", "production")
	t.Setenv("CONTACTS_SERVER__PORT", "9090")
	t.Setenv("CONTACTS_SERVER__RATE_LIMIT__ENABLED", "true")
	t.Setenv("CONTACTS_SERVER__RATE_LIMIT__BURST", "5")
	t.Setenv("CONTACTS_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CONTACTS_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig(Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if !cfg.Server.RateLimit.Enabled || cfg.Server.RateLimit.Burst != 5 {
		t.Errorf("RateLimit = %+v", cfg.Server.RateLimit)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.Server.CORSAllowedOrigins, want)
	}
	if cfg.Observability.GetLogLevel() != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Observability.GetLogLevel())
	}
	if !cfg.Observability.IsProduction() {
		t.Error("observability environment should follow primary.env")
	}
}

func TestLoadConfigFileAndPrecedence(t *testing.T) {
	dir := inEmptyDir(t)

	settings := `{
		"server": {"port": "7070", "host": "127.0.0.1"},
		"observability": {"logging": {"format": "console", "slow_request_threshold": "1s"}}
	}`
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte(settings), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONTACTS_SERVER__HOST", "0.0.0.0")

	cfg, err := LoadConfig(Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// The environment beats the file; the file beats the defaults.
	if cfg.Server.Address() != "0.0.0.0:7070" {
		t.Errorf("Address() = %q, want 0.0.0.0:7070", cfg.Server.Address())
	}
	if cfg.Observability.Logging.Format != "console" {
		t.Errorf("Format = %q, want console", cfg.Observability.Logging.Format)
	}
	if cfg.Observability.Logging.SlowRequestThreshold != time.Second {
		t.Errorf("SlowRequestThreshold = %v, want 1s", cfg.Observability.Logging.SlowRequestThreshold)
	}
}

func TestLoadConfigExplicitFileMustExist(t *testing.T) {
	dir := inEmptyDir(t)

	if _, err := LoadConfig(Options{File: filepath.Join(dir, "missing.json")}); err == nil {
		t.Fatal("expected an error for a missing explicit settings file")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("CONTACTS_SERVER__PORT", "9090")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("port", "8080", "")
	fs.String("env", "production", "")
	fs.String("log-level", "", "")
	if err := fs.Parse([]string{"--port", "6060", "--log-level", "error"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(Options{Flags: fs})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "6060" {
		t.Errorf("Port = %q, want 6060 from the flag", cfg.Server.Port)
	}
	if cfg.Observability.Logging.Level != "error" {
		t.Errorf("Level = %q, want error", cfg.Observability.Logging.Level)
	}
	// Flags left at their default never override other sources.
	if cfg.Primary.Env != "development" {
		t.Errorf("Primary.Env = %q, want development", cfg.Primary.Env)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown env", key: "CONTACTS_PRIMARY__ENV", val: "moon"},
		{name: "log level", key: "CONTACTS_OBSERVABILITY__LOGGING__LEVEL", val: "loud"},
		{name: "log format", key: "CONTACTS_OBSERVABILITY__LOGGING__FORMAT", val: "xml"},
		{name: "timeout", key: "CONTACTS_SERVER__READ_TIMEOUT", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inEmptyDir(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadConfig(Options{}); err == nil {
				t.Fatalf("expected %s=%s to be rejected", tt.key, tt.val)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{Observability: DefaultObservabilityConfig()}
	cfg.Observability.NewRelic.LicenseKey = "secret"

	redacted := cfg.Redacted()
	if redacted.Observability.NewRelic.LicenseKey == "secret" {
		t.Fatal("licence key was not masked")
	}
	if cfg.Observability.NewRelic.LicenseKey != "secret" {
		t.Fatal("Redacted modified the original config")
	}
}

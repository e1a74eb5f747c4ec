package config

import (
	"testing"
	"time"

	"github.com/arleypeter/calcom-mcp/internal/calcom"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CALCOM_API_KEY", "")
	t.Setenv("CALCOM_API_BASE_URL", "")
	t.Setenv("CALCOM_HTTP_TIMEOUT", "")
	t.Setenv("PORT", "")

	cfg := FromEnv()

	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.BaseURL != calcom.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, calcom.DefaultBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.Port != 0 {
		t.Errorf("Port = %d, want 0", cfg.Port)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CALCOM_API_KEY", "cal_live_xyz")
	t.Setenv("CALCOM_API_BASE_URL", "https://cal.example.com/v2")
	t.Setenv("CALCOM_HTTP_TIMEOUT", "5")
	t.Setenv("PORT", "9000")

	cfg := FromEnv()

	if cfg.APIKey != "cal_live_xyz" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://cal.example.com/v2" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
}

func TestFromEnvInvalidNumbers(t *testing.T) {
	t.Setenv("CALCOM_HTTP_TIMEOUT", "soon")
	t.Setenv("PORT", "http")

	cfg := FromEnv()

	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want default on parse failure", cfg.HTTPTimeout)
	}
	if cfg.Port != 0 {
		t.Errorf("Port = %d, want default on parse failure", cfg.Port)
	}
}

func TestHTTPAddr(t *testing.T) {
	cfg := Config{Port: 9000}
	if got := cfg.HTTPAddr(":8080"); got != ":9000" {
		t.Errorf("HTTPAddr = %q, want :9000", got)
	}

	cfg = Config{}
	if got := cfg.HTTPAddr(":8080"); got != ":8080" {
		t.Errorf("HTTPAddr = %q, want fallback :8080", got)
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Config{
		APIKey:      "key",
		BaseURL:     "https://cal.example.com/v2",
		HTTPTimeout: 10 * time.Second,
	}

	cc := cfg.ClientConfig()

	if cc.APIKey != "key" || cc.BaseURL != "https://cal.example.com/v2" {
		t.Errorf("ClientConfig = %+v", cc)
	}
	if cc.HTTPClient == nil || cc.HTTPClient.Timeout != 10*time.Second {
		t.Errorf("HTTPClient timeout not applied: %+v", cc.HTTPClient)
	}
}

package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "API_BASE_URL", "API_TOKEN", "TOKEN_FILE", "REDIS_ADDR", "BACKEND_RETRIES", "BACKEND_RPS", "REQUEST_TIMEOUT_SECONDS", "LOCALE", "LANG", "HTTP_ADDR"} {
		t.Setenv(k, "")
	}
	c := Load()

	if c.APIBase != "http://localhost:5000/api" {
		t.Errorf("APIBase = %q", c.APIBase)
	}
	if c.BackendRetries != 0 {
		t.Errorf("retries should default to 0, got %d", c.BackendRetries)
	}
	if c.BackendRPS != 5 {
		t.Errorf("BackendRPS = %d", c.BackendRPS)
	}
	if c.RequestTimeout != 20*time.Second {
		t.Errorf("RequestTimeout = %s", c.RequestTimeout)
	}
	if c.Locale != "en-US" {
		t.Errorf("Locale = %q", c.Locale)
	}
	if c.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.HasCredentialSource() {
		t.Error("no credential source expected")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://listings.example/api")
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("BACKEND_RETRIES", "2")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("LOCALE", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	c := Load()
	if c.APIBase != "https://listings.example/api" || c.APIToken != "tok" {
		t.Errorf("unexpected api config: %+v", c)
	}
	if c.BackendRetries != 2 || c.RequestTimeout != 3*time.Second {
		t.Errorf("unexpected backend config: %d %s", c.BackendRetries, c.RequestTimeout)
	}
	if c.Locale != "de_DE.UTF-8" {
		t.Errorf("LANG fallback not applied: %q", c.Locale)
	}
	if !c.HasCredentialSource() {
		t.Error("API_TOKEN is a credential source")
	}
}

func TestLoad_BadIntegerFallsBack(t *testing.T) {
	t.Setenv("SEED_WORKERS", "many")
	t.Setenv("BACKEND_RETRIES", "-4")
	c := Load()
	if c.SeedWorkers != 8 {
		t.Errorf("SeedWorkers = %d", c.SeedWorkers)
	}
	if c.BackendRetries != 0 {
		t.Errorf("negative retries should clamp to 0, got %d", c.BackendRetries)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: abc\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr default: %q", c.Server.Addr)
	}
	if c.Storage.Driver != "memory" {
		t.Fatalf("driver default: %q", c.Storage.Driver)
	}
	if c.OTPTTL() != 5*time.Minute {
		t.Fatalf("otp ttl default: %v", c.OTPTTL())
	}
	if c.SessionTTL() != 72*time.Hour {
		t.Fatalf("session ttl default: %v", c.SessionTTL())
	}
	if c.Security.BcryptCost != 10 {
		t.Fatalf("bcrypt cost default: %d", c.Security.BcryptCost)
	}
	if c.SMTP.TLS != "auto" {
		t.Fatalf("smtp tls default: %q", c.SMTP.TLS)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: abc\nserver:\n  addr: \":9000\"\n")

	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("GOOGLE_ENABLED", "true")
	t.Setenv("GOOGLE_CLIENT_ID", "cid")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if c.Server.Addr != ":7777" {
		t.Fatalf("env override lost: %q", c.Server.Addr)
	}
	if c.OTPTTL() != 90*time.Second {
		t.Fatalf("otp ttl override: %v", c.OTPTTL())
	}
	if !c.Providers.Google.Enabled || c.Providers.Google.ClientID != "cid" {
		t.Fatalf("provider override lost: %+v", c.Providers.Google)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing jwt secret")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: abc\nstorage:\n  driver: oracle\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: abc\nstorage:\n  driver: postgres\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing dsn")
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "abc")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if c.JWT.Secret != "abc" {
		t.Fatalf("env-only secret lost")
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("expected default APP_PORT 8080, got %s", cfg.AppPort)
	}
	if cfg.TokenTTLMinutes != 60 {
		t.Fatalf("expected default TOKEN_TTL_MINUTES 60, got %d", cfg.TokenTTLMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_NAME", "sis_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_MINUTES", "15")

	cfg := Load()
	if cfg.AppPort != "9000" {
		t.Fatalf("expected APP_PORT override, got %s", cfg.AppPort)
	}
	if cfg.DBHost != "db.example.com" {
		t.Fatalf("expected DB_HOST override, got %s", cfg.DBHost)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("expected JWT_SECRET override, got %s", cfg.JWTSecret)
	}
	if cfg.TokenTTLMinutes != 15 {
		t.Fatalf("expected TOKEN_TTL_MINUTES override, got %d", cfg.TokenTTLMinutes)
	}

	dsn := cfg.DSN()
	want := "host=db.example.com user=postgres password=postgres dbname=sis_test port=5432 sslmode=disable TimeZone=UTC"
	if dsn != want {
		t.Fatalf("unexpected DSN:\n got %s\nwant %s", dsn, want)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "not-a-number")
	cfg := Load()
	if cfg.TokenTTLMinutes != 60 {
		t.Fatalf("expected fallback 60, got %d", cfg.TokenTTLMinutes)
	}
}

package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_MODE", "PORT", "SECRET_KEY", "DB_DRIVER", "DB_DSN", "MAIL_USERNAME", "MAIL_PASSWORD", "ADMIN_USERNAME", "ADMIN_PASSWORD", "REGISTRATION_MAX_ATTEMPTS", "FLASK_DEBUG", "DEBUG", "MAIL_USE_TLS", "MAIL_USE_SSL", "MAIL_PORT", "MAIL_SERVER", "REGISTRATION_TTL_MINUTES", "RATE_LIMIT", "AUTH_RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.SecretKey != devSecretKey {
		t.Errorf("expected dev secret default")
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "database.db" {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Admin.Username != "Raju" || cfg.Admin.Password != "Raju@02" {
		t.Errorf("unexpected admin defaults: %+v", cfg.Admin)
	}
	if cfg.Mail.Server != "smtp.gmail.com" || cfg.Mail.Port != 587 || !cfg.Mail.UseTLS || cfg.Mail.UseSSL {
		t.Errorf("unexpected mail defaults: %+v", cfg.Mail)
	}
	if cfg.Mail.Enabled() {
		t.Error("mail should be disabled without credentials")
	}
	if cfg.Registration.CodeTTL != 0 || cfg.Registration.MaxAttempts != 0 {
		t.Errorf("unexpected registration config: %+v", cfg.Registration)
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
	if cfg.RateLimit.General != 100 || cfg.RateLimit.Auth != 10 {
		t.Errorf("unexpected rate limits: %+v", cfg.RateLimit)
	}
}

func TestFromEnvProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("SECRET_KEY", "")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error when SECRET_KEY is missing in prod")
	}

	t.Setenv("SECRET_KEY", "s3cret")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.SecretKey != "s3cret" {
		t.Errorf("SecretKey = %q", cfg.SecretKey)
	}
}

func TestFromEnvRejectsUnknownValues(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for invalid APP_MODE")
	}

	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for invalid DB_DRIVER")
	}
}

func TestFromEnvParsesFlags(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("FLASK_DEBUG", "1")
	t.Setenv("MAIL_USE_TLS", "False")
	t.Setenv("MAIL_USERNAME", "votes@college.edu")
	t.Setenv("MAIL_PASSWORD", "pw")
	t.Setenv("MAIL_DEFAULT_SENDER", "")
	t.Setenv("STRICT_BALLOT", "yes")
	t.Setenv("REGISTRATION_MAX_ATTEMPTS", "-3")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("FLASK_DEBUG=1 should enable debug")
	}
	if cfg.Mail.UseTLS {
		t.Error("MAIL_USE_TLS=False should disable TLS")
	}
	if !cfg.Mail.Enabled() || cfg.Mail.DefaultSender != "votes@college.edu" {
		t.Errorf("unexpected mail config: %+v", cfg.Mail)
	}
	if !cfg.Election.StrictCandidates {
		t.Error("STRICT_BALLOT=yes should enable strict ballots")
	}
	if cfg.Registration.MaxAttempts != 0 {
		t.Errorf("negative attempts should clamp to 0, got %d", cfg.Registration.MaxAttempts)
	}
}

func TestFromEnvRegistrationLimitsOptIn(t *testing.T) {
	t.Setenv("APP_MODE", "")
	t.Setenv("REGISTRATION_TTL_MINUTES", "10")
	t.Setenv("REGISTRATION_MAX_ATTEMPTS", "3")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Registration.CodeTTL != 10*time.Minute || cfg.Registration.MaxAttempts != 3 {
		t.Errorf("unexpected registration config: %+v", cfg.Registration)
	}

	t.Setenv("REGISTRATION_TTL_MINUTES", "-1")
	cfg, err = FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Registration.CodeTTL != 0 {
		t.Errorf("negative TTL should clamp to 0, got %v", cfg.Registration.CodeTTL)
	}
}

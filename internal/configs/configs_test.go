package configs

import "testing"

// clearEnv blanks every variable LoadConfig reads so ambient values from the
// developer's shell cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "DATABASE_URL",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "development")
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		t.Error("JWTSecret should have a development default")
	}
	if cfg.DatabaseDSN == "" {
		t.Error("DatabaseDSN should have a development default")
	}
	if cfg.HasStorage() {
		t.Error("HasStorage() = true with no S3 settings")
	}
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "prod-secret")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/footchat")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail in production without S3 settings")
	}

	t.Setenv("S3_BUCKET_NAME", "avatars")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.HasStorage() {
		t.Error("HasStorage() = false with all S3 settings present")
	}
}

func TestLoadConfig_PortValidation(t *testing.T) {
	tests := []struct {
		port    string
		wantErr bool
	}{
		{port: "8080"},
		{port: "1024"},
		{port: "65535"},
		{port: "80", wantErr: true},
		{port: "70000", wantErr: true},
		{port: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", tt.port)

			_, err := LoadConfig()
			if tt.wantErr && err == nil {
				t.Errorf("LoadConfig() with PORT=%q should fail", tt.port)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadConfig() with PORT=%q error = %v", tt.port, err)
			}
		})
	}
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://footchat.app, https://staging.footchat.app ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := []string{"https://footchat.app", "https://staging.footchat.app"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SAMPLE_RATE", "")
	t.Setenv("SEGMENT_DURATION", "")
	t.Setenv("AUTH_MODE", "")

	cfg := Load()
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if cfg.SegmentDuration != 0.25 {
		t.Errorf("SegmentDuration = %f", cfg.SegmentDuration)
	}
	if cfg.IsGatewayMode() {
		t.Error("default auth mode should not be gateway")
	}
	if cfg.HasDatabase() {
		t.Error("database should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "22050")
	t.Setenv("SEGMENT_DURATION", "0.5")
	t.Setenv("AUTH_MODE", "gateway")
	t.Setenv("DATABASE_URL", "postgres://localhost/soundlab")

	cfg := Load()
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if cfg.SegmentDuration != 0.5 {
		t.Errorf("SegmentDuration = %f", cfg.SegmentDuration)
	}
	if !cfg.IsGatewayMode() {
		t.Error("expected gateway mode")
	}
	if !cfg.HasDatabase() {
		t.Error("expected database configured")
	}
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "not-a-number")
	if cfg := Load(); cfg.SampleRate != 44100 {
		t.Errorf("bad int should fall back to default, got %d", cfg.SampleRate)
	}
}

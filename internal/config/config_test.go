package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port <= 0 {
		t.Fatalf("invalid default port: %d", cfg.Server.Port)
	}
	if cfg.Data.RunTTLMinutes <= 0 || cfg.Data.PreviewRows <= 0 {
		t.Fatalf("invalid data defaults: %+v", cfg.Data)
	}
}

func TestConfig_TomlOverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	raw := []byte("[server]\nport = 9999\n\n[data]\npreview_rows = 10\n")

	if err := toml.Unmarshal(raw, cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("port not overridden: %d", cfg.Server.Port)
	}
	if cfg.Data.PreviewRows != 10 {
		t.Fatalf("preview rows not overridden: %d", cfg.Data.PreviewRows)
	}
	// untouched keys keep their defaults
	if cfg.Data.RunTTLMinutes != DefaultConfig().Data.RunTTLMinutes {
		t.Fatalf("ttl lost its default: %d", cfg.Data.RunTTLMinutes)
	}
}

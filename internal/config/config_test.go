package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Integration != IntegrationPairwise {
		t.Errorf("expected pairwise integration, got %s", cfg.Integration)
	}
	if !cfg.Kill || !cfg.PlanetVelocity || cfg.DrawPath || cfg.DrawForceLines {
		t.Error("unexpected default toggles")
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		width, height int
		star, planet  SizeRange
		velocity      float64
		kill          float64
	}{
		{500, 500, SizeRange{55, 83}, SizeRange{14, 35}, 1.0, 2000},
		{720, 1440, SizeRange{80, 120}, SizeRange{20, 51}, 1.44, 4320},
		{1280, 720, SizeRange{142, 213}, SizeRange{36, 91}, 2.56, 4000},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Derive(tt.width, tt.height)

		if cfg.StarSize != tt.star {
			t.Errorf("%dx%d: star size %v, want %v", tt.width, tt.height, cfg.StarSize, tt.star)
		}
		if cfg.PlanetSize != tt.planet {
			t.Errorf("%dx%d: planet size %v, want %v", tt.width, tt.height, cfg.PlanetSize, tt.planet)
		}
		if cfg.PlanetStartingVelocity != tt.velocity {
			t.Errorf("%dx%d: planet velocity %f, want %f", tt.width, tt.height, cfg.PlanetStartingVelocity, tt.velocity)
		}
		if cfg.KillDistance != tt.kill {
			t.Errorf("%dx%d: kill distance %f, want %f", tt.width, tt.height, cfg.KillDistance, tt.kill)
		}
	}
}

func TestDerive_Idempotent(t *testing.T) {
	a := DefaultConfig()
	a.Derive(640, 480)
	b := a.Clone()
	b.Derive(640, 480)

	if *a != *b {
		t.Errorf("re-deriving changed config: %+v vs %+v", a, b)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		field         string
	}{
		{"zero width", 0, 500, "width"},
		{"negative height", 500, -1, "height"},
		{"too narrow for planets", 20, 500, "planet_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cerr.Field)
			}
		})
	}
}

func TestValidate_Integration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integration = "verlet"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown integration, got %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravbox.yaml")

	cfg := DefaultConfig()
	cfg.Derive(720, 1440)
	cfg.DrawPath = true
	cfg.PathSampleSize = 30
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialOverridesDerive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("width: 900\nheight: 600\nkill_distance: 1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.KillDistance != 3000 {
		t.Errorf("kill distance should be re-derived, got %f", cfg.KillDistance)
	}
	if cfg.G != DefaultG {
		t.Errorf("unset fields should keep defaults, got g=%g", cfg.G)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("desktop")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.PathSampleSize != 70 || cfg.PathSampleRate != 100 {
		t.Errorf("unexpected path sampling %d@%f", cfg.PathSampleSize, cfg.PathSampleRate)
	}
	if cfg.KillDistance != 2000 {
		t.Errorf("preset should be derived, kill distance %f", cfg.KillDistance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	cfg.DrawPath = true
	if Presets["desktop"].DrawPath {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

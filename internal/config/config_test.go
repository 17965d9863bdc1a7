package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Terrain.WaterLevel != 30 {
		t.Errorf("expected water level 30, got %f", cfg.Terrain.WaterLevel)
	}
	if cfg.Terrain.VerticalScale != 1 {
		t.Errorf("expected vertical scale 1, got %f", cfg.Terrain.VerticalScale)
	}
	if cfg.Terrain.NormalInterval != 30 {
		t.Errorf("expected normal interval 30, got %d", cfg.Terrain.NormalInterval)
	}
	if cfg.Camera.Position != [3]float32{80, 150, 80} {
		t.Errorf("unexpected camera start %v", cfg.Camera.Position)
	}
	if cfg.Camera.Yaw != 180 || cfg.Camera.Pitch != 0 {
		t.Errorf("unexpected camera angles pitch=%f yaw=%f", cfg.Camera.Pitch, cfg.Camera.Yaw)
	}
	if cfg.Paint.Scale != 4 || cfg.Paint.Change != 1 {
		t.Errorf("unexpected paint defaults %+v", cfg.Paint)
	}
	if cfg.Paths.Textures != "textures" {
		t.Errorf("expected texture dir 'textures', got %s", cfg.Paths.Textures)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
  vsync: false
  fps_limit: 120

terrain:
  vertical_scale: 2.5
  water_level: 10
  normal_interval: 5

camera:
  position: [1, 2, 3]
  speed: 4

paint:
  scale: 2
  undo_depth: 8

paths:
  textures: "/srv/textures"

logging:
  level: "debug"
  log_file: "relief.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1600 || cfg.Window.Height != 900 {
		t.Errorf("expected 1600x900, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.FPSLimit != 120 {
		t.Errorf("expected fps limit 120, got %d", cfg.Window.FPSLimit)
	}
	if cfg.Terrain.VerticalScale != 2.5 || cfg.Terrain.WaterLevel != 10 || cfg.Terrain.NormalInterval != 5 {
		t.Errorf("unexpected terrain %+v", cfg.Terrain)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} || cfg.Camera.Speed != 4 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	// untouched keys keep their defaults
	if cfg.Camera.Yaw != 180 {
		t.Errorf("expected default yaw to survive merge, got %f", cfg.Camera.Yaw)
	}
	if cfg.Paint.Scale != 2 || cfg.Paint.UndoDepth != 8 || cfg.Paint.Change != 1 {
		t.Errorf("unexpected paint %+v", cfg.Paint)
	}
	if cfg.Paths.Textures != "/srv/textures" {
		t.Errorf("unexpected texture dir %s", cfg.Paths.Textures)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "relief.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero normal interval", func(c *Config) { c.Terrain.NormalInterval = 0 }},
		{"zero paint scale", func(c *Config) { c.Paint.Scale = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
					t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "textures flag",
			setup: func() { *flagTextures = "/opt/tex" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Paths.Textures != "/opt/tex" {
					t.Errorf("expected /opt/tex, got %s", cfg.Paths.Textures)
				}
			},
			teardown: func() { *flagTextures = "" },
		},
		{
			name:  "open flag",
			setup: func() { *flagOpen = "relief.png" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Paths.Open != "relief.png" {
					t.Errorf("expected relief.png, got %s", cfg.Paths.Open)
				}
			},
			teardown: func() { *flagOpen = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.WaterLevel = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Terrain.WaterLevel != 12 {
		t.Errorf("expected water level 12 after reload, got %f", loaded.Terrain.WaterLevel)
	}
}

// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Paint   PaintConfig   `yaml:"paint"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"` // only applied when vsync is off; 0 = unlimited
}

// TerrainConfig holds mesh synchronizer settings.
type TerrainConfig struct {
	VerticalScale  float32 `yaml:"vertical_scale"`
	WaterLevel     float32 `yaml:"water_level"`
	NormalInterval int     `yaml:"normal_interval"` // frames between normal recomputations
}

// CameraConfig holds the fly camera start state and projection.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Pitch    float32    `yaml:"pitch"`
	Yaw      float32    `yaml:"yaw"`
	Speed    float32    `yaml:"speed"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// PaintConfig holds paint panel settings.
type PaintConfig struct {
	Scale     float32 `yaml:"scale"`
	ZoomStep  float32 `yaml:"zoom_step"`
	Change    int     `yaml:"change"`
	UndoDepth int     `yaml:"undo_depth"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	Textures    string `yaml:"textures"`
	Screenshots string `yaml:"screenshots"`
	Open        string `yaml:"open"` // heightmap to open at startup
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the editor's built-in behaviour.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:    "Colobot Relief Editor",
			Width:    800,
			Height:   600,
			VSync:    true,
			FPSLimit: 60,
		},
		Terrain: TerrainConfig{
			VerticalScale:  1.0,
			WaterLevel:     30.0,
			NormalInterval: 30,
		},
		Camera: CameraConfig{
			Position: [3]float32{80, 150, 80},
			Pitch:    0,
			Yaw:      180,
			Speed:    1.0,
			FOV:      60,
			Near:     0.1,
			Far:      250,
		},
		Paint: PaintConfig{
			Scale:     4.0,
			ZoomStep:  0.25,
			Change:    1,
			UndoDepth: 32,
		},
		Paths: PathsConfig{
			Textures:    "textures",
			Screenshots: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

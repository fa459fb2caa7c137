// Package config handles engine configuration loading and layering.
package config

// Config holds all engine settings.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RendererConfig holds camera and mesh transform settings for the demo scene.
type RendererConfig struct {
	FovDegrees    float32 `yaml:"fov_degrees"`
	AspectRatio   float32 `yaml:"aspect_ratio"`
	NearPlane     float32 `yaml:"near_plane"`
	FarPlane      float32 `yaml:"far_plane"`
	InstanceCount int     `yaml:"instance_count"`
}

// ShadowConfig holds directional shadow map settings.
type ShadowConfig struct {
	Resolution      uint32  `yaml:"resolution"`
	HalfExtent      float32 `yaml:"half_extent"`
	NearPlane       float32 `yaml:"near_plane"`
	FarPlane        float32 `yaml:"far_plane"`
	Bias            float32 `yaml:"bias"`
	NormalBiasScale float32 `yaml:"normal_bias_scale"`
}

// BatchConfig holds worker pool settings for batched vertex transforms.
type BatchConfig struct {
	// Workers is the maximum worker count; zero or negative selects
	// NumCPU-1 at runtime.
	Workers int `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	return &Config{
		Renderer: RendererConfig{
			FovDegrees:    60,
			AspectRatio:   16.0 / 9.0,
			NearPlane:     0.1,
			FarPlane:      1000,
			InstanceCount: 16,
		},
		Shadow: ShadowConfig{
			Resolution:      2048,
			HalfExtent:      40,
			NearPlane:       0.1,
			FarPlane:        200,
			Bias:            0.001,
			NormalBiasScale: 3.0,
		},
		Batch: BatchConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

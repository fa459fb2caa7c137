package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWorkers   = flag.Int("workers", 0, "Worker count for batched transforms (0 = auto)")
	flagShadowRes = flag.Uint("shadow-res", 0, "Shadow map resolution override")
	flagInstances = flag.Int("instances", 0, "Instance count for the demo scene")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	if *flagShadowRes > 0 {
		cfg.Shadow.Resolution = uint32(*flagShadowRes)
	}
	if *flagInstances > 0 {
		cfg.Renderer.InstanceCount = *flagInstances
	}
}

package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			SourcePath: "",
			CacheDir:   "~/.cache/histy",
			TTLSeconds: 3600,
		},
		Chart: ChartConfig{
			DefaultTop:     10,
			MaxTop:         100,
			MaxURLLength:   60,
			ExcludeDomains: DefaultExcludeDomains(),
		},
		Output: OutputConfig{
			HTMLFile:    "~/.cache/histy/charts.html",
			OpenBrowser: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

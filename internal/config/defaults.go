package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Serial: SerialConfig{
			Baud: 115200,
		},
		Demo: DemoConfig{
			Interval: 0.5,
		},
		Log: LogConfig{
			Capacity: 2000,
		},
		Timeline: TimelineConfig{
			Points: 500,
		},
		Triggers: TriggersConfig{
			File: "triggers.toml",
		},
		UI: UIConfig{
			Theme:          "default",
			ShowTimestamps: boolPtr(true),
			FollowOnStart:  boolPtr(true),
		},
	}
}

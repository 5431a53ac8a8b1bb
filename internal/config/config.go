package config

type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Demo     DemoConfig     `yaml:"demo"`
	Log      LogConfig      `yaml:"log"`
	Timeline TimelineConfig `yaml:"timeline"`
	Triggers TriggersConfig `yaml:"triggers"`
	UI       UIConfig       `yaml:"ui"`
}

type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyUSB0 or COM3. Empty means
	// run the demo generator instead of opening hardware.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type DemoConfig struct {
	// Interval is the mean seconds between generated messages.
	Interval float64 `yaml:"interval"`
}

type LogConfig struct {
	// Capacity bounds the in-memory log; oldest entries are evicted.
	Capacity int `yaml:"capacity"`
}

type TimelineConfig struct {
	// Points caps each per-severity series on the scatter chart.
	Points int `yaml:"points"`
}

type TriggersConfig struct {
	// File is the TOML trigger definitions path. A missing file is
	// fine; triggers are simply disabled.
	File string `yaml:"file"`
}

type UIConfig struct {
	Theme          string `yaml:"theme"`
	ShowTimestamps *bool  `yaml:"show_timestamps"`
	FollowOnStart  *bool  `yaml:"follow_on_start"`
}

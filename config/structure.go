package config

import "time"

// Config is the harness configuration surface: the two demo backends, the
// HTTP defaults every client inherits, and the named performance thresholds
// consumed by timing validators.
type Config struct {
	Targets    TargetsConfig    `koanf:"targets"`
	HTTP       HTTPConfig       `koanf:"http"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`
	Log        LogConfig        `koanf:"log"`
}

// TargetsConfig names the backends scenarios run against.
type TargetsConfig struct {
	Primary   Target `koanf:"primary"`
	Secondary Target `koanf:"secondary"`
}

// Target is one backend under test.
type Target struct {
	BaseURL string `koanf:"base_url"`
}

// HTTPConfig carries the client defaults.
type HTTPConfig struct {
	Timeout time.Duration     `koanf:"timeout"`
	Headers map[string]string `koanf:"headers"`
}

// ThresholdsConfig holds the named response-time budgets.
type ThresholdsConfig struct {
	Fast   time.Duration `koanf:"fast"`
	Medium time.Duration `koanf:"medium"`
	Slow   time.Duration `koanf:"slow"`
}

// LogConfig controls harness logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

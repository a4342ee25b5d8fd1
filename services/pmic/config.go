package pmic

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"axpcode-go/drivers/axp209"
)

// Config describes one polled AXP209.
type Config struct {
	Name     string        `yaml:"name"`
	Bus      string        `yaml:"bus"` // host bus name, e.g. "0" or "/dev/i2c-0"
	Interval time.Duration `yaml:"interval"`
	QueueLen int           `yaml:"queue_len"`

	// Applied once at start. Empty means leave the chip as it is.
	AdcEnable    []string        `yaml:"adc_enable"`
	Rails        map[string]bool `yaml:"rails"`
	TimerMinutes *uint8          `yaml:"timer_minutes"`
}

// DefaultConfig provides minimal defaults.
func DefaultConfig() Config {
	return Config{
		Name:     "axp209",
		Bus:      "",
		Interval: 2 * time.Second,
		QueueLen: 8,
	}
}

// Validate checks names and ranges before anything touches the bus.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("name must be set")
	}
	if c.Interval < 10*time.Millisecond {
		return errors.New("interval must be at least 10ms")
	}
	for _, n := range c.AdcEnable {
		if _, ok := axp209.AdcByName(n); !ok {
			return errors.New("unknown adc channel: " + n)
		}
	}
	for n := range c.Rails {
		if _, ok := axp209.RailByName(n); !ok {
			return errors.New("unknown rail: " + n)
		}
	}
	if c.TimerMinutes != nil && *c.TimerMinutes > axp209.MaxTimerMinutes {
		return axp209.ErrMinutesRange
	}
	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.QueueLen <= 0 {
		cfg.QueueLen = 8
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

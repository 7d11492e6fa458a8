package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the optional tunables read from <workspace>/settings.yaml.
// A missing file yields the defaults; a malformed file is an error.
type Settings struct {
	Driver        string `yaml:"driver"`
	FrameInterval string `yaml:"frame_interval"`
	MQTTBroker    string `yaml:"mqtt_broker"`
	MQTTTopic     string `yaml:"mqtt_topic"`
}

type Config struct {
	WorkspacePath string
	DBPath        string

	Driver        string
	FrameInterval time.Duration
	MQTTBroker    string
	MQTTTopic     string
}

const (
	defaultFrameInterval = 100 * time.Millisecond
	defaultMQTTTopic     = "senscal/frames"
)

func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	cfg := Config{
		WorkspacePath: workspacePath,
		DBPath:        filepath.Join(workspacePath, ".senscal", "senscal.db"),
		FrameInterval: defaultFrameInterval,
		MQTTTopic:     defaultMQTTTopic,
	}

	raw, err := os.ReadFile(filepath.Join(workspacePath, "settings.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read settings: %w", err)
	}
	var settings Settings
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Config{}, fmt.Errorf("decode settings: %w", err)
	}
	cfg.Driver = settings.Driver
	cfg.MQTTBroker = settings.MQTTBroker
	if settings.MQTTTopic != "" {
		cfg.MQTTTopic = settings.MQTTTopic
	}
	if settings.FrameInterval != "" {
		interval, err := time.ParseDuration(settings.FrameInterval)
		if err != nil {
			return Config{}, fmt.Errorf("parse frame interval: %w", err)
		}
		if interval <= 0 {
			return Config{}, fmt.Errorf("frame interval must be positive")
		}
		cfg.FrameInterval = interval
	}
	return cfg, nil
}

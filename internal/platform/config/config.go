package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	dirName  = ".gazesim"
	fileName = "config.yaml"
)

type Config struct {
	WorkspacePath string        `mapstructure:"-"`
	DBPath        string        `mapstructure:"-"`
	ConfigPath    string        `mapstructure:"-"`
	Server        ServerConfig  `mapstructure:"server"`
	Session       SessionConfig `mapstructure:"session"`
	Canvas        CanvasConfig  `mapstructure:"canvas"`
	Log           LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

type SessionConfig struct {
	LengthSeconds int           `mapstructure:"length_seconds"`
	Tick          time.Duration `mapstructure:"tick"`
	MinDelay      time.Duration `mapstructure:"min_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	MarkerRadius  float64       `mapstructure:"marker_radius"`
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"`
}

type CanvasConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// New resolves configuration for a workspace: defaults, then the optional
// workspace config file, then GAZESIM_* environment variables.
func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GAZESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := filepath.Join(workspacePath, dirName, fileName)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.WorkspacePath = workspacePath
	cfg.DBPath = filepath.Join(workspacePath, dirName, "gazesim.db")
	cfg.ConfigPath = configPath
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8765")
	v.SetDefault("server.base_url", "http://127.0.0.1:8765")
	v.SetDefault("session.length_seconds", 30)
	v.SetDefault("session.tick", time.Second)
	v.SetDefault("session.min_delay", 100*time.Millisecond)
	v.SetDefault("session.max_delay", 300*time.Millisecond)
	v.SetDefault("session.marker_radius", 5.0)
	v.SetDefault("session.submit_timeout", time.Duration(0))
	v.SetDefault("canvas.width", 800.0)
	v.SetDefault("canvas.height", 400.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

func (c Config) Validate() error {
	s := c.Session
	if s.LengthSeconds <= 0 || s.LengthSeconds >= 60 {
		return fmt.Errorf("session.length_seconds must be in 1..59, got %d", s.LengthSeconds)
	}
	if s.Tick <= 0 {
		return fmt.Errorf("session.tick must be positive")
	}
	if s.MinDelay <= 0 || s.MaxDelay < s.MinDelay {
		return fmt.Errorf("session delays must satisfy 0 < min_delay <= max_delay")
	}
	if s.SubmitTimeout < 0 {
		return fmt.Errorf("session.submit_timeout must not be negative")
	}
	if strings.TrimSpace(c.Server.BaseURL) == "" {
		return fmt.Errorf("server.base_url is required")
	}
	return nil
}

// Fixed routes shared by the simulator and the results server.
const (
	SubmitPath  = "/simulate-eye-tracking"
	ResultsPath = "/results"
)

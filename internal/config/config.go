package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        Server        `yaml:"server"`
	Data          Data          `yaml:"data"`
	Notifications Notifications `yaml:"notifications"`
	Views         Views         `yaml:"views"`
	Log           Log           `yaml:"log"`
}

type Server struct {
	Port      int      `yaml:"port"`
	StaticDir string   `yaml:"static_dir"`
	CORS      []string `yaml:"cors_allowed_origins"`
}

type Data struct {
	Dir string `yaml:"dir"`
}

type Notifications struct {
	// LookaheadDays is the ending-soon window measured forward from today.
	LookaheadDays int `yaml:"lookahead_days"`
}

type Views struct {
	PageSize int `yaml:"page_size"`
}

type Log struct {
	Level string `yaml:"level"`
}

func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "static"
	}
	if len(c.Server.CORS) == 0 {
		c.Server.CORS = []string{"*"}
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Notifications.LookaheadDays == 0 {
		c.Notifications.LookaheadDays = 7
	}
	if c.Views.PageSize == 0 {
		c.Views.PageSize = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Load reads a YAML config file. A missing file is not an error: defaults
// plus env overrides are enough to run.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	c.applyEnv()
	return &c, nil
}

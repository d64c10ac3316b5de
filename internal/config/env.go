package config

import (
	"os"
	"strconv"
)

// applyEnv layers environment overrides on top of file values.
func (c *Config) applyEnv() {
	if v := getEnvInt("TASKCAL_PORT"); v > 0 {
		c.Server.Port = v
	}
	if v := os.Getenv("TASKCAL_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("TASKCAL_STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := getEnvInt("TASKCAL_LOOKAHEAD_DAYS"); v > 0 {
		c.Notifications.LookaheadDays = v
	}
	if v := getEnvInt("TASKCAL_PAGE_SIZE"); v > 0 {
		c.Views.PageSize = v
	}
	if v := os.Getenv("TASKCAL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func getEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

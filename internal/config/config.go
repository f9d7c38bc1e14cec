// Package config reads settings from the environment with typed fallbacks.
// Values are loaded from the process environment; callers load .env files
// (via godotenv) before reading.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Get returns the value of key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns key parsed as an int, or fallback when unset or unparsable.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetDuration returns key parsed with time.ParseDuration ("90s", "2h"),
// or fallback when unset or unparsable.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// GetBool returns key parsed with strconv.ParseBool ("1", "true", "false"),
// or fallback when unset or unparsable.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

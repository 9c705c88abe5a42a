package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// eAPI
	Username       string
	Password       string
	EnablePassword string
	Method         string // http or https
	Host           string
	Timeout        time.Duration

	// polling
	PollInterval     time.Duration
	ErrorThreshold   int
	ShutdownOnErrors bool

	DBPath string

	// SNMP source
	SNMPTarget    string
	SNMPCommunity string
	OIDFile       string

	SyslogTag string

	WebHost string
	WebPort string
}

// getEnv fetches environment variable or returns fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	interval, err := getInt("POLL_INTERVAL", 5)
	if err != nil {
		return nil, err
	}
	threshold, err := getInt("ERROR_THRESHOLD", 3)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(getEnv("EAPI_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("EAPI_TIMEOUT: %w", err)
	}
	shutdown, err := strconv.ParseBool(getEnv("SHUTDOWN_ON_ERRORS", "false"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_ON_ERRORS: %w", err)
	}

	cfg := &Config{
		Username:         getEnv("EAPI_USERNAME", "admin"),
		Password:         getEnv("EAPI_PASSWORD", "password"),
		EnablePassword:   os.Getenv("EAPI_ENABLE_PASSWORD"),
		Method:           getEnv("EAPI_METHOD", "http"),
		Host:             getEnv("EAPI_HOST", "localhost"),
		Timeout:          timeout,
		PollInterval:     time.Duration(interval) * time.Second,
		ErrorThreshold:   threshold,
		ShutdownOnErrors: shutdown,
		DBPath:           getEnv("DB_PATH", "/tmp/eventMon.db"),
		SNMPTarget:       os.Getenv("SNMP_TARGET"),
		SNMPCommunity:    getEnv("SNMP_COMMUNITY", "public"),
		OIDFile:          os.Getenv("OID_FILE"),
		SyslogTag:        getEnv("SYSLOG_TAG", "json2sql"),
		WebHost:          getEnv("WEB_HOST", "0.0.0.0"),
		WebPort:          getEnv("WEB_PORT", "8080"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Method != "http" && c.Method != "https" {
		return fmt.Errorf("EAPI_METHOD must be http or https, got %q", c.Method)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.ErrorThreshold <= 0 {
		return fmt.Errorf("ERROR_THRESHOLD must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("EAPI_TIMEOUT must be positive")
	}
	return nil
}

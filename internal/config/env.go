package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pb2utils "github.com/pajbot/utils"
)

func mustStringEnv(key string) (string, error) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value, nil
	}

	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func stringEnv(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return defaultValue
}

func stringListEnv(key string, defaultValue []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		if value == "" {
			return []string{}
		}
		return strings.Split(value, ",")
	}

	return defaultValue
}

// durationEnv accepts a plain number of milliseconds, or a duration string like "5s"
func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}

	if milliseconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if milliseconds < 0 {
			return 0, fmt.Errorf("%s must not be negative", key)
		}
		return time.Duration(milliseconds) * time.Millisecond, nil
	}

	d, err := pb2utils.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}

	return d, nil
}

// Package config provides environment configuration helpers for go-engage commands.
package config

import (
	"os"
	"strconv"
	"time"
)

// Default server configuration.
const (
	DefaultAddr            = ":8000"
	DefaultWebhookInterval = 10 * time.Second
)

// Addr returns the listen address from the ADDR env var.
// Falls back to the provided default if not set.
func Addr(def string) string {
	if addr := os.Getenv("ADDR"); addr != "" {
		return addr
	}
	return def
}

// WebhookURL returns the notification webhook URL from WEBHOOK_URL.
// Empty means webhook delivery is disabled.
func WebhookURL() string {
	return os.Getenv("WEBHOOK_URL")
}

// WebhookEnabled reports whether webhook delivery is turned on.
// Requires both WEBHOOK_ENABLED=true and a non-empty WEBHOOK_URL.
func WebhookEnabled() bool {
	return os.Getenv("WEBHOOK_ENABLED") == "true" && WebhookURL() != ""
}

// WebhookInterval returns the minimum interval between webhook deliveries
// from WEBHOOK_INTERVAL_SECONDS, or the default of 10s.
func WebhookInterval() time.Duration {
	if v := os.Getenv("WEBHOOK_INTERVAL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return DefaultWebhookInterval
}

// Weights returns the raw fusion weight string from ENGAGE_WEIGHTS.
// Format: "context,emotion,body,speech,participation" as floats.
// Empty means use the built-in defaults.
func Weights() string {
	return os.Getenv("ENGAGE_WEIGHTS")
}

// Bool returns the boolean env var named by key, or def when unset.
func Bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

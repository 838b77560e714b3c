package env

import (
	"os"
	"strings"
)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Port prefers the platform-provided PORT over the configured fallback.
func Port(fallback string) string {
	return Get("PORT", fallback)
}

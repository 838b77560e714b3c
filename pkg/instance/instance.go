package instance

import (
	"os"

	"github.com/angelmondragon/coffee-storefront/pkg/env"
)

// GetID returns the process instance identifier used in startup logs. It
// prefers COFFEE_INSTANCE_ID, then the platform DYNO name, then the hostname.
func GetID() string {
	if id := env.Get("COFFEE_INSTANCE_ID", ""); id != "" {
		return id
	}
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}

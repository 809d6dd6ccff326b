package env

import (
	"os"
)

// PodName example: k8ssta-launchpad-api-6868d88fbd-bz8zv, falls back to the hostname
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	host, _ := os.Hostname()
	return host
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: api, notifier
func AppName() string {
	return os.Getenv("APP_NAME")
}

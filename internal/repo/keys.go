// Package repo contains the typed collection repositories for the fuel
// logbook. Each resource has its own file with an interface and a kv-backed
// implementation. No business logic lives here — only store access, JSON
// shape, and corrupt-data recovery.
package repo

// Store keys embed an app-version fragment so a future format change can
// move to new keys without misreading old payloads.
const (
	keyVehicles = "fuellog:v1:vehicles"
	keyHistory  = "fuellog:v1:history"
	keySettings = "fuellog:v1:settings"
)

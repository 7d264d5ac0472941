package config

import "log"

// Require stops the process when a mandatory setting is empty. Call it from
// main only, after Load.
func Require[T ~string | ~[]byte](value T, envName string) {
	if len(value) > 0 {
		return
	}
	log.Fatalf("config: %s must be set", envName)
}

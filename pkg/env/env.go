// Package env reads process environment variables directly. It exists for
// the handful of knobs resolved before the envconfig-backed configuration is
// parsed, such as the bootstrap logger's output format.
package env

import "os"

// Get returns the value of key, or fallback when the variable is unset or
// empty.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

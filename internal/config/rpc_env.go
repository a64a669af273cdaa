package config

import (
	"os"
)

// ExpandEnv expands ${VAR} and $VAR references in a config value.
// The second return value lists referenced variables that are unset or empty.
func ExpandEnv(rawValue string) (string, []string) {
	var missing []string
	expanded := os.Expand(rawValue, func(name string) string {
		val := os.Getenv(name)
		if val == "" {
			missing = append(missing, name)
		}
		return val
	})
	return expanded, missing
}

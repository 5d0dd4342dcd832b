package env

import (
	"os"
	"strings"
)

// Prefix namespaces the service's environment variables.
const Prefix = "AURANA_"

// Get returns AURANA_<key>, then the bare key, or fallback when neither is set.
func Get(key, fallback string) string {
	if val, ok := Lookup(key); ok {
		return val
	}
	return fallback
}

// Lookup reports the trimmed value of AURANA_<key> or, failing that, key.
// Blank values count as unset.
func Lookup(key string) (string, bool) {
	key = strings.TrimPrefix(key, Prefix)
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val, true
		}
	}
	return "", false
}

// Package motion answers whether the user asked for reduced motion.
package motion

import (
	"os"
	"strings"
	"sync"
)

// EnvVar is consulted once per process
const EnvVar = "SWIPEDECK_REDUCED_MOTION"

var prefersReduced = sync.OnceValue(func() bool {
	return parse(os.Getenv(EnvVar))
})

// PrefersReducedMotion reports the cached preference. The environment is read
// on the first call only.
func PrefersReducedMotion() bool {
	return prefersReduced()
}

func parse(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "reduce":
		return true
	default:
		return false
	}
}

package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " reduce "} {
		assert.True(t, parse(v), v)
	}
	for _, v := range []string{"", "0", "no-preference", "false"} {
		assert.False(t, parse(v), v)
	}
}

func TestPrefersReducedMotionIsStable(t *testing.T) {
	first := PrefersReducedMotion()
	t.Setenv(EnvVar, "1")
	assert.Equal(t, first, PrefersReducedMotion(), "result is cached for the process lifetime")
}

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPrefersPrefixedKey(t *testing.T) {
	t.Setenv("AURANA_LOG_FORMAT", "console")
	t.Setenv("LOG_FORMAT", "json")

	assert.Equal(t, "console", Get("LOG_FORMAT", "text"))
	assert.Equal(t, "console", Get("AURANA_LOG_FORMAT", "text"))
}

func TestGetFallsBackToBareKeyThenDefault(t *testing.T) {
	t.Setenv("AURANA_LOG_FORMAT", "  ")
	t.Setenv("LOG_FORMAT", " console ")
	assert.Equal(t, "console", Get("LOG_FORMAT", "json"))

	t.Setenv("LOG_FORMAT", "")
	assert.Equal(t, "json", Get("LOG_FORMAT", "json"))

	_, ok := Lookup("LOG_FORMAT")
	assert.False(t, ok)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"MOBILEDRIVER_PLATFORM":      "iOS",
		"MOBILEDRIVER_UDID":          "00008030",
		"MOBILEDRIVER_HOST":          "device-farm",
		"MOBILEDRIVER_PORT":          "4725",
		"MOBILEDRIVER_IMPLICIT_WAIT": "5",
		"MOBILEDRIVER_LANG":          "en",
		"MOBILEDRIVER_APP_PACKAGE":   "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "iOS", cfg.Session.Platform)
	assert.Equal(t, "00008030", cfg.Session.UDID)
	assert.Equal(t, "device-farm", cfg.Remote.Host)
	assert.Equal(t, "4725", cfg.Remote.Port)
	assert.Equal(t, Duration(5*time.Second), cfg.Driver.ImplicitWait)
	assert.Equal(t, "en", cfg.Driver.Lang)
	assert.Empty(t, cfg.Session.AppPackage)
	assert.Equal(t, Default().Remote.RequestTimeout, cfg.Remote.RequestTimeout)
}

func TestApplyEnvBadDuration(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{"MOBILEDRIVER_REQUEST_TIMEOUT": "later"}))
	assert.ErrorContains(t, err, "MOBILEDRIVER_REQUEST_TIMEOUT")
}

package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesMerge(t *testing.T) {
	caps := Capabilities{"platformName": "Android", "appium:udid": "emulator-5554"}
	extra := map[string]any{
		"platformName":    "iOS",
		"appium:noReset":  true,
		"appium:language": "en",
	}

	merged := caps.Merge(extra)

	assert.Equal(t, "Android", merged["platformName"])
	assert.Equal(t, "emulator-5554", merged["appium:udid"])
	assert.Equal(t, true, merged["appium:noReset"])
	assert.Equal(t, "en", merged["appium:language"])

	// inputs are not mutated
	assert.Len(t, caps, 2)
	assert.Equal(t, "iOS", extra["platformName"])
}

func TestCapabilitiesMergeNilExtra(t *testing.T) {
	caps := Capabilities{"platformName": "Android"}
	assert.Equal(t, caps, caps.Merge(nil))
}

func TestSetIfNotEmpty(t *testing.T) {
	caps := Capabilities{}
	caps.SetIfNotEmpty("a", "x")
	caps.SetIfNotEmpty("b", "")

	assert.Equal(t, Capabilities{"a": "x"}, caps)
}

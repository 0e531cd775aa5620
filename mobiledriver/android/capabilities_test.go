package android

import (
	"testing"

	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/stretchr/testify/assert"
)

func TestCapabilities(t *testing.T) {
	caps := Capabilities(definitions.SessionParams{
		PlatformName:   "Android",
		UDID:           "emulator-5554",
		AppPackage:     "com.tencent.mm",
		AppActivity:    ".ui.LauncherUI",
		AutomationName: constants.AutomationEspresso,
	})

	assert.Equal(t, definitions.Capabilities{
		constants.CapPlatformName:   "Android",
		constants.CapAutomationName: "Espresso",
		constants.CapUDID:           "emulator-5554",
		constants.CapDeviceName:     "emulator-5554",
		constants.CapAppPackage:     "com.tencent.mm",
		constants.CapAppActivity:    ".ui.LauncherUI",
	}, caps)
}

func TestCapabilitiesDefaults(t *testing.T) {
	caps := Capabilities(definitions.SessionParams{PlatformName: "Android"})

	assert.Equal(t, definitions.Capabilities{
		constants.CapPlatformName:   "Android",
		constants.CapAutomationName: constants.AutomationUiAutomator2,
	}, caps)
}

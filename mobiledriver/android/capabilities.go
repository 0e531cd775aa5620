package android

import (
	"github.com/rs/zerolog/log"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
)

// Capabilities builds the capability set for an Android session. The app is
// addressed by package and launch activity; the automation engine defaults to
// UiAutomator2.
func Capabilities(params definitions.SessionParams) definitions.Capabilities {
	automationName := params.AutomationName
	if automationName == "" {
		automationName = constants.AutomationUiAutomator2
	}

	caps := definitions.Capabilities{
		constants.CapPlatformName:   string(constants.Android),
		constants.CapAutomationName: automationName,
	}
	caps.SetIfNotEmpty(constants.CapUDID, params.UDID)
	caps.SetIfNotEmpty(constants.CapDeviceName, params.UDID)
	caps.SetIfNotEmpty(constants.CapAppPackage, params.AppPackage)
	caps.SetIfNotEmpty(constants.CapAppActivity, params.AppActivity)

	log.Debug().Str("platform", string(constants.Android)).Interface("capabilities", caps).Msg("[Capabilities] built")
	return caps
}

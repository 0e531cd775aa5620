package ios

import (
	"github.com/rs/zerolog/log"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
)

// Capabilities builds the capability set for an iOS session. iOS has no
// launch activities, so the app package is sent as the bundle id and the
// activity is ignored.
func Capabilities(params definitions.SessionParams) definitions.Capabilities {
	automationName := params.AutomationName
	if automationName == "" {
		automationName = constants.AutomationXCUITest
	}

	caps := definitions.Capabilities{
		constants.CapPlatformName:   string(constants.IOS),
		constants.CapAutomationName: automationName,
	}
	caps.SetIfNotEmpty(constants.CapUDID, params.UDID)
	caps.SetIfNotEmpty(constants.CapDeviceName, params.UDID)
	caps.SetIfNotEmpty(constants.CapBundleID, params.AppPackage)

	if params.AppActivity != "" {
		log.Debug().Str("activity", params.AppActivity).Msg("[Capabilities] app activity ignored on iOS")
	}
	log.Debug().Str("platform", string(constants.IOS)).Interface("capabilities", caps).Msg("[Capabilities] built")
	return caps
}

package helper

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spance/mobiledriver/constants"
)

func GetMessage(key string, lang string) string {
	if lang == "en" {
		return constants.MESSAGES_EN_MAP[key]
	}
	return constants.MESSAGES_ZH_MAP[key]
}

// PlatformLabel returns the localized display name of a platform.
func PlatformLabel(platform constants.Platform, lang string) string {
	return GetMessage(lo.Ternary(platform == constants.IOS, "ios", "android"), lang)
}

// StartedMessage is logged once a session is up and configured.
func StartedMessage(platform constants.Platform, appPackage, lang string) string {
	return fmt.Sprintf(GetMessage("app_started", lang), PlatformLabel(platform, lang), appPackage)
}

// ClosedMessage is logged when the facade releases its handle. It uses the
// platform name as given since closing never validates it.
func ClosedMessage(platformName, lang string) string {
	return fmt.Sprintf(GetMessage("driver_closed", lang), platformName)
}

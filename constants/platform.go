package constants

type Platform string

const (
	Android Platform = "Android"
	IOS     Platform = "iOS"
)

// Platforms lists every platform the dispatcher knows how to start.
var Platforms = []Platform{Android, IOS}

const (
	AutomationUiAutomator2 = "UiAutomator2"
	AutomationEspresso     = "Espresso"
	AutomationXCUITest     = "XCUITest"
)

// W3C standard and Appium vendor capability names.
const (
	CapPlatformName   = "platformName"
	CapUDID           = "appium:udid"
	CapAutomationName = "appium:automationName"
	CapAppPackage     = "appium:appPackage"
	CapAppActivity    = "appium:appActivity"
	CapBundleID       = "appium:bundleId"
	CapDeviceName     = "appium:deviceName"
)

const (
	DefaultScheme      = "http"
	DefaultHost        = "127.0.0.1"
	DefaultPort        = "4723"
	DefaultBasePath    = "/wd/hub"
	DefaultURLTemplate = "{scheme}://{host}:{port}{base_path}"

	DefaultImplicitWaitSeconds   = 10
	DefaultRequestTimeoutSeconds = 120
)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/mobiledriver/config"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/spance/mobiledriver/mobiledriver/devices"
	"github.com/spance/mobiledriver/mobiledriver/helper"
	"github.com/spance/mobiledriver/mobiledriver/webdriver"
	"github.com/spance/mobiledriver/utils"
	"github.com/spf13/cobra"
)

// Options holds the command line arguments
type Options struct {
	ConfigPath string `json:"config_path"`
	EnvFile    string `json:"env_file"`

	Platform       string `json:"platform"`
	UDID           string `json:"udid"`
	App            string `json:"app"`
	AppPackage     string `json:"app_package"`
	AppActivity    string `json:"app_activity"`
	AutomationName string `json:"automation_name"`
	Host           string `json:"host"`
	Port           string `json:"port"`
	ImplicitWait   string `json:"implicit_wait"`
	Lang           string `json:"lang"`

	ListApps    bool `json:"list_apps"`
	ListDevices bool `json:"list_devices"`
	DryRun      bool `json:"dry_run"`
	Status      bool `json:"status"`
	Hold        bool `json:"hold"`
	Debug       bool `json:"debug"`
}

var options = &Options{}

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "mobiledriver",
	Short: "Mobile Driver - start Appium sessions for Android and iOS",
	Long: `Mobile Driver opens a session on a remote automation server (Appium)
for an Android or iOS device, applies the configured implicit wait and
shuts the session down again.`,
	Example: `  # Start WeChat on the default Android device and quit again
  mobiledriver --app WeChat

  # Start a specific activity on a specific device
  mobiledriver --udid emulator-5554 --app-package com.android.settings --app-activity .Settings

  # iOS device on a remote server, keep the session until Ctrl-C
  mobiledriver --platform iOS --udid 00008030-001A2B3C4D5E6F70 --app-package com.apple.Preferences --host 192.168.1.10 --hold

  # Print the capabilities that would be sent
  mobiledriver --platform iOS --app WeChat --dry-run

  # Check that the automation server is up
  mobiledriver --status

  # List supported apps
  mobiledriver --list-apps`,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&options.ConfigPath, "config", "", "YAML configuration file")
	flags.StringVar(&options.EnvFile, "env-file", ".env", "Environment file loaded before the configuration")

	// Session options
	flags.StringVarP(&options.Platform, "platform", "p", "", "Platform name: Android or iOS (default: Android)")
	flags.StringVarP(&options.UDID, "udid", "d", "", "Device UDID")
	flags.StringVarP(&options.App, "app", "a", "", "App alias, see --list-apps")
	flags.StringVar(&options.AppPackage, "app-package", "", "App package (bundle id on iOS)")
	flags.StringVar(&options.AppActivity, "app-activity", "", "App launch activity (Android only)")
	flags.StringVar(&options.AutomationName, "automation-name", "", "Automation engine (default: UiAutomator2 / XCUITest)")

	// Remote options
	flags.StringVar(&options.Host, "host", "", "Automation server host (default: 127.0.0.1)")
	flags.StringVar(&options.Port, "port", "", "Automation server port (default: 4723)")
	flags.StringVar(&options.ImplicitWait, "implicit-wait", "", "Implicit wait, seconds or duration (default: 10)")

	// Other options
	flags.StringVar(&options.Lang, "lang", "", "Language for log messages (cn or en, default: cn)")
	flags.BoolVar(&options.ListApps, "list-apps", false, "List supported apps and exit")
	flags.BoolVar(&options.ListDevices, "list-devices", false, "List attached devices for the platform and exit")
	flags.BoolVar(&options.DryRun, "dry-run", false, "Print the capabilities and exit without connecting")
	flags.BoolVar(&options.Status, "status", false, "Show automation server status and exit")
	flags.BoolVar(&options.Hold, "hold", false, "Keep the session open until interrupted")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug mode (default: false)")
}

func main() {
	// Configure zerolog
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: file, then environment,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	if options.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := config.LoadDotEnv(options.EnvFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	if options.ConfigPath != "" {
		loaded, err := config.Load(options.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"platform":        &cfg.Session.Platform,
		"udid":            &cfg.Session.UDID,
		"app":             &cfg.Session.App,
		"app-package":     &cfg.Session.AppPackage,
		"app-activity":    &cfg.Session.AppActivity,
		"automation-name": &cfg.Session.AutomationName,
		"host":            &cfg.Remote.Host,
		"port":            &cfg.Remote.Port,
		"lang":            &cfg.Driver.Lang,
	}
	for name, field := range overrides {
		if flags.Changed(name) {
			*field = lo.Must(flags.GetString(name))
		}
	}
	if flags.Changed("implicit-wait") {
		d, err := config.ParseDuration(options.ImplicitWait)
		if err != nil {
			return fmt.Errorf("--implicit-wait: %w", err)
		}
		cfg.Driver.ImplicitWait = config.Duration(d)
	}

	return cfg.Validate()
}

func run(ctx context.Context) error {
	log.Debug().Str("options", utils.JsonString(options)).Msg("parsed options")

	// Handle --list-apps (no server needed)
	if options.ListApps {
		listApps()
		return nil
	}

	if options.Status {
		return checkServerStatus(ctx)
	}

	if options.ListDevices {
		return listDevices(ctx)
	}

	params, err := cfg.SessionParams()
	if err != nil {
		return err
	}

	if options.DryRun {
		caps, err := mobiledriver.BuildCapabilities(params, cfg.Capabilities)
		if err != nil {
			log.Error().Err(err).Msg("building capabilities failed")
			return err
		}
		endpoint, err := mobiledriver.RemoteURL(cfg.DriverConfig(), params.RemoteHost, params.RemotePort)
		if err != nil {
			log.Error().Err(err).Msg("building remote url failed")
			return err
		}
		log.Info().Msgf("Remote URL: %s", endpoint)
		fmt.Println(utils.JsonIndent(caps))
		return nil
	}

	// attached devices only matter when the server runs on this host
	if params.UDID == "" && lo.Contains([]string{"127.0.0.1", "localhost", "::1"}, params.RemoteHost) {
		params.UDID = autoDetectUDID(ctx, params.PlatformName)
	}

	printConfiguration(params)

	session := mobiledriver.NewSession(cfg.DriverConfig())
	driver, err := session.Start(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("❌ starting session failed")
		return err
	}
	defer func() {
		// ctx may already be cancelled by the signal that ended --hold
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("❌ closing session failed")
		}
	}()

	log.Info().Msgf("✅ %s: %s", helper.GetMessage("session_id", cfg.Driver.Lang), driver.SessionID())
	log.Debug().Msgf("%s: %s", helper.GetMessage("capabilities", cfg.Driver.Lang), utils.JsonIndent(driver.Capabilities()))

	if options.Hold {
		log.Info().Msg("Session is open. Press Ctrl-C to close it.")
		<-ctx.Done()
	}
	return nil
}

func listApps() {
	apps, err := constants.Load()
	if err != nil {
		log.Error().Err(err).Msg("loading app registry failed")
		return
	}

	ios := strings.EqualFold(cfg.Session.Platform, string(constants.IOS))
	if ios {
		log.Info().Msg("Supported iOS apps:")
	} else {
		log.Info().Msg("Supported Android apps:")
	}

	packages := lo.Keys(apps)
	sort.Strings(packages)
	for _, pkg := range packages {
		app := apps[pkg]
		target := lo.Ternary(ios, app.BundleID, app.Package+"/"+app.Activity)
		log.Info().Str("app", strings.Join(app.Aliases, ", ")).Str("target", target).Msg("-")
	}
}

func checkServerStatus(ctx context.Context) error {
	endpoint, err := mobiledriver.RemoteURL(cfg.DriverConfig(), cfg.Remote.Host, cfg.Remote.Port)
	if err != nil {
		log.Error().Err(err).Msg("building remote url failed")
		return err
	}

	log.Info().Msgf("🔍 Checking automation server (%s)...", endpoint)
	client := webdriver.NewClient(endpoint, nil, cfg.DriverConfig().RequestTimeout)
	status, err := client.Status(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("❌ %s", helper.GetMessage("server_not_ready", cfg.Driver.Lang))
		return err
	}
	if !status.Ready {
		log.Error().Str("message", status.Message).Msgf("❌ %s", helper.GetMessage("server_not_ready", cfg.Driver.Lang))
		return fmt.Errorf("automation server at %s is not ready: %s", endpoint, status.Message)
	}

	log.Info().Str("message", status.Message).Msgf("✅ %s", helper.GetMessage("server_ready", cfg.Driver.Lang))
	log.Debug().Msg(utils.JsonIndent(status.Raw))
	return nil
}

func listDevices(ctx context.Context) error {
	platform, err := mobiledriver.ParsePlatform(cfg.Session.Platform)
	if err != nil {
		return err
	}

	attached, err := devices.List(ctx, platform)
	if err != nil {
		log.Error().Err(err).Msg("listing devices failed")
		return err
	}
	if len(attached) == 0 {
		log.Info().Msg("No devices connected.")
		return nil
	}

	log.Info().Msg("Connected devices:")
	log.Info().Msg(strings.Repeat("-", 60))
	for _, d := range attached {
		statusIcon := lo.Ternary(d.Online(), "✅", "❌")
		modelInfo := ""
		if d.Model != "" {
			modelInfo = fmt.Sprintf(" (%s)", d.Model)
		}
		log.Info().Str("device", fmt.Sprintf("  %s %-30s [%s]%s", statusIcon, d.UDID, d.ConnectionType, modelInfo)).Msg("")
	}
	return nil
}

// autoDetectUDID picks the first online device. An empty result leaves the
// choice to the automation server.
func autoDetectUDID(ctx context.Context, platformName string) string {
	platform, err := mobiledriver.ParsePlatform(platformName)
	if err != nil {
		return ""
	}
	udid, err := devices.FirstOnline(ctx, platform)
	if err != nil {
		log.Warn().Err(err).Msg("device auto-detection failed, letting the server choose")
		return ""
	}
	log.Info().Msgf("Device: %s (auto-detected)", udid)
	return udid
}

// printConfiguration prints the effective configuration
func printConfiguration(params definitions.SessionParams) {
	log.Info().Msg(strings.Repeat("=", 50))
	log.Info().Msg("Mobile Driver - Appium session bootstrap")
	log.Info().Msg(strings.Repeat("=", 50))
	log.Info().Msgf("Platform: %s", params.PlatformName)
	if params.UDID != "" {
		log.Info().Msgf("Device: %s", params.UDID)
	}
	if cfg.Session.App != "" {
		log.Info().Msgf("App: %s", cfg.Session.App)
	}
	log.Info().Msgf("App Package: %s", params.AppPackage)
	if params.AppActivity != "" {
		log.Info().Msgf("App Activity: %s", params.AppActivity)
	}
	log.Info().Msgf("Server: %s:%s", params.RemoteHost, params.RemotePort)
	log.Info().Msgf("Implicit Wait: %s", cfg.DriverConfig().ImplicitWait)
	log.Info().Msgf("Language: %s", cfg.Driver.Lang)
	log.Info().Msg(strings.Repeat("=", 50))
}

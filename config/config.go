package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file.
type Config struct {
	Driver       DriverConfig   `yaml:"driver"`
	Remote       RemoteConfig   `yaml:"remote"`
	Session      SessionConfig  `yaml:"session"`
	Capabilities map[string]any `yaml:"capabilities"` // Merged into every capability set.
}

// DriverConfig holds settings applied to each opened session.
type DriverConfig struct {
	ImplicitWait Duration `yaml:"implicit_wait"`
	Lang         string   `yaml:"lang"` // "cn" or "en".
}

// RemoteConfig locates the automation server.
type RemoteConfig struct {
	Scheme         string   `yaml:"scheme"`
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	BasePath       string   `yaml:"base_path"`
	URLTemplate    string   `yaml:"url_template"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// SessionConfig holds the default session parameters.
type SessionConfig struct {
	Platform       string `yaml:"platform"`
	UDID           string `yaml:"udid"`
	App            string `yaml:"app"` // Alias resolved through the app registry.
	AppPackage     string `yaml:"app_package"`
	AppActivity    string `yaml:"app_activity"`
	AutomationName string `yaml:"automation_name"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Driver: DriverConfig{
			ImplicitWait: Duration(constants.DefaultImplicitWaitSeconds * time.Second),
			Lang:         "cn",
		},
		Remote: RemoteConfig{
			Scheme:         constants.DefaultScheme,
			Host:           constants.DefaultHost,
			Port:           constants.DefaultPort,
			BasePath:       constants.DefaultBasePath,
			URLTemplate:    constants.DefaultURLTemplate,
			RequestTimeout: Duration(constants.DefaultRequestTimeoutSeconds * time.Second),
		},
		Session: SessionConfig{
			Platform: string(constants.Android),
		},
	}
}

// Load reads a YAML file on top of Default. Environment variables referenced
// as ${VAR} or $VAR are expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from path. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Driver.Lang != "cn" && c.Driver.Lang != "en" {
		return fmt.Errorf("config: driver: invalid lang %q, must be 'cn' or 'en'", c.Driver.Lang)
	}
	if c.Driver.ImplicitWait < 0 {
		return fmt.Errorf("config: driver: implicit_wait must not be negative")
	}
	if c.Remote.RequestTimeout < 0 {
		return fmt.Errorf("config: remote: request_timeout must not be negative")
	}
	if c.Remote.Scheme != "http" && c.Remote.Scheme != "https" {
		return fmt.Errorf("config: remote: invalid scheme %q", c.Remote.Scheme)
	}
	if c.Session.App != "" {
		if _, ok := constants.GetAppByAlias(c.Session.App); !ok {
			return fmt.Errorf("config: session: unknown app %q", c.Session.App)
		}
	}
	return nil
}

// DriverConfig converts the file settings into what the session facade needs.
func (c Config) DriverConfig() definitions.DriverConfig {
	return definitions.DriverConfig{
		ImplicitWait:      time.Duration(c.Driver.ImplicitWait),
		Lang:              c.Driver.Lang,
		Scheme:            c.Remote.Scheme,
		BasePath:          c.Remote.BasePath,
		URLTemplate:       c.Remote.URLTemplate,
		RequestTimeout:    time.Duration(c.Remote.RequestTimeout),
		ExtraCapabilities: c.Capabilities,
	}
}

// SessionParams returns the session parameters, filling the app package and
// activity from the app registry when an app alias is set. On iOS the
// registry's bundle id stands in for the package.
func (c Config) SessionParams() (definitions.SessionParams, error) {
	params := definitions.SessionParams{
		PlatformName:   c.Session.Platform,
		UDID:           c.Session.UDID,
		AppPackage:     c.Session.AppPackage,
		AppActivity:    c.Session.AppActivity,
		AutomationName: c.Session.AutomationName,
		RemoteHost:     c.Remote.Host,
		RemotePort:     c.Remote.Port,
	}
	if c.Session.App == "" {
		return params, nil
	}

	app, ok := constants.GetAppByAlias(c.Session.App)
	if !ok {
		return params, fmt.Errorf("config: session: unknown app %q", c.Session.App)
	}
	ios := strings.EqualFold(params.PlatformName, string(constants.IOS))
	if params.AppPackage == "" {
		params.AppPackage = lo.Ternary(ios, app.BundleID, app.Package)
	}
	if params.AppActivity == "" && !ios {
		params.AppActivity = app.Activity
	}
	return params, nil
}

// Duration is a time.Duration that reads plain integers as seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ParseDuration accepts "10" (seconds) as well as Go duration strings like
// "1m30s".
func ParseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

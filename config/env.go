package config

import "fmt"

const envPrefix = "MOBILEDRIVER_"

// ApplyEnv overrides fields with MOBILEDRIVER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	stringFields := map[string]*string{
		"PLATFORM":        &c.Session.Platform,
		"UDID":            &c.Session.UDID,
		"APP":             &c.Session.App,
		"APP_PACKAGE":     &c.Session.AppPackage,
		"APP_ACTIVITY":    &c.Session.AppActivity,
		"AUTOMATION_NAME": &c.Session.AutomationName,
		"HOST":            &c.Remote.Host,
		"PORT":            &c.Remote.Port,
		"SCHEME":          &c.Remote.Scheme,
		"BASE_PATH":       &c.Remote.BasePath,
		"URL_TEMPLATE":    &c.Remote.URLTemplate,
		"LANG":            &c.Driver.Lang,
	}
	for key, field := range stringFields {
		if value, ok := lookup(envPrefix + key); ok && value != "" {
			*field = value
		}
	}

	durations := map[string]*Duration{
		"IMPLICIT_WAIT":   &c.Driver.ImplicitWait,
		"REQUEST_TIMEOUT": &c.Remote.RequestTimeout,
	}
	for key, field := range durations {
		value, ok := lookup(envPrefix + key)
		if !ok || value == "" {
			continue
		}
		d, err := ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
		}
		*field = Duration(d)
	}
	return nil
}

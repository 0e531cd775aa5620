package mobiledriver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/android"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/spance/mobiledriver/mobiledriver/ios"
)

type capabilityBuilder func(params definitions.SessionParams) definitions.Capabilities

var capabilityBuilders = map[constants.Platform]capabilityBuilder{
	constants.Android: android.Capabilities,
	constants.IOS:     ios.Capabilities,
}

// ParsePlatform maps a platform name onto a known platform, ignoring case.
func ParsePlatform(name string) (constants.Platform, error) {
	for _, p := range constants.Platforms {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %v)", definitions.ErrInvalidPlatform, name, constants.Platforms)
}

// BuildCapabilities returns the capability set for params with extra merged
// underneath the platform-derived capabilities.
func BuildCapabilities(params definitions.SessionParams, extra map[string]any) (definitions.Capabilities, error) {
	platform, err := ParsePlatform(params.PlatformName)
	if err != nil {
		return nil, err
	}
	return capabilityBuilders[platform](params).Merge(extra), nil
}

// Dispatch builds the capability set for the requested platform and opens a
// session with it at endpoint.
func Dispatch(ctx context.Context, connector Connector, endpoint string, params definitions.SessionParams, extra map[string]any) (Driver, error) {
	caps, err := BuildCapabilities(params, extra)
	if err != nil {
		log.Error().Err(err).Str("platform", params.PlatformName).Msg("[Dispatch] unsupported platform")
		return nil, err
	}

	log.Debug().Str("endpoint", endpoint).Str("platform", params.PlatformName).Msg("[Dispatch] connecting")
	driver, err := connector.Connect(ctx, endpoint, caps)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", endpoint, err)
	}
	if driver == nil {
		return nil, fmt.Errorf("connect %s: connector returned no driver", endpoint)
	}
	return driver, nil
}

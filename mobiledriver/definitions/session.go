package definitions

import (
	"github.com/samber/lo"
)

// SessionParams carries everything needed to open a session on a remote
// automation server. Values are passed through as given; only the remote
// server interprets them.
type SessionParams struct {
	PlatformName   string `json:"platform_name"`
	UDID           string `json:"udid"`
	AppPackage     string `json:"app_package"`
	AppActivity    string `json:"app_activity"`
	AutomationName string `json:"automation_name"`
	RemoteHost     string `json:"remote_host"`
	RemotePort     string `json:"remote_port"`
}

// Capabilities is the set of named parameters sent to the automation server
// when a session is created.
type Capabilities map[string]any

// Merge returns a copy of c with extra applied on top. Keys already present
// in c win, so extras can add capabilities but never replace ones derived from
// the session parameters.
func (c Capabilities) Merge(extra map[string]any) Capabilities {
	return lo.Assign(Capabilities(extra), c)
}

// SetIfNotEmpty stores value under key unless value is empty.
func (c Capabilities) SetIfNotEmpty(key, value string) {
	if value != "" {
		c[key] = value
	}
}

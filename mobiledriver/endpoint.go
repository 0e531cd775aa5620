package mobiledriver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spance/mobiledriver/constants"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/valyala/fasttemplate"
)

// RemoteURL renders the automation server URL for host and port. The
// template may reference {scheme}, {host}, {port} and {base_path}; unknown
// tags are left in place and make the result malformed.
func RemoteURL(cfg definitions.DriverConfig, host, port string) (string, error) {
	if strings.TrimSpace(host) == "" {
		return "", fmt.Errorf("%w: empty host", definitions.ErrMalformedURL)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("%w: invalid port %q", definitions.ErrMalformedURL, port)
	}
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}

	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = constants.DefaultURLTemplate
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = constants.DefaultScheme
	}

	raw := fasttemplate.ExecuteStringStd(tmpl, "{", "}", map[string]any{
		"scheme":    scheme,
		"host":      host,
		"port":      port,
		"base_path": cfg.BasePath,
	})

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", definitions.ErrMalformedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q in %q", definitions.ErrMalformedURL, u.Scheme, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: no host in %q", definitions.ErrMalformedURL, raw)
	}
	return raw, nil
}

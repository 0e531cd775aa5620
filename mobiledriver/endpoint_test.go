package mobiledriver

import (
	"testing"

	"github.com/spance/mobiledriver/mobiledriver/definitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  definitions.DriverConfig
		host string
		port string
		want string
	}{
		{
			name: "defaults",
			host: "127.0.0.1",
			port: "4723",
			want: "http://127.0.0.1:4723",
		},
		{
			name: "base path",
			cfg:  definitions.DriverConfig{BasePath: "/wd/hub"},
			host: "192.168.1.20",
			port: "4444",
			want: "http://192.168.1.20:4444/wd/hub",
		},
		{
			name: "https scheme",
			cfg:  definitions.DriverConfig{Scheme: "https", BasePath: "/wd/hub"},
			host: "grid.example.com",
			port: "443",
			want: "https://grid.example.com:443/wd/hub",
		},
		{
			name: "custom template",
			cfg:  definitions.DriverConfig{URLTemplate: "http://{host}:{port}/devices/{base_path}", BasePath: "pixel"},
			host: "farm",
			port: "8080",
			want: "http://farm:8080/devices/pixel",
		},
		{
			name: "ipv6 host",
			host: "::1",
			port: "4723",
			want: "http://[::1]:4723",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemoteURL(tt.cfg, tt.host, tt.port)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteURLMalformed(t *testing.T) {
	tests := []struct {
		name string
		cfg  definitions.DriverConfig
		host string
		port string
	}{
		{name: "empty host", host: "", port: "4723"},
		{name: "blank host", host: "  ", port: "4723"},
		{name: "empty port", host: "localhost", port: ""},
		{name: "non numeric port", host: "localhost", port: "http"},
		{name: "port out of range", host: "localhost", port: "70000"},
		{name: "zero port", host: "localhost", port: "0"},
		{name: "bad scheme", cfg: definitions.DriverConfig{Scheme: "ftp"}, host: "localhost", port: "21"},
		{name: "unknown tag", cfg: definitions.DriverConfig{URLTemplate: "{proto}://{host}:{port}"}, host: "localhost", port: "4723"},
		{name: "bad host", host: "bad host", port: "4723"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RemoteURL(tt.cfg, tt.host, tt.port)
			assert.ErrorIs(t, err, definitions.ErrMalformedURL)
		})
	}
}

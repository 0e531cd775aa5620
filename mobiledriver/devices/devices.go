package devices

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spance/mobiledriver/constants"
)

const (
	adbPath      = "adb"
	ideviceIDCmd = "idevice_id"

	listTimeout = 5 * time.Second
)

type ConnectionType string

const (
	USB    ConnectionType = "usb"
	Remote ConnectionType = "remote"
)

type DeviceInfo struct {
	UDID           string             `json:"udid"`
	Platform       constants.Platform `json:"platform"`
	Status         string             `json:"status"`
	ConnectionType ConnectionType     `json:"connection_type"`
	Model          string             `json:"model,omitempty"`
}

// Online reports whether the device accepts commands.
func (d DeviceInfo) Online() bool {
	return d.Status == "device"
}

// runCommand is replaced in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// List returns the devices attached to this host for platform.
func List(ctx context.Context, platform constants.Platform) ([]DeviceInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var (
		name  string
		args  []string
		parse func(string) []DeviceInfo
	)
	switch platform {
	case constants.Android:
		name, args, parse = adbPath, []string{"devices", "-l"}, parseADBDevices
	case constants.IOS:
		name, args, parse = ideviceIDCmd, []string{"-l"}, parseIDeviceIDs
	default:
		return nil, fmt.Errorf("list devices: unsupported platform %q", platform)
	}

	log.Debug().Str("cmd", fmt.Sprintf("[List] run cmd: %s %s", name, strings.Join(args, " "))).Msg("")

	rawOutput, err := runCommand(ctx, name, args...)
	if err != nil {
		log.Error().Err(err).Str("output", string(rawOutput)).Msg("[List] run cmd failed")
		return nil, fmt.Errorf("list %s devices: %w", platform, err)
	}
	return parse(string(rawOutput)), nil
}

// FirstOnline returns the UDID of the first online device for platform.
func FirstOnline(ctx context.Context, platform constants.Platform) (string, error) {
	devices, err := List(ctx, platform)
	if err != nil {
		return "", err
	}
	device, ok := lo.Find(devices, DeviceInfo.Online)
	if !ok {
		return "", fmt.Errorf("no online %s device found", platform)
	}
	return device.UDID, nil
}

func parseADBDevices(output string) []DeviceInfo {
	var devices []DeviceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		deviceID := parts[0]
		connType := USB
		if strings.Contains(deviceID, ":") {
			connType = Remote
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, DeviceInfo{
			UDID:           deviceID,
			Platform:       constants.Android,
			Status:         parts[1],
			ConnectionType: connType,
			Model:          model,
		})
	}
	return devices
}

// parseIDeviceIDs parses `idevice_id -l`, one UDID per line. Only attached,
// trusted devices are listed, so every entry is online.
func parseIDeviceIDs(output string) []DeviceInfo {
	var devices []DeviceInfo
	for _, line := range strings.Split(output, "\n") {
		udid := strings.TrimSpace(line)
		if udid == "" {
			continue
		}
		connType := USB
		if strings.HasSuffix(udid, "(Network)") {
			udid = strings.TrimSpace(strings.TrimSuffix(udid, "(Network)"))
			connType = Remote
		}
		devices = append(devices, DeviceInfo{
			UDID:           udid,
			Platform:       constants.IOS,
			Status:         "device",
			ConnectionType: connType,
		})
	}
	return devices
}

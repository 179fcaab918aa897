package parse

import (
	"strconv"
	"strings"

	"github.com/newtron-network/vydriver/pkg/util"
)

// hardwareLabels names the "show version" lines that carry the serial number and
// the model.
type hardwareLabels struct {
	serial string
	model  string
}

// labelsByVersion is keyed by version prefix. Releases not listed use
// defaultLabels.
var labelsByVersion = []struct {
	prefix string
	labels hardwareLabels
}{
	{"1.0", hardwareLabels{serial: "S/N", model: "HW model"}},
	{"1.1", hardwareLabels{serial: "S/N", model: "HW model"}},
}

var defaultLabels = hardwareLabels{serial: "Hardware S/N", model: "Hardware model"}

func labelsFor(version string) hardwareLabels {
	for _, e := range labelsByVersion {
		if strings.HasPrefix(version, e.prefix) {
			return e.labels
		}
	}
	return defaultLabels
}

// VersionInfo is what GetFacts takes from "show version".
type VersionInfo struct {
	Version      string
	SerialNumber string
	Model        string
}

// Version reads "show version". The release is the last word of the first line
// mentioning "Version"; the hardware labels depend on that release.
func Version(output string) (VersionInfo, error) {
	all := lines(output)
	var info VersionInfo

	for _, l := range all {
		if strings.Contains(l, "Version") {
			fields := strings.Fields(l)
			info.Version = fields[len(fields)-1]
			break
		}
	}
	if info.Version == "" {
		return info, util.NewLookupError("show version", "Version")
	}

	labels := labelsFor(info.Version)
	var err error
	if info.SerialNumber, err = labeledValue(all, labels.serial); err != nil {
		return info, err
	}
	if info.Model, err = labeledValue(all, labels.model); err != nil {
		return info, err
	}
	return info, nil
}

func labeledValue(all []string, label string) (string, error) {
	for _, l := range all {
		if !strings.Contains(l, label) {
			continue
		}
		parts := strings.SplitN(l, ":", 2)
		if len(parts) != 2 {
			continue
		}
		return strings.TrimSpace(parts[1]), nil
	}
	return "", util.NewLookupError("show version", label)
}

// Uptime reads the seconds printed from /proc/uptime, truncated to whole seconds.
func Uptime(output string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(lastNonEmpty(output)), 64)
	if err != nil {
		return 0, util.NewLookupError("/proc/uptime", "uptime")
	}
	return int64(f), nil
}

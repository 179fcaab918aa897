// Package model defines the fact records returned by the driver getters.
//
// Every record has a fixed schema. Fields the device does not report carry a
// sentinel instead of being omitted: -1 for unknown numbers, "" for unknown
// strings, UnknownMAC for hardware addresses and the InvalidSensor key for
// sensor families the platform does not expose.
package model

const (
	// UnknownMAC is reported when a hardware address cannot be resolved.
	UnknownMAC = "00:00:00:00:00:00"

	// InvalidSensor keys the placeholder record of an unsupported sensor family.
	InvalidSensor = "invalid"

	// Vendor is the value of Facts.Vendor.
	Vendor = "VyOS"

	// GlobalTable is the only BGP routing table reported.
	GlobalTable = "global"
)

// Facts describes the device as a whole.
type Facts struct {
	Uptime        int64    `json:"uptime"`
	Vendor        string   `json:"vendor"`
	OSVersion     string   `json:"os_version"`
	SerialNumber  string   `json:"serial_number"`
	Model         string   `json:"model"`
	Hostname      string   `json:"hostname"`
	FQDN          string   `json:"fqdn"`
	InterfaceList []string `json:"interface_list"`
}

// ConfigViews holds the configuration stores returned by GetConfig. Stores that
// were not requested are "".
type ConfigViews struct {
	Running   string `json:"running"`
	Candidate string `json:"candidate"`
	Startup   string `json:"startup"`
}

package model

// Environment is a snapshot of sensors and resource usage.
type Environment struct {
	Fans        map[string]Fan         `json:"fans"`
	Temperature map[string]Temperature `json:"temperature"`
	Power       map[string]Power       `json:"power"`
	CPU         map[string]CPU         `json:"cpu"`
	Memory      Memory                 `json:"memory"`
}

type Fan struct {
	Status bool `json:"status"`
}

type Temperature struct {
	Temperature float64 `json:"temperature"`
	IsAlert     bool    `json:"is_alert"`
	IsCritical  bool    `json:"is_critical"`
}

type Power struct {
	Status   bool    `json:"status"`
	Capacity float64 `json:"capacity"`
	Output   float64 `json:"output"`
}

type CPU struct {
	Usage float64 `json:"%usage"`
}

// Memory values are in KiB as printed by free.
type Memory struct {
	AvailableRAM int64 `json:"available_ram"`
	UsedRAM      int64 `json:"used_ram"`
}

// NewEnvironment returns an Environment with the placeholder records for sensor
// families VyOS does not expose.
func NewEnvironment() Environment {
	return Environment{
		Fans:        map[string]Fan{InvalidSensor: {Status: false}},
		Temperature: map[string]Temperature{InvalidSensor: {}},
		Power:       map[string]Power{InvalidSensor: {Status: true}},
		CPU:         make(map[string]CPU),
	}
}

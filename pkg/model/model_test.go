package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment()

	if _, ok := env.Fans[InvalidSensor]; !ok {
		t.Error("fans should carry the invalid placeholder")
	}
	if _, ok := env.Temperature[InvalidSensor]; !ok {
		t.Error("temperature should carry the invalid placeholder")
	}
	if p := env.Power[InvalidSensor]; !p.Status {
		t.Error("power placeholder should report status true")
	}
	if env.CPU == nil {
		t.Error("cpu map should be allocated")
	}
}

func TestEnvironmentJSON(t *testing.T) {
	env := NewEnvironment()
	env.CPU["0"] = CPU{Usage: 5}
	env.Memory = Memory{AvailableRAM: 100, UsedRAM: 40}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"%usage":5`, `"available_ram":100`, `"invalid":{"status":false}`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON %s missing %s", data, want)
		}
	}
}

func TestBGPNeighborsDetailJSON(t *testing.T) {
	detail := BGPNeighborsDetail{
		GlobalTable: {64519: {{Up: true, RemoteAS: 64519, RemoteAddress: "192.168.1.1"}}},
	}
	data, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `{"global":{"64519":[{"up":true`) {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestPingResultJSON(t *testing.T) {
	data, err := json.Marshal(PingResult{Error: "Unknown host"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"error":"Unknown host"}` {
		t.Errorf("JSON = %s", data)
	}
}

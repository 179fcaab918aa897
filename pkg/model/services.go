package model

// NTPPeer is an empty record; the peer address is the map key.
type NTPPeer struct{}

// NTPServer is an empty record; the server address is the map key.
type NTPServer struct{}

// NTPStats is one association reported by ntpq.
type NTPStats struct {
	Remote       string  `json:"remote"`
	ReferenceID  string  `json:"referenceid"`
	Synchronized bool    `json:"synchronized"`
	Stratum      int     `json:"stratum"`
	Type         string  `json:"type"`
	When         int64   `json:"when"`
	HostPoll     int     `json:"hostpoll"`
	Reachability int     `json:"reachability"`
	Delay        float64 `json:"delay"`
	Offset       float64 `json:"offset"`
	Jitter       float64 `json:"jitter"`
}

// SNMPInformation is read from the "service snmp" configuration block.
type SNMPInformation struct {
	ChassisID string                   `json:"chassis_id"`
	Contact   string                   `json:"contact"`
	Location  string                   `json:"location"`
	Community map[string]SNMPCommunity `json:"community"`
}

type SNMPCommunity struct {
	ACL  string `json:"acl"`
	Mode string `json:"mode"`
}

// User is a local login account.
type User struct {
	Level    int      `json:"level"`
	Password string   `json:"password"`
	SSHKeys  []string `json:"sshkeys"`
}

// PingResult holds either Error or Success.
type PingResult struct {
	Error   string       `json:"error,omitempty"`
	Success *PingSuccess `json:"success,omitempty"`
}

// PingSuccess summarizes a probe burst. RTT fields are -1 when not reported.
type PingSuccess struct {
	ProbesSent int         `json:"probes_sent"`
	PacketLoss int         `json:"packet_loss"`
	RTTMin     float64     `json:"rtt_min"`
	RTTMax     float64     `json:"rtt_max"`
	RTTAvg     float64     `json:"rtt_avg"`
	RTTStddev  float64     `json:"rtt_stddev"`
	Results    []PingProbe `json:"results"`
}

type PingProbe struct {
	IPAddress string  `json:"ip_address"`
	RTT       float64 `json:"rtt"`
}

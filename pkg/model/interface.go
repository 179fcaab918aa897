package model

// Interface is the joined link-state and configuration view of one interface.
type Interface struct {
	IsUp        bool    `json:"is_up"`
	IsEnabled   bool    `json:"is_enabled"`
	Description string  `json:"description"`
	LastFlapped float64 `json:"last_flapped"` // always -1, not reported
	MTU         int     `json:"mtu"`
	Speed       int     `json:"speed"` // Mbit/s, 0 when auto or unset
	MACAddress  string  `json:"mac_address"`
}

// InterfaceCounters holds the receive and transmit counters of one interface.
type InterfaceCounters struct {
	TxErrors           int64 `json:"tx_errors"`
	RxErrors           int64 `json:"rx_errors"`
	TxDiscards         int64 `json:"tx_discards"`
	RxDiscards         int64 `json:"rx_discards"`
	TxOctets           int64 `json:"tx_octets"`
	RxOctets           int64 `json:"rx_octets"`
	TxUnicastPackets   int64 `json:"tx_unicast_packets"`
	RxUnicastPackets   int64 `json:"rx_unicast_packets"`
	TxMulticastPackets int64 `json:"tx_multicast_packets"`
	RxMulticastPackets int64 `json:"rx_multicast_packets"`
	TxBroadcastPackets int64 `json:"tx_broadcast_packets"`
	RxBroadcastPackets int64 `json:"rx_broadcast_packets"`
}

// InterfaceIP lists the addresses of one interface keyed by address.
type InterfaceIP struct {
	IPv4 map[string]Prefix `json:"ipv4,omitempty"`
	IPv6 map[string]Prefix `json:"ipv6,omitempty"`
}

// Prefix is the mask of a configured address.
type Prefix struct {
	PrefixLength int `json:"prefix_length"`
}

// ARPEntry is one row of the neighbor cache.
type ARPEntry struct {
	Interface string  `json:"interface"`
	MAC       string  `json:"mac"`
	IP        string  `json:"ip"`
	Age       float64 `json:"age"`
}

// LLDPNeighbor is the remote end seen on a local interface.
type LLDPNeighbor struct {
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
}

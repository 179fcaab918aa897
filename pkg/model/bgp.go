package model

// BGPNeighbors maps a routing table name to its summary. Only GlobalTable is used.
type BGPNeighbors map[string]BGPTable

// BGPTable is the summary of one routing table.
type BGPTable struct {
	RouterID string             `json:"router_id"`
	Peers    map[string]BGPPeer `json:"peers"`
}

// BGPPeer is one row of the BGP summary.
type BGPPeer struct {
	LocalAS       int64                       `json:"local_as"`
	RemoteAS      int64                       `json:"remote_as"`
	RemoteID      string                      `json:"remote_id"`
	RemoteAddress string                      `json:"remote_address"`
	IsUp          bool                        `json:"is_up"`
	IsEnabled     bool                        `json:"is_enabled"`
	Description   string                      `json:"description"`
	Uptime        int64                       `json:"uptime"`
	AddressFamily map[string]BGPAddressFamily `json:"address_family"`
}

// BGPAddressFamily holds prefix counters. -1 when the device does not report one.
type BGPAddressFamily struct {
	ReceivedPrefixes int64 `json:"received_prefixes"`
	AcceptedPrefixes int64 `json:"accepted_prefixes"`
	SentPrefixes     int64 `json:"sent_prefixes"`
}

// BGPNeighborsDetail maps a routing table to its peers grouped by remote AS.
type BGPNeighborsDetail map[string]map[int64][]BGPPeerDetail

// BGPPeerDetail is the per-neighbor detail record.
type BGPPeerDetail struct {
	Up                      bool   `json:"up"`
	LocalAS                 int64  `json:"local_as"`
	RemoteAS                int64  `json:"remote_as"`
	RouterID                string `json:"router_id"`
	LocalAddress            string `json:"local_address"`
	RoutingTable            string `json:"routing_table"`
	LocalAddressConfigured  bool   `json:"local_address_configured"`
	LocalPort               int    `json:"local_port"`
	RemoteAddress           string `json:"remote_address"`
	RemotePort              int    `json:"remote_port"`
	RemoteRouterID          string `json:"remote_router_id"`
	Description             string `json:"description"`
	RemovePrivateAS         bool   `json:"remove_private_as"`
	Suppress4ByteAS         bool   `json:"suppress_4byte_as"`
	InputMessages           int64  `json:"input_messages"`
	OutputMessages          int64  `json:"output_messages"`
	InputUpdates            int64  `json:"input_updates"`
	OutputUpdates           int64  `json:"output_updates"`
	MessagesQueuedOut       int64  `json:"messages_queued_out"`
	ConnectionState         string `json:"connection_state"`
	PreviousConnectionState string `json:"previous_connection_state"`
	Holdtime                int64  `json:"holdtime"`
	ConfiguredHoldtime      int64  `json:"configured_holdtime"`
	Keepalive               int64  `json:"keepalive"`
	ConfiguredKeepalive     int64  `json:"configured_keepalive"`
	ActivePrefixCount       int64  `json:"active_prefix_count"`
	AcceptedPrefixCount     int64  `json:"accepted_prefix_count"`
	SuppressedPrefixCount   int64  `json:"suppressed_prefix_count"`
	AdvertisedPrefixCount   int64  `json:"advertised_prefix_count"`
	ReceivedPrefixCount     int64  `json:"received_prefix_count"`
	FlapCount               int64  `json:"flap_count"`
	Uptime                  int64  `json:"uptime"`
}

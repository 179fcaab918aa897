package parse

import (
	"strings"

	"github.com/newtron-network/vydriver/pkg/duration"
	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/textfsm"
	"github.com/newtron-network/vydriver/pkg/util"
)

// Message types counted in input_messages and output_messages.
var countedMessages = map[string]bool{
	"Updates":    true,
	"Keepalives": true,
}

// BGPSummary reads "show ip bgp summary":
//
//	BGP router identifier 192.168.1.2, local AS number 64520
//	...
//	Neighbor        V    AS MsgRcvd MsgSent   TblVer  InQ OutQ Up/Down  State/PfxRcd
//	192.168.1.1     4 64519    7226    7189        0    0    0 4d23h40m        1
//	192.168.1.4     4 64522       0       0        0    0    0 never    Active
//
// A numeric State/PfxRcd column means the session is established and carries the
// received prefix count; anything else is the FSM state.
func BGPSummary(output string) (model.BGPTable, error) {
	return bgpSummary(bgpSummaryTemplate, output)
}

func bgpSummary(ext textfsm.Extractor, output string) (model.BGPTable, error) {
	table := model.BGPTable{Peers: make(map[string]model.BGPPeer)}

	rows, err := ext.ParseText(output)
	if err != nil {
		return table, err
	}
	if len(rows) == 0 {
		return table, nil
	}
	table.RouterID = rows[0].String("BGP_ROUTER_ID")

	for _, row := range rows {
		neighbor := row.String("NEIGHBOR")
		state := row.String("STATE_PREFIX_RECEIVED")
		sent := row.String("PREFIX_SENT")

		localAS, err := mustInt("show ip bgp summary", "local AS", row.String("LOCAL_AS"))
		if err != nil {
			return table, err
		}
		remoteAS, err := mustInt("show ip bgp summary", "AS of "+neighbor, row.String("NEIGHBOR_AS"))
		if err != nil {
			return table, err
		}

		received := atoiOr(state, -1)
		table.Peers[neighbor] = model.BGPPeer{
			LocalAS:       localAS,
			RemoteAS:      remoteAS,
			RemoteID:      neighbor,
			RemoteAddress: neighbor,
			IsUp:          received >= 0,
			IsEnabled:     !strings.Contains(state, "Admin") && !strings.Contains(sent, "Admin"),
			Description:   row.String("DESCRIPTION"),
			Uptime:        uptime(neighbor, row.String("UP_TIME")),
			AddressFamily: map[string]model.BGPAddressFamily{
				"ipv4": {
					ReceivedPrefixes: received,
					AcceptedPrefixes: -1,
					SentPrefixes:     atoiOr(sent, -1),
				},
			},
		}
	}
	return table, nil
}

// BGPDetail reads "show ip bgp neighbor [address]". One record is returned for
// every "BGP neighbor is" block in output.
func BGPDetail(output string) ([]model.BGPPeerDetail, error) {
	return bgpDetail(bgpDetailTemplate, output)
}

func bgpDetail(ext textfsm.Extractor, output string) ([]model.BGPPeerDetail, error) {
	rows, err := ext.ParseText(output)
	if err != nil {
		return nil, err
	}

	peers := make([]model.BGPPeerDetail, 0, len(rows))
	for _, row := range rows {
		neighbor := row.String("NEIGHBOR")
		remoteAS, err := mustInt("show ip bgp neighbor", "remote AS of "+neighbor, row.String("REMOTE_AS"))
		if err != nil {
			return nil, err
		}
		state := row.String("BGP_STATE")
		up := duration.Never
		if s := row.String("UP_TIME"); s != "" {
			up = uptime(neighbor, s)
		}

		p := model.BGPPeerDetail{
			Up:                      state == "Established",
			LocalAS:                 atoiOr(row.String("LOCAL_AS"), -1),
			RemoteAS:                remoteAS,
			RouterID:                row.String("LOCAL_ROUTER_ID"),
			LocalAddress:            row.String("LOCAL_HOST"),
			RoutingTable:            model.GlobalTable,
			LocalAddressConfigured:  row.String("LOCAL_ROUTER_ID") != "",
			LocalPort:               int(atoiOr(row.String("LOCAL_PORT"), -1)),
			RemoteAddress:           neighbor,
			RemotePort:              int(atoiOr(row.String("FOREIGN_PORT"), -1)),
			RemoteRouterID:          row.String("REMOTE_ROUTER_ID"),
			Description:             row.String("DESCRIPTION"),
			RemovePrivateAS:         row.String("REMOVE_PRIVATE_AS") != "",
			Suppress4ByteAS:         !strings.Contains(row.String("FOUR_BYTE_AS_CAPABILITY"), "advertised"),
			MessagesQueuedOut:       atoiOr(row.String("OUTQ_DEPTH"), -1),
			ConnectionState:         strings.ToLower(state),
			PreviousConnectionState: row.String("LAST_RESET_REASON"),
			Holdtime:                atoiOr(row.String("HOLD_TIME"), -1),
			ConfiguredHoldtime:      atoiOr(row.String("CONFIGURED_HOLD_TIME"), -1),
			Keepalive:               atoiOr(row.String("KEEPALIVE_INTERVAL"), -1),
			ConfiguredKeepalive:     atoiOr(row.String("CONFIGURED_KEEPALIVE_INTERVAL"), -1),
			ActivePrefixCount:       -1,
			SuppressedPrefixCount:   -1,
			AdvertisedPrefixCount:   -1,
			FlapCount:               atoiOr(row.String("CONNECTIONS_DROPPED"), 0),
			Uptime:                  up,
		}

		p.ReceivedPrefixCount = atoiOr(row.String("RECEIVED_PREFIXES_IPV4"), 0) +
			atoiOr(row.String("RECEIVED_PREFIXES_IPV6"), 0)
		p.AcceptedPrefixCount = p.ReceivedPrefixCount

		p.InputMessages, p.OutputMessages, p.InputUpdates, p.OutputUpdates = messageTotals(row)
		peers = append(peers, p)
	}
	return peers, nil
}

// messageTotals sums the Updates and Keepalives rows of the message statistics
// table. The other message types are left out of the totals.
func messageTotals(row textfsm.Row) (in, out, inUpdates, outUpdates int64) {
	types := row.List("MESSAGE_STATISTICS_TYPE")
	sent := row.List("MESSAGE_STATISTICS_SENT")
	rcvd := row.List("MESSAGE_STATISTICS_RECEIVED")
	for i, t := range types {
		if i >= len(sent) || i >= len(rcvd) {
			break
		}
		s, r := atoiOr(sent[i], 0), atoiOr(rcvd[i], 0)
		if countedMessages[t] {
			in += r
			out += s
		}
		if t == "Updates" {
			inUpdates, outUpdates = r, s
		}
	}
	return in, out, inUpdates, outUpdates
}

// uptime converts an Up/Down column, falling back to duration.Never when the
// daemon prints a form the duration grammars do not cover.
func uptime(neighbor, s string) int64 {
	secs, err := duration.Parse(s)
	if err != nil {
		util.WithFields(map[string]interface{}{"neighbor": neighbor}).
			Warnf("bgp: unrecognised uptime %q", s)
		return duration.Never
	}
	return secs
}

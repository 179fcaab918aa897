package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/vydriver/internal/testutil"
	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

func TestInterfaceTable(t *testing.T) {
	rows, err := InterfaceTable(testutil.ShowInterfaces)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	tests := []struct {
		name    string
		addrs   []string
		enabled bool
		up      bool
		descr   string
	}{
		{"eth0", []string{"192.168.1.1/24"}, true, true, "Management"},
		{"eth1", []string{"10.0.0.1/30", "2001:db8::1/64"}, true, false, "uplink to core"},
		{"eth2", nil, false, false, ""},
		{"lo", []string{"127.0.0.1/8", "::1/128"}, true, true, ""},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := rows[i]
			assert.Equal(t, tt.name, row.Name)
			assert.Equal(t, tt.addrs, row.Addresses)
			assert.Equal(t, tt.enabled, row.IsEnabled())
			assert.Equal(t, tt.up, row.IsUp())
			assert.Equal(t, tt.descr, row.Description)
		})
	}
}

func TestInterfaceTable_NoDivider(t *testing.T) {
	_, err := InterfaceTable("eth0 192.168.1.1/24 u/u\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrLookup))

	rows, err := InterfaceTable("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInterfacesIP(t *testing.T) {
	rows, err := InterfaceTable(testutil.ShowInterfaces)
	require.NoError(t, err)

	ips, err := InterfacesIP(rows)
	require.NoError(t, err)

	assert.NotContains(t, ips, "eth2")
	assert.Equal(t, model.InterfaceIP{
		IPv4: map[string]model.Prefix{"10.0.0.1": {PrefixLength: 30}},
		IPv6: map[string]model.Prefix{"2001:db8::1": {PrefixLength: 64}},
	}, ips["eth1"])
	assert.Equal(t, 8, ips["lo"].IPv4["127.0.0.1"].PrefixLength)
	assert.Equal(t, 128, ips["lo"].IPv6["::1"].PrefixLength)
	assert.Nil(t, ips["eth0"].IPv6)
}

func TestInterfacesIP_BadPrefix(t *testing.T) {
	_, err := InterfacesIP([]InterfaceRow{{Name: "eth0", Addresses: []string{"10.0.0.1/x"}}})
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestARPTable(t *testing.T) {
	table, err := ARPTable(testutil.ShowARP)
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, model.ARPEntry{Interface: "eth0", MAC: "00:50:56:97:af:b1", IP: "10.129.2.254", Age: 0.0}, table[0])
	assert.Equal(t, model.ARPEntry{Interface: "eth1", MAC: model.UnknownMAC, IP: "192.168.1.134", Age: 0.0}, table[1])
	assert.Equal(t, "eth1", table[2].Interface)
}

func TestARPTable_HeaderOnly(t *testing.T) {
	table, err := ARPTable("Address HWtype HWaddress Flags Mask Iface\n")
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.NotNil(t, table)
}

func TestInterfaceCounters(t *testing.T) {
	counters := InterfaceCounters(testutil.ShowInterfacesDetail)
	require.Len(t, counters, 2)

	assert.Equal(t, model.InterfaceCounters{
		RxOctets:           35960043,
		RxUnicastPackets:   464584,
		RxErrors:           0,
		RxDiscards:         221,
		RxMulticastPackets: 407,
		RxBroadcastPackets: -1,
		TxOctets:           32776498,
		TxUnicastPackets:   279273,
		TxErrors:           0,
		TxDiscards:         0,
		TxMulticastPackets: -1,
		TxBroadcastPackets: -1,
	}, counters["eth0"])

	eth1 := counters["eth1"]
	assert.Equal(t, int64(123456), eth1.RxOctets)
	assert.Equal(t, int64(654321), eth1.TxOctets)
	assert.Equal(t, int64(4), eth1.TxErrors)
	assert.Equal(t, int64(5), eth1.TxDiscards)
}

// Two headers and four tuples: tuples 0 and 1 belong to the first interface,
// tuples 2 and 3 to the second.
func TestInterfaceCounters_PositionalParity(t *testing.T) {
	output := `eth0: <UP>
1 2 3 4 5 6
11 12 13 14 15 16
eth1: <UP>
21 22 23 24 25 26
31 32 33 34 35 36
`
	counters := InterfaceCounters(output)
	require.Len(t, counters, 2)

	assert.Equal(t, int64(1), counters["eth0"].RxOctets)
	assert.Equal(t, int64(6), counters["eth0"].RxMulticastPackets)
	assert.Equal(t, int64(11), counters["eth0"].TxOctets)
	assert.Equal(t, int64(21), counters["eth1"].RxOctets)
	assert.Equal(t, int64(31), counters["eth1"].TxOctets)
	assert.Equal(t, int64(34), counters["eth1"].TxDiscards)
}

func TestPairConsecutive(t *testing.T) {
	tuples := []counterTuple{{1}, {2}, {3}, {4}, {5}}
	pairs := pairConsecutive(tuples)
	require.Len(t, pairs, 2)
	assert.Equal(t, counterPair{rx: counterTuple{1}, tx: counterTuple{2}}, pairs[0])
	assert.Equal(t, counterPair{rx: counterTuple{3}, tx: counterTuple{4}}, pairs[1])

	assert.Empty(t, pairConsecutive(nil))
}

func TestInterfaceCounters_MissingTransmitLine(t *testing.T) {
	output := `eth0: <UP>
1 2 3 4 5 6
eth1: <UP>
21 22 23 24 25 26
31 32 33 34 35 36
`
	counters := InterfaceCounters(output)
	// eth0 takes eth1's receive tuple as its transmit counters; eth1 has no pair left.
	require.Len(t, counters, 1)
	assert.Equal(t, int64(21), counters["eth0"].TxOctets)
}

func TestLLDPNeighbors(t *testing.T) {
	neighbors := LLDPNeighbors(testutil.ShowLLDPNeighborsDetail)
	assert.Equal(t, map[string][]model.LLDPNeighbor{
		"eth0": {{Hostname: "switch1.example.net", Port: "Ethernet1"}},
		"eth1": {{Hostname: "core2", Port: "xe-0/0/2"}},
	}, neighbors)
}

func TestLLDPNeighbors_PortDescrFallback(t *testing.T) {
	output := `Interface:    eth3, via: LLDP, RID: 4, Time: 0 day, 00:00:10
  Chassis:
    SysName:      edge9
  Port:
    PortID:       mac 00:11:22:33:44:55
    PortDescr:    ge-0/0/7
Interface:    eth4, via: LLDP, RID: 5, Time: 0 day, 00:00:10
  Chassis:
    ChassisID:    mac 00:11:22:33:44:66
`
	neighbors := LLDPNeighbors(output)
	assert.Equal(t, map[string][]model.LLDPNeighbor{
		"eth3": {{Hostname: "edge9", Port: "ge-0/0/7"}},
	}, neighbors)
}

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

func TestNTPStats(t *testing.T) {
	stats, err := NTPStats(testutil.NTPQ)
	require.NoError(t, err)
	require.Len(t, stats, 4)

	assert.Equal(t, model.NTPStats{
		Remote:       "116.91.118.97",
		ReferenceID:  "133.243.238.244",
		Synchronized: true,
		Stratum:      2,
		Type:         "u",
		When:         51,
		HostPoll:     64,
		Reachability: 377,
		Delay:        5.436,
		Offset:       987971,
		Jitter:       1694.82,
	}, stats[0])

	assert.False(t, stats[1].Synchronized)
	assert.Equal(t, ".GPS.", stats[1].ReferenceID)
	assert.Equal(t, int64(120), stats[2].When)
	assert.Equal(t, int64(0), stats[3].When)
	assert.Equal(t, 16, stats[3].Stratum)
}

func TestNTPStats_Malformed(t *testing.T) {
	_, err := NTPStats("header\n=====\n 10.0.0.1 .INIT. 16 u\n")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestNTPWhen(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"-", 0},
		{"51", 51},
		{"2m", 120},
		{"3h", 10800},
		{"2d", 172800},
	}
	for _, tt := range tests {
		got, err := ntpWhen(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ntpWhen("soon")
	assert.Error(t, err)
}

func TestNTPPeers(t *testing.T) {
	peers, err := NTPPeers(testutil.NTPQ)
	require.NoError(t, err)
	assert.Equal(t, map[string]model.NTPPeer{
		"116.91.118.97":   {},
		"219.117.210.137": {},
		"133.130.120.204": {},
		"10.0.0.5":        {},
	}, peers)

	peers, err = NTPPeers("")
	require.NoError(t, err)
	assert.Empty(t, peers)
}

func TestCPUUsage(t *testing.T) {
	cpu, err := CPUUsage(testutil.VMStat)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cpu)

	legacy := `procs -----------memory---------- ---swap-- -----io---- -system-- ----cpu----
 r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa
 0  0      0  61404 139624 139360    0    0     0     0    9   14  0  0 100  0

`
	cpu, err = CPUUsage(legacy)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cpu)
}

func TestCPUUsage_Empty(t *testing.T) {
	_, err := CPUUsage("\n\n")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestMemory(t *testing.T) {
	mem, err := Memory(testutil.Free)
	require.NoError(t, err)
	assert.Equal(t, model.Memory{AvailableRAM: 508156, UsedRAM: 446784}, mem)

	_, err = Memory("Swap: 0 0 0\n")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   VersionInfo
	}{
		{
			name:   "current labels",
			output: testutil.ShowVersion,
			want: VersionInfo{
				Version:      "1.3.2",
				SerialNumber: "VM-4711",
				Model:        "Standard PC (i440FX + PIIX, 1996)",
			},
		},
		{
			name:   "helium labels",
			output: testutil.ShowVersionHelium,
			want: VersionInfo{
				Version:      "1.1.8",
				SerialNumber: "VMware-42 1d 83 b9",
				Model:        "VMware Virtual Platform",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Version(tt.output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_MissingLabel(t *testing.T) {
	_, err := Version("Version: VyOS 1.4.0\nHW model: x\n")
	require.Error(t, err)
	var lookup *util.LookupError
	require.True(t, errors.As(err, &lookup))
	assert.Equal(t, "Hardware S/N", lookup.Key)

	_, err = Version("nothing useful\n")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "S/N", labelsFor("1.0.5").serial)
	assert.Equal(t, "HW model", labelsFor("1.1.8").model)
	assert.Equal(t, defaultLabels, labelsFor("1.2.9"))
	assert.Equal(t, defaultLabels, labelsFor("1.4-rolling-202301010000"))
}

func TestUptime(t *testing.T) {
	up, err := Uptime(testutil.ProcUptime)
	require.NoError(t, err)
	assert.Equal(t, int64(81234), up)

	_, err = Uptime("cat: /proc/uptime: No such file\n")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

func TestUsers(t *testing.T) {
	users := Users(testutil.ShowConfigurationCommands)
	assert.Equal(t, map[string]model.User{
		"vyos": {
			Level:    15,
			Password: "$6$vyos$hash",
			SSHKeys:  []string{},
		},
		"alice": {
			Level:    0,
			Password: "$6$alice$hash",
			SSHKeys:  []string{"AAAAB3NzaC1yc2E"},
		},
	}, users)
}

func TestUsers_ShortLinesIgnored(t *testing.T) {
	users := Users("set system login user bob\nset system login\n")
	assert.Empty(t, users)
}

func TestPing(t *testing.T) {
	result, err := Ping(testutil.PingOK, "192.0.2.1")
	require.NoError(t, err)
	require.NotNil(t, result.Success)
	assert.Empty(t, result.Error)

	s := result.Success
	assert.Equal(t, 5, s.ProbesSent)
	assert.Equal(t, 1, s.PacketLoss)
	assert.Equal(t, 0.307, s.RTTMin)
	assert.Equal(t, 0.396, s.RTTAvg)
	assert.Equal(t, 0.480, s.RTTMax)
	assert.Equal(t, 0.061, s.RTTStddev)
	assert.Equal(t, []model.PingProbe{{IPAddress: "192.0.2.1", RTT: 0.396}}, s.Results)
}

func TestPing_NoTrailingNewline(t *testing.T) {
	result, err := Ping("5 packets transmitted, 5 received, 0% packet loss, time 4005ms\nrtt min/avg/max/mdev = 1.0/2.0/3.0/0.5 ms", "h")
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.Success.RTTAvg)
	assert.Equal(t, 0, result.Success.PacketLoss)
}

func TestPing_AllLost(t *testing.T) {
	result, err := Ping("3 packets transmitted, 0 received, 100% packet loss, time 2002ms\n", "h")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Success.PacketLoss)
	assert.Equal(t, -1.0, result.Success.RTTAvg)
}

func TestPing_UnknownHost(t *testing.T) {
	result, err := Ping(testutil.PingUnknownHost, "nosuchhost")
	require.NoError(t, err)
	assert.Equal(t, model.PingResult{Error: "Unknown host"}, result)
}

func TestPing_Unparseable(t *testing.T) {
	_, err := Ping("garbage\n", "h")
	assert.True(t, errors.Is(err, util.ErrLookup))
}

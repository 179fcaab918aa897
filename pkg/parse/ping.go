package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

var (
	pingPackets = regexp.MustCompile(`(\d+) packets transmitted, (\d+) (?:packets )?received`)
	pingRTT     = regexp.MustCompile(`([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+)`)
)

// Ping reads the summary printed by ping:
//
//	5 packets transmitted, 5 received, 0% packet loss, time 3997ms
//	rtt min/avg/max/mdev = 0.307/0.396/0.480/0.061 ms
//
// Output naming an unknown host yields an error record.
func Ping(output, destination string) (model.PingResult, error) {
	if strings.Contains(output, "Unknown host") {
		return model.PingResult{Error: "Unknown host"}, nil
	}

	m := pingPackets.FindStringSubmatch(output)
	if m == nil {
		return model.PingResult{}, util.NewLookupError("ping", "packets transmitted")
	}
	sent, _ := strconv.Atoi(m[1])
	received, _ := strconv.Atoi(m[2])

	success := &model.PingSuccess{
		ProbesSent: sent,
		PacketLoss: sent - received,
		RTTMin:     -1,
		RTTAvg:     -1,
		RTTMax:     -1,
		RTTStddev:  -1,
	}
	if r := pingRTT.FindStringSubmatch(lastNonEmpty(output)); r != nil {
		success.RTTMin, _ = strconv.ParseFloat(r[1], 64)
		success.RTTAvg, _ = strconv.ParseFloat(r[2], 64)
		success.RTTMax, _ = strconv.ParseFloat(r[3], 64)
		success.RTTStddev, _ = strconv.ParseFloat(r[4], 64)
	}
	success.Results = []model.PingProbe{{IPAddress: destination, RTT: success.RTTAvg}}
	return model.PingResult{Success: success}, nil
}

package parse

import (
	"regexp"
	"strings"

	"github.com/newtron-network/vydriver/pkg/model"
	"github.com/newtron-network/vydriver/pkg/util"
)

var counterHeader = regexp.MustCompile(`^(\S+): <`)

// counterTuple is one line of six counters, as printed under "RX:" or "TX:".
type counterTuple [6]int64

// counterPair is the receive and transmit tuple of one interface.
type counterPair struct {
	rx, tx counterTuple
}

// InterfaceCounters reads "show interfaces detail":
//
//	eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc pfifo_fast state UP
//	    link/ether 00:50:56:86:8c:26 brd ff:ff:ff:ff:ff:ff
//	    RX:  bytes    packets     errors    dropped    overrun      mcast
//	      35960043     464584          0        221          0        407
//	    TX:  bytes    packets     errors    dropped    carrier collisions
//	      32776498     279273          0          0          0          0
//
// The output is reduced to the ordered interface headers and the ordered counter
// tuples. Tuples carry no RX/TX marker, so they are paired by position and the
// pairs are matched to the headers in order. An interface that prints only one
// tuple shifts every interface after it.
func InterfaceCounters(output string) map[string]model.InterfaceCounters {
	var headers []string
	var tuples []counterTuple
	for _, l := range lines(output) {
		if m := counterHeader.FindStringSubmatch(strings.TrimSpace(l)); m != nil {
			headers = append(headers, m[1])
			continue
		}
		if t, ok := parseCounterTuple(l); ok {
			tuples = append(tuples, t)
		}
	}

	pairs := pairConsecutive(tuples)
	if len(pairs) != len(headers) {
		util.WithCommand("show interfaces detail").Warnf("%d interfaces but %d counter pairs", len(headers), len(pairs))
	}

	counters := make(map[string]model.InterfaceCounters)
	for i, name := range headers {
		if i >= len(pairs) {
			break
		}
		rx, tx := pairs[i].rx, pairs[i].tx
		counters[name] = model.InterfaceCounters{
			RxOctets:           rx[0],
			RxUnicastPackets:   rx[1],
			RxErrors:           rx[2],
			RxDiscards:         rx[3],
			RxMulticastPackets: rx[5],
			RxBroadcastPackets: -1,
			TxOctets:           tx[0],
			TxUnicastPackets:   tx[1],
			TxErrors:           tx[2],
			TxDiscards:         tx[3],
			TxMulticastPackets: -1,
			TxBroadcastPackets: -1,
		}
	}
	return counters
}

// pairConsecutive groups the tuples two by two: even positions are receive
// counters, odd positions transmit counters. A trailing unpaired tuple is dropped.
func pairConsecutive(tuples []counterTuple) []counterPair {
	if len(tuples)%2 != 0 {
		util.WithCommand("show interfaces detail").Warnf("dropping unpaired counter tuple %v", tuples[len(tuples)-1])
	}
	pairs := make([]counterPair, 0, len(tuples)/2)
	for i := 0; i+1 < len(tuples); i += 2 {
		pairs = append(pairs, counterPair{rx: tuples[i], tx: tuples[i+1]})
	}
	return pairs
}

// parseCounterTuple accepts a line made of exactly six unsigned integers.
func parseCounterTuple(l string) (counterTuple, bool) {
	var t counterTuple
	fields := strings.Fields(l)
	if len(fields) != len(t) {
		return t, false
	}
	for i, f := range fields {
		n := atoiOr(f, -1)
		if n < 0 {
			return t, false
		}
		t[i] = n
	}
	return t, true
}

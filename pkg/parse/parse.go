// Package parse turns VyOS command output into fact records.
//
// Each function handles one output shape and is independent of the session that
// produced the text. Table outputs are read with small line tokenizers; the two BGP
// outputs are read with the TextFSM templates embedded from templates/.
package parse

import (
	"embed"
	"strconv"
	"strings"

	"github.com/newtron-network/vydriver/pkg/textfsm"
	"github.com/newtron-network/vydriver/pkg/util"
)

//go:embed templates/*.textfsm
var templates embed.FS

var (
	bgpSummaryTemplate = mustTemplate("bgp_summary.textfsm")
	bgpDetailTemplate  = mustTemplate("bgp_detail.textfsm")
)

func mustTemplate(name string) *textfsm.Template {
	text, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(err)
	}
	return textfsm.MustParse(string(text))
}

// lines splits output into lines with trailing carriage returns removed.
func lines(output string) []string {
	out := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, " \t\r")
	}
	return out
}

// lastNonEmpty returns the last line that is not blank.
func lastNonEmpty(output string) string {
	ls := lines(output)
	for i := len(ls) - 1; i >= 0; i-- {
		if strings.TrimSpace(ls[i]) != "" {
			return ls[i]
		}
	}
	return ""
}

// atoiOr parses s as a base-10 integer, returning def when s is not a number.
func atoiOr(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// mustInt parses a field that the output format guarantees to be numeric.
func mustInt(source, field, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, util.NewLookupError(source, field)
	}
	return n, nil
}

// mustFloat is mustInt for decimal fields.
func mustFloat(source, field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, util.NewLookupError(source, field)
	}
	return f, nil
}

package textfsm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routesTemplate = `# Simple routing table template
Value Filldown VRF (\S+)
Value Required PREFIX (\S+)
Value List NEXTHOP (\d+\.\d+\.\d+\.\d+)

Start
  ^VRF ${VRF}
  ^Route -> Continue.Record
  ^Route ${PREFIX} via ${NEXTHOP}
  ^\s+via ${NEXTHOP}
  ^END -> End
`

func TestParseText_FilldownRequiredList(t *testing.T) {
	tmpl, err := Parse(routesTemplate)
	require.NoError(t, err)
	assert.Equal(t, []string{"VRF", "PREFIX", "NEXTHOP"}, tmpl.Header())

	input := strings.Join([]string{
		"VRF red",
		"Route 10.0.0.0/8 via 192.0.2.1",
		"   via 192.0.2.2",
		"Route 10.1.0.0/16 via 192.0.2.3",
		"VRF blue",
		"Route 172.16.0.0/12 via 198.51.100.1",
		"END",
		"Route 1.1.1.0/24 via 203.0.113.1",
	}, "\n")

	rows, err := tmpl.ParseText(input)
	require.NoError(t, err)

	// The route in progress at END is dropped since End skips the final record.
	require.Len(t, rows, 2)
	assert.Equal(t, "red", rows[0].String("VRF"))
	assert.Equal(t, "10.0.0.0/8", rows[0].String("PREFIX"))
	assert.Equal(t, []string{"192.0.2.1", "192.0.2.2"}, rows[0].List("NEXTHOP"))
	assert.Equal(t, "10.1.0.0/16", rows[1].String("PREFIX"))
	assert.Equal(t, []string{"192.0.2.3"}, rows[1].List("NEXTHOP"))
	assert.Equal(t, "blue", rows[1].String("VRF"), "filldown value is read at record time")
}

const statesTemplate = `Value NAME (\S+)
Value COUNT (\d+)

Start
  ^Items: -> Items

Items
  ^${NAME}\s+${COUNT}\s*$$ -> Record
  ^bad line -> Error "unexpected input"
  ^done -> Start

EOF
`

func TestParseText_StatesAndEOF(t *testing.T) {
	tmpl, err := Parse(statesTemplate)
	require.NoError(t, err)

	rows, err := tmpl.ParseText("header\napple 3\nItems:\napple 3\npear 10\ndone\nplum 1\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"NAME": "apple", "COUNT": "3"}, rows[0])
	assert.Equal(t, Row{"NAME": "pear", "COUNT": "10"}, rows[1])

	_, err = tmpl.ParseText("Items:\nbad line\n")
	require.Error(t, err)
}

func TestParseText_ImplicitEOFRecord(t *testing.T) {
	tmpl := MustParse("Value A (\\w+)\nValue B (\\w+)\n\nStart\n  ^a=${A}\n  ^b=${B}\n")
	rows, err := tmpl.ParseText("a=1\nb=2\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].String("A"))
	assert.Equal(t, "2", rows[0].String("B"))

	rows, err = tmpl.ParseText("nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, rows, "an all-empty record is never emitted")
}

func TestParseText_Clearall(t *testing.T) {
	tmpl := MustParse(`Value Filldown HOST (\S+)
Value ITEM (\S+)

Start
  ^host ${HOST}
  ^item ${ITEM} -> Record
  ^reset -> Clearall
`)
	rows, err := tmpl.ParseText("host r1\nitem a\nreset\nitem b\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0].String("HOST"))
	assert.Equal(t, "", rows[1].String("HOST"))
	assert.Equal(t, "b", rows[1].String("ITEM"))
}

func TestRow_List(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Row{"X": []string{"a", "b"}}.List("X"))
	assert.Equal(t, []string{"a"}, Row{"X": []any{"a"}}.List("X"))
	assert.Nil(t, Row{"X": "a"}.List("X"))
	assert.Equal(t, "", Row{}.String("X"))
}

func TestValueNames(t *testing.T) {
	assert.Equal(t, []string{"VRF", "PREFIX", "NEXTHOP"}, valueNames(routesTemplate))
	assert.Equal(t, []string{"A"}, valueNames("Value A (x y)\nValue\n\nStart\n"))
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"no values":         "Start\n  ^x\n",
		"no start":          "Value A (\\d+)\n\nOther\n  ^${A}\n",
		"bad option":        "Value Sometimes A (\\d+)\n\nStart\n  ^${A}\n",
		"unparenthesized":   "Value A \\d+\n\nStart\n  ^${A}\n",
		"undefined value":   "Value A (\\d+)\n\nStart\n  ^${B}\n",
		"undefined state":   "Value A (\\d+)\n\nStart\n  ^${A} -> Nowhere\n",
		"continue to state": "Value A (\\d+)\n\nStart\n  ^${A} -> Continue Start\n",
		"rule without ^":    "Value A (\\d+)\n\nStart\n  ${A}\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			assert.Error(t, err)
		})
	}
}

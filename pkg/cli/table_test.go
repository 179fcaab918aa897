package cli

import (
	"bytes"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "INTERFACE", "STATE", "DESCRIPTION")
	tbl.Row("eth0", "up", "Management")
	tbl.Row("eth10", "down", "")
	tbl.Flush()

	want := "INTERFACE  STATE  DESCRIPTION\n" +
		"---------  -----  -----------\n" +
		"eth0       up     Management\n" +
		"eth10      down   -\n"
	if got := buf.String(); got != want {
		t.Errorf("table output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	tbl.Flush()
	if buf.Len() != 0 {
		t.Errorf("empty table printed %q", buf.String())
	}
}

func TestTable_Prefix(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "AS", "PEER").WithPrefix("  ")
	tbl.Row("64519", "192.168.1.1")
	tbl.Flush()

	want := "  AS     PEER\n" +
		"  --     ----\n" +
		"  64519  192.168.1.1\n"
	if got := buf.String(); got != want {
		t.Errorf("table output:\n%q\nwant:\n%q", got, want)
	}
}

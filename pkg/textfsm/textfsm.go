// Package textfsm extracts rows from loosely structured text using declarative
// templates in the TextFSM grammar.
//
// A template is a block of Value definitions followed by one or more named states:
//
//	Value Filldown ROUTER_ID (\S+)
//	Value Required NEIGHBOR (\S+)
//
//	Start
//	  ^BGP router identifier ${ROUTER_ID}
//	  ^${NEIGHBOR}\s+\d -> Record
//
// Templates are compiled and run by github.com/sirikothe/gotextfsm. This package
// types its output as Rows and hides the engine behind Extractor.
package textfsm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirikothe/gotextfsm"
)

// Row is one extracted record. Scalar values are strings; List values are []string.
type Row map[string]any

// String returns the scalar value of name, or "" when unset.
func (r Row) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// List returns the list value of name, or nil when unset.
func (r Row) List(name string) []string {
	switch l := r[name].(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, v := range l {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Extractor is the templated-table extraction contract used by the parsers.
type Extractor interface {
	ParseText(text string) ([]Row, error)
}

// Template is a compiled template, safe to share between goroutines.
type Template struct {
	header []string

	// The engine keeps per-state bookkeeping in fsm while parsing.
	mu  sync.Mutex
	fsm gotextfsm.TextFSM
}

var _ Extractor = (*Template)(nil)

// Parse compiles a template.
func Parse(text string) (*Template, error) {
	var fsm gotextfsm.TextFSM
	if err := fsm.ParseString(text); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Template{fsm: fsm, header: valueNames(text)}, nil
}

// MustParse is like Parse but panics on error. Used for embedded templates.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Header returns the value names in declaration order.
func (t *Template) Header() []string {
	return append([]string(nil), t.header...)
}

// ParseText runs the template over text and returns the recorded rows in order.
func (t *Template) ParseText(text string) ([]Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out gotextfsm.ParserOutput
	if err := out.ParseTextString(text, t.fsm, true); err != nil {
		return nil, fmt.Errorf("extracting rows: %w", err)
	}
	rows := make([]Row, len(out.Dict))
	for i, rec := range out.Dict {
		rows[i] = Row(rec)
	}
	return rows, nil
}

// valueNames lists the names of the Value lines of a template that compiled.
// The name is the token just before the parenthesized regex.
func valueNames(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "Value" {
			continue
		}
		for i := 2; i < len(fields); i++ {
			if strings.HasPrefix(fields[i], "(") {
				names = append(names, fields[i-1])
				break
			}
		}
	}
	return names
}

// Package vyconf parses the curly-brace configuration printed by "show configuration"
// into a navigable tree.
//
// A block header with two words ("ethernet eth0 {") becomes a tag node: the first word
// is the node, the second its child. Leaf statements ("address 10.0.0.1/24") store
// their value on the named child; repeated leaves accumulate. A bare word ("disable")
// becomes a child with no values.
package vyconf

import (
	"bufio"
	"fmt"
	"strings"
)

// Node is one level of the configuration tree.
type Node struct {
	Values   []string
	children map[string]*Node
	order    []string
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// child returns the named child, creating it in insertion order if absent.
func (n *Node) child(name string) *Node {
	c, ok := n.children[name]
	if !ok {
		c = newNode()
		n.children[name] = c
		n.order = append(n.order, name)
	}
	return c
}

// Get walks path from n. It returns false if any element is missing.
func (n *Node) Get(path ...string) (*Node, bool) {
	cur := n
	for _, p := range path {
		if cur == nil {
			return nil, false
		}
		next, ok := cur.children[p]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Has reports whether path exists.
func (n *Node) Has(path ...string) bool {
	_, ok := n.Get(path...)
	return ok
}

// Value returns the first value stored at path.
func (n *Node) Value(path ...string) (string, bool) {
	c, ok := n.Get(path...)
	if !ok || len(c.Values) == 0 {
		return "", false
	}
	return c.Values[0], true
}

// ValueOr returns the first value at path, or def when absent.
func (n *Node) ValueOr(def string, path ...string) string {
	if v, ok := n.Value(path...); ok {
		return v
	}
	return def
}

// Keys returns the child names in the order they appeared in the source.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Parse builds a tree from configuration text.
func Parse(text string) (*Node, error) {
	root := newNode()
	stack := []*Node{root}

	scanner := bufio.NewScanner(strings.NewReader(stripComments(text)))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == "}" {
			if len(stack) == 1 {
				return nil, fmt.Errorf("vyconf: line %d: unbalanced '}'", lineNum)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		cur := stack[len(stack)-1]
		words := tokenize(line)

		if words[len(words)-1] == "{" {
			words = words[:len(words)-1]
			if len(words) == 0 {
				return nil, fmt.Errorf("vyconf: line %d: block without name", lineNum)
			}
			node := cur
			for _, w := range words {
				node = node.child(w)
			}
			stack = append(stack, node)
			continue
		}

		leaf := cur.child(words[0])
		if len(words) > 1 {
			leaf.Values = append(leaf.Values, strings.Join(words[1:], " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vyconf: %w", err)
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("vyconf: %d unclosed block(s)", len(stack)-1)
	}
	return root, nil
}

// stripComments removes /* ... */ comments, which may span lines.
func stripComments(text string) string {
	var b strings.Builder
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:start])
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		text = text[start+2+end+2:]
	}
}

// tokenize splits a statement into words, keeping double-quoted strings whole
// and dropping their quotes.
func tokenize(line string) []string {
	var words []string
	var cur strings.Builder
	inQuote := false
	hasWord := false

	flush := func() {
		if hasWord {
			words = append(words, cur.String())
			cur.Reset()
			hasWord = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && inQuote && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == '"':
			inQuote = !inQuote
			hasWord = true
		case (c == ' ' || c == '\t') && !inQuote:
			flush()
		default:
			cur.WriteByte(c)
			hasWord = true
		}
	}
	flush()
	return words
}

// Package scan parses the bracket-nested section grammar shared by schema and
// instance documents into a raw, untyped section tree. It knows nothing about
// types or validation; callers assign meaning to the field values.
package scan

import (
	"fmt"
	"strings"
)

// Field is a raw `name = value` line.
type Field struct {
	Name  string
	Value string
	Line  int
}

// Node is a section. The root node is implicit (Name "", Depth 0) and holds
// the top-level sections. Order of fields and children is preserved.
type Node struct {
	Name     string
	Depth    int
	Line     int
	Fields   []Field
	Children []*Node
}

// Child returns the named child section, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Field returns the named field and whether it exists.
func (n *Node) Field(name string) (Field, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Error is a structural malformation at a specific line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// Parse builds the raw section tree for a document. It fails on the first
// structural malformation; malformed structure makes further parsing
// meaningless, so no recovery is attempted.
func Parse(text string) (*Node, error) {
	root := &Node{}
	// stack[d] is the open section at depth d; stack[0] is the root.
	stack := []*Node{root}

	for num, raw := range strings.Split(text, "\n") {
		line := num + 1
		s := strings.TrimSpace(raw)
		if s == "" || s[0] == '#' {
			continue
		}
		if s[0] == '[' {
			name, depth, err := parseHeader(s, line)
			if err != nil {
				return nil, err
			}
			if depth > len(stack) {
				return nil, &Error{Line: line, Msg: fmt.Sprintf("section %q at depth %d has no open parent at depth %d", name, depth, depth-1)}
			}
			parent := stack[depth-1]
			if parent.Child(name) != nil {
				return nil, &Error{Line: line, Msg: fmt.Sprintf("duplicate section %q", name)}
			}
			node := &Node{Name: name, Depth: depth, Line: line}
			parent.Children = append(parent.Children, node)
			stack = append(stack[:depth], node)
			continue
		}
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return nil, &Error{Line: line, Msg: "expected `name = value` or a section header"}
		}
		name := strings.TrimSpace(s[:eq])
		value := strings.TrimSpace(s[eq+1:])
		if name == "" {
			return nil, &Error{Line: line, Msg: "field line has empty name"}
		}
		cur := stack[len(stack)-1]
		if cur == root {
			return nil, &Error{Line: line, Msg: fmt.Sprintf("field %q outside any section", name)}
		}
		if _, dup := cur.Field(name); dup {
			return nil, &Error{Line: line, Msg: fmt.Sprintf("duplicate field %q in section %q", name, cur.Name)}
		}
		cur.Fields = append(cur.Fields, Field{Name: name, Value: value, Line: line})
	}
	return root, nil
}

// parseHeader splits `[[Name]]` into name and depth, requiring the closing
// bracket run to match the opening run exactly.
func parseHeader(s string, line int) (string, int, error) {
	open := 0
	for open < len(s) && s[open] == '[' {
		open++
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", 0, &Error{Line: line, Msg: "unterminated section header"}
	}
	name := strings.TrimSpace(s[open:end])
	if name == "" {
		return "", 0, &Error{Line: line, Msg: "section header has empty name"}
	}
	closed := 0
	for end+closed < len(s) && s[end+closed] == ']' {
		closed++
	}
	if closed != open {
		return "", 0, &Error{Line: line, Msg: fmt.Sprintf("section %q opened with %d brackets but closed with %d", name, open, closed)}
	}
	if rest := strings.TrimSpace(s[end+closed:]); rest != "" {
		return "", 0, &Error{Line: line, Msg: fmt.Sprintf("unexpected trailing characters after section %q", name)}
	}
	return name, open, nil
}

package expcfg

import (
	"errors"

	"github.com/matforge/expcfg/internal/scan"
)

// InstanceSection mirrors SchemaSection but holds raw, untyped values exactly
// as they appear in the document. The parser never interprets commas; a
// scalar string field may legitimately contain one, so splitting waits until
// the validator knows the expected type.
type InstanceSection struct {
	name       string
	line       int
	values     map[string]rawField
	fieldOrder []string
	children   map[string]*InstanceSection
	childOrder []string
}

type rawField struct {
	value string
	line  int
}

// Name returns the section name as written.
func (s *InstanceSection) Name() string { return s.name }

// Raw returns the untyped value of a field and whether it is present.
func (s *InstanceSection) Raw(name string) (string, bool) {
	f, ok := s.values[name]
	return f.value, ok
}

// Fields returns the field names in document order.
func (s *InstanceSection) Fields() []string { return append([]string(nil), s.fieldOrder...) }

// Section returns the named sub-section, or nil.
func (s *InstanceSection) Section(name string) *InstanceSection { return s.children[name] }

// Sections returns the sub-section names in document order.
func (s *InstanceSection) Sections() []string { return append([]string(nil), s.childOrder...) }

// Document is a parsed instance document, untyped and schema-independent.
type Document struct {
	root *InstanceSection
}

// Section returns the named top-level section, or nil.
func (d *Document) Section(name string) *InstanceSection { return d.root.Section(name) }

// Sections returns the top-level section names in document order.
func (d *Document) Sections() []string { return d.root.Sections() }

// ParseDocument parses an instance document without consulting any schema.
// Structural malformations return a *SyntaxError and abort immediately.
func ParseDocument(text string) (*Document, error) {
	raw, err := scan.Parse(text)
	if err != nil {
		var se *scan.Error
		if errors.As(err, &se) {
			return nil, &SyntaxError{Doc: DocInstance, Line: se.Line, Msg: se.Msg}
		}
		return nil, err
	}
	return &Document{root: buildInstanceSection(raw)}, nil
}

func buildInstanceSection(n *scan.Node) *InstanceSection {
	sec := &InstanceSection{
		name:     n.Name,
		line:     n.Line,
		values:   make(map[string]rawField, len(n.Fields)),
		children: make(map[string]*InstanceSection, len(n.Children)),
	}
	for _, f := range n.Fields {
		sec.values[f.Name] = rawField{value: f.Value, line: f.Line}
		sec.fieldOrder = append(sec.fieldOrder, f.Name)
	}
	for _, c := range n.Children {
		sec.children[c.Name] = buildInstanceSection(c)
		sec.childOrder = append(sec.childOrder, c.Name)
	}
	return sec
}

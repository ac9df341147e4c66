package expcfg

import (
	"bytes"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config is the validated, fully typed configuration handed to the
// experiment driver. It is built only after every field has passed
// validation and is never partially populated. Values are string, int64,
// float64, bool, or an ordered slice thereof.
type Config struct {
	sections map[string]*ConfigSection
	order    []string
}

func newConfig() *Config {
	return &Config{sections: make(map[string]*ConfigSection)}
}

func (c *Config) put(name string, cs *ConfigSection) {
	c.sections[name] = cs
	c.order = append(c.order, name)
}

// Section returns the named top-level section, or nil.
func (c *Config) Section(name string) *ConfigSection { return c.sections[name] }

// Sections returns the top-level section names in schema declaration order.
func (c *Config) Sections() []string { return append([]string(nil), c.order...) }

// Lookup descends a section path and returns the section at its end, or nil.
func (c *Config) Lookup(path ...string) *ConfigSection {
	if len(path) == 0 {
		return nil
	}
	cur := c.sections[path[0]]
	for _, name := range path[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.Section(name)
	}
	return cur
}

// ConfigSection is one validated section: typed field values plus nested
// sub-sections, both in declaration order.
type ConfigSection struct {
	name       string
	values     map[string]any
	fieldOrder []string
	children   map[string]*ConfigSection
	childOrder []string
}

func newConfigSection(name string) *ConfigSection {
	return &ConfigSection{
		name:     name,
		values:   make(map[string]any),
		children: make(map[string]*ConfigSection),
	}
}

func (s *ConfigSection) set(name string, v any) {
	s.values[name] = v
	s.fieldOrder = append(s.fieldOrder, name)
}

func (s *ConfigSection) putChild(name string, c *ConfigSection) {
	s.children[name] = c
	s.childOrder = append(s.childOrder, name)
}

// Name returns the section name.
func (s *ConfigSection) Name() string { return s.name }

// Value returns the typed value of a field and whether it is present.
func (s *ConfigSection) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Fields returns the field names in declaration order.
func (s *ConfigSection) Fields() []string { return append([]string(nil), s.fieldOrder...) }

// Section returns the named sub-section, or nil.
func (s *ConfigSection) Section(name string) *ConfigSection { return s.children[name] }

// Sections returns the sub-section names in declaration order.
func (s *ConfigSection) Sections() []string { return append([]string(nil), s.childOrder...) }

// String returns a string field.
func (s *ConfigSection) String(name string) (string, bool) {
	v, ok := s.values[name].(string)
	return v, ok
}

// Int returns an integer field.
func (s *ConfigSection) Int(name string) (int64, bool) {
	v, ok := s.values[name].(int64)
	return v, ok
}

// Float returns a float field. An integer value is not widened; the schema
// decides the kind.
func (s *ConfigSection) Float(name string) (float64, bool) {
	v, ok := s.values[name].(float64)
	return v, ok
}

// Bool returns a boolean field.
func (s *ConfigSection) Bool(name string) (bool, bool) {
	v, ok := s.values[name].(bool)
	return v, ok
}

// Strings returns a string-list field.
func (s *ConfigSection) Strings(name string) ([]string, bool) {
	v, ok := s.values[name].([]string)
	return v, ok
}

// Ints returns an integer-list field.
func (s *ConfigSection) Ints(name string) ([]int64, bool) {
	v, ok := s.values[name].([]int64)
	return v, ok
}

// Floats returns a float-list field.
func (s *ConfigSection) Floats(name string) ([]float64, bool) {
	v, ok := s.values[name].([]float64)
	return v, ok
}

// Bools returns a boolean-list field.
func (s *ConfigSection) Bools(name string) ([]bool, bool) {
	v, ok := s.values[name].([]bool)
	return v, ok
}

// Map renders the section as nested plain maps, losing ordering. Intended
// for comparisons and ad-hoc consumption.
func (s *ConfigSection) Map() map[string]any {
	out := make(map[string]any, len(s.values)+len(s.children))
	for k, v := range s.values {
		out[k] = v
	}
	for k, c := range s.children {
		out[k] = c.Map()
	}
	return out
}

// Map renders the whole configuration as nested plain maps.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, len(c.sections))
	for k, s := range c.sections {
		out[k] = s.Map()
	}
	return out
}

// Encode renders the configuration back into the instance-document grammar.
// Re-validating the output against the same schema yields an identical
// configuration.
func (c *Config) Encode() string {
	b := &strings.Builder{}
	for i, name := range c.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		c.sections[name].encode(b, 1)
	}
	return b.String()
}

func (s *ConfigSection) encode(b *strings.Builder, depth int) {
	marker := strings.Repeat("[", depth)
	closer := strings.Repeat("]", depth)
	b.WriteString(marker + s.name + closer + "\n")
	for _, name := range s.fieldOrder {
		b.WriteString(name + " = " + formatValue(s.values[name]) + "\n")
	}
	for _, name := range s.childOrder {
		s.children[name].encode(b, depth+1)
	}
}

// formatValue renders a typed value so the validator coerces it back to the
// same value: 'g' formatting round-trips float64, and True/False are part of
// the boolean vocabulary.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case []string:
		return strings.Join(t, ", ")
	case []int64:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = strconv.FormatInt(e, 10)
		}
		return strings.Join(parts, ", ")
	case []float64:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	case []bool:
		parts := make([]string, len(t))
		for i, e := range t {
			if e {
				parts[i] = "True"
			} else {
				parts[i] = "False"
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// MarshalJSON emits sections and fields in declaration order.
func (c *Config) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeJSONKey(b, name); err != nil {
			return nil, err
		}
		sec, err := c.sections[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(sec)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalJSON emits fields then sub-sections in declaration order.
func (s *ConfigSection) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')
	first := true
	for _, name := range s.fieldOrder {
		if !first {
			b.WriteByte(',')
		}
		first = false
		if err := writeJSONKey(b, name); err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[name])
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	for _, name := range s.childOrder {
		if !first {
			b.WriteByte(',')
		}
		first = false
		if err := writeJSONKey(b, name); err != nil {
			return nil, err
		}
		sec, err := s.children[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(sec)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeJSONKey(b *bytes.Buffer, name string) error {
	k, err := json.Marshal(name)
	if err != nil {
		return err
	}
	b.Write(k)
	b.WriteByte(':')
	return nil
}

// MarshalYAML preserves declaration order via an explicit mapping node.
func (c *Config) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.order {
		var k, v yaml.Node
		k.SetString(name)
		if err := v.Encode(c.sections[name]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &k, &v)
	}
	return n, nil
}

// MarshalYAML emits fields then sub-sections in declaration order.
func (s *ConfigSection) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.fieldOrder {
		var k, v yaml.Node
		k.SetString(name)
		if err := v.Encode(s.values[name]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &k, &v)
	}
	for _, name := range s.childOrder {
		var k, v yaml.Node
		k.SetString(name)
		if err := v.Encode(s.children[name]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &k, &v)
	}
	return n, nil
}

package expcfg

import (
	"errors"

	"github.com/matforge/expcfg/internal/scan"
)

// Default wiring for the polymorphic model-parameter convention. Instance
// documents select models in the selector section's list field; the schemas
// those names resolve to live under the registry section.
const (
	DefaultModelParamsSection = "Model Parameters"
	DefaultModelSelectSection = "Models and Tests to Run"
	DefaultModelSelectField   = "models"
)

// roleTags are the suffixes a registered parameter schema may carry beyond
// the model name an instance document uses to reference it.
var roleTags = []string{"_regressor", "_classifier"}

// SchemaSection is a node of the schema tree: a named mapping of field name
// to TypeSpec plus nested sub-sections. Declaration order is preserved for
// diagnostics; lookup is by name.
type SchemaSection struct {
	name       string
	line       int
	fields     map[string]TypeSpec
	fieldOrder []string
	children   map[string]*SchemaSection
	childOrder []string
}

// Name returns the section name as declared.
func (s *SchemaSection) Name() string { return s.name }

// Field returns the resolved TypeSpec of a field and whether it is declared.
func (s *SchemaSection) Field(name string) (TypeSpec, bool) {
	ts, ok := s.fields[name]
	return ts, ok
}

// Fields returns the declared field names in declaration order.
func (s *SchemaSection) Fields() []string { return append([]string(nil), s.fieldOrder...) }

// Section returns the named sub-section, or nil.
func (s *SchemaSection) Section(name string) *SchemaSection { return s.children[name] }

// Sections returns the sub-section names in declaration order.
func (s *SchemaSection) Sections() []string { return append([]string(nil), s.childOrder...) }

// Schema is a parsed schema document. One Schema, built once, is read-only
// and safe to share across concurrent validations of distinct instance
// documents.
type Schema struct {
	root        *SchemaSection
	polymorphic map[string]bool
	selectors   map[string]selector // selector section name -> binding
}

// selector binds a list field to the registry section whose children its
// values must name.
type selector struct {
	field    string
	registry string
}

// Section returns the named top-level section, or nil.
func (s *Schema) Section(name string) *SchemaSection { return s.root.Section(name) }

// Sections returns the top-level section names in declaration order.
func (s *Schema) Sections() []string { return s.root.Sections() }

// Polymorphic reports whether the named section resolves its children through
// the model-parameter registry rather than a closed child set.
func (s *Schema) Polymorphic(name string) bool { return s.polymorphic[name] }

// Models returns the registered parameter-schema names under the named
// polymorphic section, in declaration order.
func (s *Schema) Models(section string) []string {
	sec := s.root.Section(section)
	if sec == nil {
		return nil
	}
	return sec.Sections()
}

// lookupModel resolves a model identifier against a registry section: the
// literal name first, then the name with a role tag appended, in tag order.
func lookupModel(reg *SchemaSection, name string) *SchemaSection {
	if sub := reg.Section(name); sub != nil {
		return sub
	}
	for _, tag := range roleTags {
		if sub := reg.Section(name + tag); sub != nil {
			return sub
		}
	}
	return nil
}

// SchemaOption adjusts schema interpretation.
type SchemaOption func(*Schema)

// WithPolymorphic marks an additional top-level section whose instance
// children are model identifiers resolved through that section's own
// sub-schemas.
func WithPolymorphic(section string) SchemaOption {
	return func(s *Schema) { s.polymorphic[section] = true }
}

// WithModelSelector binds a list field to a polymorphic section's registry:
// every name the instance lists in section/field must resolve to a registered
// parameter schema of the registry section.
func WithModelSelector(section, field, registry string) SchemaOption {
	return func(s *Schema) { s.selectors[section] = selector{field: field, registry: registry} }
}

// WithoutModelConvention drops the default "Model Parameters" /
// "Models and Tests to Run" wiring for schemas that do not follow it.
func WithoutModelConvention() SchemaOption {
	return func(s *Schema) {
		delete(s.polymorphic, DefaultModelParamsSection)
		delete(s.selectors, DefaultModelSelectSection)
	}
}

// ParseSchema parses a schema document. It returns a *SyntaxError for
// structural malformations and a *TypeError for an unresolvable type token;
// either aborts before any instance is checked.
func ParseSchema(text string, opts ...SchemaOption) (*Schema, error) {
	raw, err := scan.Parse(text)
	if err != nil {
		var se *scan.Error
		if errors.As(err, &se) {
			return nil, &SyntaxError{Doc: DocSchema, Line: se.Line, Msg: se.Msg}
		}
		return nil, err
	}
	sch := &Schema{
		polymorphic: map[string]bool{DefaultModelParamsSection: true},
		selectors: map[string]selector{
			DefaultModelSelectSection: {field: DefaultModelSelectField, registry: DefaultModelParamsSection},
		},
	}
	for _, opt := range opts {
		opt(sch)
	}
	root, err := buildSchemaSection(raw, "")
	if err != nil {
		return nil, err
	}
	sch.root = root
	return sch, nil
}

// MustParseSchema is ParseSchema that panics on error, for package-level
// schema variables.
func MustParseSchema(text string, opts ...SchemaOption) *Schema {
	s, err := ParseSchema(text, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func buildSchemaSection(n *scan.Node, path string) (*SchemaSection, error) {
	sec := &SchemaSection{
		name:     n.Name,
		line:     n.Line,
		fields:   make(map[string]TypeSpec, len(n.Fields)),
		children: make(map[string]*SchemaSection, len(n.Children)),
	}
	for _, f := range n.Fields {
		ts, err := ResolveType(f.Value)
		if err != nil {
			var te *TypeError
			if errors.As(err, &te) {
				te.Section = path
				te.Field = f.Name
			}
			return nil, err
		}
		sec.fields[f.Name] = ts
		sec.fieldOrder = append(sec.fieldOrder, f.Name)
	}
	for _, c := range n.Children {
		child, err := buildSchemaSection(c, path+"/"+c.Name)
		if err != nil {
			return nil, err
		}
		sec.children[c.Name] = child
		sec.childOrder = append(sec.childOrder, c.Name)
	}
	return sec, nil
}

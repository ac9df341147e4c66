package expcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matforge/expcfg/i18n"
)

// Validate walks an instance document against a schema. It returns either a
// fully typed Config or nil together with every issue found; a Config is
// withheld whenever any fatal issue (missing_*, type_mismatch, unknown_model)
// was recorded, even though independent sections are always processed to the
// end so one run surfaces every problem at once. Advisory issues
// (unexpected_*) accompany a non-nil Config.
func Validate(schema *Schema, doc *Document) (*Config, Issues) {
	v := &validator{schema: schema}
	cfg := newConfig()
	for _, name := range schema.Sections() {
		ss := schema.Section(name)
		path := "/" + name
		inst := doc.Section(name)
		if inst == nil {
			v.add(Issue{
				Path:    path,
				Code:    CodeMissingSection,
				Message: i18n.T(CodeMissingSection, nil),
				Line:    ss.line,
			})
			continue
		}
		cs := v.section(path, ss, inst, schema.Polymorphic(name))
		if sel, ok := schema.selectors[name]; ok {
			v.checkSelector(path, sel, cs, inst)
		}
		cfg.put(name, cs)
	}
	for _, name := range doc.Sections() {
		if schema.Section(name) == nil {
			v.add(Issue{
				Path:    "/" + name,
				Code:    CodeUnexpectedSection,
				Message: i18n.T(CodeUnexpectedSection, nil),
				Line:    doc.Section(name).line,
			})
		}
	}
	if v.iss.HasFatal() {
		return nil, v.iss
	}
	return cfg, v.iss
}

type validator struct {
	schema *Schema
	iss    Issues
}

func (v *validator) add(it Issue) { v.iss = AppendIssues(v.iss, it) }

// section validates one instance section against its schema section and
// returns the typed result. polymorphic sections resolve child names through
// the registry instead of a closed child set.
func (v *validator) section(path string, ss *SchemaSection, is *InstanceSection, polymorphic bool) *ConfigSection {
	out := newConfigSection(is.name)

	for _, name := range ss.Fields() {
		ts, _ := ss.Field(name)
		raw, ok := is.Raw(name)
		if !ok {
			v.add(Issue{
				Path:    path,
				Field:   name,
				Code:    CodeMissingField,
				Message: i18n.T(CodeMissingField, nil),
				Hint:    "expected " + ts.String(),
				Line:    is.line,
			})
			continue
		}
		val, err := coerce(ts, raw)
		if err != nil {
			v.add(Issue{
				Path:    path,
				Field:   name,
				Code:    CodeTypeMismatch,
				Message: i18n.T(CodeTypeMismatch, map[string]string{"expected": ts.String()}),
				Hint:    "got " + strconv.Quote(raw),
				Cause:   err,
				Line:    is.values[name].line,
			})
			continue
		}
		out.set(name, val)
	}

	for _, name := range is.Fields() {
		if _, declared := ss.Field(name); !declared {
			v.add(Issue{
				Path:    path,
				Field:   name,
				Code:    CodeUnexpectedField,
				Message: i18n.T(CodeUnexpectedField, nil),
				Line:    is.values[name].line,
			})
		}
	}

	if polymorphic {
		// Child names are model identifiers; each resolves to a registered
		// parameter schema and validates independently of its siblings.
		for _, name := range is.Sections() {
			child := is.Section(name)
			sub := lookupModel(ss, name)
			if sub == nil {
				v.add(Issue{
					Path:    path + "/" + name,
					Code:    CodeUnknownModel,
					Message: i18n.T(CodeUnknownModel, map[string]string{"name": name}),
					Hint:    "registered: " + strings.Join(ss.Sections(), ", "),
					Line:    child.line,
				})
				continue
			}
			out.putChild(name, v.section(path+"/"+name, sub, child, false))
		}
		return out
	}

	for _, name := range ss.Sections() {
		child := is.Section(name)
		if child == nil {
			v.add(Issue{
				Path:    path + "/" + name,
				Code:    CodeMissingSection,
				Message: i18n.T(CodeMissingSection, nil),
				Line:    is.line,
			})
			continue
		}
		out.putChild(name, v.section(path+"/"+name, ss.Section(name), child, false))
	}
	for _, name := range is.Sections() {
		if ss.Section(name) == nil {
			v.add(Issue{
				Path:    path + "/" + name,
				Code:    CodeUnexpectedSection,
				Message: i18n.T(CodeUnexpectedSection, nil),
				Line:    is.Section(name).line,
			})
		}
	}
	return out
}

// checkSelector cross-references the model names an instance lists against
// the registry section's parameter schemas.
func (v *validator) checkSelector(path string, sel selector, cs *ConfigSection, is *InstanceSection) {
	names, ok := cs.Strings(sel.field)
	if !ok {
		// Missing or mistyped selector field is already reported.
		return
	}
	reg := v.schema.Section(sel.registry)
	if reg == nil {
		return
	}
	line := 0
	if f, present := is.values[sel.field]; present {
		line = f.line
	}
	for _, name := range names {
		if lookupModel(reg, name) == nil {
			v.add(Issue{
				Path:    path,
				Field:   sel.field,
				Code:    CodeUnknownModel,
				Message: i18n.T(CodeUnknownModel, map[string]string{"name": name}),
				Hint:    "registered: " + strings.Join(reg.Sections(), ", "),
				Line:    line,
			})
		}
	}
}

// coerce checks a raw instance value against a resolved TypeSpec and returns
// the typed value.
func coerce(ts TypeSpec, raw string) (any, error) {
	switch t := ts.(type) {
	case Scalar:
		return coerceScalar(t.Kind, raw)
	case ListOf:
		return coerceList(t.Elem, raw)
	case UnionOf:
		// Alternatives are tried in declared order; the first match wins,
		// regardless of value shape.
		va, errA := coerce(t.Alts[0], raw)
		if errA == nil {
			return va, nil
		}
		vb, errB := coerce(t.Alts[1], raw)
		if errB == nil {
			return vb, nil
		}
		return nil, fmt.Errorf("no alternative of %q matched: %w; %w", t.String(), errA, errB)
	}
	return nil, fmt.Errorf("unsupported type spec %q", ts.String())
}

func coerceScalar(k Kind, raw string) (any, error) {
	switch k {
	case KindString:
		return raw, nil
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a float", raw)
		}
		return f, nil
	case KindBoolean:
		switch strings.ToLower(raw) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean (expected True/False/Yes/No/1/0)", raw)
	}
	return nil, fmt.Errorf("unsupported kind %q", k.String())
}

// coerceList splits on commas with per-element trimming. The empty raw string
// is the empty list; there is no other way to spell one.
func coerceList(k Kind, raw string) (any, error) {
	var parts []string
	if raw != "" {
		parts = strings.Split(raw, ",")
	}
	switch k {
	case KindString:
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	case KindInteger:
		out := make([]int64, 0, len(parts))
		for _, p := range parts {
			v, err := coerceScalar(k, strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, v.(int64))
		}
		return out, nil
	case KindFloat:
		out := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := coerceScalar(k, strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, v.(float64))
		}
		return out, nil
	case KindBoolean:
		out := make([]bool, 0, len(parts))
		for _, p := range parts {
			v, err := coerceScalar(k, strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, v.(bool))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported list element kind %q", k.String())
}

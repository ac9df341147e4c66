// Package i18n maps issue codes to human-readable messages. The engine never
// prints; embedding applications may swap the translator to localize or
// rephrase diagnostics.
package i18n

// Translator retrieves messages for issue codes. data provides optional
// metadata to embed in the message (for example, "expected" or "name").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	switch code {
	case "missing_section":
		return "required section missing"
	case "missing_field":
		return "required field missing"
	case "type_mismatch":
		if exp := data["expected"]; exp != "" {
			return "value does not satisfy type " + exp
		}
		return "value does not satisfy declared type"
	case "unknown_model":
		if name := data["name"]; name != "" {
			return "no parameter schema registered for model " + name
		}
		return "no parameter schema registered for model"
	case "unexpected_field":
		return "field not declared by the schema"
	case "unexpected_section":
		return "section not declared by the schema"
	}
	return code
}

var current Translator = dictTranslator{}

// Default returns the built-in Translator.
func Default() Translator { return dictTranslator{} }

// SetTranslator replaces the process-wide Translator. Passing nil restores
// the default.
func SetTranslator(t Translator) {
	if t == nil {
		current = dictTranslator{}
		return
	}
	current = t
}

// T resolves a message through the current Translator.
func T(code string, data map[string]string) string {
	return current.Message(code, data)
}

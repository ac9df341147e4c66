package expcfg

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingSection    = "missing_section"
	CodeMissingField      = "missing_field"
	CodeTypeMismatch      = "type_mismatch"
	CodeUnknownModel      = "unknown_model"
	CodeUnexpectedField   = "unexpected_field"
	CodeUnexpectedSection = "unexpected_section"
)

// advisoryCodes lists the codes that never block a ValidatedConfig on their own.
var advisoryCodes = map[string]bool{
	CodeUnexpectedField:   true,
	CodeUnexpectedSection: true,
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Section path (for example: /General Setup).
	Field   string // Field name within the section, when applicable.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected type, candidate names, etc.
	Cause   error  // Optional: underlying coercion error.
	Line    int    // Line in the instance document (0 when unknown).
}

// Advisory reports whether the issue is informational rather than fatal.
func (it Issue) Advisory() bool { return advisoryCodes[it.Code] }

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_field at /General Setup
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Field != "" {
			fmt.Fprintf(b, " (%s)", it.Field)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasFatal reports whether any issue would block a ValidatedConfig.
func (iss Issues) HasFatal() bool {
	for _, it := range iss {
		if !it.Advisory() {
			return true
		}
	}
	return false
}

// Fatal returns only the blocking issues.
func (iss Issues) Fatal() Issues {
	var out Issues
	for _, it := range iss {
		if !it.Advisory() {
			out = append(out, it)
		}
	}
	return out
}

// Advisory returns only the informational issues.
func (iss Issues) Advisory() Issues {
	var out Issues
	for _, it := range iss {
		if it.Advisory() {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// DocKind identifies which of the two input documents an error refers to.
type DocKind string

const (
	DocSchema   DocKind = "schema"
	DocInstance DocKind = "instance"
)

// SyntaxError describes a structural malformation in a schema or instance
// document. Syntax errors abort parsing immediately; no recovery is attempted.
type SyntaxError struct {
	Doc  DocKind
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s document: line %d: %s", e.Doc, e.Line, e.Msg)
}

// TypeError describes a malformed type token in a schema document.
type TypeError struct {
	Section string // Section path of the offending field ("" when resolving standalone tokens).
	Field   string
	Token   string
	Msg     string
}

func (e *TypeError) Error() string {
	if e.Section == "" && e.Field == "" {
		return fmt.Sprintf("type token %q: %s", e.Token, e.Msg)
	}
	return fmt.Sprintf("%s/%s: type token %q: %s", e.Section, e.Field, e.Token, e.Msg)
}

package expcfg

import (
	"strconv"
	"strings"
)

// Kind enumerates the atomic value kinds the type grammar recognizes.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	}
	return "unknown"
}

// kindOf maps an atomic keyword (case-sensitive) to its Kind.
func kindOf(tok string) (Kind, bool) {
	switch tok {
	case "string":
		return KindString, true
	case "integer":
		return KindInteger, true
	case "float":
		return KindFloat, true
	case "boolean":
		return KindBoolean, true
	}
	return 0, false
}

// TypeSpec is a resolved type descriptor: an atomic scalar, a homogeneous
// list, or a two-alternative union. Implementations render back to the token
// grammar via String().
type TypeSpec interface {
	String() string
	typeSpec()
}

// Scalar is an atomic type.
type Scalar struct{ Kind Kind }

func (s Scalar) String() string { return s.Kind.String() }
func (Scalar) typeSpec()        {}

// ListOf is a comma-separated homogeneous sequence of an atomic type.
type ListOf struct{ Elem Kind }

func (l ListOf) String() string { return l.Elem.String() + "_list" }
func (ListOf) typeSpec()        {}

// UnionOf holds exactly two alternatives, tried in declared order during
// coercion. Each alternative is a Scalar or a ListOf; the grammar does not
// permit a union inside a union.
type UnionOf struct{ Alts [2]TypeSpec }

func (u UnionOf) String() string { return u.Alts[0].String() + " or " + u.Alts[1].String() }
func (UnionOf) typeSpec()        {}

// ResolveType interprets a type token from a schema document. It is a pure
// function of the token string.
func ResolveType(token string) (TypeSpec, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return nil, &TypeError{Token: token, Msg: "empty type token"}
	}
	var ors []int
	for i, f := range fields {
		if f == "or" {
			ors = append(ors, i)
		}
	}
	switch len(ors) {
	case 0:
		if len(fields) != 1 {
			return nil, &TypeError{Token: token, Msg: "unexpected whitespace in type token"}
		}
		return resolveSimple(token, fields[0])
	case 1:
		i := ors[0]
		if i == 0 || i == len(fields)-1 || len(fields) != 3 {
			return nil, &TypeError{Token: token, Msg: "malformed union"}
		}
		a, err := resolveSimple(token, fields[0])
		if err != nil {
			return nil, err
		}
		b, err := resolveSimple(token, fields[2])
		if err != nil {
			return nil, err
		}
		return UnionOf{Alts: [2]TypeSpec{a, b}}, nil
	default:
		// "a or b or c" is rejected, never flattened.
		return nil, &TypeError{Token: token, Msg: "malformed union"}
	}
}

// resolveSimple resolves an atomic keyword or its _list form.
func resolveSimple(token, tok string) (TypeSpec, error) {
	if base, ok := strings.CutSuffix(tok, "_list"); ok {
		k, ok := kindOf(base)
		if !ok {
			return nil, &TypeError{Token: token, Msg: "unknown list element type " + strconv.Quote(base)}
		}
		return ListOf{Elem: k}, nil
	}
	k, ok := kindOf(tok)
	if !ok {
		return nil, &TypeError{Token: token, Msg: "unknown type keyword " + strconv.Quote(tok)}
	}
	return Scalar{Kind: k}, nil
}

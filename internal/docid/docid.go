// Package docid parses documentation-comment identifiers such as
// "M:Acme.Box`1.Put(`0,System.Int32)" into entity references.
//
// Only the five entity prefixes T, M, P, F and E are understood. Anything
// else, including namespace ("N:") and error ("!:") identifiers, is reported
// as ErrNotIdentifier.
package docid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the entity kind selected by an identifier prefix.
type Kind int

const (
	KindType Kind = iota
	KindMethod
	KindProperty
	KindField
	KindEvent
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindField:
		return "field"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Prefix returns the single-letter identifier prefix of the kind.
func (k Kind) Prefix() byte {
	switch k {
	case KindType:
		return 'T'
	case KindMethod:
		return 'M'
	case KindProperty:
		return 'P'
	case KindField:
		return 'F'
	case KindEvent:
		return 'E'
	default:
		return '?'
	}
}

var (
	// ErrNotIdentifier is returned for strings too short to carry a prefix
	// or with a prefix outside T, M, P, F and E.
	ErrNotIdentifier = errors.New("not an entity identifier")

	// ErrMalformed is returned when a member identifier lacks the owner or
	// member part.
	ErrMalformed = errors.New("malformed identifier")
)

// Reference is a parsed identifier.
type Reference struct {
	Kind   Kind
	Owner  string   // Owning type full name in doc-id form; the type itself for KindType
	Member string   // Empty for KindType
	Params []string // Raw parameter tokens, KindMethod only
}

// String renders the reference back into identifier form.
func (r Reference) String() string {
	var sb strings.Builder
	sb.WriteByte(r.Kind.Prefix())
	sb.WriteByte(':')
	sb.WriteString(r.Owner)
	if r.Kind == KindType {
		return sb.String()
	}
	sb.WriteByte('.')
	sb.WriteString(r.Member)
	if r.Kind == KindMethod && len(r.Params) > 0 {
		sb.WriteByte('(')
		sb.WriteString(strings.Join(r.Params, ","))
		sb.WriteByte(')')
	}
	return sb.String()
}

// HasPlaceholder reports whether any parameter token is a generic
// parameter placeholder.
func (r Reference) HasPlaceholder() bool {
	for _, p := range r.Params {
		if IsPlaceholder(p) {
			return true
		}
	}
	return false
}

// Parse parses a raw identifier. The two leading characters are the kind
// prefix and its separator; the separator itself is not checked.
func Parse(id string) (Reference, error) {
	if len(id) <= 2 {
		return Reference{}, ErrNotIdentifier
	}

	var kind Kind
	switch id[0] {
	case 'T':
		kind = KindType
	case 'M':
		kind = KindMethod
	case 'P':
		kind = KindProperty
	case 'F':
		kind = KindField
	case 'E':
		kind = KindEvent
	default:
		return Reference{}, ErrNotIdentifier
	}

	rest := id[2:]
	switch kind {
	case KindType:
		return Reference{Kind: KindType, Owner: rest}, nil
	case KindMethod:
		return parseMethod(rest)
	default:
		owner, member, err := splitMember(rest)
		if err != nil {
			return Reference{}, err
		}
		return Reference{Kind: kind, Owner: owner, Member: member}, nil
	}
}

func parseMethod(rest string) (Reference, error) {
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		owner, member, err := splitMember(rest)
		if err != nil {
			return Reference{}, err
		}
		return Reference{Kind: KindMethod, Owner: owner, Member: member, Params: []string{}}, nil
	}

	owner, member, err := splitMember(rest[:open])
	if err != nil {
		return Reference{}, err
	}

	inner := rest[open+1:]
	if closeIdx := strings.LastIndexByte(inner, ')'); closeIdx >= 0 {
		inner = inner[:closeIdx]
	}

	return Reference{
		Kind:   KindMethod,
		Owner:  owner,
		Member: member,
		Params: SplitParams(inner),
	}, nil
}

// splitMember splits s on its last '.' into owner and member.
func splitMember(s string) (string, string, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 {
		return "", "", fmt.Errorf("%w: %q has no owner", ErrMalformed, s)
	}
	owner, member := s[:dot], s[dot+1:]
	if owner == "" || member == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return owner, member, nil
}

// SplitParams splits a parameter list on top-level commas. Commas inside
// braces or brackets belong to constructed generic arguments and array
// bounds. Tokens are trimmed; an empty list yields no tokens.
func SplitParams(s string) []string {
	params := []string{}
	if strings.TrimSpace(s) == "" {
		return params
	}

	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(s[start:]))
	return params
}

// IsPlaceholder reports whether a parameter token refers to a generic
// parameter by position rather than naming a type.
func IsPlaceholder(token string) bool {
	return strings.HasPrefix(token, "`")
}

// PlaceholderIndex returns the type-level generic parameter position a
// placeholder token names. Method-level placeholders ("``0") and decorated
// placeholders ("`0[]", "`0@") do not parse.
func PlaceholderIndex(token string) (int, error) {
	if !IsPlaceholder(token) {
		return 0, fmt.Errorf("%q is not a placeholder", token)
	}
	n, err := strconv.Atoi(token[1:])
	if err != nil {
		return 0, fmt.Errorf("placeholder %q: %w", token, err)
	}
	return n, nil
}

// Package resolve locates the metadata entity a parsed identifier names.
package resolve

import (
	"strconv"
	"strings"

	"github.com/conduit-lang/docxmlext/internal/metadata"
)

// Resolver resolves doc-id type names and method references against a store.
// It holds no state besides the store and is safe for concurrent use.
type Resolver struct {
	store *metadata.Store
}

// New creates a resolver over store.
func New(store *metadata.Store) *Resolver {
	return &Resolver{store: store}
}

// Store returns the underlying store.
func (r *Resolver) Store() *metadata.Store {
	return r.store
}

// Type resolves a type name as written in an identifier.
//
// The name is first looked up directly. On a miss it is split on its last
// '.', the prefix is looked up directly and the suffix is taken as the simple
// name of a type nested in it. The fallback is one level deep only, so
// "Outer.Inner" resolves while "Outer.Inner.Deep" does not.
func (r *Resolver) Type(name string) *metadata.TypeDescriptor {
	if name == "" {
		return nil
	}
	if t := r.store.Lookup(name); t != nil {
		return t
	}

	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return nil
	}
	owner := r.store.Lookup(name[:dot])
	if owner == nil {
		return nil
	}
	return r.store.Nested(owner, name[dot+1:])
}

// tokenTypeName resolves a non-placeholder parameter token to the full name a
// parameter signature would carry. A trailing '@' marks a by-reference
// parameter, which signatures spell with '&'.
func (r *Resolver) tokenTypeName(token string) (string, bool) {
	byRef := strings.HasSuffix(token, "@")
	if byRef {
		token = strings.TrimSuffix(token, "@")
	}
	t := r.Type(token)
	if t == nil {
		return "", false
	}
	if byRef {
		return t.Name + "&", true
	}
	return t.Name, true
}

// memberName maps an identifier member name onto the metadata method name.
// It returns the generic arity the identifier demands, or -1 when it does
// not name one.
func memberName(member string) (string, int) {
	switch member {
	case "#ctor":
		return ".ctor", -1
	case "#cctor":
		return ".cctor", -1
	}

	if i := strings.Index(member, "``"); i > 0 {
		if n, err := strconv.Atoi(member[i+2:]); err == nil {
			return member[:i], n
		}
	}
	return member, -1
}

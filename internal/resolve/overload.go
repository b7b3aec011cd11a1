package resolve

import (
	"github.com/conduit-lang/docxmlext/internal/docid"
	"github.com/conduit-lang/docxmlext/internal/metadata"
)

// Match is the result of overload selection.
type Match struct {
	Method *metadata.MethodDescriptor

	// Skipped lists the placeholder tokens whose position could not be
	// checked and were counted as satisfied.
	Skipped []string
}

// Method selects at most one method of owner matching ref.
//
// Without placeholders every parameter token must resolve and the first
// overload whose parameter types equal the resolved names, in order and with
// the same arity, wins. With placeholders each overload of equal arity is
// checked in declaration order: a placeholder "`i" requires the parameter to
// be the owner's own generic parameter at position i, any other token must
// resolve to the parameter's type. Placeholders whose index does not parse are
// not checked and are reported in Match.Skipped.
func (r *Resolver) Method(owner *metadata.TypeDescriptor, ref docid.Reference) Match {
	if owner == nil || ref.Kind != docid.KindMethod {
		return Match{}
	}

	name, arity := memberName(ref.Member)
	candidates := r.store.Methods(owner, name)
	if len(candidates) == 0 {
		return Match{}
	}

	if ref.HasPlaceholder() {
		return r.matchPlaceholders(owner, candidates, ref.Params, arity)
	}
	return r.matchExact(candidates, ref.Params, arity)
}

func (r *Resolver) matchExact(candidates []*metadata.MethodDescriptor, tokens []string, arity int) Match {
	want := make([]string, len(tokens))
	for i, tok := range tokens {
		name, ok := r.tokenTypeName(tok)
		if !ok {
			return Match{}
		}
		want[i] = name
	}

	for _, m := range candidates {
		if !arityMatches(m, arity) || len(m.Params) != len(want) {
			continue
		}
		if paramsEqual(m.Params, want) {
			return Match{Method: m}
		}
	}
	return Match{}
}

func paramsEqual(params []metadata.ParamDescriptor, want []string) bool {
	for i, p := range params {
		if p.Type.IsGenericParam() || p.Type.IsGeneric() || p.Type.Name != want[i] {
			return false
		}
	}
	return true
}

func (r *Resolver) matchPlaceholders(owner *metadata.TypeDescriptor, candidates []*metadata.MethodDescriptor, tokens []string, arity int) Match {
	for _, m := range candidates {
		if !arityMatches(m, arity) || len(m.Params) != len(tokens) {
			continue
		}

		var skipped []string
		ok := true
		for i, tok := range tokens {
			pt := m.Params[i].Type

			if docid.IsPlaceholder(tok) {
				idx, err := docid.PlaceholderIndex(tok)
				if err != nil {
					skipped = append(skipped, tok)
					continue
				}
				if !isOwnParam(owner, pt, idx) {
					ok = false
					break
				}
				continue
			}

			name, resolved := r.tokenTypeName(tok)
			if !resolved || pt.IsGenericParam() || pt.IsGeneric() || pt.Name != name {
				ok = false
				break
			}
		}

		if ok {
			return Match{Method: m, Skipped: skipped}
		}
	}
	return Match{}
}

// isOwnParam reports whether t is the generic parameter declared by owner
// itself at position pos.
func isOwnParam(owner *metadata.TypeDescriptor, t metadata.TypeRef, pos int) bool {
	return t.Param != nil &&
		t.Param.DeclaringMethod == "" &&
		t.Param.DeclaringType == owner.Name &&
		t.Param.Position == pos
}

func arityMatches(m *metadata.MethodDescriptor, arity int) bool {
	return arity < 0 || len(m.GenericParams) == arity
}

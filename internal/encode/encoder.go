// Package encode projects metadata type references and attribute instances
// onto XML elements.
//
// A type reference is written onto a target element in exactly one of three
// ways:
//
//	concrete           type="System.Int32"
//	generic instance   generic-type="System.Collections.Generic.List`1" + <genericargs>
//	generic parameter  position="0" generic-param="T" + flags + <constraints>
//
// Each <genericargs>/<arg> carries either a nested encoding or, when the
// argument is a generic parameter, its description with the parameter name in
// the name attribute. A constraint equal to the type whose arguments are
// being written is emitted as <self/>.
package encode

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/conduit-lang/docxmlext/internal/metadata"
)

// Encoder writes signatures looked up in a store. It is safe for concurrent
// use as long as callers write to disjoint elements.
type Encoder struct {
	store *metadata.Store
}

// New creates an encoder over store.
func New(store *metadata.Store) *Encoder {
	return &Encoder{store: store}
}

// paramKey identifies a generic parameter declaration during constraint
// expansion.
type paramKey struct {
	owner  string
	method string
	pos    int
}

// guard tracks the parameters whose constraints are currently being
// expanded on the path from the root element.
type guard map[paramKey]bool

// Type writes the encoding of ref onto el. scope is the method whose
// signature ref appears in, used to find method-level parameter
// declarations; it may be nil.
func (e *Encoder) Type(el *etree.Element, ref metadata.TypeRef, scope *metadata.MethodDescriptor) {
	e.encode(el, ref, scope, guard{})
}

// GenericArgs appends a <genericargs> element describing the generic
// parameters t declares. Nothing is appended for non-generic types.
func (e *Encoder) GenericArgs(parent *etree.Element, t *metadata.TypeDescriptor) {
	if t == nil || len(t.GenericParams) == 0 {
		return
	}

	self := t.Ref()
	args := parent.CreateElement("genericargs")
	for i := range t.GenericParams {
		gp := &t.GenericParams[i]
		arg := args.CreateElement("arg")
		e.describe(arg, "name", gp, paramKey{owner: t.Name, pos: i}, "", self, nil, guard{})
	}
}

func (e *Encoder) encode(el *etree.Element, ref metadata.TypeRef, scope *metadata.MethodDescriptor, g guard) {
	switch {
	case ref.IsGenericParam():
		e.param(el, "generic-param", ref.Param, e.declaringRef(ref.Param), scope, g)

	case ref.IsGeneric():
		el.CreateAttr("generic-type", ref.Name)
		args := el.CreateElement("genericargs")
		for _, a := range ref.Args {
			arg := args.CreateElement("arg")
			if a.IsGenericParam() {
				e.param(arg, "name", a.Param, ref, scope, g)
				continue
			}
			e.encode(arg, a, scope, g)
		}

	default:
		el.CreateAttr("type", ref.Name)
	}
}

// declaringRef is the reference a bare parameter's constraints are compared
// against to detect self constraints.
func (e *Encoder) declaringRef(p *metadata.ParamRef) metadata.TypeRef {
	if owner := e.store.Lookup(p.DeclaringType); owner != nil {
		return owner.Ref()
	}
	return metadata.Named(p.DeclaringType)
}

func (e *Encoder) param(el *etree.Element, nameAttr string, p *metadata.ParamRef, enclosing metadata.TypeRef, scope *metadata.MethodDescriptor, g guard) {
	key := paramKey{owner: p.DeclaringType, method: p.DeclaringMethod, pos: p.Position}

	gp := e.store.GenericParam(p, scope)
	if gp == nil {
		// Declaration not in the store: only what the reference itself knows.
		el.CreateAttr("position", strconv.Itoa(p.Position))
		if p.Name != "" {
			el.CreateAttr(nameAttr, p.Name)
		}
		return
	}
	e.describe(el, nameAttr, gp, key, p.Name, enclosing, scope, g)
}

// describe writes a generic parameter description: position, name, flags and
// constraints. The name goes into nameAttr. Constraints other than self
// markers are dropped when the parameter is already being expanded higher up.
func (e *Encoder) describe(el *etree.Element, nameAttr string, gp *metadata.GenericParam, key paramKey, fallbackName string, enclosing metadata.TypeRef, scope *metadata.MethodDescriptor, g guard) {
	name := gp.Name
	if name == "" {
		name = fallbackName
	}

	el.CreateAttr("position", strconv.Itoa(key.pos))
	el.CreateAttr(nameAttr, name)
	if gp.Contravariant {
		el.CreateAttr("contravariant", "true")
	}
	if gp.Covariant {
		el.CreateAttr("covariant", "true")
	}
	if gp.ReferenceType {
		el.CreateAttr("must-be-reference-type", "true")
	}
	if gp.NotNullableValueType {
		el.CreateAttr("must-be-not-nullable-value-type", "true")
	}
	if gp.DefaultConstructor {
		el.CreateAttr("must-have-default-constructor", "true")
	}

	if len(gp.Constraints) == 0 {
		return
	}

	reentered := g[key]
	g[key] = true
	defer func() {
		if !reentered {
			delete(g, key)
		}
	}()

	constraints := etree.NewElement("constraints")
	for _, c := range gp.Constraints {
		if c.Equal(enclosing) {
			constraints.CreateElement("self")
			continue
		}
		if reentered {
			continue
		}
		iface := constraints.CreateElement("interface")
		e.encode(iface, c, scope, g)
	}

	if len(constraints.ChildElements()) > 0 {
		el.AddChild(constraints)
	}
}

// Package augment builds the <reflection> fragment for one documentation
// identifier.
package augment

import (
	"errors"
	"strconv"

	"github.com/beevik/etree"

	"github.com/conduit-lang/docxmlext/internal/docid"
	"github.com/conduit-lang/docxmlext/internal/encode"
	"github.com/conduit-lang/docxmlext/internal/metadata"
	"github.com/conduit-lang/docxmlext/internal/resolve"
)

// Status classifies how an identifier was handled.
type Status int

const (
	// StatusResolved means the entity was found and described.
	StatusResolved Status = iota
	// StatusNotIdentifier means the string carries no supported prefix.
	StatusNotIdentifier
	// StatusMalformed means the identifier lacks an owner or member part.
	StatusMalformed
	// StatusMissingType means the owning type is not in the store.
	StatusMissingType
	// StatusMissingMember means the owner was found but not the member.
	StatusMissingMember
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusNotIdentifier:
		return "not-identifier"
	case StatusMalformed:
		return "malformed"
	case StatusMissingType:
		return "missing-type"
	case StatusMissingMember:
		return "missing-member"
	default:
		return "unknown"
	}
}

// Outcome reports what happened to one identifier.
type Outcome struct {
	ID      string
	Kind    docid.Kind // Meaningful unless Status is StatusNotIdentifier
	Status  Status
	Skipped []string // Placeholder tokens that were not checked during overload selection
}

// Resolved reports whether the entity was found.
func (o Outcome) Resolved() bool {
	return o.Status == StatusResolved
}

// Augmenter dispatches identifiers to the per-kind handlers. It only reads
// the store and is safe for concurrent use.
type Augmenter struct {
	store    *metadata.Store
	resolver *resolve.Resolver
	encoder  *encode.Encoder
}

// New creates an augmenter over store.
func New(store *metadata.Store) *Augmenter {
	return &Augmenter{
		store:    store,
		resolver: resolve.New(store),
		encoder:  encode.New(store),
	}
}

// Augment returns a new, detached <reflection> element for id. Unsupported,
// malformed and unresolved identifiers yield an empty element.
func (a *Augmenter) Augment(id string) (*etree.Element, Outcome) {
	reflection := etree.NewElement("reflection")
	out := Outcome{ID: id}

	ref, err := docid.Parse(id)
	if err != nil {
		if errors.Is(err, docid.ErrMalformed) {
			out.Kind = kindOf(id[0])
			out.Status = StatusMalformed
		} else {
			out.Status = StatusNotIdentifier
		}
		return reflection, out
	}
	out.Kind = ref.Kind

	owner := a.resolver.Type(ref.Owner)
	if owner == nil {
		out.Status = StatusMissingType
		return reflection, out
	}

	found := false
	switch ref.Kind {
	case docid.KindType:
		a.describeType(reflection, owner)
		found = true
	case docid.KindMethod:
		match := a.resolver.Method(owner, ref)
		out.Skipped = match.Skipped
		if match.Method != nil {
			a.describeMethod(reflection, match.Method)
			found = true
		}
	case docid.KindProperty:
		if p := a.store.Property(owner, ref.Member); p != nil {
			a.describeProperty(reflection, p)
			found = true
		}
	case docid.KindField:
		if f := a.store.Field(owner, ref.Member); f != nil {
			a.describeField(reflection, f)
			found = true
		}
	case docid.KindEvent:
		if e := a.store.Event(owner, ref.Member); e != nil {
			a.describeEvent(reflection, e)
			found = true
		}
	}

	if found {
		out.Status = StatusResolved
	} else {
		out.Status = StatusMissingMember
	}
	return reflection, out
}

func kindOf(prefix byte) docid.Kind {
	switch prefix {
	case 'M':
		return docid.KindMethod
	case 'P':
		return docid.KindProperty
	case 'F':
		return docid.KindField
	case 'E':
		return docid.KindEvent
	default:
		return docid.KindType
	}
}

func (a *Augmenter) describeType(r *etree.Element, t *metadata.TypeDescriptor) {
	switch {
	case t.Kind.IsInterface():
		r.CreateAttr("is-interface", "true")
	case t.Kind.IsClass():
		r.CreateAttr("is-class", "true")
	case t.Kind.IsValueType():
		r.CreateAttr("is-value-type", "true")
	}

	a.encoder.Attributes(r, t.Attributes)
	a.encoder.GenericArgs(r, t)

	if base := t.DeclaredBase(); base != nil {
		a.encoder.Type(r.CreateElement("extends"), *base, nil)
	}

	if len(t.Interfaces) > 0 {
		impl := r.CreateElement("implements")
		for _, iface := range t.Interfaces {
			a.encoder.Type(impl.CreateElement("interface"), iface, nil)
		}
	}
}

func (a *Augmenter) describeMethod(r *etree.Element, m *metadata.MethodDescriptor) {
	a.encoder.Attributes(r, m.Attributes)
	a.encoder.Type(r.CreateElement("returns"), m.Returns, m)

	params := r.CreateElement("parameters")
	for _, p := range m.Params {
		el := params.CreateElement("parameter")
		el.CreateAttr("name", p.Name)
		el.CreateAttr("is-in", strconv.FormatBool(p.In))
		el.CreateAttr("is-out", strconv.FormatBool(p.Out))
		el.CreateAttr("is-retval", strconv.FormatBool(p.Retval))
		el.CreateAttr("is-optional", strconv.FormatBool(p.Optional))
		a.encoder.Type(el, p.Type, m)
	}
}

func (a *Augmenter) describeProperty(r *etree.Element, p *metadata.PropertyDescriptor) {
	a.encoder.Attributes(r, p.Attributes)

	el := r.CreateElement("property")
	a.encoder.Type(el, p.Type, nil)
	el.CreateAttr("can-read", strconv.FormatBool(p.CanRead))
	el.CreateAttr("can-write", strconv.FormatBool(p.CanWrite))
}

func (a *Augmenter) describeField(r *etree.Element, f *metadata.FieldDescriptor) {
	a.encoder.Attributes(r, f.Attributes)

	el := r.CreateElement("field")
	a.encoder.Type(el, f.Type, nil)
	el.CreateAttr("is-readonly", strconv.FormatBool(f.ReadOnly))
}

func (a *Augmenter) describeEvent(r *etree.Element, e *metadata.EventDescriptor) {
	a.encoder.Attributes(r, e.Attributes)
	a.encoder.Type(r.CreateElement("event"), e.Type, nil)
}

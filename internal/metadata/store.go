package metadata

import (
	"sort"
)

// Store is the immutable, pre-indexed view of a binary's type system.
// Indexes are built once in NewStore; afterwards a Store is only read and is
// safe for concurrent use without locking.
type Store struct {
	assembly string

	// Pre-computed indexes (built at construction)
	typesByName   map[string]*TypeDescriptor
	nestedByOwner map[string]map[string]*TypeDescriptor // owner full name -> simple name -> nested
	methods       map[memberKey][]*MethodDescriptor      // declaration order preserved
	properties    map[memberKey]*PropertyDescriptor
	fields        map[memberKey]*FieldDescriptor
	events        map[memberKey]*EventDescriptor
	primary       map[string]bool // full names declared by the primary manifest
}

type memberKey struct {
	owner string
	name  string
}

// NewStore builds a store from the primary manifest and any referenced
// manifests. Types of the primary manifest shadow referenced types with the
// same full name.
func NewStore(primary *Manifest, references ...*Manifest) *Store {
	s := &Store{
		typesByName:   make(map[string]*TypeDescriptor),
		nestedByOwner: make(map[string]map[string]*TypeDescriptor),
		methods:       make(map[memberKey][]*MethodDescriptor),
		properties:    make(map[memberKey]*PropertyDescriptor),
		fields:        make(map[memberKey]*FieldDescriptor),
		events:        make(map[memberKey]*EventDescriptor),
		primary:       make(map[string]bool),
	}

	for _, ref := range references {
		if ref == nil {
			continue
		}
		for i := range ref.Types {
			s.index(&ref.Types[i], false)
		}
	}

	if primary != nil {
		s.assembly = primary.Assembly
		for i := range primary.Types {
			s.index(&primary.Types[i], true)
		}
	}

	return s
}

// index registers t, its members and its nested types.
func (s *Store) index(t *TypeDescriptor, primary bool) {
	if t.Name == "" {
		return
	}
	if existing, ok := s.typesByName[t.Name]; ok && existing != t {
		s.dropMembers(t.Name)
	}
	s.typesByName[t.Name] = t
	s.primary[t.Name] = primary

	for i := range t.Methods {
		m := &t.Methods[i]
		key := memberKey{owner: t.Name, name: m.Name}
		s.methods[key] = append(s.methods[key], m)
	}
	for i := range t.Properties {
		p := &t.Properties[i]
		key := memberKey{owner: t.Name, name: p.Name}
		if _, ok := s.properties[key]; !ok {
			s.properties[key] = p
		}
	}
	for i := range t.Fields {
		f := &t.Fields[i]
		key := memberKey{owner: t.Name, name: f.Name}
		if _, ok := s.fields[key]; !ok {
			s.fields[key] = f
		}
	}
	for i := range t.Events {
		e := &t.Events[i]
		key := memberKey{owner: t.Name, name: e.Name}
		if _, ok := s.events[key]; !ok {
			s.events[key] = e
		}
	}

	if len(t.Nested) > 0 {
		byName := make(map[string]*TypeDescriptor, len(t.Nested))
		for i := range t.Nested {
			n := &t.Nested[i]
			if _, ok := byName[n.SimpleName()]; !ok {
				byName[n.SimpleName()] = n
			}
			s.index(n, primary)
		}
		s.nestedByOwner[t.Name] = byName
	} else {
		delete(s.nestedByOwner, t.Name)
	}
}

// dropMembers forgets the member indexes of a shadowed type.
func (s *Store) dropMembers(owner string) {
	for key := range s.methods {
		if key.owner == owner {
			delete(s.methods, key)
		}
	}
	for key := range s.properties {
		if key.owner == owner {
			delete(s.properties, key)
		}
	}
	for key := range s.fields {
		if key.owner == owner {
			delete(s.fields, key)
		}
	}
	for key := range s.events {
		if key.owner == owner {
			delete(s.events, key)
		}
	}
}

// Assembly returns the primary assembly name.
func (s *Store) Assembly() string {
	return s.assembly
}

// Len returns the number of indexed types, nested types included.
func (s *Store) Len() int {
	return len(s.typesByName)
}

// Lookup finds a type by its full name. Returns nil when absent.
func (s *Store) Lookup(fullName string) *TypeDescriptor {
	return s.typesByName[fullName]
}

// IsPrimary reports whether the named type comes from the primary manifest.
func (s *Store) IsPrimary(fullName string) bool {
	return s.primary[fullName]
}

// Nested finds a type nested directly in owner by its simple name.
func (s *Store) Nested(owner *TypeDescriptor, simpleName string) *TypeDescriptor {
	if owner == nil {
		return nil
	}
	return s.nestedByOwner[owner.Name][simpleName]
}

// Methods returns the overload set of name declared by owner, in declaration
// order. The returned slice must not be modified.
func (s *Store) Methods(owner *TypeDescriptor, name string) []*MethodDescriptor {
	if owner == nil {
		return nil
	}
	return s.methods[memberKey{owner: owner.Name, name: name}]
}

// Property finds a property of owner by name, any visibility.
func (s *Store) Property(owner *TypeDescriptor, name string) *PropertyDescriptor {
	if owner == nil {
		return nil
	}
	return s.properties[memberKey{owner: owner.Name, name: name}]
}

// Field finds a field of owner by name, any visibility.
func (s *Store) Field(owner *TypeDescriptor, name string) *FieldDescriptor {
	if owner == nil {
		return nil
	}
	return s.fields[memberKey{owner: owner.Name, name: name}]
}

// Event finds an event of owner by name, any visibility.
func (s *Store) Event(owner *TypeDescriptor, name string) *EventDescriptor {
	if owner == nil {
		return nil
	}
	return s.events[memberKey{owner: owner.Name, name: name}]
}

// GenericParam finds the declaration a parameter reference points at.
// Method-level references are resolved against scope first when it is the
// declaring method, then against the first overload of that name declaring
// enough parameters.
func (s *Store) GenericParam(ref *ParamRef, scope *MethodDescriptor) *GenericParam {
	if ref == nil || ref.Position < 0 {
		return nil
	}

	if ref.DeclaringMethod != "" {
		if scope != nil && scope.Name == ref.DeclaringMethod && ref.Position < len(scope.GenericParams) {
			return &scope.GenericParams[ref.Position]
		}
		owner := s.Lookup(ref.DeclaringType)
		for _, m := range s.Methods(owner, ref.DeclaringMethod) {
			if ref.Position < len(m.GenericParams) {
				return &m.GenericParams[ref.Position]
			}
		}
		return nil
	}

	owner := s.Lookup(ref.DeclaringType)
	if owner == nil || ref.Position >= len(owner.GenericParams) {
		return nil
	}
	return &owner.GenericParams[ref.Position]
}

// TypeNames returns all indexed full names, sorted.
func (s *Store) TypeNames() []string {
	names := make([]string, 0, len(s.typesByName))
	for name := range s.typesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constructors returns the instance constructors of owner.
func (s *Store) Constructors(owner *TypeDescriptor) []*MethodDescriptor {
	return s.Methods(owner, ".ctor")
}

package metadata

import (
	"strconv"
	"strings"
)

// TypeKind classifies a type descriptor.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindStruct    TypeKind = "struct"
	KindEnum      TypeKind = "enum"
	KindDelegate  TypeKind = "delegate"
)

// IsInterface reports whether the kind is an interface.
func (k TypeKind) IsInterface() bool {
	return k == KindInterface
}

// IsClass reports whether the kind is a reference type other than an interface.
// Delegates are classes in the binary's type system.
func (k TypeKind) IsClass() bool {
	return k == KindClass || k == KindDelegate
}

// IsValueType reports whether the kind is a value type.
func (k TypeKind) IsValueType() bool {
	return k == KindStruct || k == KindEnum
}

// Valid reports whether k is one of the known kinds.
func (k TypeKind) Valid() bool {
	switch k {
	case KindClass, KindInterface, KindStruct, KindEnum, KindDelegate:
		return true
	}
	return false
}

// Manifest is the top-level container produced by the external metadata dump
// of one binary.
type Manifest struct {
	Assembly string           `yaml:"assembly"` // Assembly simple name
	Types    []TypeDescriptor `yaml:"types"`    // Top-level types; nested types live under their owner
}

// TypeRef refers to a type from a signature. Exactly one shape applies:
// a generic parameter (Param set), a generic instance (Args set, Name is the
// open definition), or a concrete type (Name only).
type TypeRef struct {
	Name  string    `yaml:"name,omitempty"`  // Full name, or open definition name for generic instances
	Args  []TypeRef `yaml:"args,omitempty"`  // Type arguments of a generic instance
	Param *ParamRef `yaml:"param,omitempty"` // Set when the reference is a generic parameter
}

// ParamRef points at a declared generic parameter.
type ParamRef struct {
	DeclaringType   string `yaml:"type"`             // Full name of the declaring type
	DeclaringMethod string `yaml:"method,omitempty"` // Declaring method, empty for type-level parameters
	Position        int    `yaml:"position"`         // Zero-based position in the declaring list
	Name            string `yaml:"name,omitempty"`   // Parameter name, used when the declaration cannot be found
}

// Named returns a concrete type reference.
func Named(name string) TypeRef {
	return TypeRef{Name: name}
}

// Generic returns a generic instance of the open definition def.
func Generic(def string, args ...TypeRef) TypeRef {
	return TypeRef{Name: def, Args: args}
}

// TypeParam returns a reference to the type-level generic parameter at pos of owner.
func TypeParam(owner string, pos int) TypeRef {
	return TypeRef{Param: &ParamRef{DeclaringType: owner, Position: pos}}
}

// MethodParam returns a reference to the method-level generic parameter at pos.
func MethodParam(owner, method string, pos int) TypeRef {
	return TypeRef{Param: &ParamRef{DeclaringType: owner, DeclaringMethod: method, Position: pos}}
}

// IsGenericParam reports whether r is an un-instantiated generic parameter.
func (r TypeRef) IsGenericParam() bool {
	return r.Param != nil
}

// IsGeneric reports whether r is a generic instance, open or closed.
func (r TypeRef) IsGeneric() bool {
	return r.Param == nil && len(r.Args) > 0
}

// IsOpen reports whether r mentions a generic parameter anywhere.
func (r TypeRef) IsOpen() bool {
	if r.Param != nil {
		return true
	}
	for _, a := range r.Args {
		if a.IsOpen() {
			return true
		}
	}
	return false
}

// Equal compares two references structurally.
func (r TypeRef) Equal(o TypeRef) bool {
	if (r.Param == nil) != (o.Param == nil) {
		return false
	}
	if r.Param != nil {
		return r.Param.DeclaringType == o.Param.DeclaringType &&
			r.Param.DeclaringMethod == o.Param.DeclaringMethod &&
			r.Param.Position == o.Param.Position
	}
	if r.Name != o.Name || len(r.Args) != len(o.Args) {
		return false
	}
	for i := range r.Args {
		if !r.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// String renders r in a compact human-readable form, e.g. "Acme.Box`1[!0]".
func (r TypeRef) String() string {
	if r.Param != nil {
		prefix := "!"
		if r.Param.DeclaringMethod != "" {
			prefix = "!!"
		}
		if r.Param.Name != "" {
			return r.Param.Name
		}
		return prefix + strconv.Itoa(r.Param.Position)
	}
	if len(r.Args) == 0 {
		return r.Name
	}
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	return r.Name + "[" + strings.Join(parts, ",") + "]"
}

// GenericParam describes a declared generic parameter.
type GenericParam struct {
	Name                 string    `yaml:"name"`
	Position             int       `yaml:"position"`
	Covariant            bool      `yaml:"covariant,omitempty"`
	Contravariant        bool      `yaml:"contravariant,omitempty"`
	ReferenceType        bool      `yaml:"reference_type,omitempty"`          // class constraint
	NotNullableValueType bool      `yaml:"not_nullable_value_type,omitempty"` // struct constraint
	DefaultConstructor   bool      `yaml:"default_constructor,omitempty"`     // new() constraint
	Constraints          []TypeRef `yaml:"constraints,omitempty"`
}

// TypeDescriptor describes one type of the binary.
type TypeDescriptor struct {
	Name          string               `yaml:"name"`                     // Full name; nested types use Outer+Inner
	Kind          TypeKind             `yaml:"kind"`                     // class, interface, struct, enum, delegate
	Base          *TypeRef             `yaml:"base,omitempty"`           // Absent for the root object type and interfaces
	Interfaces    []TypeRef            `yaml:"interfaces,omitempty"`     // Implemented interfaces
	GenericParams []GenericParam       `yaml:"generic_params,omitempty"` // Declared generic parameters
	Nested        []TypeDescriptor     `yaml:"nested,omitempty"`         // Nested types
	Methods       []MethodDescriptor   `yaml:"methods,omitempty"`        // Methods and constructors in declaration order
	Properties    []PropertyDescriptor `yaml:"properties,omitempty"`
	Fields        []FieldDescriptor    `yaml:"fields,omitempty"`
	Events        []EventDescriptor    `yaml:"events,omitempty"`
	Attributes    []AttributeInstance  `yaml:"attributes,omitempty"`
}

// SimpleName returns the name a nested type is looked up by inside its owner.
func (t *TypeDescriptor) SimpleName() string {
	if i := strings.LastIndexByte(t.Name, '+'); i >= 0 {
		return t.Name[i+1:]
	}
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// Ref returns the reference a signature would use to name t itself: the
// definition instantiated over its own generic parameters.
func (t *TypeDescriptor) Ref() TypeRef {
	if len(t.GenericParams) == 0 {
		return Named(t.Name)
	}
	args := make([]TypeRef, len(t.GenericParams))
	for i := range t.GenericParams {
		args[i] = TypeParam(t.Name, i)
	}
	return Generic(t.Name, args...)
}

// RootType is the universal root of the binary's type system.
const RootType = "System.Object"

// DeclaredBase returns the base type t declares beyond the universal root,
// or nil when t derives from the root only or is the root itself.
func (t *TypeDescriptor) DeclaredBase() *TypeRef {
	if t.Base == nil {
		return nil
	}
	if t.Base.Name == RootType && !t.Base.IsGeneric() && !t.Base.IsGenericParam() {
		return nil
	}
	return t.Base
}

// MethodDescriptor describes a method or constructor.
type MethodDescriptor struct {
	Name          string              `yaml:"name"` // ".ctor" and ".cctor" for constructors
	Public        bool                `yaml:"public,omitempty"`
	Static        bool                `yaml:"static,omitempty"`
	GenericParams []GenericParam      `yaml:"generic_params,omitempty"`
	Params        []ParamDescriptor   `yaml:"params,omitempty"`
	Returns       TypeRef             `yaml:"returns"`
	Attributes    []AttributeInstance `yaml:"attributes,omitempty"`
}

// ParamDescriptor describes one method parameter.
type ParamDescriptor struct {
	Name     string  `yaml:"name"`
	Type     TypeRef `yaml:"type"`
	In       bool    `yaml:"in,omitempty"`
	Out      bool    `yaml:"out,omitempty"`
	Retval   bool    `yaml:"retval,omitempty"`
	Optional bool    `yaml:"optional,omitempty"`
}

// PropertyDescriptor describes a property.
type PropertyDescriptor struct {
	Name       string              `yaml:"name"`
	Type       TypeRef             `yaml:"type"`
	CanRead    bool                `yaml:"can_read,omitempty"`
	CanWrite   bool                `yaml:"can_write,omitempty"`
	Public     bool                `yaml:"public,omitempty"`
	Static     bool                `yaml:"static,omitempty"`
	Attributes []AttributeInstance `yaml:"attributes,omitempty"`
}

// FieldDescriptor describes a field.
type FieldDescriptor struct {
	Name       string              `yaml:"name"`
	Type       TypeRef             `yaml:"type"`
	ReadOnly   bool                `yaml:"readonly,omitempty"` // init-only
	Public     bool                `yaml:"public,omitempty"`
	Static     bool                `yaml:"static,omitempty"`
	Attributes []AttributeInstance `yaml:"attributes,omitempty"`
}

// EventDescriptor describes an event.
type EventDescriptor struct {
	Name       string              `yaml:"name"`
	Type       TypeRef             `yaml:"type"` // Handler type
	Public     bool                `yaml:"public,omitempty"`
	Static     bool                `yaml:"static,omitempty"`
	Attributes []AttributeInstance `yaml:"attributes,omitempty"`
}

// AttributeInstance is one custom attribute attached to an entity.
type AttributeInstance struct {
	Type  string         `yaml:"type"`            // Attribute type full name
	Args  []AttributeArg `yaml:"args,omitempty"`  // Positional constructor arguments
	Named []AttributeArg `yaml:"named,omitempty"` // Named field/property arguments
}

// AttributeArg is one attribute argument. For positional arguments Name is
// the constructor parameter name; for named arguments it is the member name.
type AttributeArg struct {
	Name  string `yaml:"name,omitempty"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

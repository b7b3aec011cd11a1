// Package metadata holds the type-system view of a compiled binary that the
// doc-XML extender resolves identifiers against.
//
// # Overview
//
// An external dump tool exports the binary's types into a manifest (YAML or
// JSON). LoadFile decodes it and NewStore builds the immutable indexes used
// during a run:
//
//   - full type name -> TypeDescriptor (nested types use the Outer+Inner form)
//   - owner -> nested types by simple name
//   - (owner, member name) -> methods (overload set, declaration order),
//     properties, fields and events
//
// Referenced manifests can be passed to NewStore next to the primary one so
// that parameter types from dependencies (System.String and friends) resolve.
//
// # Type references
//
// Signatures use TypeRef, which is one of:
//
//	{name: System.Int32}                                  concrete
//	{name: Acme.Box`1, args: [{name: System.Int32}]}      generic instance
//	{param: {type: Acme.Box`1, position: 0}}              generic parameter
//
// Generic parameter declarations (variance, special constraints and
// constraint types) live on the declaring type or method and are found with
// Store.GenericParam.
package metadata

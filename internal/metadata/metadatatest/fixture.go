// Package metadatatest provides a small, hand-built binary model shared by the
// tests of the packages that resolve and encode against a metadata.Store.
package metadatatest

import "github.com/conduit-lang/docxmlext/internal/metadata"

// Well-known names used by the fixture.
const (
	Object     = "System.Object"
	Int32      = "System.Int32"
	String     = "System.String"
	Void       = "System.Void"
	Boolean    = "System.Boolean"
	Comparable = "System.IComparable`1"
	List       = "System.Collections.Generic.List`1"
	Disposable = "System.IDisposable"
	Handler    = "System.EventHandler"
	Obsolete   = "System.ObsoleteAttribute"

	Foo      = "Acme.Foo"
	Bar      = "Acme.Bar"
	Baz      = "Acme.Baz"
	Box      = "Acme.Box`1"
	Node     = "Acme.Node`1"
	Outer    = "Acme.Outer"
	Inner    = "Acme.Outer+Inner"
	Deep     = "Acme.Outer+Inner+Deep"
	Point    = "Acme.Point"
	Color    = "Acme.Color"
	Shape    = "Acme.IShape"
	Variance = "Acme.IVariance`2"
)

// Corlib returns the referenced manifest with the framework types the
// fixture's signatures mention.
func Corlib() *metadata.Manifest {
	return &metadata.Manifest{
		Assembly: "mscorlib",
		Types: []metadata.TypeDescriptor{
			{Name: Object, Kind: metadata.KindClass},
			{Name: Int32, Kind: metadata.KindStruct, Base: ref("System.ValueType")},
			{Name: String, Kind: metadata.KindClass, Base: ref(Object)},
			{Name: Void, Kind: metadata.KindStruct, Base: ref("System.ValueType")},
			{Name: Boolean, Kind: metadata.KindStruct, Base: ref("System.ValueType")},
			{
				Name:          Comparable,
				Kind:          metadata.KindInterface,
				GenericParams: []metadata.GenericParam{{Name: "T", Contravariant: true}},
			},
			{
				Name:          List,
				Kind:          metadata.KindClass,
				Base:          ref(Object),
				GenericParams: []metadata.GenericParam{{Name: "T"}},
			},
			{Name: Disposable, Kind: metadata.KindInterface},
			{Name: Handler, Kind: metadata.KindDelegate, Base: ref("System.MulticastDelegate")},
			{
				Name: Obsolete,
				Kind: metadata.KindClass,
				Base: ref("System.Attribute"),
				Methods: []metadata.MethodDescriptor{
					{Name: ".ctor", Public: true, Returns: metadata.Named(Void)},
					{
						Name:    ".ctor",
						Public:  true,
						Returns: metadata.Named(Void),
						Params:  []metadata.ParamDescriptor{{Name: "message", Type: metadata.Named(String)}},
					},
					{
						Name:    ".ctor",
						Public:  true,
						Returns: metadata.Named(Void),
						Params: []metadata.ParamDescriptor{
							{Name: "message", Type: metadata.Named(String)},
							{Name: "error", Type: metadata.Named(Boolean)},
						},
					},
				},
			},
		},
	}
}

// Acme returns the primary manifest.
func Acme() *metadata.Manifest {
	boxT := metadata.TypeParam(Box, 0)
	nodeT := metadata.TypeParam(Node, 0)

	return &metadata.Manifest{
		Assembly: "Acme.Core",
		Types: []metadata.TypeDescriptor{
			{
				Name: Foo,
				Kind: metadata.KindClass,
				Base: ref(Object),
				Attributes: []metadata.AttributeInstance{
					{
						Type:  Obsolete,
						Args:  []metadata.AttributeArg{{Name: "message", Type: String, Value: "use Bar"}},
						Named: []metadata.AttributeArg{{Name: "DiagnosticId", Type: String, Value: "ACME001"}},
					},
				},
				Methods: []metadata.MethodDescriptor{
					{Name: ".ctor", Public: true, Returns: metadata.Named(Void)},
					{Name: "Run", Public: true, Returns: metadata.Named(Void)},
					{
						Name:    "Run",
						Public:  true,
						Returns: metadata.Named(Boolean),
						Params:  []metadata.ParamDescriptor{{Name: "count", Type: metadata.Named(Int32)}},
					},
					{
						Name:    "Run",
						Static:  true,
						Returns: metadata.Named(Int32),
						Params: []metadata.ParamDescriptor{
							{Name: "text", Type: metadata.Named(String), Optional: true},
						},
					},
					{
						Name:    "TryParse",
						Public:  true,
						Static:  true,
						Returns: metadata.Named(Boolean),
						Params: []metadata.ParamDescriptor{
							{Name: "text", Type: metadata.Named(String), In: true},
							{Name: "value", Type: metadata.Named(Int32 + "&"), Out: true},
						},
					},
				},
				Properties: []metadata.PropertyDescriptor{
					{Name: "Name", Type: metadata.Named(String), CanRead: true, CanWrite: true, Public: true},
					{Name: "Length", Type: metadata.Named(Int32), CanRead: true, Public: true},
				},
				Fields: []metadata.FieldDescriptor{
					{Name: "count", Type: metadata.Named(Int32), ReadOnly: true},
					{Name: "Shared", Type: metadata.Named(String), Public: true, Static: true},
				},
				Events: []metadata.EventDescriptor{
					{Name: "Changed", Type: metadata.Named(Handler), Public: true},
				},
			},
			{Name: Bar, Kind: metadata.KindClass, Base: ref(Object)},
			{
				Name:       Baz,
				Kind:       metadata.KindClass,
				Base:       ref(Bar),
				Interfaces: []metadata.TypeRef{metadata.Named(Disposable)},
			},
			{
				Name: Box,
				Kind: metadata.KindClass,
				Base: ref(Object),
				Interfaces: []metadata.TypeRef{
					metadata.Generic(Comparable, metadata.Generic(Box, boxT)),
				},
				GenericParams: []metadata.GenericParam{
					{
						Name:               "T",
						ReferenceType:      true,
						DefaultConstructor: true,
						Constraints:        []metadata.TypeRef{metadata.Generic(Comparable, boxT)},
					},
				},
				Methods: []metadata.MethodDescriptor{
					{
						Name:    "Put",
						Public:  true,
						Returns: metadata.Named(Void),
						Params:  []metadata.ParamDescriptor{{Name: "count", Type: metadata.Named(Int32)}},
					},
					{
						Name:    "Put",
						Public:  true,
						Returns: metadata.Named(Void),
						Params:  []metadata.ParamDescriptor{{Name: "item", Type: boxT}},
					},
					{
						Name:    "Put",
						Public:  true,
						Returns: metadata.Named(Void),
						Params: []metadata.ParamDescriptor{
							{Name: "item", Type: boxT},
							{Name: "count", Type: metadata.Named(Int32)},
						},
					},
					{
						Name:          "Convert",
						Public:        true,
						GenericParams: []metadata.GenericParam{{Name: "TOut", NotNullableValueType: true}},
						Returns:       metadata.MethodParam(Box, "Convert", 0),
						Params:        []metadata.ParamDescriptor{{Name: "input", Type: metadata.MethodParam(Box, "Convert", 0)}},
					},
					{Name: "Get", Public: true, Returns: boxT},
					{
						Name:    "Wrap",
						Public:  true,
						Returns: metadata.Generic(List, metadata.Generic(Box, boxT)),
					},
					{
						Name:    "Numbers",
						Public:  true,
						Returns: metadata.Generic(List, metadata.Generic(List, metadata.Named(Int32))),
					},
				},
				Properties: []metadata.PropertyDescriptor{
					{Name: "Value", Type: boxT, CanRead: true, CanWrite: true, Public: true},
				},
			},
			{
				Name: Node,
				Kind: metadata.KindClass,
				Base: ref(Object),
				GenericParams: []metadata.GenericParam{
					{Name: "T", Constraints: []metadata.TypeRef{metadata.Generic(Node, nodeT)}},
				},
			},
			{
				Name: Outer,
				Kind: metadata.KindClass,
				Base: ref(Object),
				Nested: []metadata.TypeDescriptor{
					{
						Name: Inner,
						Kind: metadata.KindClass,
						Base: ref(Object),
						Methods: []metadata.MethodDescriptor{
							{Name: "Ping", Public: true, Returns: metadata.Named(Void)},
						},
						Nested: []metadata.TypeDescriptor{
							{Name: Deep, Kind: metadata.KindStruct, Base: ref("System.ValueType")},
						},
					},
				},
			},
			{Name: Point, Kind: metadata.KindStruct, Base: ref("System.ValueType")},
			{Name: Color, Kind: metadata.KindEnum, Base: ref("System.Enum")},
			{Name: Shape, Kind: metadata.KindInterface},
			{
				Name: Variance,
				Kind: metadata.KindInterface,
				GenericParams: []metadata.GenericParam{
					{Name: "TIn", Contravariant: true},
					{Name: "TOut", Position: 1, Covariant: true, NotNullableValueType: true},
				},
			},
		},
	}
}

// Store returns a store over Acme with Corlib as reference.
func Store() *metadata.Store {
	return metadata.NewStore(Acme(), Corlib())
}

func ref(name string) *metadata.TypeRef {
	r := metadata.Named(name)
	return &r
}

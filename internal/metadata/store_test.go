package metadata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore() *Store {
	primary := &Manifest{
		Assembly: "Acme.Core",
		Types: []TypeDescriptor{
			{
				Name: "Acme.Outer",
				Kind: KindClass,
				Methods: []MethodDescriptor{
					{Name: "Run", Returns: Named("System.Void")},
					{Name: "Run", Returns: Named("System.Void"), Params: []ParamDescriptor{{Name: "n", Type: Named("System.Int32")}}},
					{
						Name:          "Map",
						GenericParams: []GenericParam{{Name: "TResult"}},
						Returns:       MethodParam("Acme.Outer", "Map", 0),
					},
				},
				Properties: []PropertyDescriptor{{Name: "Size", Type: Named("System.Int32"), CanRead: true}},
				Fields:     []FieldDescriptor{{Name: "size", Type: Named("System.Int32")}},
				Events:     []EventDescriptor{{Name: "Tick", Type: Named("System.EventHandler")}},
				Nested: []TypeDescriptor{
					{Name: "Acme.Outer+Inner", Kind: KindStruct},
				},
			},
			{
				Name:          "Acme.List`1",
				Kind:          KindClass,
				GenericParams: []GenericParam{{Name: "T", Position: 0}},
			},
			{Name: "System.String", Kind: KindClass},
		},
	}
	corlib := &Manifest{
		Assembly: "mscorlib",
		Types: []TypeDescriptor{
			{Name: "System.Int32", Kind: KindStruct},
			{
				Name:    "System.String",
				Kind:    KindClass,
				Methods: []MethodDescriptor{{Name: "Trim", Returns: Named("System.String")}},
			},
		},
	}
	return NewStore(primary, corlib)
}

func TestStore_Lookup(t *testing.T) {
	s := sampleStore()

	assert.Equal(t, "Acme.Core", s.Assembly())
	assert.Equal(t, 5, s.Len())

	outer := s.Lookup("Acme.Outer")
	require.NotNil(t, outer)
	assert.Equal(t, KindClass, outer.Kind)

	// Nested types are indexed globally under their binary full name
	inner := s.Lookup("Acme.Outer+Inner")
	require.NotNil(t, inner)
	assert.Same(t, inner, s.Nested(outer, "Inner"))

	assert.Nil(t, s.Lookup("Acme.Outer.Inner"))
	assert.Nil(t, s.Nested(outer, "Missing"))
	assert.Nil(t, s.Nested(nil, "Inner"))

	// Referenced types resolve too
	require.NotNil(t, s.Lookup("System.Int32"))
	assert.False(t, s.IsPrimary("System.Int32"))
	assert.True(t, s.IsPrimary("Acme.Outer"))
}

func TestStore_PrimaryShadowsReference(t *testing.T) {
	s := sampleStore()

	str := s.Lookup("System.String")
	require.NotNil(t, str)
	assert.True(t, s.IsPrimary("System.String"))
	assert.Empty(t, s.Methods(str, "Trim"), "members of the shadowed type must not leak")
}

func TestStore_Members(t *testing.T) {
	s := sampleStore()
	outer := s.Lookup("Acme.Outer")

	runs := s.Methods(outer, "Run")
	require.Len(t, runs, 2)
	assert.Empty(t, runs[0].Params)
	assert.Len(t, runs[1].Params, 1)

	assert.NotNil(t, s.Property(outer, "Size"))
	assert.NotNil(t, s.Field(outer, "size"))
	assert.NotNil(t, s.Event(outer, "Tick"))
	assert.Nil(t, s.Property(outer, "size"))
	assert.Nil(t, s.Field(nil, "size"))
	assert.Nil(t, s.Methods(nil, "Run"))
}

func TestStore_GenericParam(t *testing.T) {
	s := sampleStore()
	outer := s.Lookup("Acme.Outer")
	mapMethod := s.Methods(outer, "Map")[0]

	tests := []struct {
		name  string
		ref   *ParamRef
		scope *MethodDescriptor
		want  string
	}{
		{"type level", TypeParam("Acme.List`1", 0).Param, nil, "T"},
		{"method level in scope", MethodParam("Acme.Outer", "Map", 0).Param, mapMethod, "TResult"},
		{"method level by name", MethodParam("Acme.Outer", "Map", 0).Param, nil, "TResult"},
		{"position out of range", TypeParam("Acme.List`1", 3).Param, nil, ""},
		{"unknown owner", TypeParam("Acme.Missing`1", 0).Param, nil, ""},
		{"unknown method", MethodParam("Acme.Outer", "Nope", 0).Param, nil, ""},
		{"nil ref", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp := s.GenericParam(tt.ref, tt.scope)
			if tt.want == "" {
				assert.Nil(t, gp)
				return
			}
			require.NotNil(t, gp)
			assert.Equal(t, tt.want, gp.Name)
		})
	}
}

func TestStore_TypeNamesSorted(t *testing.T) {
	s := sampleStore()
	assert.Equal(t, []string{
		"Acme.List`1",
		"Acme.Outer",
		"Acme.Outer+Inner",
		"System.Int32",
		"System.String",
	}, s.TypeNames())
}

func TestStore_ConcurrentReads(t *testing.T) {
	s := sampleStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outer := s.Lookup("Acme.Outer")
			assert.NotNil(t, s.Nested(outer, "Inner"))
			assert.Len(t, s.Methods(outer, "Run"), 2)
		}()
	}
	wg.Wait()
}

func TestTypeRef(t *testing.T) {
	open := Generic("Acme.List`1", TypeParam("Acme.Box`1", 0))
	closed := Generic("Acme.List`1", Named("System.Int32"))

	assert.True(t, open.IsGeneric())
	assert.True(t, open.IsOpen())
	assert.False(t, closed.IsOpen())
	assert.False(t, Named("System.Int32").IsGeneric())
	assert.True(t, TypeParam("Acme.Box`1", 0).IsGenericParam())

	assert.True(t, open.Equal(Generic("Acme.List`1", TypeParam("Acme.Box`1", 0))))
	assert.False(t, open.Equal(closed))
	assert.False(t, TypeParam("Acme.Box`1", 0).Equal(MethodParam("Acme.Box`1", "M", 0)))

	assert.Equal(t, "Acme.List`1[System.Int32]", closed.String())
	assert.Equal(t, "Acme.List`1[!0]", open.String())
	assert.Equal(t, "!!1", MethodParam("Acme.Box`1", "M", 1).String())
}

func TestTypeDescriptor_Ref(t *testing.T) {
	plain := &TypeDescriptor{Name: "Acme.Foo"}
	assert.Equal(t, Named("Acme.Foo"), plain.Ref())

	generic := &TypeDescriptor{Name: "Acme.Pair`2", GenericParams: []GenericParam{{Name: "K"}, {Name: "V", Position: 1}}}
	ref := generic.Ref()
	assert.True(t, ref.Equal(Generic("Acme.Pair`2", TypeParam("Acme.Pair`2", 0), TypeParam("Acme.Pair`2", 1))))
}

func TestTypeKind(t *testing.T) {
	assert.True(t, KindInterface.IsInterface())
	assert.True(t, KindDelegate.IsClass())
	assert.True(t, KindEnum.IsValueType())
	assert.False(t, KindClass.IsValueType())
	assert.False(t, TypeKind("record").Valid())
}

func TestTypeDescriptor_DeclaredBase(t *testing.T) {
	object := Named(RootType)
	bar := Named("Acme.Bar")

	assert.Nil(t, (&TypeDescriptor{Name: RootType}).DeclaredBase())
	assert.Nil(t, (&TypeDescriptor{Name: "Acme.Foo", Base: &object}).DeclaredBase())
	assert.Equal(t, &bar, (&TypeDescriptor{Name: "Acme.Baz", Base: &bar}).DeclaredBase())
}

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/docxmlext/internal/docid"
	"github.com/conduit-lang/docxmlext/internal/metadata"
	mt "github.com/conduit-lang/docxmlext/internal/metadata/metadatatest"
)

func TestResolver_Type(t *testing.T) {
	r := New(mt.Store())

	tests := []struct {
		name string
		in   string
		want string // empty means no type
	}{
		{"direct", "Acme.Foo", mt.Foo},
		{"generic definition", "Acme.Box`1", mt.Box},
		{"referenced binary", "System.String", mt.String},
		{"nested one level", "Acme.Outer.Inner", mt.Inner},
		{"nested binary name", "Acme.Outer+Inner", mt.Inner},
		{"doubly nested binary name", "Acme.Outer+Inner+Deep", mt.Deep},
		// The dotted fallback only descends one level.
		{"doubly nested dotted", "Acme.Outer.Inner.Deep", ""},
		{"unknown", "Acme.Missing", ""},
		{"unknown nested", "Acme.Outer.Missing", ""},
		{"empty", "", ""},
		{"leading dot", ".Foo", ""},
		{"trailing dot", "Acme.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Type(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestResolver_Method(t *testing.T) {
	r := New(mt.Store())

	tests := []struct {
		name        string
		id          string
		wantParams  []string // parameter names of the selected overload
		wantReturns string
		wantSkipped []string
		miss        bool
	}{
		{
			name:        "zero parameters selects the parameterless overload",
			id:          "M:Acme.Foo.Run",
			wantParams:  []string{},
			wantReturns: mt.Void,
		},
		{
			name:        "exact parameter types",
			id:          "M:Acme.Foo.Run(System.Int32)",
			wantParams:  []string{"count"},
			wantReturns: mt.Boolean,
		},
		{
			name:        "static overload",
			id:          "M:Acme.Foo.Run(System.String)",
			wantParams:  []string{"text"},
			wantReturns: mt.Int32,
		},
		{
			name: "unresolvable parameter token",
			id:   "M:Acme.Foo.Run(System.Double)",
			miss: true,
		},
		{
			name: "no overload with that list",
			id:   "M:Acme.Foo.Run(System.Int32,System.Int32)",
			miss: true,
		},
		{
			name:        "constructor",
			id:          "M:Acme.Foo.#ctor",
			wantParams:  []string{},
			wantReturns: mt.Void,
		},
		{
			name:        "by-reference parameter",
			id:          "M:Acme.Foo.TryParse(System.String,System.Int32@)",
			wantParams:  []string{"text", "value"},
			wantReturns: mt.Boolean,
		},
		{
			name: "unknown method",
			id:   "M:Acme.Foo.Stop",
			miss: true,
		},
		{
			name:        "placeholder selects the generic overload",
			id:          "M:Acme.Box`1.Put(`0)",
			wantParams:  []string{"item"},
			wantReturns: mt.Void,
		},
		{
			name:        "placeholder mixed with concrete token",
			id:          "M:Acme.Box`1.Put(`0,System.Int32)",
			wantParams:  []string{"item", "count"},
			wantReturns: mt.Void,
		},
		{
			name: "placeholder position must match",
			id:   "M:Acme.Box`1.Put(`1)",
			miss: true,
		},
		{
			name:        "concrete token on a generic owner",
			id:          "M:Acme.Box`1.Put(System.Int32)",
			wantParams:  []string{"count"},
			wantReturns: mt.Void,
		},
		{
			name:        "method-level placeholder is skipped",
			id:          "M:Acme.Box`1.Convert``1(``0)",
			wantParams:  []string{"input"},
			wantSkipped: []string{"``0"},
		},
		{
			name: "generic arity must match",
			id:   "M:Acme.Box`1.Convert``2(``0)",
			miss: true,
		},
		{
			// Decorated placeholders are not checked, so the first overload
			// of the right arity wins.
			name:        "unparseable placeholder accepts first candidate",
			id:          "M:Acme.Box`1.Put(`0[])",
			wantParams:  []string{"count"},
			wantReturns: mt.Void,
			wantSkipped: []string{"`0[]"},
		},
		{
			name:        "method of a nested type",
			id:          "M:Acme.Outer.Inner.Ping",
			wantParams:  []string{},
			wantReturns: mt.Void,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := docid.Parse(tt.id)
			require.NoError(t, err)

			owner := r.Type(ref.Owner)
			require.NotNil(t, owner)

			match := r.Method(owner, ref)
			if tt.miss {
				assert.Nil(t, match.Method)
				return
			}
			require.NotNil(t, match.Method)

			names := []string{}
			for _, p := range match.Method.Params {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantParams, names)
			if tt.wantReturns != "" {
				assert.Equal(t, tt.wantReturns, match.Method.Returns.Name)
			}
			assert.Equal(t, tt.wantSkipped, match.Skipped)
		})
	}
}

func TestResolver_MethodGuards(t *testing.T) {
	r := New(mt.Store())
	foo := r.Type(mt.Foo)

	assert.Nil(t, r.Method(nil, docid.Reference{Kind: docid.KindMethod, Member: "Run"}).Method)
	assert.Nil(t, r.Method(foo, docid.Reference{Kind: docid.KindProperty, Member: "Name"}).Method)
}

func TestResolver_FirstMatchWins(t *testing.T) {
	store := metadata.NewStore(&metadata.Manifest{
		Types: []metadata.TypeDescriptor{
			{Name: "System.Int32", Kind: metadata.KindStruct},
			{
				Name: "Acme.Dup",
				Kind: metadata.KindClass,
				Methods: []metadata.MethodDescriptor{
					{Name: "Do", Params: []metadata.ParamDescriptor{{Name: "first", Type: metadata.Named("System.Int32")}}},
					{Name: "Do", Static: true, Params: []metadata.ParamDescriptor{{Name: "second", Type: metadata.Named("System.Int32")}}},
				},
			},
		},
	})
	r := New(store)

	ref, err := docid.Parse("M:Acme.Dup.Do(System.Int32)")
	require.NoError(t, err)

	match := r.Method(r.Type("Acme.Dup"), ref)
	require.NotNil(t, match.Method)
	assert.Equal(t, "first", match.Method.Params[0].Name)
}

func TestMemberName(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantArity int
	}{
		{"Run", "Run", -1},
		{"#ctor", ".ctor", -1},
		{"#cctor", ".cctor", -1},
		{"Convert``1", "Convert", 1},
		{"Odd``x", "Odd``x", -1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, arity := memberName(tt.in)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArity, arity)
		})
	}
}

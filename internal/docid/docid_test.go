package docid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Reference
	}{
		{
			name: "type",
			id:   "T:Acme.Foo",
			want: Reference{Kind: KindType, Owner: "Acme.Foo"},
		},
		{
			name: "nested type keeps dotted form",
			id:   "T:Acme.Outer.Inner",
			want: Reference{Kind: KindType, Owner: "Acme.Outer.Inner"},
		},
		{
			name: "method without parentheses",
			id:   "M:Acme.Foo.Run",
			want: Reference{Kind: KindMethod, Owner: "Acme.Foo", Member: "Run", Params: []string{}},
		},
		{
			name: "method with parameters",
			id:   "M:Acme.Foo.Run(System.String, System.Int32)",
			want: Reference{Kind: KindMethod, Owner: "Acme.Foo", Member: "Run", Params: []string{"System.String", "System.Int32"}},
		},
		{
			name: "method with empty parentheses",
			id:   "M:Acme.Foo.Run()",
			want: Reference{Kind: KindMethod, Owner: "Acme.Foo", Member: "Run", Params: []string{}},
		},
		{
			name: "constructor",
			id:   "M:Acme.Foo.#ctor",
			want: Reference{Kind: KindMethod, Owner: "Acme.Foo", Member: "#ctor", Params: []string{}},
		},
		{
			name: "placeholders",
			id:   "M:Acme.Box`1.Put(`0,System.Int32)",
			want: Reference{Kind: KindMethod, Owner: "Acme.Box`1", Member: "Put", Params: []string{"`0", "System.Int32"}},
		},
		{
			name: "constructed generic argument is one token",
			id:   "M:Acme.Map.Add(System.Collections.Generic.Dictionary{System.String,System.Int32},System.Int32[0:,0:])",
			want: Reference{
				Kind:   KindMethod,
				Owner:  "Acme.Map",
				Member: "Add",
				Params: []string{"System.Collections.Generic.Dictionary{System.String,System.Int32}", "System.Int32[0:,0:]"},
			},
		},
		{
			name: "property",
			id:   "P:Acme.Foo.Name",
			want: Reference{Kind: KindProperty, Owner: "Acme.Foo", Member: "Name"},
		},
		{
			name: "field",
			id:   "F:Acme.Foo.count",
			want: Reference{Kind: KindField, Owner: "Acme.Foo", Member: "count"},
		},
		{
			name: "event",
			id:   "E:Acme.Foo.Changed",
			want: Reference{Kind: KindEvent, Owner: "Acme.Foo", Member: "Changed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NotIdentifier(t *testing.T) {
	for _, id := range []string{"", "T", "T:", "N:Acme", "!:Broken.Ref", "X:Acme.Foo"} {
		t.Run(id, func(t *testing.T) {
			_, err := Parse(id)
			assert.ErrorIs(t, err, ErrNotIdentifier)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, id := range []string{"P:Name", "F:count", "E:.Changed", "M:Run(System.Int32)", "P:Acme.Foo."} {
		t.Run(id, func(t *testing.T) {
			_, err := Parse(id)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReference_String(t *testing.T) {
	for _, id := range []string{
		"T:Acme.Foo",
		"M:Acme.Foo.Run",
		"M:Acme.Box`1.Put(`0,System.Int32)",
		"P:Acme.Foo.Name",
		"E:Acme.Foo.Changed",
	} {
		ref, err := Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, ref.String())
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		token   string
		isPH    bool
		index   int
		wantErr bool
	}{
		{"`0", true, 0, false},
		{"`12", true, 12, false},
		{"``0", true, 0, true},
		{"`0[]", true, 0, true},
		{"System.Int32", false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.isPH, IsPlaceholder(tt.token))
			idx, err := PlaceholderIndex(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.index, idx)
		})
	}

	ref, err := Parse("M:Acme.Box`1.Put(`0)")
	require.NoError(t, err)
	assert.True(t, ref.HasPlaceholder())

	ref, err = Parse("M:Acme.Foo.Run(System.Int32)")
	require.NoError(t, err)
	assert.False(t, ref.HasPlaceholder())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "type", KindType.String())
	assert.Equal(t, "event", KindEvent.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

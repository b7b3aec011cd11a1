package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runerrors "github.com/conduit-lang/docxmlext/internal/errors"
)

func TestInspect_PrintsFragments(t *testing.T) {
	f := writeFixture(t)

	out, err := execute(t, "inspect", f.acme, "T:Acme.Foo", "M:Acme.Foo.Run(System.Int32)", "-r", f.corlib, "--indent", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "T:Acme.Foo\n──────────\n<reflection is-class=\"true\"/>\n")
	assert.Contains(t, out, `<returns type="System.Boolean"/>`)
	assert.Contains(t, out, `<parameter name="count" is-in="false" is-out="false" is-retval="false" is-optional="false" type="System.Int32"/>`)
	assert.NotContains(t, out, "TYPE NOT FOUND")
}

func TestInspect_Indented(t *testing.T) {
	f := writeFixture(t)

	out, err := execute(t, "inspect", f.acme, "M:Acme.Foo.Run(System.Int32)", "-r", f.corlib)
	require.NoError(t, err)
	assert.Contains(t, out, "<reflection>\n  <returns type=\"System.Boolean\"/>\n  <parameters>\n    <parameter ")
}

func TestInspect_Misses(t *testing.T) {
	f := writeFixture(t)

	out, err := execute(t, "inspect", f.acme, "T:Acme.Fo", "P:Acme.Foo.Missing", "N:Acme")
	require.NoError(t, err)

	assert.Contains(t, out, "TYPE NOT FOUND")
	assert.Contains(t, out, "No type 'Acme.Fo' in the loaded manifests.")
	assert.Contains(t, out, "Did you mean: Acme.Foo?")
	assert.Contains(t, out, "missing-member: P:Acme.Foo.Missing")
	assert.Contains(t, out, "not-identifier: N:Acme")
}

func TestInspect_BadManifest(t *testing.T) {
	f := writeFixture(t)

	_, err := execute(t, "inspect", f.dir+"/nope.yaml", "T:Acme.Foo")
	re, ok := runerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, runerrors.ErrMetadataLoad, re.Code)
}

func TestInspect_ArgCount(t *testing.T) {
	f := writeFixture(t)
	_, err := execute(t, "inspect", f.acme)
	assert.Error(t, err)
}

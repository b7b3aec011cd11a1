package commands

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckOutput(t *testing.T) {
	assert.NoError(t, checkOutput("out.xml", []string{"in.xml", "acme.yaml"}))
	assert.Error(t, checkOutput("in.xml", []string{"./in.xml", "acme.yaml"}))
}

func TestWatch_RejectsOutputAsInput(t *testing.T) {
	f := writeFixture(t)
	_, err := execute(t, "watch", f.doc, f.acme, f.doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is also an input")
}

func TestWatch_RerunsOnChange(t *testing.T) {
	f := writeFixture(t)

	var out syncBuffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--no-color", "--log-level", "error",
		"watch", f.doc, f.acme, f.out, "-r", f.corlib, "--debounce", "20ms"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(f.out)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching 3 files")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(f.out))
	writeFile(t, f.doc, docXML)

	require.Eventually(t, func() bool {
		_, err := os.Stat(f.out)
		return err == nil
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Contains(t, out.String(), "Changed: ")
}

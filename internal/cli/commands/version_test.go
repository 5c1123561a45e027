package commands

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	for _, version := range []string{"0.1.0", "dev"} {
		t.Run(version, func(t *testing.T) {
			cmd := NewVersionCommand(version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs(nil)

			require.NoError(t, cmd.Execute())
			out := buf.String()
			assert.Contains(t, out, "ferin v"+version)
			assert.Contains(t, out, "targets: web, app")
			assert.Contains(t, out, runtime.Version())
		})
	}
}

func TestVersionRejectsArgs(t *testing.T) {
	cmd := NewVersionCommand("dev")
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

package commands

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/stretchr/testify/assert"
)

func newTestSession(tgt target.Target) (*replSession, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return newREPLSession(tgt, out, errOut), out, errOut
}

func TestREPLSingleLine(t *testing.T) {
	s, out, errOut := newTestSession(target.Web)

	assert.False(t, s.Feed("var x = 1 + 2"))
	assert.Equal(t, "let x = reactive((1 + 2));\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, replPrompt, s.Prompt())
}

func TestREPLBlock(t *testing.T) {
	s, out, _ := newTestSession(target.Web)

	s.Feed("fn greet(name):")
	assert.Equal(t, replContPrompt, s.Prompt())
	s.Feed("  log(name)")
	assert.Empty(t, out.String(), "nothing is translated before the block ends")

	s.Feed("")
	assert.Equal(t, replPrompt, s.Prompt())
	assert.Contains(t, out.String(), "function greet(name) {\n  console.log(name);\n}")
}

func TestREPLErrorsGoToStderr(t *testing.T) {
	s, out, errOut := newTestSession(target.Web)

	s.Feed("var = 1")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: syntax error at line 1:5")
}

func TestREPLDotCommands(t *testing.T) {
	s, out, errOut := newTestSession(target.Web)

	assert.False(t, s.Feed(".help"))
	assert.Contains(t, out.String(), ".target [web|app]")

	out.Reset()
	s.Feed(".target app")
	assert.Equal(t, "target: app\n", out.String())
	assert.Equal(t, target.App, s.target)

	s.Feed(".target desktop")
	assert.Contains(t, errOut.String(), `unknown target "desktop"`)
	assert.Equal(t, target.App, s.target)

	s.Feed(".bogus")
	assert.Contains(t, errOut.String(), "Unknown command: .bogus")

	assert.True(t, s.Feed(".quit"))
	assert.True(t, s.Feed(".exit"))
}

func TestREPLResetDropsBlock(t *testing.T) {
	s, out, _ := newTestSession(target.Web)

	s.Feed("if ready:")
	s.Reset()
	assert.Equal(t, replPrompt, s.Prompt())

	s.Feed("log(1)")
	assert.Equal(t, "console.log(1);\n", out.String())
}

package lsp

import (
	"testing"

	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const symbolSource = `import { fetchAll, save as store } from "./api"
import * as util from "util"

var count: Number = 0

async fn load(url, retries?: Number): Promise:
  var count = 1
  ret fetchAll(url)

class Counter(Base):
  total = 0
  fn init(start):
    var local = start
    self.total = local

comp App(name):
  ret /div "hi"

export fn helper():
  ret 1
`

func TestIndexSymbols(t *testing.T) {
	prog, err := parser.Parse(symbolSource)
	require.NoError(t, err)

	byName := func(syms []Symbol, name string) []Symbol {
		var out []Symbol
		for _, s := range syms {
			if s.Name == name {
				out = append(out, s)
			}
		}
		return out
	}
	syms := IndexSymbols(prog)

	imports := byName(syms, "store")
	require.Len(t, imports, 1)
	assert.Equal(t, SymbolImport, imports[0].Kind)
	assert.Equal(t, `import { save as store } from "./api"`, imports[0].Signature)

	ns := byName(syms, "util")
	require.Len(t, ns, 1)
	assert.Equal(t, `import * as util from "util"`, ns[0].Signature)

	counts := byName(syms, "count")
	require.Len(t, counts, 2)
	assert.True(t, counts[0].TopLevel)
	assert.Equal(t, "var count: Number", counts[0].Signature)
	assert.False(t, counts[1].TopLevel, "locals inside functions are nested")

	load := byName(syms, "load")
	require.Len(t, load, 1)
	assert.Equal(t, SymbolFunction, load[0].Kind)
	assert.Equal(t, "async fn load(url, retries?: Number): Promise", load[0].Signature)

	class := byName(syms, "Counter")
	require.Len(t, class, 1)
	assert.Equal(t, "class Counter(Base)", class[0].Signature)

	for _, name := range []string{"total", "init"} {
		members := byName(syms, name)
		require.Len(t, members, 1, name)
		assert.Equal(t, "Counter", members[0].Container)
		assert.False(t, members[0].TopLevel)
	}
	assert.Len(t, byName(syms, "local"), 1, "method bodies are indexed")

	app := byName(syms, "App")
	require.Len(t, app, 1)
	assert.Equal(t, SymbolComponent, app[0].Kind)
	assert.Equal(t, "comp App(name)", app[0].Signature)

	helper := byName(syms, "helper")
	require.Len(t, helper, 1)
	assert.True(t, helper[0].TopLevel, "exported declarations are top level")
}

func TestLookupSymbolPrefersTopLevel(t *testing.T) {
	syms := []Symbol{
		{Name: "x", Signature: "var x: Nested"},
		{Name: "x", Signature: "var x", TopLevel: true},
	}
	sym, ok := lookupSymbol(syms, "x")
	require.True(t, ok)
	assert.Equal(t, "var x", sym.Signature)

	sym, ok = lookupSymbol(syms[:1], "x")
	require.True(t, ok)
	assert.Equal(t, "var x: Nested", sym.Signature)

	_, ok = lookupSymbol(syms, "y")
	assert.False(t, ok)
}

func TestNameOffset(t *testing.T) {
	prog, err := parser.Parse(symbolSource)
	require.NoError(t, err)

	sym, ok := lookupSymbol(IndexSymbols(prog), "load")
	require.True(t, ok)
	offset := nameOffset(symbolSource, sym)
	assert.Equal(t, "load(", symbolSource[offset:offset+5])
}

package transform

import (
	"testing"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/stretchr/testify/assert"
)

func TestQuoteJS(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, `""`},
		{`plain`, `"plain"`},
		{`a "b"`, `"a \"b\""`},
		{`kept \" escape`, `"kept \" escape"`},
		{`it\'s`, `"it\'s"`},
		{"line\nbreak", `"line\nbreak"`},
		{`trailing\`, `"trailing\\"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteJS(tt.raw), "raw %q", tt.raw)
	}
}

func TestRegistryKeepsFirstSlot(t *testing.T) {
	r := newRegistry()
	first := &ast.ComponentDecl{Name: "A"}
	second := &ast.ComponentDecl{Name: "A"}
	r.add(first)
	r.add(&ast.ComponentDecl{Name: "B"})
	r.add(second)
	assert.Equal(t, []string{"A", "B"}, r.names())
	assert.Equal(t, 2, r.len())
	assert.Same(t, second, r.decls["A"])
}

func TestPrinterBlank(t *testing.T) {
	p := newPrinter()
	p.blank()
	p.line("a")
	p.blank()
	p.blank()
	p.block("b", func() { p.line("c") })
	assert.Equal(t, "a\n\nb {\n  c\n}\n", p.String())
}

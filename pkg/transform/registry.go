package transform

import "github.com/leapstack-labs/ferin/pkg/ast"

// registry is an insertion-ordered map of component declarations.
// Re-registering a name replaces the declaration but keeps its slot.
type registry struct {
	order []string
	decls map[string]*ast.ComponentDecl
}

func newRegistry() *registry {
	return &registry{decls: make(map[string]*ast.ComponentDecl)}
}

func (r *registry) add(c *ast.ComponentDecl) {
	if _, ok := r.decls[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.decls[c.Name] = c
}

// names returns component names in first-registration order.
func (r *registry) names() []string {
	return r.order
}

func (r *registry) len() int {
	return len(r.order)
}

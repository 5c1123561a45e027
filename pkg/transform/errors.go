package transform

import (
	"fmt"

	"github.com/leapstack-labs/ferin/pkg/target"
)

// ValidationError reports a program that does not satisfy its target's
// entry contract.
type ValidationError struct {
	Target  target.Target
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validation messages
const (
	ErrWebNeedsRoot  = "web target requires a component to be returned at the top level; add a top-level ret statement returning a component"
	ErrAppNeedsMount = "app target requires at least one process.mount() call; mount a window with process.mount()"
)

// Package target names the runtimes ferin can compile for.
package target

import (
	"fmt"
	"strings"
)

// Target selects the runtime a program is compiled for.
type Target int

// Supported targets.
const (
	Web Target = iota // browser page
	App               // desktop shell (Electron)
)

// All returns every target in declaration order.
func All() []Target {
	return []Target{Web, App}
}

func (t Target) String() string {
	switch t {
	case Web:
		return "web"
	case App:
		return "app"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Parse converts a target name ("web" or "app", any case) to a Target.
func Parse(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web", "":
		return Web, nil
	case "app":
		return App, nil
	}
	return Web, fmt.Errorf("unknown target %q (expected web or app)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

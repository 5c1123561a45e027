// Package state records compilations in a local SQLite ledger.
//
// Every `ferin build` writes one row, successful or not, so `ferin history`
// can show what was built, for which target and how long it took.
package state

import (
	"strings"
	"time"
)

// BuildStatus is the outcome of a build.
type BuildStatus string

// Build outcomes.
const (
	BuildSucceeded BuildStatus = "succeeded"
	BuildFailed    BuildStatus = "failed"
)

// Build is one recorded compilation.
type Build struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Target     string        `json:"target"`
	Status     BuildStatus   `json:"status"`
	OutDir     string        `json:"out_dir,omitempty"`
	JSBytes    int           `json:"js_bytes"`
	CSSBytes   int           `json:"css_bytes"`
	Components []string      `json:"components,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Store persists build records.
type Store interface {
	RecordBuild(b *Build) error
	GetBuild(id string) (*Build, error)
	ListBuilds(limit int) ([]*Build, error)
	Close() error
}

func joinComponents(names []string) string {
	return strings.Join(names, ",")
}

func splitComponents(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

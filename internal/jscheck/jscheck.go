// Package jscheck verifies that generated JavaScript and CSS parse, using
// esbuild's transform API. It reports problems only; the checked text is
// never rewritten.
package jscheck

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Problem is a single esbuild diagnostic.
type Problem struct {
	File   string
	Line   int
	Column int
	Text   string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", p.File, p.Line, p.Column, p.Text)
}

// Error collects the diagnostics of a failed check.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("esbuild errors:\n")
	for _, p := range e.Problems {
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	return b.String()
}

// JS parses js as an ES2020 script. name labels diagnostics.
func JS(js, name string) error {
	return check(js, name, api.LoaderJS)
}

// CSS parses a stylesheet.
func CSS(css, name string) error {
	return check(css, name, api.LoaderCSS)
}

func check(src, name string, loader api.Loader) error {
	result := api.Transform(src, api.TransformOptions{
		Loader:     loader,
		Sourcefile: name,
		Target:     api.ES2020,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	errs := &Error{}
	for _, msg := range result.Errors {
		p := Problem{File: name, Text: msg.Text}
		if msg.Location != nil {
			p.Line = msg.Location.Line
			p.Column = msg.Location.Column
		}
		errs.Problems = append(errs.Problems, p)
	}
	return errs
}

// Package codegen wraps a transformed program body with its target runtime.
package codegen

import (
	_ "embed"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/target"
)

var (
	//go:embed runtime/web.js
	webRuntime string
	//go:embed runtime/app.js
	appRuntime string
	//go:embed runtime/bootstrap.js
	webBootstrap string
	//go:embed runtime/default.css
	defaultCSS string
)

// Artifact is the final compiler output. CSS is empty for targets that do
// not ship a stylesheet.
type Artifact struct {
	JS  string
	CSS string
}

// HasCSS reports whether the artifact carries a stylesheet.
func (a Artifact) HasCSS() bool {
	return a.CSS != ""
}

// Runtime returns the runtime prelude for tgt.
func Runtime(tgt target.Target) string {
	if tgt == target.App {
		return appRuntime
	}
	return webRuntime
}

// Stylesheet returns the default stylesheet shipped with tgt, or "".
func Stylesheet(tgt target.Target) string {
	if tgt == target.Web {
		return defaultCSS
	}
	return ""
}

// Wrap prefixes body with the runtime and runs it inside an async function,
// so top-level `await` from loop statements is valid. The web target also
// gets the bootstrap that calls main() once the page is ready, and the
// default stylesheet.
func Wrap(body string, tgt target.Target) Artifact {
	var b strings.Builder
	b.WriteString(strings.TrimRight(Runtime(tgt), "\n"))
	b.WriteString("\n\n(async function () {\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	if tgt == target.Web {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(webBootstrap, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("})().catch((err) => {\n  console.error(err);\n});\n")

	return Artifact{JS: b.String(), CSS: Stylesheet(tgt)}
}

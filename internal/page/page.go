// Package page renders the documents that host a compiled program: the HTML
// page for the web target, the dev server's error page, and the Electron
// package manifest for the app target.
package page

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Shared asset locations.
const (
	TailwindScript = "https://cdn.tailwindcss.com"
	DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
	DefaultTitle   = "Ferin App"
)

// Options controls how a host page is assembled.
type Options struct {
	Title string
	// Script is inlined unless ScriptSrc is set.
	Script    string
	ScriptSrc string
	// Stylesheet is an href; empty omits the link.
	Stylesheet string
	// ReloadURL, when set, subscribes the page to server-sent reloads.
	ReloadURL string
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// scriptEscaper keeps inline program text from closing its <script> element.
var scriptEscaper = strings.NewReplacer("</script", `<\/script`, "<!--", `<\!--`)

//go:generate templ generate

// inlineScript wraps program text in a script element.
func inlineScript(js string) string {
	return "<script>\n" + scriptEscaper.Replace(js) + "\n</script>\n"
}

// reloadAction is the datastar action that subscribes to reload events.
func reloadAction(url string) string {
	return "@get('" + url + "')"
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

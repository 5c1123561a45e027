package page

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/leapstack-labs/ferin/pkg/target"
)

// Dist file names.
const (
	IndexFile   = "index.html"
	StyleFile   = "style.css"
	MainFile    = "main.js"
	PackageFile = "package.json"
)

// Manifest is the package.json written next to an app build.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Main    string `json:"main"`
}

// PackageJSON returns the manifest for an app build named name. The name is
// lowercased with whitespace runs turned into dashes.
func PackageJSON(name string) ([]byte, error) {
	name = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if name == "" {
		name = "ferin-app"
	}
	b, err := json.MarshalIndent(Manifest{Name: name, Version: "1.0.0", Main: MainFile}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// WriteDist writes the build output for res into dir and returns the written
// paths. Web builds get a host page and stylesheet; app builds get the
// program as the Electron entry point plus its manifest.
func WriteDist(ctx context.Context, dir string, res *compiler.Result, tgt target.Target, name string) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	files := map[string][]byte{}
	var order []string
	add := func(file string, content []byte) {
		files[file] = content
		order = append(order, file)
	}

	switch tgt {
	case target.App:
		add(MainFile, []byte(res.JS))
		manifest, err := PackageJSON(name)
		if err != nil {
			return nil, err
		}
		add(PackageFile, manifest)
	default:
		opts := Options{Title: name, Script: res.JS}
		if res.HasCSS() {
			opts.Stylesheet = StyleFile
		}
		html, err := Render(ctx, Host(opts))
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", IndexFile, err)
		}
		add(IndexFile, []byte(html))
	}
	if res.HasCSS() {
		add(StyleFile, []byte(res.CSS))
	}

	written := make([]string, 0, len(order))
	for _, f := range order {
		path := filepath.Join(dir, f)
		if err := os.WriteFile(path, files[f], 0600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

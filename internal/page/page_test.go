package page

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// find returns the first element matching pred in document order.
func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func parse(t *testing.T, doc string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestHost(t *testing.T) {
	js := `render(createElement("p", null, ["</script><b>x</b>"]));`
	doc, err := Render(context.Background(), Host(Options{
		Title:      "Counter & Co",
		Script:     js,
		Stylesheet: StyleFile,
	}))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "<!doctype html>"))

	root := parse(t, doc)
	title := find(root, byTag("title"))
	require.NotNil(t, title)
	assert.Equal(t, "Counter & Co", title.FirstChild.Data)

	app := find(root, func(n *html.Node) bool { return attr(n, "id") == "app" })
	require.NotNil(t, app)
	assert.Equal(t, "div", app.Data)

	link := find(root, byTag("link"))
	require.NotNil(t, link)
	assert.Equal(t, StyleFile, attr(link, "href"))

	inline := find(root, func(n *html.Node) bool { return n.Data == "script" && attr(n, "src") == "" })
	require.NotNil(t, inline)
	assert.Contains(t, inline.FirstChild.Data, `<\/script><b>x</b>`, "closing tag inside the program is escaped")
	assert.Nil(t, find(root, byTag("b")), "program text must not leak into the DOM")

	assert.Nil(t, find(root, func(n *html.Node) bool { return attr(n, "data-init") != "" }))
}

func TestHostWithReload(t *testing.T) {
	doc, err := Render(context.Background(), Host(Options{ScriptSrc: "/app.js", ReloadURL: "/reload"}))
	require.NoError(t, err)
	root := parse(t, doc)

	assert.Equal(t, DefaultTitle, find(root, byTag("title")).FirstChild.Data)
	hook := find(root, func(n *html.Node) bool { return attr(n, "data-init") != "" })
	require.NotNil(t, hook)
	assert.Equal(t, "@get('/reload')", attr(hook, "data-init"))

	ds := find(root, func(n *html.Node) bool { return attr(n, "src") == DatastarScript })
	require.NotNil(t, ds)
	assert.Equal(t, "module", attr(ds, "type"))

	script := find(root, func(n *html.Node) bool { return attr(n, "src") == "/app.js" })
	assert.NotNil(t, script)
	assert.Nil(t, find(root, byTag("link")))
}

func TestErrorPage(t *testing.T) {
	doc, err := Render(context.Background(), ErrorPage(errors.New(`Compilation failed: unexpected token "<div>"`), "/reload"))
	require.NoError(t, err)
	root := parse(t, doc)

	pre := find(root, func(n *html.Node) bool { return attr(n, "id") == "ferin-error" })
	require.NotNil(t, pre)
	assert.Equal(t, `Compilation failed: unexpected token "<div>"`, pre.FirstChild.Data)
	assert.Nil(t, find(root, byTag("div")).FirstChild, "only the reload hook div is present")
}

func TestPackageJSON(t *testing.T) {
	b, err := PackageJSON("")
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, Manifest{Name: "ferin-app", Version: "1.0.0", Main: MainFile}, m)

	b, err = PackageJSON("Todo  List")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "todo-list", m.Name)
}

func TestWriteDist(t *testing.T) {
	ctx := context.Background()

	t.Run("web", func(t *testing.T) {
		res, err := compiler.Compile("comp App():\n  ret /p \"hi\"\nret /App\n", target.Web)
		require.NoError(t, err)

		dir := filepath.Join(t.TempDir(), "dist")
		written, err := WriteDist(ctx, dir, res, target.Web, "demo")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, IndexFile), filepath.Join(dir, StyleFile)}, written)

		index, err := os.ReadFile(filepath.Join(dir, IndexFile))
		require.NoError(t, err)
		assert.Contains(t, string(index), `render(createElement("App", null, []));`)
		css, err := os.ReadFile(filepath.Join(dir, StyleFile))
		require.NoError(t, err)
		assert.Equal(t, res.CSS, string(css))
	})

	t.Run("app", func(t *testing.T) {
		res, err := compiler.Compile("process.mount(Window({title: \"x\"}))\n", target.App)
		require.NoError(t, err)

		dir := t.TempDir()
		written, err := WriteDist(ctx, dir, res, target.App, "")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, MainFile), filepath.Join(dir, PackageFile)}, written)

		main, err := os.ReadFile(filepath.Join(dir, MainFile))
		require.NoError(t, err)
		assert.Equal(t, res.JS, string(main))
		_, err = os.Stat(filepath.Join(dir, IndexFile))
		assert.True(t, os.IsNotExist(err))
	})
}

package lsp

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/leapstack-labs/ferin/pkg/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// keywordSnippets expand block keywords into their usual shape.
var keywordSnippets = map[string]string{
	"fn":    "fn ${1:name}(${2}):\n\t${0:pass}",
	"comp":  "comp ${1:Name}(${2}):\n\tret /${3:div}",
	"class": "class ${1:Name}:\n\t${0:pass}",
	"if":    "if ${1:cond}:\n\t${0:pass}",
	"for":   "for ${1:item} of ${2:items}:\n\t${0:pass}",
	"while": "while ${1:cond}:\n\t${0:pass}",
	"loop":  "loop:\n\t${0:pass}",
}

var keywordDocs = map[string]string{
	"var":    "Declares a variable. Initialized variables are wrapped in reactive().",
	"fn":     "Declares a function. `fn name(a, b = 1): Type:` with an optional return type.",
	"async":  "Marks a function as async: `async fn load():`.",
	"await":  "Waits for a promise inside an async function.",
	"comp":   "Declares a component. Its body returns markup with `ret /tag`.",
	"class":  "Declares a class. A method named `init` is the constructor.",
	"ret":    "Returns a value. A top-level `ret` of markup selects the web root.",
	"if":     "Conditional block, optionally followed by `else` or `else if`.",
	"for":    "`for x in list` counts over an indexable value; `for v, k of obj` iterates entries.",
	"while":  "Loops while the condition holds.",
	"loop":   "Loops until `break`.",
	"pass":   "Empty statement.",
	"import": "Imports bindings from another module.",
	"export": "Exports a declaration or a list of names.",
	"self":   "The current instance inside a class method.",
}

// builtin is a name the runtime bindings line makes available.
type builtin struct {
	name string
	doc  string
}

var runtimeBuiltins = map[target.Target][]builtin{
	target.Web: {
		{"createElement", "createElement(tag, attrs, children) builds a virtual node."},
		{"render", "render(node, container) mounts the root component."},
		{"reactive", "reactive(value) wraps a value so updates re-render."},
		{"log", "log(...args) prints to the console."},
	},
	target.App: {
		{"Window", "Window({title, width, height}) creates a desktop window."},
		{"process", "The application process. Call process.mount(win) to show a window."},
		{"createElement", "createElement(tag, attrs, children) builds a virtual node."},
		{"reactive", "reactive(value) wraps a value so updates re-render."},
		{"log", "log(...args) prints to the console."},
	},
}

var htmlTags = []string{
	"a", "button", "div", "footer", "form", "h1", "h2", "h3", "header", "img",
	"input", "label", "li", "main", "nav", "ol", "p", "section", "span", "ul",
}

var (
	markupTagPattern = regexp.MustCompile(`(^|[\s(,])/(\w*)$`)
	memberPattern    = regexp.MustCompile(`(\w+)\.(\w*)$`)
)

func (s *Server) getCompletions(uri string, pos protocol.Position) []protocol.CompletionItem {
	doc := s.documents.Get(uri)
	if doc == nil {
		return []protocol.CompletionItem{}
	}
	if inStringOrComment(doc.Content, doc.PositionToOffset(pos)) {
		return []protocol.CompletionItem{}
	}
	prefix := doc.LinePrefix(pos)
	syms := s.getSymbols(doc.URI)

	if markupTagPattern.MatchString(prefix) {
		return tagCompletions(syms)
	}
	if m := memberPattern.FindStringSubmatch(prefix); m != nil {
		return s.memberCompletions(m[1], syms)
	}

	var items []protocol.CompletionItem
	for _, kw := range token.Keywords() {
		item := completionItem(kw, protocol.CompletionItemKindKeyword, "", "2"+kw)
		if d, ok := keywordDocs[kw]; ok {
			item.Documentation = d
		}
		if snippet, ok := keywordSnippets[kw]; ok {
			item.InsertText = ptr(snippet)
			item.InsertTextFormat = ptr(protocol.InsertTextFormatSnippet)
		}
		items = append(items, item)
	}
	for _, b := range runtimeBuiltins[s.target] {
		item := completionItem(b.name, protocol.CompletionItemKindConstant, "runtime", "1"+b.name)
		item.Documentation = b.doc
		items = append(items, item)
	}

	seen := make(map[string]bool)
	for _, sym := range syms {
		if sym.Container != "" || seen[sym.Name] {
			continue
		}
		seen[sym.Name] = true
		items = append(items, completionItem(sym.Name, sym.Kind.completionKind(), sym.Signature, "0"+sym.Name))
	}
	return items
}

// inStringOrComment reports whether offset falls inside a string, template
// or comment. A source that does not lex, such as one with an unclosed quote
// being typed, counts as code.
func inStringOrComment(content string, offset int) bool {
	tokens, err := parser.Lex(content)
	if err != nil {
		return false
	}
	for _, tok := range tokens {
		span := tok.Span()
		if span.Start.Offset >= offset {
			return false
		}
		switch tok.Type {
		case token.STRING, token.TEMPLATE:
			if span.Contains(offset) {
				return true
			}
		case token.COMMENT:
			// A comment runs to the end of its line, cursor included.
			if span.Contains(offset) || span.End.Offset == offset {
				return true
			}
		}
	}
	return false
}

func completionItem(label string, kind protocol.CompletionItemKind, detail, sortText string) protocol.CompletionItem {
	item := protocol.CompletionItem{Label: label, Kind: &kind}
	if detail != "" {
		item.Detail = ptr(detail)
	}
	if sortText != "" {
		item.SortText = ptr(sortText)
	}
	return item
}

func tagCompletions(syms []Symbol) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, sym := range syms {
		if sym.Kind == SymbolComponent {
			items = append(items, completionItem(sym.Name, protocol.CompletionItemKindStruct, sym.Signature, "0"+sym.Name))
		}
	}
	for _, tag := range htmlTags {
		items = append(items, completionItem(tag, protocol.CompletionItemKindField, "element", "1"+tag))
	}
	return items
}

// memberCompletions completes `process.` for apps and `self.` or a class
// name with that class's members.
func (s *Server) memberCompletions(object string, syms []Symbol) []protocol.CompletionItem {
	if object == "process" && s.target == target.App {
		item := completionItem("mount", protocol.CompletionItemKindMethod, "process.mount(win)", "")
		item.Documentation = "Shows a window. App programs must mount at least one."
		return []protocol.CompletionItem{item}
	}

	items := []protocol.CompletionItem{}
	for _, sym := range syms {
		if sym.Container == "" || (object != "self" && object != sym.Container) {
			continue
		}
		items = append(items, completionItem(sym.Name, sym.Kind.completionKind(), sym.Container+"."+sym.Signature, ""))
	}
	return items
}

func (s *Server) getHover(uri string, pos protocol.Position) *protocol.Hover {
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil
	}
	word, rng := doc.WordAt(pos)
	if word == "" {
		return nil
	}

	var value string
	if sym, ok := lookupSymbol(s.getSymbols(doc.URI), word); ok {
		value = fmt.Sprintf("```ferin\n%s\n```", sym.Signature)
		if sym.Container != "" {
			value += fmt.Sprintf("\n\n%s of `%s`", sym.Kind, sym.Container)
		}
	} else if d, ok := keywordDocs[word]; ok {
		value = fmt.Sprintf("**%s** (keyword)\n\n%s", word, d)
	} else {
		for _, b := range runtimeBuiltins[s.target] {
			if b.name == word {
				value = fmt.Sprintf("**%s** (%s runtime)\n\n%s", b.name, s.target, b.doc)
			}
		}
	}
	if value == "" {
		return nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value},
		Range:    &rng,
	}
}

func (s *Server) getDefinition(uri string, pos protocol.Position) *protocol.Location {
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil
	}
	word, _ := doc.WordAt(pos)
	if word == "" {
		return nil
	}

	sym, ok := lookupSymbol(s.getSymbols(doc.URI), word)
	if !ok {
		return nil
	}
	return &protocol.Location{URI: doc.URI, Range: doc.TokenRange(nameOffset(doc.Content, sym))}
}

package lsp

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/leapstack-labs/ferin/pkg/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an open ferin source held by the editor.
type Document struct {
	URI     string
	Content string
	Version protocol.Integer
	lines   []int // byte offset of each line start
}

func newDocument(uri, content string, version protocol.Integer) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		lines:   lineStarts(content),
	}
}

// DocumentStore holds the documents the client has opened.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: make(map[string]*Document)}
}

// Open adds a document, replacing any previous one with the same URI.
func (s *DocumentStore) Open(uri, content string, version protocol.Integer) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := newDocument(uri, content, version)
	s.documents[uri] = doc
	return doc
}

// Update replaces the content of an open document. Documents are
// immutable once stored, so readers holding the old one are unaffected.
// It returns nil when the URI was never opened.
func (s *DocumentStore) Update(uri, content string, version protocol.Integer) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; !ok {
		return nil
	}
	doc := newDocument(uri, content, version)
	s.documents[uri] = doc
	return doc
}

// Close forgets a document.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, uri)
}

// Get returns the document for uri or nil.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[uri]
}

// List returns the open URIs in sorted order.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineEnd returns the byte offset of the newline ending line, or the end of
// the content for the last line.
func (d *Document) lineEnd(line int) int {
	if line+1 < len(d.lines) {
		return d.lines[line+1] - 1
	}
	return len(d.Content)
}

// PositionToOffset converts an LSP position, whose character is counted in
// UTF-16 code units, to a byte offset. Out of range positions are clamped.
func (d *Document) PositionToOffset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(d.lines) {
		return len(d.Content)
	}

	offset, end := d.lines[line], d.lineEnd(line)
	for units := uint32(0); offset < end && units < pos.Character; {
		r, size := utf8.DecodeRuneInString(d.Content[offset:end])
		units += uint32(utf16.RuneLen(r)) //nolint:gosec // G115: RuneLen is 1 or 2 for decoded runes
		offset += size
	}
	return offset
}

// OffsetToPosition converts a byte offset to an LSP position.
func (d *Document) OffsetToPosition(offset int) protocol.Position {
	offset = max(0, min(offset, len(d.Content)))
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1

	var units uint32
	for _, r := range d.Content[d.lines[line]:offset] {
		units += uint32(utf16.RuneLen(r)) //nolint:gosec // G115: RuneLen is 1 or 2 for decoded runes
	}
	return protocol.Position{Line: uint32(line), Character: units} //nolint:gosec // G115: line index is non-negative
}

// SourcePosition converts a compiler position to an LSP position.
func (d *Document) SourcePosition(p token.Position) protocol.Position {
	if p.Offset > 0 && p.Offset <= len(d.Content) {
		return d.OffsetToPosition(p.Offset)
	}
	if !p.IsValid() {
		return protocol.Position{}
	}
	// Column counts runes from 1; walk the line to find the byte offset.
	line := min(p.Line-1, len(d.lines)-1)
	offset, end := d.lines[line], d.lineEnd(line)
	for col := 1; col < p.Column && offset < end; col++ {
		_, size := utf8.DecodeRuneInString(d.Content[offset:end])
		offset += size
	}
	return d.OffsetToPosition(offset)
}

// TokenRange returns the range of the identifier or single character
// starting at offset.
func (d *Document) TokenRange(offset int) protocol.Range {
	start := max(0, min(offset, len(d.Content)))
	end := start
	for end < len(d.Content) && isWordChar(d.Content[end]) {
		end++
	}
	if end == start && end < len(d.Content) && d.Content[end] != '\n' {
		_, size := utf8.DecodeRuneInString(d.Content[end:])
		end += size
	}
	return protocol.Range{Start: d.OffsetToPosition(start), End: d.OffsetToPosition(end)}
}

// Line returns the text of line without its newline.
func (d *Document) Line(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	return d.Content[d.lines[line]:d.lineEnd(line)]
}

// LinePrefix returns the text of pos's line up to pos.
func (d *Document) LinePrefix(pos protocol.Position) string {
	if int(pos.Line) >= len(d.lines) {
		return ""
	}
	return d.Content[d.lines[pos.Line]:d.PositionToOffset(pos)]
}

// WordAt returns the identifier under pos and its range.
func (d *Document) WordAt(pos protocol.Position) (string, protocol.Range) {
	offset := d.PositionToOffset(pos)

	start := offset
	for start > 0 && isWordChar(d.Content[start-1]) {
		start--
	}
	end := offset
	for end < len(d.Content) && isWordChar(d.Content[end]) {
		end++
	}
	if start == end {
		return "", protocol.Range{Start: pos, End: pos}
	}
	return d.Content[start:end], protocol.Range{
		Start: d.OffsetToPosition(start),
		End:   d.OffsetToPosition(end),
	}
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return filepath.FromSlash(u.Path)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

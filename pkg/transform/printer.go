package transform

import (
	"bytes"
	"strings"
)

const indentSize = 2

// printer accumulates JavaScript text with block indentation.
type printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter() *printer {
	return &printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the output with exactly one trailing newline.
func (p *printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// line writes s followed by a newline.
func (p *printer) line(s string) {
	p.write(s)
	p.writeln()
}

// blank writes an empty line unless the output already ends with one.
func (p *printer) blank() {
	if p.output.Len() == 0 || bytes.HasSuffix(p.output.Bytes(), []byte("\n\n")) {
		return
	}
	if !p.atLineStart {
		p.writeln()
	}
	p.writeln()
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// block writes `header {`, the indented body and a closing brace.
func (p *printer) block(header string, body func()) {
	p.line(header + " {")
	p.indent()
	body()
	p.dedent()
	p.line("}")
}

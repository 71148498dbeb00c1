// Package markdown extracts speakable plain text from markdown scripts.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Extractor turns markdown into plain text ready for the SSML pipeline.
type Extractor struct {
	md             goldmark.Markdown
	skipCodeBlocks bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCodeBlocks keeps the contents of code blocks instead of dropping them.
func WithCodeBlocks() Option {
	return func(e *Extractor) {
		e.skipCodeBlocks = false
	}
}

// NewExtractor creates an extractor that drops code blocks.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		md:             goldmark.New(),
		skipCodeBlocks: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlainText returns the text content of src. Headings, paragraphs and list
// items end in a sentence boundary so the segmenter splits on them.
func (e *Extractor) PlainText(src string) string {
	reader := text.NewReader([]byte(src))
	doc := e.md.Parser().Parse(reader)

	var buf strings.Builder
	e.walk(doc, reader.Source(), &buf)

	return strings.Join(strings.Fields(buf.String()), " ")
}

func (e *Extractor) walk(node ast.Node, source []byte, buf *strings.Builder) {
	switch n := node.(type) {
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		if e.skipCodeBlocks {
			return
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		endSentence(buf)
		return

	case *ast.HTMLBlock, *ast.RawHTML:
		return

	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			buf.WriteByte(' ')
		}
		return

	case *ast.String:
		buf.Write(n.Value)
		return

	case *ast.CodeSpan:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return

	case *ast.Image:
		// alt text only
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			e.walk(c, source, buf)
		}
		return

	case *ast.Heading, *ast.Paragraph, *ast.ListItem:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			e.walk(c, source, buf)
		}
		endSentence(buf)
		return

	case *ast.ThematicBreak:
		endSentence(buf)
		return
	}

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		e.walk(c, source, buf)
	}
}

// endSentence terminates the text written so far with a period unless it
// already ends in terminal punctuation, then adds a space.
func endSentence(buf *strings.Builder) {
	content := strings.TrimRight(buf.String(), " \t\n")
	if content == "" {
		return
	}
	if !strings.ContainsAny(content[len(content)-1:], ".!?:") {
		trimmed := content + "."
		buf.Reset()
		buf.WriteString(trimmed)
	}
	buf.WriteByte(' ')
}

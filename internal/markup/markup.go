// Package markup renders a restricted markdown-like dialect into a safe
// display tree. Rendering is a pure, total function: any input produces
// a tree built from exactly five node kinds (code block, bold, italic,
// inline code, line break) plus literal text runs.
//
// Raw text is passed through unescaped. Literal angle-bracket content
// therefore reaches the output verbatim; this is a known gap carried
// over from the observed behavior, not an oversight to be patched here.
package markup

import (
	"regexp"
	"strings"
)

// Kind enumerates the node kinds a rendered tree may contain.
type Kind int

const (
	// KindText - literal text run.
	KindText Kind = iota
	// KindBold - doubled emphasis marker span.
	KindBold
	// KindItalic - single emphasis marker span.
	KindItalic
	// KindInlineCode - single backtick span.
	KindInlineCode
	// KindCodeBlock - triple backtick fenced block.
	KindCodeBlock
	// KindLineBreak - explicit line break.
	KindLineBreak
)

// Node is one element of the display tree. Text holds content for
// KindText leaves; container kinds carry their content in Children.
type Node struct {
	Kind     Kind
	Text     string
	Children []Node
}

// Renderer controls rendering behavior.
//
// With ExcludeFences false (the default), later passes are applied
// globally, including inside fenced blocks. Code containing literal
// `**` or backticks is therefore corrupted; this reproduces the
// observed behavior. Setting ExcludeFences true carves fence spans
// out first and leaves their contents untouched by every later pass.
type Renderer struct {
	ExcludeFences bool
}

var (
	fencePattern  = regexp.MustCompile("(?s)```(.*?)```")
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
	inlinePattern = regexp.MustCompile("`(.*?)`")
)

// Render converts raw text with default (compatibility) behavior.
func Render(raw string) []Node {
	return Renderer{}.Render(raw)
}

// Render applies the substitution passes in fixed priority order:
// fences, bold, italic, inline code, line breaks.
func (r Renderer) Render(raw string) []Node {
	nodes := []Node{{Kind: KindText, Text: raw}}
	nodes = r.pass(nodes, fencePattern, KindCodeBlock)
	nodes = r.pass(nodes, boldPattern, KindBold)
	nodes = r.pass(nodes, italicPattern, KindItalic)
	nodes = r.pass(nodes, inlinePattern, KindInlineCode)
	nodes = r.breaks(nodes)
	return nodes
}

// pass splits every text run matching re into a container node of the
// given kind, recursing into containers produced by earlier passes.
func (r Renderer) pass(nodes []Node, re *regexp.Regexp, kind Kind) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.Kind == KindText:
			out = append(out, splitMatches(n.Text, re, kind)...)
		case r.skip(n):
			out = append(out, n)
		case len(n.Children) > 0:
			n.Children = r.pass(n.Children, re, kind)
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

func (r Renderer) skip(n Node) bool {
	return r.ExcludeFences && n.Kind == KindCodeBlock
}

func splitMatches(text string, re *regexp.Regexp, kind Kind) []Node {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []Node{{Kind: KindText, Text: text}}
	}
	var out []Node
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			out = append(out, Node{Kind: KindText, Text: text[last:loc[0]]})
		}
		inner := text[loc[2]:loc[3]]
		out = append(out, Node{Kind: kind, Children: []Node{{Kind: KindText, Text: inner}}})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Node{Kind: KindText, Text: text[last:]})
	}
	return out
}

// breaks splits text runs on newlines, inserting line break nodes.
func (r Renderer) breaks(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.Kind == KindText:
			parts := strings.Split(n.Text, "\n")
			for i, p := range parts {
				if i > 0 {
					out = append(out, Node{Kind: KindLineBreak})
				}
				if p != "" {
					out = append(out, Node{Kind: KindText, Text: p})
				}
			}
		case r.skip(n):
			out = append(out, n)
		case len(n.Children) > 0:
			n.Children = r.breaks(n.Children)
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

// RenderHTML renders raw text and serializes the tree using only the
// five whitelisted tags. Text content is not escaped.
func (r Renderer) RenderHTML(raw string) string {
	var b strings.Builder
	writeHTML(&b, r.Render(raw))
	return b.String()
}

func writeHTML(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(n.Text)
		case KindBold:
			b.WriteString("<strong>")
			writeHTML(b, n.Children)
			b.WriteString("</strong>")
		case KindItalic:
			b.WriteString("<em>")
			writeHTML(b, n.Children)
			b.WriteString("</em>")
		case KindInlineCode:
			b.WriteString(`<code class="inline-code">`)
			writeHTML(b, n.Children)
			b.WriteString("</code>")
		case KindCodeBlock:
			b.WriteString(`<pre class="code-block">`)
			if len(n.Children) > 0 {
				writeHTML(b, n.Children)
			} else {
				b.WriteString(n.Text)
			}
			b.WriteString("</pre>")
		case KindLineBreak:
			b.WriteString("<br/>")
		}
	}
}

// Plain flattens a rendered tree back to text, mapping line breaks to
// newlines and dropping all styling. Used by terminal front ends.
func Plain(nodes []Node) string {
	var b strings.Builder
	writePlain(&b, nodes)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindLineBreak:
			b.WriteByte('\n')
		case KindText:
			b.WriteString(n.Text)
		default:
			if len(n.Children) > 0 {
				writePlain(b, n.Children)
			} else {
				b.WriteString(n.Text)
			}
		}
	}
}

package changelog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Render writes the given top-level elements as canonical markdown. Output
// streams incrementally through a buffered writer, so large releases never
// require the whole rendered document in memory. The result is
// parse-equivalent to the source markdown, not byte-identical: bullets
// normalize to "-", headings to ATX form, indented code to fences.
//
// Rendering is idempotent: the same elements always produce the same bytes.
func Render(w io.Writer, source []byte, elements []ast.Node) error {
	r := &renderer{
		w:           bufio.NewWriter(w),
		source:      source,
		atLineStart: true,
	}

	for i, el := range elements {
		if i > 0 {
			r.blankLine()
		}
		r.block(el)
	}

	// The buffer is flushed on every return path; bufio keeps the first
	// write error sticky, so Flush reports it.
	return r.w.Flush()
}

// RenderString renders elements to a string.
func RenderString(source []byte, elements []ast.Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, source, elements); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderer carries the output state for one Render call: a line-prefix
// stack for blockquotes and list continuations, plus whether the cursor
// sits at the start of a line (where the prefix must be emitted).
type renderer struct {
	w           *bufio.Writer
	source      []byte
	prefix      string
	atLineStart bool
}

// ws writes a string through the prefix machinery. Every newline inside s
// marks the following output line as needing the current prefix.
func (r *renderer) ws(s string) {
	for len(s) > 0 {
		if r.atLineStart {
			r.w.WriteString(r.prefix)
			r.atLineStart = false
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			r.w.WriteString(s)
			return
		}
		r.w.WriteString(s[:i+1])
		r.atLineStart = true
		s = s[i+1:]
	}
}

// blankLine emits a separator line: the current prefix with trailing spaces
// stripped, so blockquotes separate with ">" and lists with an empty line.
func (r *renderer) blankLine() {
	r.w.WriteString(strings.TrimRight(r.prefix, " "))
	r.w.WriteString("\n")
	r.atLineStart = true
}

func (r *renderer) pushPrefix(p string) {
	r.prefix += p
}

func (r *renderer) popPrefix(p string) {
	r.prefix = r.prefix[:len(r.prefix)-len(p)]
}

// block renders one block-level node, ending at the start of a fresh line.
func (r *renderer) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		r.ws(strings.Repeat("#", n.Level) + " ")
		r.inlineChildren(n)
		r.ws("\n")
	case *ast.Paragraph:
		r.inlineChildren(n)
		r.ws("\n")
	case *ast.TextBlock:
		r.inlineChildren(n)
		r.ws("\n")
	case *ast.ThematicBreak:
		r.ws("---\n")
	case *ast.FencedCodeBlock:
		r.codeBlock(n.Lines(), r.infoString(n))
	case *ast.CodeBlock:
		// Indented code normalizes to a fence with no info string.
		r.codeBlock(n.Lines(), "")
	case *ast.Blockquote:
		r.pushPrefix("> ")
		r.blockChildren(n, true)
		r.popPrefix("> ")
	case *ast.List:
		r.list(n)
	case *ast.HTMLBlock:
		r.sourceLines(n.Lines())
		if n.HasClosure() {
			r.ws(string(n.ClosureLine.Value(r.source)))
		}
	case *east.Table:
		r.table(n)
	default:
		// Unknown block: fall back to the raw source lines.
		r.sourceLines(node.Lines())
	}
}

// blockChildren renders a node's block children separated by blank lines.
// When loose is false (tight lists) children follow each other directly.
func (r *renderer) blockChildren(node ast.Node, loose bool) {
	first := true
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if !first && loose {
			r.blankLine()
		}
		first = false
		r.block(c)
	}
}

func (r *renderer) list(n *ast.List) {
	index := n.Start
	first := true
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if !first && !n.IsTight {
			r.blankLine()
		}
		first = false

		marker := "- "
		if n.IsOrdered() {
			marker = strconv.Itoa(index) + ". "
			index++
		}

		if item.FirstChild() == nil {
			r.ws(strings.TrimRight(marker, " ") + "\n")
			continue
		}

		r.ws(marker)
		indent := strings.Repeat(" ", len(marker))
		r.pushPrefix(indent)
		// The first child continues on the marker line; the prefix only
		// applies from the second line on.
		r.atLineStart = false
		r.blockChildren(item, !n.IsTight)
		r.popPrefix(indent)
	}
}

// codeBlock writes a fenced code block, widening the fence past any
// backtick runs found in the content.
func (r *renderer) codeBlock(lines *text.Segments, info string) {
	content := make([]string, 0, lines.Len())
	maxRun := 0
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := string(seg.Value(r.source))
		content = append(content, line)
		if run := longestBacktickRun(line); run > maxRun {
			maxRun = run
		}
	}

	fence := strings.Repeat("`", max(3, maxRun+1))
	r.ws(fence + info + "\n")
	for _, line := range content {
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		r.ws(line)
	}
	r.ws(fence + "\n")
}

// infoString returns a fenced block's full info string (language plus any
// trailing attributes), or "" when absent.
func (r *renderer) infoString(n *ast.FencedCodeBlock) string {
	if n.Info == nil {
		return ""
	}
	return string(n.Info.Segment.Value(r.source))
}

// sourceLines copies a block's raw source lines to the output, ensuring a
// trailing newline even when the document ends without one.
func (r *renderer) sourceLines(lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := string(seg.Value(r.source))
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		r.ws(line)
	}
}

// inlineChildren renders a block's inline children.
func (r *renderer) inlineChildren(node ast.Node) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c)
	}
}

// inline renders one inline node.
func (r *renderer) inline(node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		r.ws(string(n.Segment.Value(r.source)))
		switch {
		case n.HardLineBreak():
			r.ws("\\\n")
		case n.SoftLineBreak():
			r.ws("\n")
		}
	case *ast.String:
		r.ws(string(n.Value))
	case *ast.Emphasis:
		mark := strings.Repeat("*", n.Level)
		r.ws(mark)
		r.inlineChildren(n)
		r.ws(mark)
	case *east.Strikethrough:
		r.ws("~~")
		r.inlineChildren(n)
		r.ws("~~")
	case *ast.CodeSpan:
		r.codeSpan(n)
	case *ast.Link:
		r.ws("[")
		r.inlineChildren(n)
		r.ws("](" + linkDestination(n.Destination) + linkTitle(n.Title) + ")")
	case *ast.Image:
		r.ws("![")
		r.inlineChildren(n)
		r.ws("](" + linkDestination(n.Destination) + linkTitle(n.Title) + ")")
	case *ast.AutoLink:
		// Written bare: the GFM linkify extension re-links URLs and email
		// addresses on re-parse, with or without angle brackets.
		r.ws(string(n.Label(r.source)))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			r.ws(string(seg.Value(r.source)))
		}
	case *east.TaskCheckBox:
		if n.IsChecked {
			r.ws("[x] ")
		} else {
			r.ws("[ ] ")
		}
	default:
		r.inlineChildren(node)
	}
}

// codeSpan renders inline code, widening the backtick delimiter past any
// backtick runs in the content and padding per CommonMark when the content
// begins or ends with a backtick.
func (r *renderer) codeSpan(n *ast.CodeSpan) {
	var content strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			content.Write(t.Segment.Value(r.source))
		}
	}
	// Line endings inside a code span read as spaces.
	code := strings.ReplaceAll(content.String(), "\n", " ")

	delim := strings.Repeat("`", longestBacktickRun(code)+1)
	pad := ""
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") {
		pad = " "
	}
	r.ws(delim + pad + code + pad + delim)
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for _, b := range []byte(s) {
		if b == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// linkDestination formats a link target, angle-bracketing destinations that
// contain spaces so they survive re-parsing.
func linkDestination(dest []byte) string {
	d := string(dest)
	if strings.ContainsAny(d, " \t") {
		return "<" + d + ">"
	}
	return d
}

func linkTitle(title []byte) string {
	if len(title) == 0 {
		return ""
	}
	return fmt.Sprintf(" %q", string(title))
}

// table renders a GFM pipe table: header row, alignment row, body rows.
func (r *renderer) table(n *east.Table) {
	alignments := n.Alignments
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		r.tableRow(row)
		if _, ok := row.(*east.TableHeader); ok {
			r.alignmentRow(alignments)
		}
	}
}

func (r *renderer) tableRow(row ast.Node) {
	r.ws("|")
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		r.ws(" " + r.cellText(cell) + " |")
	}
	r.ws("\n")
}

// cellText renders a table cell's inline content to a string, escaping
// pipes so the cell cannot break the row.
func (r *renderer) cellText(cell ast.Node) string {
	var b strings.Builder
	sub := &renderer{w: bufio.NewWriter(&b), source: r.source}
	sub.inlineChildren(cell)
	sub.w.Flush()
	return strings.ReplaceAll(b.String(), "|", "\\|")
}

func (r *renderer) alignmentRow(alignments []east.Alignment) {
	r.ws("|")
	for _, a := range alignments {
		switch a {
		case east.AlignLeft:
			r.ws(" :--- |")
		case east.AlignRight:
			r.ws(" ---: |")
		case east.AlignCenter:
			r.ws(" :---: |")
		default:
			r.ws(" --- |")
		}
	}
	r.ws("\n")
}

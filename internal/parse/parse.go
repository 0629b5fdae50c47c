// Package parse loads a source file with tree-sitter and lowers it into a
// typed syntax tree of classes, functions and assignments.
package parse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/namecheck/internal/lang"
)

// ErrParse is returned when a file cannot be decoded or contains syntax errors.
var ErrParse = errors.New("failed to parse the file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceUnit is one parsed file: its text and its typed syntax tree.
type SourceUnit struct {
	Path   string
	Source []byte
	Lines  []string
	Body   []Node
}

// LineRange returns lines start through end (1-based, inclusive).
func (u *SourceUnit) LineRange(start, end int) []string {
	if start < 1 {
		start = 1
	}
	if end > len(u.Lines) {
		end = len(u.Lines)
	}
	if start > end {
		return nil
	}
	return u.Lines[start-1 : end]
}

// Load reads path and parses it. The file is closed before parsing starts.
func Load(ctx context.Context, l *lang.Language, path string) (*SourceUnit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(ctx, l, path, source)
}

// Parse builds a SourceUnit from in-memory source text.
func Parse(ctx context.Context, l *lang.Language, path string, source []byte) (*SourceUnit, error) {
	source = bytes.TrimPrefix(source, utf8BOM)
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrParse)
	}
	source = normalizeNewlines(source)

	parser := l.NewParser()
	defer parser.Close()

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, syntaxError(bad)
		}
		return nil, fmt.Errorf("%w: syntax error", ErrParse)
	}
	if bad := firstRejected(root, l.Nodes.Rejected); bad != nil {
		return nil, syntaxError(bad)
	}

	lw := &lowerer{lang: l, source: source}
	return &SourceUnit{
		Path:   path,
		Source: source,
		Lines:  strings.Split(string(source), "\n"),
		Body:   lw.children(root),
	}, nil
}

func normalizeNewlines(source []byte) []byte {
	if !bytes.ContainsRune(source, '\r') {
		return source
	}
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(source, []byte("\r"), []byte("\n"))
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || (!child.HasError() && !child.IsMissing()) {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

// firstRejected returns the first node in document order whose type is one
// of rejected.
func firstRejected(n *sitter.Node, rejected []string) *sitter.Node {
	if len(rejected) == 0 {
		return nil
	}
	if slices.Contains(rejected, n.Type()) {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if bad := firstRejected(n.NamedChild(i), rejected); bad != nil {
			return bad
		}
	}
	return nil
}

func syntaxError(n *sitter.Node) error {
	p := n.StartPoint()
	return fmt.Errorf("%w: syntax error at line %d, column %d", ErrParse, p.Row+1, p.Column+1)
}

type lowerer struct {
	lang   *lang.Language
	source []byte
}

func (lw *lowerer) children(n *sitter.Node) []Node {
	var out []Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, lw.lower(n.NamedChild(i))...)
	}
	return out
}

func (lw *lowerer) lower(n *sitter.Node) []Node {
	types := lw.lang.Nodes
	switch n.Type() {
	case types.Comment:
		return nil
	case types.Block, types.Else, types.Finally:
		return lw.children(n)
	case types.If:
		return lw.conditional(n)
	case types.Decorated:
		if def := n.ChildByFieldName("definition"); def != nil {
			return lw.lower(def)
		}
		return nil
	case types.Class:
		name, doc, body := lw.definition(n)
		return []Node{&ClassDef{
			Name:      name,
			Docstring: doc,
			StartLine: int(n.StartPoint().Row) + 1,
			EndLine:   lw.lastLine(n),
			Body:      body,
		}}
	case types.Function:
		if lw.isAsync(n) {
			// Coroutines are not analyzed, but definitions nested in them are.
			if body := n.ChildByFieldName("body"); body != nil {
				return []Node{&Other{Children: lw.children(body)}}
			}
			return nil
		}
		name, doc, body := lw.definition(n)
		return []Node{&FuncDef{
			Name:      name,
			Docstring: doc,
			StartLine: int(n.StartPoint().Row) + 1,
			EndLine:   lw.lastLine(n),
			Body:      body,
		}}
	case types.Statement:
		if a := lw.assignment(n); a != nil {
			return []Node{a}
		}
	}
	return []Node{&Other{Children: lw.children(n)}}
}

func (lw *lowerer) isAsync(def *sitter.Node) bool {
	first := def.Child(0)
	return first != nil && first.Type() == lw.lang.Nodes.Async
}

// conditional lowers an if statement. Each elif becomes a conditional nested
// in the previous branch, and the else statements belong to the innermost one.
func (lw *lowerer) conditional(n *sitter.Node) []Node {
	types := lw.lang.Nodes
	var (
		out  []Node
		alts []*sitter.Node
	)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case types.Elif, types.Else:
			alts = append(alts, c)
		default:
			out = append(out, lw.lower(c)...)
		}
	}
	out = append(out, lw.alternatives(alts)...)
	return []Node{&Other{Children: out}}
}

func (lw *lowerer) alternatives(alts []*sitter.Node) []Node {
	if len(alts) == 0 {
		return nil
	}
	first := alts[0]
	if first.Type() != lw.lang.Nodes.Elif {
		return lw.children(first)
	}
	branch := lw.children(first)
	branch = append(branch, lw.alternatives(alts[1:])...)
	return []Node{&Other{Children: branch}}
}

// definition reads the name, docstring and lowered body of a class or function.
func (lw *lowerer) definition(n *sitter.Node) (string, string, []Node) {
	var name string
	if id := n.ChildByFieldName("name"); id != nil {
		name = lang.NodeText(id, lw.source)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return name, "", nil
	}
	return name, lw.docstring(body), lw.children(body)
}

// docstring returns the cleaned docstring of a body block, or "" if its first
// statement is not a string literal.
func (lw *lowerer) docstring(body *sitter.Node) string {
	types := lw.lang.Nodes
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == types.Comment {
			continue
		}
		if stmt.Type() != types.Statement || stmt.NamedChildCount() != 1 {
			return ""
		}
		doc, ok := lw.literal(stmt.NamedChild(0))
		if !ok {
			return ""
		}
		return lw.lang.CleanDoc(doc)
	}
	return ""
}

// literal decodes a string literal, a parenthesized one, or an implicit
// concatenation of literals.
func (lw *lowerer) literal(n *sitter.Node) (string, bool) {
	types := lw.lang.Nodes
	for n.Type() == types.Parenthesized && n.NamedChildCount() == 1 {
		n = n.NamedChild(0)
	}
	switch n.Type() {
	case types.String:
		return lw.lang.StringValue(lang.NodeText(n, lw.source))
	case types.Concatenated:
		var b strings.Builder
		for i := 0; i < int(n.NamedChildCount()); i++ {
			part := n.NamedChild(i)
			if part.Type() == types.Comment {
				continue
			}
			if part.Type() != types.String {
				return "", false
			}
			v, ok := lw.lang.StringValue(lang.NodeText(part, lw.source))
			if !ok {
				return "", false
			}
			b.WriteString(v)
		}
		return b.String(), true
	}
	return "", false
}

// assignment lowers a statement holding a plain (possibly chained) assignment.
// Annotated assignments are not plain assignments and yield nil.
func (lw *lowerer) assignment(stmt *sitter.Node) *Assign {
	types := lw.lang.Nodes
	if stmt.NamedChildCount() != 1 {
		return nil
	}
	node := stmt.NamedChild(0)
	if node.Type() != types.Assignment || node.ChildByFieldName("type") != nil {
		return nil
	}

	a := &Assign{}
	for node != nil && node.Type() == types.Assignment {
		if left := node.ChildByFieldName("left"); left != nil && left.Type() == types.Identifier {
			a.Targets = append(a.Targets, lang.NodeText(left, lw.source))
		}
		node = node.ChildByFieldName("right")
	}
	return a
}

// lastLine returns the 1-based line of the last token of n that is not a
// comment.
func (lw *lowerer) lastLine(n *sitter.Node) int {
	if tok := lw.lastToken(n); tok != nil {
		return int(tok.EndPoint().Row) + 1
	}
	return endLine(n)
}

func (lw *lowerer) lastToken(n *sitter.Node) *sitter.Node {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		c := n.Child(i)
		if c == nil || c.Type() == lw.lang.Nodes.Comment {
			continue
		}
		if c.ChildCount() == 0 {
			if c.EndByte() > c.StartByte() {
				return c
			}
			continue
		}
		if tok := lw.lastToken(c); tok != nil {
			return tok
		}
	}
	return nil
}

// endLine returns the 1-based last line of n, not counting a trailing newline.
func endLine(n *sitter.Node) int {
	end := n.EndPoint()
	row := end.Row
	if end.Column == 0 && row > n.StartPoint().Row {
		row--
	}
	return int(row) + 1
}

// Package lang provides a language registry mapping source files to
// tree-sitter grammars and the node vocabulary used to read them.
package lang

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	// Name is the registry key, e.g. "python".
	Name string

	// Linguist is the language name reported by go-enry for matching files.
	Linguist string

	lang *sitter.Language

	// Nodes names the grammar's node types the parser understands.
	Nodes NodeTypes

	// StringValue decodes a string literal's source text. It reports false
	// for literals that cannot serve as documentation (bytes, interpolated).
	StringValue func(raw string) (string, bool)

	// CleanDoc normalizes a decoded documentation string.
	CleanDoc func(doc string) string
}

// NodeTypes maps syntactic roles to grammar node type names.
type NodeTypes struct {
	Class      string
	Function   string
	Decorated  string
	Block      string
	Statement  string
	Assignment string
	String     string
	Comment    string
	Identifier string

	// Async is the keyword token marking a coroutine definition.
	Async string

	// If, Elif and Else shape conditional chains; Else and Finally clauses
	// hold statements that belong directly to their enclosing statement.
	If      string
	Elif    string
	Else    string
	Finally string

	// Concatenated is implicit literal concatenation, Parenthesized a
	// bracketed expression.
	Concatenated  string
	Parenthesized string

	// Rejected lists statements the grammar accepts for older language
	// versions but the current language does not.
	Rejected []string
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not safe for concurrent use.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// ForFile returns the registered language for path based on its extension,
// or nil if the extension is unknown or the language is unsupported.
func ForFile(path string) *Language {
	name, _ := enry.GetLanguageByExtension(path)
	if name == "" {
		return nil
	}
	for _, l := range Languages {
		if strings.EqualFold(l.Linguist, name) {
			return l
		}
	}
	return nil
}

// Names returns the Linguist names of all registered languages.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for _, l := range Languages {
		names = append(names, l.Linguist)
	}
	return names
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

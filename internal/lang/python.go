package lang

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/smacker/go-tree-sitter/python"
	"golang.org/x/text/unicode/runenames"
)

const pythonTabSize = 8

func init() {
	Languages["python"] = &Language{
		Name:     "python",
		Linguist: "Python",
		lang:     python.GetLanguage(),
		Nodes: NodeTypes{
			Class:      "class_definition",
			Function:   "function_definition",
			Decorated:  "decorated_definition",
			Block:      "block",
			Statement:  "expression_statement",
			Assignment: "assignment",
			String:     "string",
			Comment:    "comment",
			Identifier: "identifier",

			Async:         "async",
			If:            "if_statement",
			Elif:          "elif_clause",
			Else:          "else_clause",
			Finally:       "finally_clause",
			Concatenated:  "concatenated_string",
			Parenthesized: "parenthesized_expression",
			Rejected:      []string{"print_statement", "exec_statement"},
		},
		StringValue: pythonStringValue,
		CleanDoc:    pythonCleanDoc,
	}
}

// pythonStringValue strips the prefix and quotes from a string literal and
// resolves simple escapes. Bytes, f-strings and t-strings are rejected since
// Python never treats them as docstrings.
func pythonStringValue(raw string) (string, bool) {
	i := 0
	for i < len(raw) && strings.ContainsRune("rRuUbBfFtT", rune(raw[i])) {
		i++
	}
	prefix := strings.ToLower(raw[:i])
	if strings.ContainsAny(prefix, "bft") {
		return "", false
	}
	body := raw[i:]

	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(q) && strings.HasPrefix(body, q) && strings.HasSuffix(body, q) {
			body = body[len(q) : len(body)-len(q)]
			if strings.Contains(prefix, "r") {
				return body, true
			}
			return pythonUnescape(body), true
		}
	}
	return "", false
}

var pythonEscapes = map[byte]string{
	'\n': "",
	'\\': `\`,
	'\'': "'",
	'"':  `"`,
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

// pythonUnescape resolves the escapes of a str literal: single characters,
// \xhh, \uhhhh, \Uhhhhhhhh, octal \ooo and \N{name}. Unknown or malformed
// escapes are kept as written.
func pythonUnescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if rep, ok := pythonEscapes[s[i+1]]; ok {
			b.WriteString(rep)
			i++
			continue
		}
		if r, n, ok := numericEscape(s[i+1:]); ok {
			b.WriteRune(r)
			i += n
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// numericEscape decodes the escape body that follows a backslash and returns
// the rune and the number of bytes consumed.
func numericEscape(s string) (rune, int, bool) {
	switch s[0] {
	case 'x':
		return hexEscape(s, 2)
	case 'u':
		return hexEscape(s, 4)
	case 'U':
		return hexEscape(s, 8)
	case 'N':
		if len(s) < 3 || s[1] != '{' {
			return 0, 0, false
		}
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, false
		}
		r, ok := lookupRuneName(s[2:end])
		return r, end + 1, ok
	}

	n := 0
	for n < 3 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:n], 8, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), n, true
}

func hexEscape(s string, digits int) (rune, int, bool) {
	if len(s) < 1+digits {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:1+digits], 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, 0, false
	}
	return rune(v), 1 + digits, true
}

var (
	runeNamesOnce sync.Once
	runeNames     map[string]rune
)

// lookupRuneName resolves a Unicode character name case-insensitively.
func lookupRuneName(name string) (rune, bool) {
	runeNamesOnce.Do(func() {
		runeNames = make(map[string]rune)
		for r := rune(0); r <= unicode.MaxRune; r++ {
			n := runenames.Name(r)
			if n == "" || strings.HasPrefix(n, "<") {
				continue
			}
			runeNames[n] = r
		}
	})
	r, ok := runeNames[strings.ToUpper(name)]
	return r, ok
}

// pythonCleanDoc mirrors inspect.cleandoc: tabs are expanded, the first line
// is left-trimmed, the common indentation of the remaining lines is removed
// and blank lines at either end are dropped.
func pythonCleanDoc(doc string) string {
	lines := strings.Split(expandTabs(doc, pythonTabSize), "\n")

	margin := -1
	for _, line := range lines[1:] {
		runes := []rune(line)
		content := len([]rune(strings.TrimLeftFunc(line, unicode.IsSpace)))
		if content > 0 {
			indent := len(runes) - content
			if margin < 0 || indent < margin {
				margin = indent
			}
		}
	}

	lines[0] = strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			runes := []rune(lines[i])
			if len(runes) > margin {
				lines[i] = string(runes[margin:])
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

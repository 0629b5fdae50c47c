package lang

import (
	"testing"
)

func TestForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"main.py", "python"},
		{"pkg/models.py", "python"},
		{"main.go", ""},
		{"app.js", ""},
		{"notes.txt", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			var got string
			if l := ForFile(tt.path); l != nil {
				got = l.Name
			}
			if got != tt.want {
				t.Errorf("ForFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	py, ok := Languages["python"]
	if !ok {
		t.Fatal("python language not registered")
	}
	if py.GetLanguage() == nil {
		t.Error("python language is nil")
	}
	if py.StringValue == nil || py.CleanDoc == nil {
		t.Error("python docstring hooks not set")
	}
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	py := Languages["python"]
	p := py.NewParser()
	if p == nil {
		t.Fatal("NewParser returned nil")
	}
}

func TestPythonStringValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"double", `"hello"`, "hello", true},
		{"single", `'hello'`, "hello", true},
		{"triple double", `"""Doc string."""`, "Doc string.", true},
		{"triple single", `'''Doc'''`, "Doc", true},
		{"empty", `""`, "", true},
		{"empty triple", `""""""`, "", true},
		{"raw keeps escapes", `r"a\nb"`, `a\nb`, true},
		{"unicode prefix", `u"text"`, "text", true},
		{"escapes", `"a\tb\"c"`, "a\tb\"c", true},
		{"line continuation", "\"a\\\nb\"", "ab", true},
		{"unknown escape kept", `"\d"`, `\d`, true},
		{"hex escape", `"\x41B"`, "AB", true},
		{"short unicode escape", `"caf\u00e9 totals"`, "café totals", true},
		{"long unicode escape", `"\U0001F600"`, "\U0001F600", true},
		{"octal escape", `"\101\0"`, "A\x00", true},
		{"named escape", `"caf\N{LATIN SMALL LETTER E WITH ACUTE}"`, "café", true},
		{"named escape any case", `"\N{latin small letter e with acute}"`, "é", true},
		{"unknown name kept", `"\N{NOT A CHARACTER NAME}"`, `\N{NOT A CHARACTER NAME}`, true},
		{"truncated hex kept", `"\xZ1"`, `\xZ1`, true},
		{"raw keeps numeric escapes", `r"\u00e9"`, `\u00e9`, true},
		{"bytes", `b"data"`, "", false},
		{"fstring", `f"{x}"`, "", false},
		{"raw bytes", `rb"data"`, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := pythonStringValue(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("pythonStringValue(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPythonCleanDoc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"one line", "  Summary.  ", "Summary.  "},
		{"dedent", "Summary.\n\n    Details here.\n      Indented more.\n    ", "Summary.\n\nDetails here.\n  Indented more."},
		{"leading blank", "\n    Starts late.\n    ", "Starts late."},
		{"tabs", "Top\n\tTabbed", "Top\nTabbed"},
		{"empty", "", ""},
		{"trailing blank lines", "Body.\n\n\n", "Body."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pythonCleanDoc(tt.in); got != tt.want {
				t.Errorf("pythonCleanDoc(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

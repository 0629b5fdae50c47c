package analyze

import (
	"strings"

	"github.com/phobologic/namecheck/internal/model"
)

// Summarize returns the text an entity's name is matched against.
//
// For a class it is the docstring, the direct method names and the assigned
// attribute names. For a function it is the docstring followed by the full
// source of the definition.
func Summarize(e model.Entity) string {
	if e.Kind == model.Class {
		return e.Docstring + " " + strings.Join(e.Methods, " ") + " " + strings.Join(e.Attributes, " ")
	}
	return e.Docstring + " " + e.Body
}

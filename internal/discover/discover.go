// Package discover resolves the source file to analyze.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phobologic/namecheck/internal/lang"
)

var (
	// ErrNotFound is returned when the path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidExtension is returned when the path is not a supported source file.
	ErrInvalidExtension = errors.New("unsupported file type")
)

// FileEntry represents a resolved source file.
type FileEntry struct {
	Path     string // As given on the command line
	Abs      string
	Language *lang.Language
}

// PathError describes a rejected input path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("File '%s' not found.", e.Path)
	case errors.Is(e.Err, ErrInvalidExtension):
		return fmt.Sprintf("File '%s' is not a %s file.", e.Path, supportedNames())
	default:
		return fmt.Sprintf("File '%s': %v", e.Path, e.Err)
	}
}

func (e *PathError) Unwrap() error { return e.Err }

// File checks that path exists, is a regular file and has the extension of a
// registered language.
func File(path string) (FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileEntry{}, &PathError{Path: path, Err: ErrNotFound}
		}
		return FileEntry{}, &PathError{Path: path, Err: err}
	}
	if info.IsDir() {
		return FileEntry{}, &PathError{Path: path, Err: ErrInvalidExtension}
	}

	l := lang.ForFile(path)
	if l == nil {
		return FileEntry{}, &PathError{Path: path, Err: ErrInvalidExtension}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return FileEntry{}, fmt.Errorf("resolving path: %w", err)
	}

	return FileEntry{Path: path, Abs: abs, Language: l}, nil
}

// OutputPath returns the sibling JSON report path for a source file:
// "dir/name.py" becomes "dir/name_analysis.json".
func OutputPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_analysis.json")
}

func supportedNames() string {
	names := lang.Names()
	sort.Strings(names)
	return strings.Join(names, " or ")
}

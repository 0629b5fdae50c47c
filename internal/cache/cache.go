// Package cache stores a report alongside a fingerprint of the source and
// settings that produced it.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/phobologic/namecheck/internal/model"
)

// Entry is the on-disk cache document.
type Entry struct {
	Path        string        `json:"path"`
	Fingerprint string        `json:"fingerprint"`
	Report      *model.Report `json:"report"`
}

// Fingerprint hashes source together with any settings that change the
// report (such as exclusion patterns).
func Fingerprint(source []byte, settings ...string) string {
	d := xxhash.New()
	_, _ = d.Write(source)
	for _, s := range settings {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(s)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Lookup returns the cached report for sourcePath if the cache file exists and
// its fingerprint matches. Any read or decode problem is a miss.
func Lookup(cachePath, sourcePath, fingerprint string) (*model.Report, bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.Path != sourcePath || e.Fingerprint != fingerprint || e.Report == nil {
		return nil, false
	}
	return e.Report, true
}

// Store writes r to cachePath under fingerprint.
func Store(cachePath, sourcePath, fingerprint string, r *model.Report) error {
	if r == nil {
		return errors.New("nil report")
	}
	data, err := json.Marshal(Entry{Path: sourcePath, Fingerprint: fingerprint, Report: r})
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

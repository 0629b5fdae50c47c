// Package toon implements TOON (Token-Oriented Object Notation) encoding
// of analysis reports.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/namecheck/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

var resultColumns = []string{"name", "relevance_score", "reasons", "suggestion"}

// Encode converts a Report into TOON format. Reasons are joined with "; ".
func Encode(file string, r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("file: %s", encodeValue(file)))
	parts = append(parts, fmt.Sprintf("overall_score: %.4f", r.OverallScore))
	parts = append(parts, formatTabular("classes", resultColumns, resultRows(r.Classes)))
	parts = append(parts, formatTabular("functions", resultColumns, resultRows(r.Functions)))

	return strings.Join(parts, "\n")
}

// EncodeError converts a failed analysis into TOON format.
func EncodeError(e *model.ErrorReport) string {
	return fmt.Sprintf("error: %s", encodeValue(e.Error))
}

func resultRows(results []model.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for i := range results {
		res := &results[i]
		suggestion := "null"
		if res.Suggestion != nil {
			suggestion = encodeValue(*res.Suggestion)
		}
		rows = append(rows, []string{
			encodeValue(res.Name),
			fmt.Sprintf("%.4f", res.Score),
			encodeValue(strings.Join(res.Reasons, "; ")),
			suggestion,
		})
	}
	return rows
}

// formatTabular renders a uniform array. Cells must already be encoded.
func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n  %s", strings.Join(row, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}

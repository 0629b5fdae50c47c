// Package analyze runs name-relevance analysis over one source file.
package analyze

import (
	"context"
	"io"
	"log/slog"

	"github.com/phobologic/namecheck/internal/discover"
	"github.com/phobologic/namecheck/internal/lang"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/parse"
	"github.com/phobologic/namecheck/internal/relevance"
)

// Analyzer scores the class and function names of a file.
type Analyzer struct {
	logger  *slog.Logger
	exclude func(name string) bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for per-entity debug output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithExclude skips entities whose name satisfies match.
func WithExclude(match func(name string) bool) Option {
	return func(a *Analyzer) {
		a.exclude = match
	}
}

// New returns an Analyzer with the given options applied.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile resolves, loads and analyzes the file at path. Errors wrap
// discover.ErrNotFound, discover.ErrInvalidExtension or parse.ErrParse; no
// partial report is returned with an error.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	entry, err := discover.File(path)
	if err != nil {
		return nil, err
	}

	unit, err := parse.Load(ctx, entry.Language, entry.Path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("parsed file", "path", entry.Path, "language", entry.Language.Name, "lines", len(unit.Lines))

	return a.analyze(unit), nil
}

// AnalyzeSource analyzes in-memory source text written in l.
func (a *Analyzer) AnalyzeSource(ctx context.Context, l *lang.Language, path string, source []byte) (*model.Report, error) {
	unit, err := parse.Parse(ctx, l, path, source)
	if err != nil {
		return nil, err
	}
	return a.analyze(unit), nil
}

func (a *Analyzer) analyze(unit *parse.SourceUnit) *model.Report {
	classes, functions := parse.Entities(unit)

	r := &model.Report{
		Classes:   a.evaluateAll(classes),
		Functions: a.evaluateAll(functions),
	}
	r.OverallScore = mean(r.Scores())

	a.logger.Debug("analysis complete",
		"path", unit.Path,
		"classes", len(r.Classes),
		"functions", len(r.Functions),
		"overall_score", r.OverallScore,
	)
	return r
}

func (a *Analyzer) evaluateAll(entities []model.Entity) []model.Result {
	results := make([]model.Result, 0, len(entities))
	for _, e := range entities {
		if a.exclude != nil && a.exclude(e.Name) {
			a.logger.Debug("excluded", "kind", e.Kind, "name", e.Name, "line", e.Line)
			continue
		}
		res := Evaluate(e)
		a.logger.Debug("scored", "kind", e.Kind, "name", e.Name, "line", e.Line, "score", res.Score)
		results = append(results, res)
	}
	return results
}

// Evaluate scores a single entity and attaches a suggestion when the score is
// below relevance.SuggestionThreshold.
func Evaluate(e model.Entity) model.Result {
	impl := Summarize(e)
	score, reasons := relevance.Score(e.Name, impl)

	res := model.Result{
		Name:    e.Name,
		Score:   score,
		Reasons: reasons,
	}
	if score < relevance.SuggestionThreshold {
		s := relevance.Suggest(e.Name, impl)
		res.Suggestion = &s
	}
	return res
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

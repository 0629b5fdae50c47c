// Package model defines core data structures for namecheck.
package model

// EntityKind indicates the syntactic kind of a scored definition.
type EntityKind string

const (
	Class    EntityKind = "class"
	Function EntityKind = "function"
)

// Entity is a class or free function discovered in a source file.
type Entity struct {
	Name      string
	Kind      EntityKind
	Docstring string
	Line      int

	// Methods and Attributes are populated for classes only, in body order.
	Methods    []string
	Attributes []string

	// Body is the definition's source lines joined with spaces (functions only).
	Body string
}

// Result is the relevance verdict for one entity.
type Result struct {
	Name       string   `json:"name" yaml:"name"`
	Score      float64  `json:"relevance_score" yaml:"relevance_score"`
	Reasons    []string `json:"reasons" yaml:"reasons"`
	Suggestion *string  `json:"suggestion" yaml:"suggestion"`
}

// Report is the complete analysis of one file, ready for serialization.
type Report struct {
	Classes      []Result `json:"classes" yaml:"classes"`
	Functions    []Result `json:"functions" yaml:"functions"`
	OverallScore float64  `json:"overall_score" yaml:"overall_score"`
}

// ErrorReport is the serialized shape of a failed analysis.
type ErrorReport struct {
	Error string `json:"error" yaml:"error"`
}

// Scores returns every class score followed by every function score.
func (r *Report) Scores() []float64 {
	scores := make([]float64, 0, len(r.Classes)+len(r.Functions))
	for i := range r.Classes {
		scores = append(scores, r.Classes[i].Score)
	}
	for i := range r.Functions {
		scores = append(scores, r.Functions[i].Score)
	}
	return scores
}

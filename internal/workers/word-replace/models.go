// internal/workers/word-replace/models.go
package wordreplace

import "inspection-rpa/internal/models"

type Input struct {
	Record     models.CandidateRecord `json:"record"`
	SourcePath string                 `json:"sourcePath,omitempty"`
}

// Output reports one word-processing mutation. A zero ReplacementCount with
// Success true is a distinguishable no-op: the marker was absent, the
// output file exists, and the collaborator should warn instead of confirm.
type Output struct {
	Success          bool           `json:"success"`
	SourcePath       string         `json:"sourcePath"`
	OutputPath       string         `json:"outputPath,omitempty"`
	Replacement      string         `json:"replacement,omitempty"`
	ReplacementCount int            `json:"replacementCount"`
	RegionCounts     map[string]int `json:"regionCounts,omitempty"`
}

// NoOp reports whether the run succeeded without finding the marker.
func (o *Output) NoOp() bool {
	return o.Success && o.ReplacementCount == 0
}

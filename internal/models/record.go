// Package models holds the shared data model for the validation and
// document-mutation pipeline.
package models

// CandidateRecord is one operator-entered record. It is constructed fresh
// per run from collaborator input and never mutated after validation.
type CandidateRecord struct {
	Username            string `json:"username"`
	ModelCode           string `json:"modelCode"`
	ManufacturingNumber string `json:"manufacturingNumber"`
	OrderNumber         string `json:"orderNumber"`
}

// ValidationOutcome is the single pass/fail decision produced by the
// validation pipeline. A failed outcome carries the first failing field and
// one actionable message.
type ValidationOutcome struct {
	Valid     bool   `json:"valid"`
	FieldName string `json:"fieldName,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// MutationResult is produced once per writer invocation. The output document
// is always a new file; the source is preserved as an audit trail.
type MutationResult struct {
	Success          bool   `json:"success"`
	SourcePath       string `json:"sourcePath"`
	OutputPath       string `json:"outputPath,omitempty"`
	ReplacementCount int    `json:"replacementCount,omitempty"`
	ErrorMessage     string `json:"errorMessage,omitempty"`
}

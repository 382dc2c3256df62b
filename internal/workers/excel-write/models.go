// internal/workers/excel-write/models.go
package excelwrite

import "inspection-rpa/internal/models"

type Input struct {
	Record     models.CandidateRecord `json:"record"`
	SourcePath string                 `json:"sourcePath,omitempty"`
}

// Output reports one spreadsheet mutation. Failures during open, write or
// save are folded into the output rather than raised, so the collaborator
// always receives a renderable result.
type Output struct {
	Success       bool     `json:"success"`
	SourcePath    string   `json:"sourcePath"`
	OutputPath    string   `json:"outputPath,omitempty"`
	SheetsWritten []string `json:"sheetsWritten,omitempty"`
	ErrorCode     string   `json:"errorCode,omitempty"`
	ErrorMessage  string   `json:"errorMessage,omitempty"`
}

// internal/workers/validate-record/models.go
package validaterecord

import "inspection-rpa/internal/models"

type Input struct {
	Username            string `json:"username"`
	ModelCode           string `json:"modelCode"`
	ManufacturingNumber string `json:"manufacturingNumber"`
	OrderNumber         string `json:"orderNumber"`
}

// Output represents the validation decision for one candidate record.
// ModelInfo is descriptive device-family metadata for the collaborator; it
// is only present on a valid outcome.
type Output struct {
	Valid     bool                `json:"valid"`
	FieldName string              `json:"fieldName,omitempty"`
	Code      string              `json:"code,omitempty"`
	Message   string              `json:"message,omitempty"`
	ModelInfo *models.ModelFamily `json:"modelInfo,omitempty"`
}

// Record converts the raw input into the immutable candidate record handed
// to the pipeline.
func (in *Input) Record() models.CandidateRecord {
	return models.CandidateRecord{
		Username:            in.Username,
		ModelCode:           in.ModelCode,
		ManufacturingNumber: in.ManufacturingNumber,
		OrderNumber:         in.OrderNumber,
	}
}

// internal/workers/validate-record/handler.go
package validaterecord

import (
	"context"

	"github.com/google/uuid"

	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/common/metrics"
	"inspection-rpa/internal/models"
	"inspection-rpa/internal/validation"
)

const (
	TaskType = "validate-record"
)

type Handler struct {
	config   *Config
	pipeline *validation.Pipeline
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		pipeline: validation.NewPipeline(),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute validates the four fields and the cross-field consistency rule.
// Pure apart from logging and metrics: no file I/O happens here, so no
// partial validation state can leak into a document mutation.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	runID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"runId": runID})

	outcome := h.pipeline.Run(input.Record())
	if !outcome.Valid {
		log.Info("record rejected", map[string]interface{}{
			"fieldName": outcome.FieldName,
			"code":      outcome.Code,
		})
		metrics.ValidationsTotal.WithLabelValues("rejected", outcome.Code).Inc()
		return &Output{
			Valid:     false,
			FieldName: outcome.FieldName,
			Code:      outcome.Code,
			Message:   outcome.Message,
		}, nil
	}

	output := &Output{Valid: true}
	if family, ok := models.LookupModelFamily(input.ModelCode); ok {
		output.ModelInfo = &family
	}

	log.Info("record accepted", map[string]interface{}{
		"modelCode":   input.ModelCode,
		"orderNumber": input.OrderNumber,
	})
	metrics.ValidationsTotal.WithLabelValues("accepted", "").Inc()
	return output, nil
}

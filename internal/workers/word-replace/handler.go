// internal/workers/word-replace/handler.go
package wordreplace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inspection-rpa/internal/common/docx"
	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/common/metrics"
	"inspection-rpa/internal/common/naming"
)

const (
	TaskType = "word-replace"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// ReplacementFor derives the text substituted for the marker:
// "<order>/<manufacturing>".
func ReplacementFor(orderNumber, manufacturingNumber string) string {
	return fmt.Sprintf("%s/%s", orderNumber, manufacturingNumber)
}

// Execute replaces every occurrence of the configured marker across all
// structural regions of the source document and saves the result under a
// new timestamped path. Open and save failures propagate as tagged errors;
// a zero replacement count is a successful no-op.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	runID := uuid.NewString()
	start := time.Now()

	sourcePath := input.SourcePath
	if sourcePath == "" {
		sourcePath = h.config.DefaultSourcePath
	}
	replacement := ReplacementFor(input.Record.OrderNumber, input.Record.ManufacturingNumber)

	log := h.logger.WithFields(map[string]interface{}{
		"runId":  runID,
		"source": sourcePath,
	})

	doc, err := docx.Open(sourcePath)
	if err != nil {
		metrics.DocumentMutationsTotal.WithLabelValues(TaskType, "failed").Inc()
		return nil, err
	}

	stats := doc.Replace(h.config.Marker, replacement, log)

	outputPath := naming.OutputPath(sourcePath, time.Now())
	if err := doc.SaveAs(outputPath); err != nil {
		metrics.DocumentMutationsTotal.WithLabelValues(TaskType, "failed").Inc()
		return nil, err
	}

	metrics.DocumentMutationsTotal.WithLabelValues(TaskType, "succeeded").Inc()
	metrics.MutationDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	metrics.ReplacementCount.Observe(float64(stats.Total))

	regionCounts := make(map[string]int, len(stats.ByRegion))
	for kind, count := range stats.ByRegion {
		regionCounts[string(kind)] = count
	}

	output := &Output{
		Success:          true,
		SourcePath:       sourcePath,
		OutputPath:       outputPath,
		Replacement:      replacement,
		ReplacementCount: stats.Total,
		RegionCounts:     regionCounts,
	}

	if output.NoOp() {
		log.Warn("marker not found in document", map[string]interface{}{
			"marker": h.config.Marker,
		})
	} else {
		log.Info("marker replaced", map[string]interface{}{
			"count":  stats.Total,
			"output": outputPath,
		})
	}
	return output, nil
}

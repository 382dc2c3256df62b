// internal/workers/excel-write/handler.go
package excelwrite

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	apperrors "inspection-rpa/internal/common/errors"
	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/common/metrics"
	"inspection-rpa/internal/common/naming"
	"inspection-rpa/internal/models"
)

const (
	TaskType = "excel-write"
)

// sheetTarget fixes the contract for one named sheet: which cell receives
// which labelled value. Sheet and cell names are fixed by contract, not
// discovered.
type sheetTarget struct {
	name              string
	usernameCell      string
	modelCell         string
	orderCell         string
	manufacturingCell string
}

var sheetTargets = []sheetTarget{
	{name: "組立チェック表", usernameCell: "B4", modelCell: "B5", orderCell: "F4", manufacturingCell: "F5"},
	{name: "フレームテスト検査表", usernameCell: "B3", modelCell: "B4", orderCell: "F2", manufacturingCell: "F3"},
	{name: "フレーム組立検査表", usernameCell: "B3", modelCell: "B4", orderCell: "F2", manufacturingCell: "F3"},
}

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

// Execute writes the four labelled values into every target sheet present
// in the source workbook and saves the result under a new timestamped path.
// Sheets absent from the workbook are silently skipped. The source file is
// never overwritten.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	runID := uuid.NewString()
	start := time.Now()

	sourcePath := input.SourcePath
	if sourcePath == "" {
		sourcePath = h.config.DefaultSourcePath
	}

	log := h.logger.WithFields(map[string]interface{}{
		"runId":  runID,
		"source": sourcePath,
	})

	output, err := h.write(sourcePath, input.Record)
	metrics.MutationDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Error("spreadsheet write failed", nil)
		metrics.DocumentMutationsTotal.WithLabelValues(TaskType, "failed").Inc()
		return &Output{
			Success:      false,
			SourcePath:   sourcePath,
			ErrorCode:    string(apperrors.CodeOf(err)),
			ErrorMessage: err.Error(),
		}
	}

	log.Info("spreadsheet written", map[string]interface{}{
		"output": output.OutputPath,
		"sheets": output.SheetsWritten,
	})
	metrics.DocumentMutationsTotal.WithLabelValues(TaskType, "succeeded").Inc()
	return output
}

func (h *Handler) write(sourcePath string, record models.CandidateRecord) (*Output, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, apperrors.NewSourceNotFoundError(sourcePath)
	}

	f, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, apperrors.NewDocumentOpenFailureError(sourcePath, err)
	}
	defer f.Close()

	var sheetsWritten []string
	for _, target := range sheetTargets {
		idx, err := f.GetSheetIndex(target.name)
		if err != nil || idx < 0 {
			continue
		}

		cells := map[string]string{
			target.usernameCell:      fmt.Sprintf("ユーザー名：%s", record.Username),
			target.modelCell:         fmt.Sprintf("機種-型番：%s", record.ModelCode),
			target.orderCell:         fmt.Sprintf("受注番号：%s", record.OrderNumber),
			target.manufacturingCell: fmt.Sprintf("製造番号：%s", record.ManufacturingNumber),
		}
		for cell, value := range cells {
			if err := f.SetCellStr(target.name, cell, value); err != nil {
				return nil, apperrors.NewDocumentSaveFailureError(sourcePath, err)
			}
		}
		sheetsWritten = append(sheetsWritten, target.name)
	}

	outputPath := naming.OutputPath(sourcePath, time.Now())
	if err := f.SaveAs(outputPath); err != nil {
		return nil, apperrors.NewDocumentSaveFailureError(outputPath, err)
	}

	return &Output{
		Success:       true,
		SourcePath:    sourcePath,
		OutputPath:    outputPath,
		SheetsWritten: sheetsWritten,
	}, nil
}

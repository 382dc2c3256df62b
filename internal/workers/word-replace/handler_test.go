// internal/workers/word-replace/handler_test.go
package wordreplace

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inspection-rpa/internal/common/errors"
	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>検査対象情報</w:t></w:r></w:p>
    <w:tbl>
      <w:tr><w:tc><w:p><w:r><w:t>検査対象情報</w:t></w:r></w:p></w:tc></w:tr>
    </w:tbl>
  </w:body>
</w:document>`

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

func createTestDocx(t *testing.T, dir, documentXML string) string {
	t.Helper()

	path := filepath.Join(dir, "check2.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range map[string]string{
		"[Content_Types].xml": testContentTypes,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func createTestInput(sourcePath string) *Input {
	return &Input{
		Record: models.CandidateRecord{
			Username:            "マキシンコー",
			ModelCode:           "201-2312.003000",
			ManufacturingNumber: "J00023150100",
			OrderNumber:         "O2315",
		},
		SourcePath: sourcePath,
	}
}

func readDocumentPart(t *testing.T, path string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("word/document.xml not found in %s", path)
	return ""
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ReplacesMarker(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir, testDocumentXML)

	h := createTestHandler(t)
	output, err := h.Execute(context.Background(), createTestInput(source))
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.False(t, output.NoOp())
	assert.Equal(t, 2, output.ReplacementCount)
	assert.Equal(t, "O2315/J00023150100", output.Replacement)
	assert.NotEqual(t, source, output.OutputPath)

	content := readDocumentPart(t, output.OutputPath)
	assert.NotContains(t, content, "検査対象情報")
	assert.Contains(t, content, "O2315/J00023150100")

	// source remains untouched
	assert.Contains(t, readDocumentPart(t, source), "検査対象情報")
}

func TestHandler_Execute_RegionCountsSumToTotal(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir, testDocumentXML)

	h := createTestHandler(t)
	output, err := h.Execute(context.Background(), createTestInput(source))
	require.NoError(t, err)

	sum := 0
	for _, count := range output.RegionCounts {
		sum += count
	}
	assert.Equal(t, output.ReplacementCount, sum)
}

func TestHandler_Execute_NoOp(t *testing.T) {
	dir := t.TempDir()
	noMarkerXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>マーカーなし</w:t></w:r></w:p></w:body>
</w:document>`
	source := createTestDocx(t, dir, noMarkerXML)

	h := createTestHandler(t)
	output, err := h.Execute(context.Background(), createTestInput(source))
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.True(t, output.NoOp())
	assert.Zero(t, output.ReplacementCount)

	// the output file is still produced and readable
	assert.FileExists(t, output.OutputPath)
	assert.Contains(t, readDocumentPart(t, output.OutputPath), "マーカーなし")
}

func TestHandler_Execute_TwoIndependentRuns(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir, testDocumentXML)

	h := createTestHandler(t)

	first, err := h.Execute(context.Background(), createTestInput(source))
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), createTestInput(source))
	require.NoError(t, err)

	// idempotent with respect to the source, not cumulative
	assert.NotZero(t, first.ReplacementCount)
	assert.Equal(t, first.ReplacementCount, second.ReplacementCount)
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Execute_SourceNotFound(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), createTestInput(filepath.Join(t.TempDir(), "missing.docx")))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSourceNotFound, apperrors.CodeOf(err))
}

func TestHandler_Execute_NotAWordPackage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	h := createTestHandler(t)
	_, err := h.Execute(context.Background(), createTestInput(path))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDocumentOpenFailure, apperrors.CodeOf(err))
}

package docx

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/common/naming"
)

const testMarker = "検査対象情報"

// ==========================
// Test Fixture
// ==========================

const fixtureDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape">
  <w:body>
    <w:p><w:r><w:t>対象: 検査対象情報 を確認してください</w:t></w:r></w:p>
    <w:p>
      <w:r><w:rPr/><w:t>前半テキスト</w:t></w:r>
      <w:r><w:t>検査対象情報</w:t></w:r>
    </w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>セル内 検査対象情報</w:t></w:r></w:p></w:tc>
        <w:tc>
          <w:tbl>
            <w:tr><w:tc><w:p><w:r><w:t>入れ子 検査対象情報</w:t></w:r></w:p></w:tc></w:tr>
          </w:tbl>
          <w:p><w:r><w:t>no marker here</w:t></w:r></w:p>
        </w:tc>
      </w:tr>
    </w:tbl>
    <w:p>
      <w:r>
        <w:drawing>
          <wp:inline>
            <a:graphic>
              <wps:txbx>
                <w:txbxContent>
                  <w:p><w:r><w:t>図形内 検査対象情報</w:t></w:r></w:p>
                </w:txbxContent>
              </wps:txbx>
            </a:graphic>
          </wp:inline>
        </w:drawing>
      </w:r>
    </w:p>
    <w:p>
      <w:r>
        <w:drawing>
          <wp:anchor>
            <a:graphic>
              <wps:txbx>
                <w:txbxContent>
                  <w:p><w:r><w:t>浮動図形 検査対象情報</w:t></w:r></w:p>
                </w:txbxContent>
              </wps:txbx>
            </a:graphic>
          </wp:anchor>
        </w:drawing>
      </w:r>
    </w:p>
    <w:p>
      <w:hyperlink><w:r><w:t>リンク内 検査対象情報</w:t></w:r></w:hyperlink>
    </w:p>
  </w:body>
</w:document>`

const fixtureHeaderXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:p><w:r><w:t>ヘッダー 検査対象情報</w:t></w:r></w:p>
</w:hdr>`

const fixtureFooterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:p><w:r><w:t>フッター 検査対象情報</w:t></w:r></w:p>
</w:ftr>`

const fixtureContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

func writeTestPackage(t *testing.T, path string, parts map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	// fixed order keeps the fixture deterministic
	names := []string{"[Content_Types].xml", "word/document.xml", "word/header1.xml", "word/footer1.xml"}
	for _, name := range names {
		data, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func createTestDocx(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "check2.docx")
	writeTestPackage(t, path, map[string]string{
		"[Content_Types].xml": fixtureContentTypes,
		"word/document.xml":   fixtureDocumentXML,
		"word/header1.xml":    fixtureHeaderXML,
		"word/footer1.xml":    fixtureFooterXML,
	})
	return path
}

func readPart(t *testing.T, path, name string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

// ==========================
// Replacement Tests
// ==========================

func TestDocument_Replace_AllRegions(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir)

	doc, err := Open(source)
	require.NoError(t, err)

	stats := doc.Replace(testMarker, "O2315/J00023150100", logger.NewTestLogger(t))

	assert.Equal(t, 2, stats.ByRegion[RegionBodyRun])
	assert.Equal(t, 2, stats.ByRegion[RegionTableCellRun])
	assert.Equal(t, 1, stats.ByRegion[RegionShapeRun])
	assert.Equal(t, 1, stats.ByRegion[RegionAnchoredDrawing])
	// the hyperlink run is invisible to the structural passes and only the
	// catch-all pass reaches it
	assert.Equal(t, 1, stats.ByRegion[RegionFallbackNode])
	assert.Equal(t, 2, stats.ByRegion[RegionHeaderFooterRun])
	assert.Equal(t, 9, stats.Total)
}

func TestDocument_Replace_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir)

	doc, err := Open(source)
	require.NoError(t, err)

	stats := doc.Replace(testMarker, "O2315/J00023150100", logger.NewTestLogger(t))
	require.NotZero(t, stats.Total)

	output := naming.OutputPath(source, time.Now())
	require.NoError(t, doc.SaveAs(output))

	for _, name := range []string{"word/document.xml", "word/header1.xml", "word/footer1.xml"} {
		content := readPart(t, output, name)
		assert.NotContains(t, content, testMarker, name)
		assert.Contains(t, content, "O2315/J00023150100", name)
	}

	// the source is untouched
	assert.Contains(t, readPart(t, source, "word/document.xml"), testMarker)
}

func TestDocument_Replace_IdempotentAgainstSource(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir)

	first, err := Open(source)
	require.NoError(t, err)
	firstStats := first.Replace(testMarker, "X", logger.NewTestLogger(t))
	require.NoError(t, first.SaveAs(filepath.Join(dir, "out1.docx")))

	second, err := Open(source)
	require.NoError(t, err)
	secondStats := second.Replace(testMarker, "X", logger.NewTestLogger(t))
	require.NoError(t, second.SaveAs(filepath.Join(dir, "out2.docx")))

	assert.NotZero(t, firstStats.Total)
	assert.Equal(t, firstStats.Total, secondStats.Total)
}

func TestDocument_Replace_NoOccurrences(t *testing.T) {
	dir := t.TempDir()
	source := createTestDocx(t, dir)

	doc, err := Open(source)
	require.NoError(t, err)

	stats := doc.Replace("存在しない文字列", "X", logger.NewTestLogger(t))
	assert.Zero(t, stats.Total)

	// a no-op run still produces a readable output file
	output := filepath.Join(dir, "noop.docx")
	require.NoError(t, doc.SaveAs(output))

	_, err = Open(output)
	require.NoError(t, err)
	assert.Contains(t, readPart(t, output, "word/document.xml"), testMarker)
}

func TestDocument_Replace_MarkerSplitAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "split.docx")
	// the marker is split across two adjacent runs; the engine operates per
	// run and does not find it
	splitXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>検査対象</w:t></w:r>
      <w:r><w:t>情報</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`
	writeTestPackage(t, path, map[string]string{
		"[Content_Types].xml": fixtureContentTypes,
		"word/document.xml":   splitXML,
	})

	doc, err := Open(path)
	require.NoError(t, err)

	stats := doc.Replace(testMarker, "X", logger.NewTestLogger(t))
	assert.Zero(t, stats.Total)
}

// ==========================
// Open Failure Tests
// ==========================

func TestOpen_SourceNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.docx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE_NOT_FOUND")
}

func TestOpen_NotAWordPackage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.docx")
	writeTestPackage(t, path, map[string]string{
		"[Content_Types].xml": fixtureContentTypes,
	})

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCUMENT_OPEN_FAILURE")
}

// Package naming derives collision-avoiding output filenames for mutated
// documents. The source file is never overwritten; every run produces a new
// file beside it.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "20060102_150405"

// OutputPath returns "<stem>_processed_<YYYYMMDD_HHMMSS><ext>" beside the
// source. Deterministic for the same source and second-resolution timestamp;
// collisions within the same second are not deduplicated.
func OutputPath(sourcePath string, ts time.Time) string {
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return fmt.Sprintf("%s_processed_%s%s", stem, ts.Format(timestampLayout), ext)
}

// internal/workers/excel-write/config.go
package excelwrite

import (
	"time"

	"inspection-rpa/internal/common/config"
)

type Config struct {
	Timeout           time.Duration
	DefaultSourcePath string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		DefaultSourcePath: config.DefaultExcelFile,
	}
}

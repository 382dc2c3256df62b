// internal/workers/word-replace/config.go
package wordreplace

import (
	"time"

	"inspection-rpa/internal/common/config"
)

type Config struct {
	Timeout           time.Duration
	DefaultSourcePath string
	Marker            string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		DefaultSourcePath: config.DefaultWordFile,
		Marker:            config.DefaultMarker,
	}
}

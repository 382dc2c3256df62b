// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig               `mapstructure:"app"`
	Files       FilesConfig             `mapstructure:"files"`
	Replacement ReplacementConfig       `mapstructure:"replacement"`
	Workers     map[string]WorkerConfig `mapstructure:"workers"`
	Logging     LoggingConfig           `mapstructure:"logging"`
	Metrics     MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// FilesConfig holds the well-known default source documents. Both writers
// fall back to these when no explicit path is supplied.
type FilesConfig struct {
	ExcelPath string `mapstructure:"excel_path"`
	WordPath  string `mapstructure:"word_path"`
}

// ReplacementConfig holds the sentinel marker searched for in the
// word-processing template.
type ReplacementConfig struct {
	Marker string `mapstructure:"marker"`
}

type WorkerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

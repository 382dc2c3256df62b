// cmd/rpa/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inspection-rpa/internal/common/config"
	"inspection-rpa/internal/common/logger"
	"inspection-rpa/internal/models"

	excelwrite "inspection-rpa/internal/workers/excel-write"
	validaterecord "inspection-rpa/internal/workers/validate-record"
	wordreplace "inspection-rpa/internal/workers/word-replace"
)

var (
	// Global flags
	configPath    string
	usernameFlag  string
	modelFlag     string
	mfgFlag       string
	orderFlag     string
	excelFileFlag string
	wordFileFlag  string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rpa",
	Short: "Validate inspection records and stamp them into check documents",
	Long: `rpa validates an operator-entered record (username, model code,
manufacturing number, order number) and, on success, writes the values into
the check spreadsheet and replaces the placeholder in the check document.
Outputs are new timestamped files; source documents are never overwritten.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFromFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}

		zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
		log = logger.NewZapAdapter(zapLog)

		if cfg.Metrics.Enabled {
			go func() {
				http.Handle("/metrics", promhttp.Handler())
				if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
					zapLog.Warn("metrics server stopped", zap.Error(err))
				}
			}()
		}
		return nil
	},
}

// record assembles the candidate record from flags. The front end trims
// leading/trailing whitespace before the pipeline sees the values.
func record() models.CandidateRecord {
	return models.CandidateRecord{
		Username:            strings.TrimSpace(usernameFlag),
		ModelCode:           strings.TrimSpace(modelFlag),
		ManufacturingNumber: strings.TrimSpace(mfgFlag),
		OrderNumber:         strings.TrimSpace(orderFlag),
	}
}

func validateRecord(ctx context.Context) (*validaterecord.Output, error) {
	handler := validaterecord.NewHandler(validaterecord.LoadConfig(), log)
	r := record()
	return handler.Execute(ctx, &validaterecord.Input{
		Username:            r.Username,
		ModelCode:           r.ModelCode,
		ManufacturingNumber: r.ManufacturingNumber,
		OrderNumber:         r.OrderNumber,
	})
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the four record fields without touching any file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := validateRecord(cmd.Context())
		if err != nil {
			return err
		}
		if !output.Valid {
			fmt.Printf("NG [%s] %s\n", output.FieldName, output.Message)
			os.Exit(1)
		}
		fmt.Println("OK: all checks passed")
		if output.ModelInfo != nil {
			fmt.Printf("model family %s: chain pitch %.2f, datum %d\n",
				output.ModelInfo.Prefix, output.ModelInfo.ChainPitch, output.ModelInfo.DatumValue)
		}
		return nil
	},
}

var excelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Validate, then write the record into the check spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := validateRecord(cmd.Context())
		if err != nil {
			return err
		}
		if !outcome.Valid {
			fmt.Printf("NG [%s] %s\n", outcome.FieldName, outcome.Message)
			os.Exit(1)
		}

		handlerCfg := excelwrite.LoadConfig()
		handlerCfg.DefaultSourcePath = cfg.Files.ExcelPath
		handler := excelwrite.NewHandler(handlerCfg, log)

		output := handler.Execute(cmd.Context(), &excelwrite.Input{
			Record:     record(),
			SourcePath: excelFileFlag,
		})
		if !output.Success {
			fmt.Printf("NG: %s\n", output.ErrorMessage)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %d sheet(s) to %s\n", len(output.SheetsWritten), output.OutputPath)
		return nil
	},
}

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Validate, then replace the placeholder in the check document",
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := validateRecord(cmd.Context())
		if err != nil {
			return err
		}
		if !outcome.Valid {
			fmt.Printf("NG [%s] %s\n", outcome.FieldName, outcome.Message)
			os.Exit(1)
		}

		handlerCfg := wordreplace.LoadConfig()
		handlerCfg.DefaultSourcePath = cfg.Files.WordPath
		handlerCfg.Marker = cfg.Replacement.Marker
		handler := wordreplace.NewHandler(handlerCfg, log)

		output, err := handler.Execute(cmd.Context(), &wordreplace.Input{
			Record:     record(),
			SourcePath: wordFileFlag,
		})
		if err != nil {
			return err
		}
		if output.NoOp() {
			fmt.Printf("WARN: marker %q not found in %s (output still written to %s)\n",
				cfg.Replacement.Marker, output.SourcePath, output.OutputPath)
			return nil
		}
		fmt.Printf("OK: replaced %d occurrence(s) with %s, wrote %s\n",
			output.ReplacementCount, output.Replacement, output.OutputPath)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate, then process both documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := excelCmd.RunE(cmd, args); err != nil {
			return err
		}
		return wordCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file")
	rootCmd.PersistentFlags().StringVarP(&usernameFlag, "user", "u", "", "operator username (must contain Japanese characters)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "model code, e.g. 201-2312.003000")
	rootCmd.PersistentFlags().StringVar(&mfgFlag, "mfg", "", "manufacturing number, e.g. J00023150100")
	rootCmd.PersistentFlags().StringVarP(&orderFlag, "order", "o", "", "order number, e.g. O2315")

	excelCmd.Flags().StringVar(&excelFileFlag, "file", "", "source spreadsheet (defaults to the configured check file)")
	wordCmd.Flags().StringVar(&wordFileFlag, "file", "", "source document (defaults to the configured check file)")
	runCmd.Flags().StringVar(&excelFileFlag, "excel-file", "", "source spreadsheet")
	runCmd.Flags().StringVar(&wordFileFlag, "word-file", "", "source document")

	rootCmd.AddCommand(validateCmd, excelCmd, wordCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

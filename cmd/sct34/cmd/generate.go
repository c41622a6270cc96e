package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bibbank/sct34/internal/application/dto"
	"github.com/bibbank/sct34/internal/application/usecase"
	"github.com/bibbank/sct34/internal/domain/port"
	"github.com/bibbank/sct34/internal/infrastructure/filestore"
	"github.com/bibbank/sct34/internal/infrastructure/orderfile"
	"github.com/bibbank/sct34/pkg/events"
	"github.com/bibbank/sct34/pkg/observability"
)

var (
	genIn          string
	genOut         string
	genFormat      string
	genStrict      bool
	genMetricsFile string
	genJournal     string
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a transfer file from a payment order document",
	Long: `Read a payment order in JSON or YAML and write the cuaderno 34.14 file.

Without --out the file is written to SCT34_OUTPUT_DIR as sct34-<batch id>.txt.
With --out - the file is written to stdout and the summary to stderr.

Strict mode (the default) rejects orders with empty mandatory fields;
--strict=false encodes them as blanks.

Example:
  sct34 generate --in nomina.yaml
  sct34 generate --in nomina.json --out /srv/bank/outbox/nomina.txt --strict=false`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genIn, "in", "", "payment order document (- for stdin)")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output file, or - for stdout")
	generateCmd.Flags().StringVar(&genFormat, "format", "", "order document format: json or yaml (default from extension)")
	generateCmd.Flags().BoolVar(&genStrict, "strict", true, "reject empty mandatory fields (default from SCT34_STRICT)")
	generateCmd.Flags().StringVar(&genMetricsFile, "metrics-file", "", "write prometheus textfile metrics here (default from SCT34_METRICS_FILE)")
	generateCmd.Flags().StringVar(&genJournal, "journal", "", "append generation events as JSON lines to this file (default from SCT34_JOURNAL_FILE)")
	_ = generateCmd.MarkFlagRequired("in")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := orderfile.ParseFormat(genFormat)
	if err != nil {
		return err
	}

	strict := cfg.Strict
	if cmd.Flags().Changed("strict") {
		strict = genStrict
	}
	metricsFile := cfg.MetricsFile
	if cmd.Flags().Changed("metrics-file") {
		metricsFile = genMetricsFile
	}
	journalFile := cfg.JournalFile
	if cmd.Flags().Changed("journal") {
		journalFile = genJournal
	}

	metrics := observability.NewBatchMetrics()
	if metricsFile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(metricsFile); werr != nil {
				logger.Warn("metrics not written", "path", metricsFile, "error", werr)
			}
		}()
	}

	logger.Debug("reading payment order", "path", genIn, "format", format)
	doc, err := orderfile.Read(genIn, format)
	if err != nil {
		metrics.BatchFailed("invalid_document")
		return err
	}

	store, name, err := outputStore(cmd)
	if err != nil {
		return err
	}

	var publisher port.EventPublisher
	if journalFile != "" {
		journal, err := events.OpenJournal(journalFile)
		if err != nil {
			return err
		}
		defer journal.Close()
		publisher = journal
	}

	uc := usecase.NewGenerateTransferFile(store, metrics, publisher, time.Now, cfg.ExecutionOffsetDays, logger)
	resp, err := uc.Execute(cmd.Context(), dto.GenerateTransferFileRequest{
		Document:   doc,
		OutputName: name,
		Strict:     strict,
	})
	if err != nil {
		return err
	}

	summary := cmd.OutOrStdout()
	if genOut == "-" {
		summary = cmd.ErrOrStderr()
	}
	fmt.Fprintf(summary, "batch:         %s\n", resp.BatchID)
	fmt.Fprintf(summary, "beneficiaries: %d\n", resp.Beneficiaries)
	fmt.Fprintf(summary, "total:         %d.%02d EUR\n", resp.TotalMinorUnits/100, resp.TotalMinorUnits%100)
	fmt.Fprintf(summary, "written:       %s (%d bytes)\n", resp.Location, resp.Bytes)
	return nil
}

// outputStore resolves --out into a store and a file name. An empty name lets the
// use case pick sct34-<batch id>.txt.
func outputStore(cmd *cobra.Command) (port.TransferFileStore, string, error) {
	switch genOut {
	case "-":
		return filestore.NewWriterStore(cmd.OutOrStdout(), "stdout"), "", nil
	case "":
		store, err := filestore.NewDirStore(cfg.OutputDir)
		return store, "", err
	default:
		store, err := filestore.NewDirStore(filepath.Dir(genOut))
		return store, filepath.Base(genOut), err
	}
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bibbank/sct34/internal/application/dto"
	"github.com/bibbank/sct34/internal/application/usecase"
)

var inspectIn string

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check a transfer file against its own totals",
	Long: `Decode a cuaderno 34.14 file and list its records with their lengths.
The beneficiary amounts are added up and compared with the batch total (04) and
grand total (99) records. The command fails when any problem is found.

Example:
  sct34 inspect --in nomina.txt`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectIn, "in", "", "transfer file (- for stdin)")
	_ = inspectCmd.MarkFlagRequired("in")
}

func runInspect(cmd *cobra.Command, args []string) error {
	payload, err := readInput(cmd, inspectIn)
	if err != nil {
		return err
	}

	report, err := usecase.NewInspectTransferFile().Execute(payload)
	if err != nil {
		return err
	}
	logger.Debug("transfer file inspected", "path", inspectIn, "records", len(report.Records))

	printReport(cmd.OutOrStdout(), report)
	if !report.Valid {
		return fmt.Errorf("%s: %d problem(s) found", inspectIn, len(report.Problems))
	}
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer file: %w", err)
	}
	return data, nil
}

func printReport(out io.Writer, report dto.InspectTransferFileResponse) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tCODE\tRECORD\tLENGTH")
	for _, r := range report.Records {
		fmt.Fprintf(tw, "%d\t%02d\t%s\t%d\n", r.Line, r.Code, r.Type, r.Length)
	}
	tw.Flush()

	fmt.Fprintf(out, "\nbeneficiaries: %d\n", report.Beneficiaries)
	fmt.Fprintf(out, "counted total: %d\n", report.TotalMinorUnits)

	codes := make([]int, 0, len(report.Declared))
	for code := range report.Declared {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "declared (%02d): %d\n", code, report.Declared[code])
	}

	if report.Valid {
		fmt.Fprintln(out, "\nOK")
		return
	}
	fmt.Fprintln(out, "\nproblems:")
	for _, p := range report.Problems {
		fmt.Fprintf(out, "  - %s\n", p)
	}
}

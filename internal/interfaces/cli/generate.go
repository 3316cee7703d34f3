package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// GenerateOutput is what `rose generate` prints.
type GenerateOutput struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	PNGPath string       `json:"png_path"`
	CSVPath string       `json:"csv_path,omitempty"`
	Summary rose.Summary `json:"summary"`
}

func (o GenerateOutput) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rose diagram written to %s\n", o.PNGPath)
	if o.CSVPath != "" {
		fmt.Fprintf(&sb, "Data exported to %s\n", o.CSVPath)
	}
	fmt.Fprintf(&sb, "\n%s\n", o.Title)
	for _, kv := range summaryFields(o.Summary) {
		fmt.Fprintf(&sb, "  %-16s %s\n", kv[0]+":", kv[1])
	}
	return sb.String()
}

func (o GenerateOutput) TableHeaders() []string { return []string{"Field", "Value"} }

func (o GenerateOutput) TableRows() [][]string {
	rows := [][]string{{"title", o.Title}, {"png", o.PNGPath}}
	if o.CSVPath != "" {
		rows = append(rows, []string{"csv", o.CSVPath})
	}
	for _, kv := range summaryFields(o.Summary) {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	return rows
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	var (
		in        inputFlags
		outDir    string
		exportCSV bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a rose diagram to PNG",
		Long: "Fold strike/dip measurements into sectors and render the rose diagram.\n" +
			"Writes <title>.png into --out-dir and, with --export-csv, <title>_data.csv.",
		Example: "  rose generate --strikes 10,20,200 --dips 30,40,50 --bin 15\n" +
			"  rose generate --csv measurements.csv --title \"North Wall\" --export-csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			req, err := in.request(cmd, cliCtx.Service)
			if err != nil {
				return err
			}
			res, err := cliCtx.Service.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "unable to create output directory")
			}
			out := GenerateOutput{
				ID:      res.ID,
				Title:   res.Diagram.DisplayTitle(),
				PNGPath: filepath.Join(outDir, res.PNGName),
				Summary: res.Summary,
			}
			if err := os.WriteFile(out.PNGPath, res.PNG, 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "unable to write PNG")
			}
			if exportCSV {
				out.CSVPath = filepath.Join(outDir, res.CSVName)
				if err := os.WriteFile(out.CSVPath, res.CSV, 0o644); err != nil {
					return errors.Wrap(err, errors.ErrCodeInternal, "unable to write CSV")
				}
			}

			cliCtx.Logger.Debug("diagram files written",
				logging.String("png", out.PNGPath),
				logging.String("csv", out.CSVPath),
			)
			return PrintResult(cmd, out)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the generated files")
	cmd.Flags().BoolVar(&exportCSV, "export-csv", false, "also write the input data as <title>_data.csv")
	return cmd
}

func summaryFields(s rose.Summary) [][2]string {
	dominant := "-"
	if s.DominantSector != nil {
		dominant = fmt.Sprintf("%s (%d)", sectorRange(*s.DominantSector), s.DominantSector.Count)
	}
	return [][2]string{
		{"measurements", strconv.Itoa(s.Measurements)},
		{"sectors", strconv.Itoa(s.Sectors)},
		{"folded", strconv.Itoa(s.TotalFolded)},
		{"max count", strconv.Itoa(s.MaxCount)},
		{"dominant sector", dominant},
		{"mean dip", formatDegrees(s.MeanDip)},
		{"legend", formatDegrees(s.LegendMin) + " - " + formatDegrees(s.LegendMax)},
	}
}

func sectorRange(s rose.Sector) string {
	return strconv.FormatFloat(s.Start, 'f', -1, 64) + "-" + strconv.FormatFloat(s.End, 'f', -1, 64) + "°"
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "°"
}

//Personal.AI order the ending

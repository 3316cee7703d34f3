package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRose/internal/domain/rose"
)

// SectorsOutput is what `rose sectors` prints.
type SectorsOutput struct {
	Title    string           `json:"title"`
	BinWidth int              `json:"bin_width"`
	Palette  rose.PaletteName `json:"palette"`
	Summary  rose.Summary     `json:"summary"`
	Sectors  []rose.Sector    `json:"sectors"`
}

// String lists only the occupied sectors; the table and JSON forms carry
// all of them.
func (o SectorsOutput) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", o.Title)
	for _, kv := range summaryFields(o.Summary) {
		fmt.Fprintf(&sb, "  %-16s %s\n", kv[0]+":", kv[1])
	}
	var rows [][]string
	for _, s := range o.Sectors {
		if !s.Empty() {
			rows = append(rows, sectorRow(s))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(FormatTable(o.TableHeaders(), rows))
	return sb.String()
}

func (o SectorsOutput) TableHeaders() []string {
	return []string{"#", "Sector", "Count", "Mean Dip"}
}

func (o SectorsOutput) TableRows() [][]string {
	rows := make([][]string, len(o.Sectors))
	for i, s := range o.Sectors {
		rows[i] = sectorRow(s)
	}
	return rows
}

func sectorRow(s rose.Sector) []string {
	return []string{
		strconv.Itoa(s.Index),
		sectorRange(s),
		strconv.Itoa(s.Count),
		formatDegrees(s.MeanDip),
	}
}

// NewSectorsCmd creates the sectors command.
func NewSectorsCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "sectors",
		Short: "Print the sector table without rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			req, err := in.request(cmd, cliCtx.Service)
			if err != nil {
				return err
			}
			d, sum, err := cliCtx.Service.Sectors(cmd.Context(), req)
			if err != nil {
				return err
			}
			return PrintResult(cmd, SectorsOutput{
				Title:    d.DisplayTitle(),
				BinWidth: d.BinWidth,
				Palette:  d.Palette,
				Summary:  sum,
				Sectors:  d.Sectors,
			})
		},
	}
	in.register(cmd)
	return cmd
}

//Personal.AI order the ending

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// PaletteList is what `rose palettes` prints.
type PaletteList struct {
	Palettes []string `json:"palettes"`
}

func (l PaletteList) String() string {
	return strings.Join(l.Palettes, "\n") + "\n"
}

func (l PaletteList) TableHeaders() []string { return []string{"Palette"} }

func (l PaletteList) TableRows() [][]string {
	rows := make([][]string, len(l.Palettes))
	for i, p := range l.Palettes {
		rows[i] = []string{p}
	}
	return rows
}

// NewPalettesCmd creates the palettes command.
func NewPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the available color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return PrintResult(cmd, PaletteList{Palettes: cliCtx.Service.Palettes()})
		},
	}
}

//Personal.AI order the ending

package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRose/internal/application/diagram"
	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// inputFlags are the measurement flags shared by generate and sectors.
type inputFlags struct {
	strikes string
	dips    string
	csvPath string
	title   string
	bin     int
	palette string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.strikes, "strikes", "", "strike values separated by commas or newlines, or @file to read them from a file")
	fl.StringVar(&f.dips, "dips", "", "dip values separated by commas or newlines, or @file")
	fl.StringVar(&f.csvPath, "csv", "", "CSV file with a Strike/Dip column; takes precedence over --strikes/--dips")
	fl.StringVar(&f.title, "title", "", "diagram title (default from config, \"Rose Diagram\")")
	fl.IntVar(&f.bin, "bin", rose.DefaultBinWidth, "sector width in degrees, 1-90")
	fl.StringVar(&f.palette, "palette", "", "color palette (see 'rose palettes'; default viridis)")
}

// request builds a rose.Request from the flags.  Values not
// set on the command line fall back to the service defaults.
func (f *inputFlags) request(cmd *cobra.Command, svc diagram.Service) (*rose.Request, error) {
	in := diagram.Input{Title: f.title, Palette: f.palette}

	if cmd.Flags().Changed("bin") {
		if err := rose.CheckBinWidth(f.bin); err != nil {
			return nil, err
		}
		in.BinWidth = f.bin
	}

	if f.csvPath != "" {
		file, err := os.Open(f.csvPath)
		if err != nil {
			return nil, errors.NewFormatError("unable to open CSV file").WithDetail(f.csvPath).WithCause(err)
		}
		defer file.Close()
		in.CSV = file
		return svc.BuildRequest(in)
	}

	if f.strikes == "" && f.dips == "" {
		return nil, errors.InvalidParam("provide --csv or both --strikes and --dips")
	}
	var err error
	if in.StrikeText, err = readValueArg(f.strikes); err != nil {
		return nil, err
	}
	if in.DipText, err = readValueArg(f.dips); err != nil {
		return nil, err
	}
	return svc.BuildRequest(in)
}

// readValueArg returns v, or the contents of the file it names when v
// starts with "@".
func readValueArg(v string) (string, error) {
	if !strings.HasPrefix(v, "@") {
		return v, nil
	}
	path := strings.TrimPrefix(v, "@")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewFormatError("unable to read values file").WithDetail(path).WithCause(err)
	}
	return string(data), nil
}

//Personal.AI order the ending

// Package diagram is the application layer of GeoRose.  It turns raw text,
// CLI flags or an uploaded table into a rose.Request and runs the generation
// pipeline: validate, aggregate, render and export.
package diagram

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/turtacn/GeoRose/pkg/errors"
)

// Column headers understood by ParseTable and written by the exporters.
const (
	PairColumn   = "Strike/Dip"
	StrikeColumn = "Strike"
	DipColumn    = "Dip"
)

const pairFormatMessage = "format must be Strike/Dip, e.g. 213/45"

var utf8BOM = []byte("\ufeff")

// ParseText reads numbers separated by commas and/or newlines.  Whitespace
// is dropped everywhere before splitting, so "1 0" reads as 10.  Blank input
// yields an empty slice.  The first token that is not a finite number is
// reported with its 1-based position among the non-empty tokens.
func ParseText(text string) ([]float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' {
			return ','
		}
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	out := make([]float64, 0)
	pos := 0
	for _, tok := range strings.Split(cleaned, ",") {
		if tok == "" {
			continue
		}
		pos++
		v, ok := coerce(tok)
		if !ok {
			return nil, errors.NewParseError(tok, pos)
		}
		out = append(out, v)
	}
	return out, nil
}

// coerce parses s as a finite float64.
func coerce(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTable reads a CSV upload with a header row.  The "Strike/Dip" column
// holds pairs like "213/45"; a table with separate "Strike" and "Dip"
// columns (the ExportCSV layout) is accepted too.  Rows whose values do not
// coerce to finite numbers are dropped.  A table without data rows yields
// empty slices and no error, leaving the sample count to the validator.
func ParseTable(r io.Reader) (strikes, dips []float64, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.NewFormatError("unable to read CSV").WithCause(err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, errors.NewFormatError("CSV file is empty")
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = sniffDelimiter(raw)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.NewFormatError("unable to read CSV").WithDetail(err.Error()).WithCause(err)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	rows := records[1:]

	if col := indexOf(header, PairColumn); col >= 0 {
		return parsePairs(rows, col)
	}
	si, di := indexOf(header, StrikeColumn), indexOf(header, DipColumn)
	if si >= 0 && di >= 0 {
		return parseColumns(rows, si, di)
	}
	return nil, nil, errors.NewFormatError("CSV must contain a 'Strike/Dip' column").
		WithDetail("found columns: " + strings.Join(header, ", "))
}

// sniffDelimiter picks ';' when the header line uses it and has no comma.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	if bytes.IndexByte(line, ';') >= 0 && bytes.IndexByte(line, ',') < 0 {
		return ';'
	}
	return ','
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// parsePairs splits every non-blank cell of column col on "/".  The widest
// split decides the shape: anything other than two parts is a format error.
func parsePairs(rows [][]string, col int) ([]float64, []float64, error) {
	parts := make([][]string, len(rows))
	width := 0
	for i, row := range rows {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		parts[i] = strings.Split(row[col], "/")
		if len(parts[i]) > width {
			width = len(parts[i])
		}
	}
	if width != 0 && width != 2 {
		return nil, nil, errors.NewFormatError(pairFormatMessage)
	}

	strikes := make([]float64, 0, len(rows))
	dips := make([]float64, 0, len(rows))
	for _, p := range parts {
		if len(p) != 2 {
			continue
		}
		s, okS := coerce(p[0])
		d, okD := coerce(p[1])
		if !okS || !okD {
			continue
		}
		strikes = append(strikes, s)
		dips = append(dips, d)
	}
	return strikes, dips, nil
}

func parseColumns(rows [][]string, si, di int) ([]float64, []float64, error) {
	strikes := make([]float64, 0, len(rows))
	dips := make([]float64, 0, len(rows))
	for _, row := range rows {
		if si >= len(row) || di >= len(row) {
			continue
		}
		s, okS := coerce(row[si])
		d, okD := coerce(row[di])
		if !okS || !okD {
			continue
		}
		strikes = append(strikes, s)
		dips = append(dips, d)
	}
	return strikes, dips, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportCSV writes the semicolon-delimited data export: a "Strike;Dip"
// header and one row per pair.  Pairs beyond the shorter slice are skipped.
func ExportCSV(w io.Writer, strikes, dips []float64) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{StrikeColumn, DipColumn}); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "write CSV header")
	}
	for i := 0; i < len(strikes) && i < len(dips); i++ {
		if err := cw.Write([]string{formatValue(strikes[i]), formatValue(dips[i])}); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "write CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "flush CSV")
	}
	return nil
}

// ExportTableCSV writes pairs in the upload layout, a single "Strike/Dip"
// column, so the output can be fed straight back into ParseTable.
func ExportTableCSV(w io.Writer, strikes, dips []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{PairColumn}); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "write CSV header")
	}
	for i := 0; i < len(strikes) && i < len(dips); i++ {
		if err := cw.Write([]string{formatValue(strikes[i]) + "/" + formatValue(dips[i])}); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "write CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "flush CSV")
	}
	return nil
}

//Personal.AI order the ending

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const apiPrefix = "/api/v1"

// DiagramRequest describes one rose diagram.  Either Strikes and Dips or
// CSV must be set; CSV wins when both are.
type DiagramRequest struct {
	Strikes []float64
	Dips    []float64

	// CSV is a table with a Strike/Dip column, uploaded as CSVName.
	CSV     []byte
	CSVName string

	Title    string
	BinWidth int // 0 uses the server default
	Palette  string
}

// Sector is one angular bin of the diagram.
type Sector struct {
	Index   int     `json:"index"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Center  float64 `json:"center"`
	Count   int     `json:"count"`
	MeanDip float64 `json:"mean_dip"`
}

// Summary describes one generation.
type Summary struct {
	Measurements   int     `json:"measurements"`
	Sectors        int     `json:"sectors"`
	TotalFolded    int     `json:"total_folded"`
	MaxCount       int     `json:"max_count"`
	DominantSector *Sector `json:"dominant_sector,omitempty"`
	MeanDip        float64 `json:"mean_dip"`
	LegendMin      float64 `json:"legend_min"`
	LegendMax      float64 `json:"legend_max"`
}

// Diagram is the answer of POST /api/v1/diagrams.
type Diagram struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Summary   Summary           `json:"summary"`
	Sectors   []Sector          `json:"sectors"`
	PNGBase64 string            `json:"png_base64"`
	CSV       string            `json:"csv"`
	PNGName   string            `json:"png_name"`
	CSVName   string            `json:"csv_name"`
	Cached    bool              `json:"cached"`
	Archive   map[string]string `json:"archive,omitempty"`
}

// PNG decodes the inline image.
func (d *Diagram) PNG() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.PNGBase64)
}

// SectorTable is the answer of POST /api/v1/sectors.
type SectorTable struct {
	Title     string   `json:"title"`
	BinWidth  int      `json:"bin_width"`
	Palette   string   `json:"palette"`
	Summary   Summary  `json:"summary"`
	Sectors   []Sector `json:"sectors"`
	LegendMin float64  `json:"legend_min"`
	LegendMax float64  `json:"legend_max"`
}

// File is a downloaded artifact.
type File struct {
	Name        string
	ContentType string
	DiagramID   string
	Data        []byte
}

// DiagramsClient calls the diagram endpoints.
type DiagramsClient struct {
	client *Client
}

// Generate renders a diagram and returns the summary, the sector table and
// both artifacts inline.
func (d *DiagramsClient) Generate(ctx context.Context, req *DiagramRequest) (*Diagram, error) {
	body, err := encodeDiagramRequest(req)
	if err != nil {
		return nil, err
	}
	var out Diagram
	if err := d.client.postJSON(ctx, apiPrefix+"/diagrams", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenderPNG downloads the figure.
func (d *DiagramsClient) RenderPNG(ctx context.Context, req *DiagramRequest) (*File, error) {
	return d.download(ctx, apiPrefix+"/diagrams/png", req)
}

// ExportCSV downloads the semicolon separated data export.
func (d *DiagramsClient) ExportCSV(ctx context.Context, req *DiagramRequest) (*File, error) {
	return d.download(ctx, apiPrefix+"/diagrams/csv", req)
}

// Sectors aggregates the measurements without rendering.
func (d *DiagramsClient) Sectors(ctx context.Context, req *DiagramRequest) (*SectorTable, error) {
	body, err := encodeDiagramRequest(req)
	if err != nil {
		return nil, err
	}
	var out SectorTable
	if err := d.client.postJSON(ctx, apiPrefix+"/sectors", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Palettes lists the palette names the server accepts.
func (d *DiagramsClient) Palettes(ctx context.Context) ([]string, error) {
	var out struct {
		Palettes []string `json:"palettes"`
	}
	if err := d.client.getJSON(ctx, apiPrefix+"/palettes", &out); err != nil {
		return nil, err
	}
	return out.Palettes, nil
}

func (d *DiagramsClient) download(ctx context.Context, path string, req *DiagramRequest) (*File, error) {
	body, err := encodeDiagramRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	f := &File{
		ContentType: resp.header.Get("Content-Type"),
		DiagramID:   resp.header.Get("X-Diagram-ID"),
		Data:        resp.body,
	}
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil {
		f.Name = params["filename"]
	}
	return f, nil
}

// encodeDiagramRequest builds an urlencoded body, or a multipart one when a
// CSV table is attached.
func encodeDiagramRequest(req *DiagramRequest) (*requestBody, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil diagram request", ErrInvalidConfig)
	}
	fields := url.Values{}
	if req.Title != "" {
		fields.Set("title", req.Title)
	}
	if req.BinWidth != 0 {
		fields.Set("bin_width", strconv.Itoa(req.BinWidth))
	}
	if req.Palette != "" {
		fields.Set("palette", req.Palette)
	}

	if len(req.CSV) == 0 {
		fields.Set("strikes", joinFloats(req.Strikes))
		fields.Set("dips", joinFloats(req.Dips))
		return &requestBody{
			contentType: "application/x-www-form-urlencoded",
			data:        []byte(fields.Encode()),
		}, nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range fields {
		if err := mw.WriteField(key, vals[0]); err != nil {
			return nil, err
		}
	}
	name := req.CSVName
	if name == "" {
		name = "measurements.csv"
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewReader(req.CSV)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &requestBody{contentType: mw.FormDataContentType(), data: buf.Bytes()}, nil
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

//Personal.AI order the ending

package handlers

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRose/internal/application/diagram"
	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// Form fields accepted by every diagram endpoint, urlencoded or multipart.
const (
	FieldStrikes  = "strikes"
	FieldDips     = "dips"
	FieldFile     = "file"
	FieldTitle    = "title"
	FieldBinWidth = "bin_width"
	FieldPalette  = "palette"
)

const maxFormMemory = 32 << 20

// DiagramHandler handles the rose diagram endpoints.
type DiagramHandler struct {
	svc    diagram.Service
	logger logging.Logger
}

// NewDiagramHandler creates a new DiagramHandler.
func NewDiagramHandler(svc diagram.Service, logger logging.Logger) *DiagramHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &DiagramHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the diagram endpoints on rg.
func (h *DiagramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/diagrams", h.Generate)
	rg.POST("/diagrams/png", h.GeneratePNG)
	rg.POST("/diagrams/csv", h.ExportCSV)
	rg.POST("/sectors", h.Sectors)
	rg.GET("/palettes", h.Palettes)
}

// GenerateResponse is the body of POST /api/v1/diagrams.
type GenerateResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Summary   rose.Summary      `json:"summary"`
	Sectors   []rose.Sector     `json:"sectors"`
	PNGBase64 string            `json:"png_base64"`
	CSV       string            `json:"csv"`
	PNGName   string            `json:"png_name"`
	CSVName   string            `json:"csv_name"`
	Cached    bool              `json:"cached"`
	Archive   map[string]string `json:"archive,omitempty"`
}

// SectorsResponse is the body of POST /api/v1/sectors.
type SectorsResponse struct {
	Title     string           `json:"title"`
	BinWidth  int              `json:"bin_width"`
	Palette   rose.PaletteName `json:"palette"`
	Summary   rose.Summary     `json:"summary"`
	Sectors   []rose.Sector    `json:"sectors"`
	LegendMin float64          `json:"legend_min"`
	LegendMax float64          `json:"legend_max"`
}

// PalettesResponse is the body of GET /api/v1/palettes.
type PalettesResponse struct {
	Palettes []string `json:"palettes"`
}

// bindRequest reads the form fields and the optional uploaded table.
func (h *DiagramHandler) bindRequest(c *gin.Context) (*rose.Request, error) {
	if err := parseForm(c.Request); err != nil {
		return nil, errors.New(errors.ErrCodeBadRequest, "unable to read form").WithDetail(err.Error()).WithCause(err)
	}
	in := diagram.Input{
		StrikeText: c.PostForm(FieldStrikes),
		DipText:    c.PostForm(FieldDips),
		Title:      c.PostForm(FieldTitle),
		Palette:    c.PostForm(FieldPalette),
	}
	if raw := strings.TrimSpace(c.PostForm(FieldBinWidth)); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New(errors.ErrCodeBinWidthInvalid, "bin width must be an integer").WithDetail(raw)
		}
		if err := rose.CheckBinWidth(w); err != nil {
			return nil, err
		}
		in.BinWidth = w
	}

	if fh, err := c.FormFile(FieldFile); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, errors.NewFormatError("unable to open uploaded file").WithCause(err)
		}
		defer f.Close()
		in.CSV = f
	}
	return h.svc.BuildRequest(in)
}

// parseForm parses urlencoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err == nil || err == http.ErrNotMultipart {
		return nil
	}
	return err
}

func (h *DiagramHandler) generate(c *gin.Context) (*diagram.Result, bool) {
	req, err := h.bindRequest(c)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return res, true
}

// Generate handles POST /api/v1/diagrams and returns the summary, sector
// table and both artifacts inline.
func (h *DiagramHandler) Generate(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{
		ID:        res.ID,
		Title:     res.Diagram.DisplayTitle(),
		Summary:   res.Summary,
		Sectors:   res.Diagram.Sectors,
		PNGBase64: base64.StdEncoding.EncodeToString(res.PNG),
		CSV:       string(res.CSV),
		PNGName:   res.PNGName,
		CSVName:   res.CSVName,
		Cached:    res.Cached,
		Archive:   res.ArchiveURLs,
	})
}

// GeneratePNG handles POST /api/v1/diagrams/png as a file download.
func (h *DiagramHandler) GeneratePNG(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", attachment(res.PNGName))
	c.Header("X-Diagram-ID", res.ID)
	c.Data(http.StatusOK, "image/png", res.PNG)
}

// ExportCSV handles POST /api/v1/diagrams/csv.  The data is validated but
// no image is rendered.  ?layout=table returns the upload layout, a single
// Strike/Dip column, instead of the semicolon export.
func (h *DiagramHandler) ExportCSV(c *gin.Context) {
	req, err := h.bindRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := rose.ValidateRequest(req); err != nil {
		h.fail(c, err)
		return
	}
	export := diagram.ExportCSV
	if c.Query("layout") == "table" {
		export = diagram.ExportTableCSV
	}
	var buf bytes.Buffer
	if err := export(&buf, req.Strikes, req.Dips); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", attachment(diagram.FileBase(req.Title)+"_data.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Sectors handles POST /api/v1/sectors and returns the sector table only.
func (h *DiagramHandler) Sectors(c *gin.Context) {
	req, err := h.bindRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	d, sum, err := h.svc.Sectors(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SectorsResponse{
		Title:     d.DisplayTitle(),
		BinWidth:  d.BinWidth,
		Palette:   d.Palette,
		Summary:   sum,
		Sectors:   d.Sectors,
		LegendMin: d.LegendMin,
		LegendMax: d.LegendMax,
	})
}

// Palettes handles GET /api/v1/palettes.
func (h *DiagramHandler) Palettes(c *gin.Context) {
	c.JSON(http.StatusOK, PalettesResponse{Palettes: h.svc.Palettes()})
}

func (h *DiagramHandler) fail(c *gin.Context, err error) {
	h.logger.Debug("diagram request failed",
		logging.String("path", c.FullPath()),
		logging.String("code", errors.GetCode(err).String()),
		logging.Err(err),
	)
	writeAppError(c, err)
}

func attachment(filename string) string {
	return `attachment; filename="` + strings.ReplaceAll(filename, `"`, "") + `"`
}

//Personal.AI order the ending

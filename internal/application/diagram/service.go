package diagram

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/GeoRose/internal/domain/rose"
	"github.com/turtacn/GeoRose/internal/infrastructure/database/redis"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/prometheus"
	storageminio "github.com/turtacn/GeoRose/internal/infrastructure/storage/minio"
	"github.com/turtacn/GeoRose/pkg/errors"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Input is raw, unparsed user input from a form, the CLI or an upload.
// When CSV is set it wins over the text fields.  Zero values fall back to
// the service defaults.
type Input struct {
	StrikeText string
	DipText    string
	CSV        io.Reader
	Title      string
	BinWidth   int
	Palette    string
}

// Result is the output of one generation.
type Result struct {
	ID          string            `json:"id"`
	Diagram     *rose.Diagram     `json:"diagram"`
	Summary     rose.Summary      `json:"summary"`
	PNG         []byte            `json:"-"`
	CSV         []byte            `json:"-"`
	PNGName     string            `json:"png_name"`
	CSVName     string            `json:"csv_name"`
	Cached      bool              `json:"cached"`
	ArchiveURLs map[string]string `json:"archive,omitempty"`
}

// Defaults fill the blanks of an Input.
type Defaults struct {
	Title    string
	BinWidth int
	Palette  string
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// Renderer draws a diagram as PNG.  PixelSize is part of the render cache key.
type Renderer interface {
	RenderPNG(d *rose.Diagram) ([]byte, error)
	PixelSize() (w, h int)
}

// Metrics records generation outcomes.  *prometheus.RoseMetrics satisfies it.
type Metrics interface {
	ObserveGeneration(outcome string, d time.Duration, samples int)
	ObserveCache(hit bool)
}

// Option configures the optional collaborators of the service.
type Option func(*serviceImpl)

// WithRenderCache stores rendered PNGs in Redis.
func WithRenderCache(c redis.RenderCache) Option {
	return func(s *serviceImpl) { s.cache = c }
}

// WithArchive uploads every generated PNG and CSV to object storage.
func WithArchive(a storageminio.DiagramArchive) Option {
	return func(s *serviceImpl) { s.archive = a }
}

// WithEventPublisher announces every successful generation.
func WithEventPublisher(p rose.EventPublisher) Option {
	return func(s *serviceImpl) { s.events = p }
}

func WithMetrics(m Metrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithDefaults overrides the built-in title, bin width and palette defaults.
// Blank fields keep the built-in value.
func WithDefaults(d Defaults) Option {
	return func(s *serviceImpl) {
		if strings.TrimSpace(d.Title) != "" {
			s.defaults.Title = d.Title
		}
		if d.BinWidth != 0 {
			s.defaults.BinWidth = d.BinWidth
		}
		if strings.TrimSpace(d.Palette) != "" {
			s.defaults.Palette = d.Palette
		}
	}
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the diagram application service.
type Service interface {
	// BuildRequest parses raw input into a request.  Every parse problem of
	// the text fields is reported in one error.
	BuildRequest(in Input) (*rose.Request, error)

	// Generate validates, aggregates, renders and exports req.
	Generate(ctx context.Context, req *rose.Request) (*Result, error)

	// Sectors validates and aggregates req without rendering.
	Sectors(ctx context.Context, req *rose.Request) (*rose.Diagram, rose.Summary, error)

	Palettes() []string
}

type serviceImpl struct {
	renderer Renderer
	logger   logging.Logger
	defaults Defaults

	cache   redis.RenderCache
	archive storageminio.DiagramArchive
	events  rose.EventPublisher
	metrics Metrics
}

// NewService creates the diagram service.  Cache, archive, events and
// metrics are disabled unless enabled through an Option; their failures are
// logged and never change the result.
func NewService(renderer Renderer, logger logging.Logger, opts ...Option) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &serviceImpl{
		renderer: renderer,
		logger:   logger,
		defaults: Defaults{
			Title:    rose.DefaultTitle,
			BinWidth: rose.DefaultBinWidth,
			Palette:  rose.DefaultPalette.String(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) Palettes() []string {
	return rose.PaletteStrings()
}

func (s *serviceImpl) BuildRequest(in Input) (*rose.Request, error) {
	var strikes, dips []float64
	if in.CSV != nil {
		var err error
		strikes, dips, err = ParseTable(in.CSV)
		if err != nil {
			return nil, err
		}
	} else {
		var strikeErr, dipErr error
		strikes, strikeErr = ParseText(in.StrikeText)
		dips, dipErr = ParseText(in.DipText)
		if strikeErr != nil || dipErr != nil {
			// Count rules still apply to a field that parsed.  A field
			// that failed has no length, so there is no mismatch check.
			msgs := fieldMessages("strike", strikes, strikeErr)
			msgs = append(msgs, fieldMessages("dip", dips, dipErr)...)
			ae := errors.New(errors.ErrCodeParse, msgs[0])
			ae.Details = msgs
			return nil, ae
		}
	}

	binWidth := in.BinWidth
	if binWidth == 0 {
		binWidth = s.defaults.BinWidth
	}
	paletteName := in.Palette
	if strings.TrimSpace(paletteName) == "" {
		paletteName = s.defaults.Palette
	}
	palette, err := rose.ParsePalette(paletteName)
	if err != nil {
		return nil, err
	}
	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = s.defaults.Title
	}
	return rose.NewRequest(strikes, dips, binWidth, palette, title)
}

func fieldMessages(name string, values []float64, parseErr error) []string {
	if parseErr != nil {
		return []string{name + " data: " + errors.MessagesOf(parseErr)[0]}
	}
	return rose.ValidateSeries(name, values)
}

func (s *serviceImpl) Sectors(ctx context.Context, req *rose.Request) (*rose.Diagram, rose.Summary, error) {
	if req == nil {
		return nil, rose.Summary{}, errors.InvalidParam("request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, rose.Summary{}, errors.Wrap(err, errors.ErrCodeTimeout, "request cancelled")
	}
	if err := rose.ValidateRequest(req); err != nil {
		return nil, rose.Summary{}, err
	}
	sectors, err := rose.Aggregate(req.Strikes, req.Dips, req.BinWidth)
	if err != nil {
		return nil, rose.Summary{}, err
	}
	return rose.NewDiagram(req, sectors), rose.Summarize(req, sectors), nil
}

func (s *serviceImpl) Generate(ctx context.Context, req *rose.Request) (*Result, error) {
	start := time.Now()
	samples := 0
	if req != nil {
		samples = len(req.Strikes)
	}

	d, sum, err := s.Sectors(ctx, req)
	if err != nil {
		s.observe(outcomeFor(err), start, samples)
		s.logger.Warn("diagram request rejected", logging.Strings("messages", errors.MessagesOf(err)))
		return nil, err
	}

	png, cached, err := s.renderPNG(ctx, req, d)
	if err != nil {
		s.observe(prometheus.OutcomeError, start, samples)
		s.logger.Error("diagram rendering failed", logging.Err(err), logging.String("title", req.Title))
		return nil, err
	}

	var csvBuf bytes.Buffer
	if err := ExportCSV(&csvBuf, req.Strikes, req.Dips); err != nil {
		s.observe(prometheus.OutcomeError, start, samples)
		return nil, err
	}

	base := FileBase(req.Title)
	res := &Result{
		ID:      uuid.New().String(),
		Diagram: d,
		Summary: sum,
		PNG:     png,
		CSV:     csvBuf.Bytes(),
		PNGName: base + ".png",
		CSVName: base + "_data.csv",
		Cached:  cached,
	}
	res.ArchiveURLs = s.archiveResult(ctx, req, res)
	s.publish(ctx, res)

	s.observe(prometheus.OutcomeSuccess, start, samples)
	s.logger.Info("diagram generated",
		logging.String("id", res.ID),
		logging.String("title", req.Title),
		logging.Int("measurements", sum.Measurements),
		logging.Int("bin_width", req.BinWidth),
		logging.String("palette", req.Palette.String()),
		logging.Float64("legend_max", d.LegendMax),
		logging.Bool("cached", cached),
		logging.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (s *serviceImpl) renderPNG(ctx context.Context, req *rose.Request, d *rose.Diagram) ([]byte, bool, error) {
	render := func(context.Context) ([]byte, error) {
		return s.renderer.RenderPNG(d)
	}
	if s.cache == nil {
		png, err := render(ctx)
		return png, false, err
	}
	w, h := s.renderer.PixelSize()
	png, hit, err := s.cache.GetOrRender(ctx, CacheKey(req, w, h), render)
	if err == nil && s.metrics != nil {
		s.metrics.ObserveCache(hit)
	}
	return png, hit, err
}

func (s *serviceImpl) archiveResult(ctx context.Context, req *rose.Request, res *Result) map[string]string {
	if s.archive == nil {
		return nil
	}
	artifacts := []storageminio.Artifact{
		{Name: res.PNGName, ContentType: "image/png", Data: res.PNG},
		{Name: res.CSVName, ContentType: "text/csv", Data: res.CSV},
	}
	tags := map[string]string{
		"title":     req.Title,
		"palette":   req.Palette.String(),
		"bin_width": fmt.Sprintf("%d", req.BinWidth),
	}
	objects, err := s.archive.Archive(ctx, res.ID, artifacts, tags)
	if err != nil {
		s.logger.Warn("diagram archive failed", logging.Err(err), logging.String("id", res.ID))
		return nil
	}
	urls := make(map[string]string, len(objects))
	for _, o := range objects {
		urls[o.Name] = o.URL
	}
	return urls
}

func (s *serviceImpl) publish(ctx context.Context, res *Result) {
	if s.events == nil {
		return
	}
	ev := rose.NewDiagramGeneratedEvent(res.ID, res.Diagram, res.Summary, res.Cached, res.ArchiveURLs)
	if err := s.events.PublishDiagramGenerated(ctx, ev); err != nil {
		s.logger.Warn("diagram event publish failed", logging.Err(err), logging.String("id", res.ID))
	}
}

func (s *serviceImpl) observe(outcome string, start time.Time, samples int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveGeneration(outcome, time.Since(start), samples)
}

func outcomeFor(err error) string {
	if errors.IsValidation(err) {
		return prometheus.OutcomeInvalid
	}
	return prometheus.OutcomeError
}

// FileBase turns a title into a file name stem: spaces become underscores
// and path separators are removed.
func FileBase(title string) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ' ':
			return '_'
		case '/', '\\':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	base = strings.Trim(base, ".")
	if base == "" {
		base = strings.ReplaceAll(rose.DefaultTitle, " ", "_")
	}
	return base
}

// CacheKey is the SHA-256 of the canonical form of a render: every
// measurement, the bin width, palette, title and the output pixel size.
func CacheKey(req *rose.Request, w, h int) string {
	sum := sha256.New()
	fmt.Fprintf(sum, "v1|%d|%s|%q|%dx%d|", req.BinWidth, req.Palette, req.Title, w, h)
	for _, v := range req.Strikes {
		sum.Write([]byte(formatValue(v)))
		sum.Write([]byte{','})
	}
	sum.Write([]byte{'|'})
	for _, v := range req.Dips {
		sum.Write([]byte(formatValue(v)))
		sum.Write([]byte{','})
	}
	return hex.EncodeToString(sum.Sum(nil))
}

//Personal.AI order the ending

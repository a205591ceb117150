package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
)

// NowFunc is mockable in tests.
var NowFunc = time.Now

type (
	// Renderer encodes a paginated Document into one output format.
	Renderer interface {
		Format() Format
		ContentType() string
		Render(w io.Writer, doc *Document) error
	}

	// AssetLoader resolves the header logo. A nil Logo with a nil error means no logo is configured.
	AssetLoader interface {
		LoadLogo(ctx context.Context) (*Logo, error)
	}

	Result struct {
		Title       string
		Content     []byte
		FileName    string
		ContentType string
		Pages       int
		Warnings    []Warning
	}

	Service struct {
		conf      *core.Config
		repo      calendar.Repository
		assets    AssetLoader
		builder   *Builder
		renderers map[Format]Renderer
		log       core.Logger
		palette   Palette
	}
)

// NewService wires the report engine. assets may be nil for text-only headers.
func NewService(
	conf *core.Config,
	repo calendar.Repository,
	assets AssetLoader,
	measurer Measurer,
	log core.Logger,
	renderers ...Renderer,
) (*Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(conf, "conf"),
		isSet(repo, "repo"),
		isSet(measurer, "measurer"),
		isSet(log, "log"),
		vala.GreaterThan(len(renderers), 0, "renderers"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "creating report service")
	}

	svc := &Service{
		conf:      conf,
		repo:      repo,
		assets:    assets,
		builder:   NewBuilder(GeometryFromConfig(conf.Report), measurer),
		renderers: make(map[Format]Renderer, len(renderers)),
		log:       log,
		palette:   DefaultPalette,
	}
	for _, r := range renderers {
		svc.renderers[r.Format()] = r
	}
	return svc, nil
}

// isSet fails when param is a nil interface. Unlike vala.IsNotNil it accepts implementations
// of any kind, such as FixedMeasurer.
func isSet(param interface{}, paramName string) vala.Checker {
	return func() (bool, string) {
		return param != nil, "Parameter was nil: " + paramName
	}
}

// Generate builds the report selected by req on behalf of user. An invalid date range fails with
// an *InvalidRangeError before any data is read; nothing is returned unless the whole document was rendered.
func (svc *Service) Generate(ctx context.Context, req Request, user calendar.Identity) (Result, error) {
	rng, err := ParseDateRange(req.From, req.To)
	if err != nil {
		return Result{}, err
	}
	q, err := req.parse()
	if err != nil {
		return Result{}, err
	}
	renderer, ok := svc.renderers[q.format]
	if !ok {
		return Result{}, core.NewValidationError(nil, core.FieldError{
			Field: "format",
			Error: fmt.Sprintf("format %q is not available", q.format),
		})
	}

	var warnings []Warning
	logo, err := svc.loadLogo(ctx)
	if err != nil {
		w := Warning{Kind: AssetLoadWarning, Detail: err.Error()}
		svc.log.Warn(w.String())
		warnings = append(warnings, w)
	}

	data, err := svc.fetch(ctx, q, rng)
	if err != nil {
		return Result{}, err
	}

	entries, malformed := Assemble(q.source, q.section, q.nivel, data)
	for _, w := range malformed {
		svc.log.Warn(w.String())
	}
	warnings = append(warnings, malformed...)

	doc := &Document{
		Title:    svc.title(q),
		Subtitle: svc.subtitle(q, rng),
		Footer:   svc.footer(user),
		Logo:     logo,
		Geometry: svc.builder.Geometry(),
		Palette:  svc.palette,
		Pages:    svc.builder.Paginate(svc.builder.Measure(entries)),
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return Result{}, errors.Wrapf(err, "rendering %s report", q.format)
	}

	res := Result{
		Title:       doc.Title,
		Content:     buf.Bytes(),
		FileName:    FileName(q.source, q.section, rng, q.format),
		ContentType: renderer.ContentType(),
		Pages:       len(doc.Pages),
		Warnings:    warnings,
	}
	svc.log.Info(fmt.Sprintf(
		"report %s generated for %s: %d page(s), %s",
		res.FileName, user.DisplayName(), res.Pages, humanize.Bytes(uint64(len(res.Content))),
	))
	return res, nil
}

// loadLogo resolves the logo once, before layout starts.
func (svc *Service) loadLogo(ctx context.Context) (*Logo, error) {
	if svc.assets == nil {
		return nil, nil
	}
	logo, err := svc.assets.LoadLogo(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading header logo")
	}
	return logo, nil
}

func (svc *Service) fetch(ctx context.Context, q query, rng DateRange) (Dataset, error) {
	var data Dataset
	if q.source.includesActivities() {
		acts, err := svc.repo.FetchActivities(ctx, rng.FromKey(), rng.ToKey(), q.section)
		if err != nil {
			return Dataset{}, errors.Wrap(err, "fetching activities")
		}
		data.Activities = FilterDateRange(acts, rng)
	}
	if q.source.includesEvaluations() {
		evals, err := svc.repo.FetchEvaluations(ctx, rng.FromKey(), rng.ToKey(), q.section)
		if err != nil {
			return Dataset{}, errors.Wrap(err, "fetching evaluations")
		}
		data.Evaluations = FilterDateRange(evals, rng)
	}
	return data, nil
}

func (svc *Service) title(q query) string {
	return fmt.Sprintf("%s %d - Reporte de %s", svc.conf.AppName, svc.conf.Report.SchoolYear, q.source.title())
}

func (svc *Service) subtitle(q query, rng DateRange) string {
	section := q.section.DisplayName()
	if q.nivel != AllLevels {
		section += " (" + calendar.CourseCode{Section: q.section, Level: q.nivel}.LevelLabel() + ")"
	}
	return fmt.Sprintf("Sección: %s | Período: %s - %s", section, LongDate(rng.From), LongDate(rng.To))
}

func (svc *Service) footer(user calendar.Identity) string {
	return fmt.Sprintf(
		"Generado el %s por %s | %s Web - %s",
		NowFunc().Format("02-01-2006 15:04"), user.DisplayName(), svc.conf.AppName, svc.conf.SchoolName,
	)
}

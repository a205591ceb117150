package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
	"github.com/redland/registro/core/report"
)

type (
	// ReportGenerator builds report artifacts; implemented by *report.Service.
	ReportGenerator interface {
		Generate(ctx context.Context, req report.Request, user calendar.Identity) (report.Result, error)
	}

	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool
		ReportSvc      ReportGenerator
		MailSvc        core.EmailService
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts       *Options
		app        *echo.Echo
		validate   *validator.Validate
		translator ut.Translator
		jwt        *jwtAuth
	}
)

var _ Server = (*server)(nil)

// NewServer sets up the API. signalShutdown is called when a handler fails with a core shutdown error.
func NewServer(opts *Options, signalShutdown func()) Server {
	s := &server{
		opts:       opts,
		app:        echo.New(),
		validate:   validator.New(),
		translator: core.NewTranslator(),
		jwt:        newJWTAuth(opts.Conf),
	}
	core.InitValidators(s.validate, s.translator)
	report.RegisterValidators(s.validate, s.translator)
	s.setup(signalShutdown)
	return s
}

func (s *server) setup(signalShutdown func()) {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if conf.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.translator, s.jwt, signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerReportAPI(v1, s.jwt.middleware(), &reportApi{
		conf:     conf,
		svc:      s.opts.ReportSvc,
		mailSvc:  s.opts.MailSvc,
		validate: s.validate,
		jwt:      s.jwt,
	})
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.Conf.AppName+" API!")
}

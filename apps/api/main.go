package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/redland/registro/apps/api/echo"
	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
	"github.com/redland/registro/core/report"
	"github.com/redland/registro/services/asset"
	"github.com/redland/registro/services/email"
	"github.com/redland/registro/services/logger"
	"github.com/redland/registro/services/render"
	"github.com/redland/registro/storage/database"
	"github.com/redland/registro/storage/database/inmem"
	"github.com/redland/registro/storage/database/sqlx"
)

// memoryEngine keeps the calendar in memory instead of Postgres. For local development.
const memoryEngine = "memory"

func main() {
	if err := run(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	repo, closeDB, err := setUpRepository(conf)
	if err != nil {
		return errors.Wrap(err, "setting up database")
	}
	defer closeDB()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	measurer, err := render.NewFontMeasurer(report.GeometryFromConfig(conf.Report))
	if err != nil {
		return errors.Wrap(err, "loading font metrics")
	}
	reportSvc, err := report.NewService(
		conf,
		repo,
		asset.NewLogoLoader(conf.Report),
		measurer,
		logger,
		render.NewHTML(),
		render.NewPDF(),
	)
	if err != nil {
		return err
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Conf:      conf,
			Logger:    logger,
			ReportSvc: reportSvc,
			MailSvc:   mailSvc,
		},
		func() { shutdown <- syscall.SIGTERM },
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}

func setUpRepository(conf *core.Config) (calendar.Repository, func(), error) {
	if conf.Database.Engine == memoryEngine {
		return inmemdb.NewCalendarRepository(inmemdb.Open()), func() {}, nil
	}

	db, err := database.Open(context.Background(), conf.Database)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxrepos.NewCalendarRepository(db), func() { _ = db.Close() }, nil
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/redland/registro/core/calendar"
	"github.com/redland/registro/core/report"
	"github.com/redland/registro/services/asset"
	"github.com/redland/registro/services/render"
	"github.com/redland/registro/storage/database/inmem"
)

// cliUser signs the footer of reports generated from the command line.
var cliUser = calendar.Identity{ID: "admin", Name: "Administrador", Role: "admin"}

type reportArgs struct {
	source, section, nivel string
	from, to               string
	format                 string
	data                   string
	out                    string
}

func (cli *commandLine) report(args reportArgs) error {
	ctx := context.Background()

	var repo calendar.Repository = cli.store
	if args.data != "" {
		store := inmemdb.NewCalendarRepository(inmemdb.Open())
		if _, _, err := loadData(ctx, store, args.data); err != nil {
			return err
		}
		repo = store
	}
	if repo == nil {
		return errNoDB
	}
	if args.out == "" && args.format != string(report.FormatHTML) && isTerminalFunc(cli.stdout) {
		return errTerminal
	}

	measurer, err := render.NewFontMeasurer(report.GeometryFromConfig(cli.conf.Report))
	if err != nil {
		return errors.Wrap(err, "loading font metrics")
	}
	svc, err := report.NewService(cli.conf, repo, asset.NewLogoLoader(cli.conf.Report), measurer, cli.logger, render.NewHTML(), render.NewPDF())
	if err != nil {
		return err
	}

	res, err := svc.Generate(ctx, report.Request{
		Source:  args.source,
		Section: args.section,
		Nivel:   args.nivel,
		From:    args.from,
		To:      args.to,
		Format:  args.format,
	}, cliUser)
	if err != nil {
		return err
	}

	if args.out == "" {
		_, err = bytes.NewReader(res.Content).WriteTo(cli.stdout)
		return errors.Wrap(err, "writing report")
	}
	path := filepath.Join(args.out, res.FileName)
	if err := os.WriteFile(path, res.Content, 0o644); err != nil {
		return errors.Wrap(err, "writing report")
	}
	_, _ = fmt.Fprintf(cli.stdout, "%s (%d page(s), %s)\n", path, res.Pages, humanize.Bytes(uint64(len(res.Content))))
	return nil
}

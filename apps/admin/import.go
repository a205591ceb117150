package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/redland/registro/core/calendar"
)

// importData loads a calendar JSON export into the database.
func (cli *commandLine) importData(path string) error {
	if cli.store == nil {
		return errNoDB
	}
	nActs, nEvals, err := loadData(context.Background(), cli.store, path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.stdout, "imported %d activities and %d evaluations\n", nActs, nEvals)
	return nil
}

// loadData reads a `{"activities": {...}, "evaluations": {...}}` export into store.
func loadData(ctx context.Context, store calendar.Store, path string) (nActs, nEvals int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, errors.Wrap(err, "reading data")
	}
	acts, err := calendar.DecodeActivities(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, err
	}
	evals, err := calendar.DecodeEvaluations(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, err
	}

	if nActs, err = store.ImportActivities(ctx, acts); err != nil {
		return 0, 0, errors.Wrap(err, "importing activities")
	}
	if nEvals, err = store.ImportEvaluations(ctx, evals); err != nil {
		return 0, 0, errors.Wrap(err, "importing evaluations")
	}
	return nActs, nEvals, nil
}

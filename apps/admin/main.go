package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/redland/registro/core"
	"github.com/redland/registro/services/logger"
	"github.com/redland/registro/storage/database"
	"github.com/redland/registro/storage/database/inmem"
	"github.com/redland/registro/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	cli := commandLine{
		conf:   conf,
		logger: logsvc.NewRollbarLogger(logger, conf),
		stdout: os.Stdout,
	}

	// set up DB
	if conf.Database.Engine == "memory" {
		cli.store = inmemdb.NewCalendarRepository(inmemdb.Open())
	} else if needsDB(os.Args) {
		db, err := database.Open(context.Background(), conf.Database)
		errAndDie(err)
		defer db.Close()
		cli.db = db.DB
		cli.store = sqlxrepos.NewCalendarRepository(db)
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

// needsDB reports whether the command reads or writes the database.
func needsDB(args []string) bool {
	if len(args) < 2 {
		return false
	}
	switch args[1] {
	case "migrate", "import":
		return true
	case "report":
		for _, a := range args[2:] {
			if a = strings.TrimLeft(a, "-"); a == "data" || strings.HasPrefix(a, "data=") {
				return false
			}
		}
		return true
	}
	return false
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

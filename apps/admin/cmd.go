package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
)

var (
	isTerminalFunc = func(w io.Writer) bool { // mockable
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}

	errHelp     = errors.New("help provided")
	errNoDB     = errors.New("no database configured")
	errTerminal = errors.New("refusing to write a PDF to a terminal; use -out DIR or redirect the output")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	db     *sql.DB        // nil with the in-memory engine
	store  calendar.Store // data of `report` when no -data file is given
	stdout io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  report -source activities|evaluations|both -from YYYY-MM-DD -to YYYY-MM-DD [-section ALL|Junior|Middle|Senior] [-nivel ALL|5..8|I..IV] [-format pdf|html] [-data FILE] [-out DIR]")
	fmt.Println("  import -data FILE - load a calendar JSON export into the database")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, version, ...)")
	fmt.Println("  token -id ID -name NAME -email EMAIL [-role ROLE] - print an API token")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportSource := reportCmd.String("source", "", "activities, evaluations or both")
	reportSection := reportCmd.String("section", "ALL", "ALL, Junior, Middle or Senior")
	reportNivel := reportCmd.String("nivel", "ALL", "ALL or a year level of the section")
	reportFrom := reportCmd.String("from", "", "first day, YYYY-MM-DD")
	reportTo := reportCmd.String("to", "", "last day, YYYY-MM-DD")
	reportFormat := reportCmd.String("format", "pdf", "pdf or html")
	reportData := reportCmd.String("data", "", "calendar JSON export to report on instead of the database")
	reportOut := reportCmd.String("out", "", "directory to write the report to; stdout if empty")

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importData := importCmd.String("data", "", "calendar JSON export")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenID := tokenCmd.String("id", "", "user ID")
	tokenName := tokenCmd.String("name", "", "user display name")
	tokenEmail := tokenCmd.String("email", "", "user email")
	tokenRole := tokenCmd.String("role", "teacher", "user role")

	switch args[1] {
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *reportSource == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(reportArgs{
			source:  *reportSource,
			section: *reportSection,
			nivel:   *reportNivel,
			from:    *reportFrom,
			to:      *reportTo,
			format:  *reportFormat,
			data:    *reportData,
			out:     *reportOut,
		})
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importData == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importData(*importData)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenID == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(calendar.Identity{ID: *tokenID, Name: *tokenName, Email: *tokenEmail, Role: *tokenRole})
	default:
		cli.printUsage()
		return errHelp
	}
}

package main

import (
	"fmt"

	"github.com/redland/registro/apps/api/echo"
	"github.com/redland/registro/core/calendar"
)

// token prints a signed API token for usr. For development and scripting.
func (cli *commandLine) token(usr calendar.Identity) error {
	token, err := echoapi.GenerateToken(cli.conf, echoapi.NewClaims(usr, cli.conf.AppName))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.stdout, token)
	return err
}

package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf     *core.Config
	db       *sql.DB
	prefRepo dashboard.PreferenceRepository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the database (and app user) if they do not exist")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  resetprefs -user USER_ID - reset a user's dashboard preferences to defaults")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPrefsCmd := flag.NewFlagSet("resetprefs", flag.ExitOnError)
	resetPrefsUser := resetPrefsCmd.String("user", "", "The dashboard user's ID.")

	switch args[1] {
	case "createdb":
		return cli.createDB()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "resetprefs":
		if err := resetPrefsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPrefsUser == "" {
			resetPrefsCmd.Usage()
			return errHelp
		}
		return cli.resetPrefs(*resetPrefsUser)
	default:
		cli.printUsage()
		return errHelp
	}
}

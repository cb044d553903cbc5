package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/mckinnonberry/familyqa/core/person"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sql.DB
	personSvc *person.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  setpin -person PERSON      - set a person's PIN (prompted next)")
	fmt.Println("  migrate COMMAND [args]     - run a goose migration command")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setPinCmd := flag.NewFlagSet("setpin", flag.ExitOnError)
	setPinPerson := setPinCmd.String("person", "", "The person's id. The PIN will be prompted next.")

	switch args[1] {
	case "setpin":
		if err := setPinCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setPinPerson == "" {
			setPinCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter PIN:")
		pin, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pin) == 0 {
			setPinCmd.Usage()
			return errHelp
		}
		return cli.setPin(*setPinPerson, string(pin))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

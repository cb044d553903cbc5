package main

import (
	"context"

	"github.com/mckinnonberry/familyqa/core/person"
)

func (cli *commandLine) setPin(personID, pin string) error {
	rp := person.ResetPin{Pin: pin}
	if err := rp.Validate(); err != nil {
		return err
	}
	return cli.personSvc.Reset(context.Background(), personID, rp.Pin)
}

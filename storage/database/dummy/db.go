package dummydb

import (
	"sync"

	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
	"github.com/mckinnonberry/familyqa/core/request"
	"github.com/mckinnonberry/familyqa/core/settings"
)

type (
	DB struct {
		pin      *pinTable
		question *questionTable
		settings *settingsTable
		request  *requestTable
	}

	pinTable struct {
		sync.RWMutex
		table map[string]*person.Pin
	}

	questionTable struct {
		sync.RWMutex
		table map[string]*question.Question
	}

	settingsTable struct {
		sync.RWMutex
		table map[string]*settings.Settings
	}

	requestTable struct {
		sync.RWMutex
		table map[string]*request.AccountRequest
	}
)

func Open() (*DB, error) {
	db := &DB{
		pin:      &pinTable{table: make(map[string]*person.Pin)},
		question: &questionTable{table: make(map[string]*question.Question)},
		settings: &settingsTable{table: make(map[string]*settings.Settings)},
		request:  &requestTable{table: make(map[string]*request.AccountRequest)},
	}
	return db, nil
}

package inmemdb

import (
	"sync"

	"github.com/trezcool/questboard/core/dashboard"
)

type (
	DB struct {
		prefs *preferenceTable
	}

	preferenceTable struct {
		table map[string]dashboard.Preferences
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		prefs: &preferenceTable{table: make(map[string]dashboard.Preferences)},
	}
}

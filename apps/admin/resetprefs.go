package main

import (
	"context"

	"github.com/trezcool/questboard/core/dashboard"
)

func (cli *commandLine) resetPrefs(userID string) error {
	return cli.prefRepo.SavePreferences(context.Background(), userID, dashboard.DefaultPreferences())
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/questboard/apps/api/echo"
	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
	logsvc "github.com/trezcool/questboard/services/logger"
	httpsource "github.com/trezcool/questboard/services/source"
	dummysource "github.com/trezcool/questboard/services/source/dummy"
	"github.com/trezcool/questboard/storage/database"
	inmemdb "github.com/trezcool/questboard/storage/database/inmem"
	sqlxrepos "github.com/trezcool/questboard/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug {
		logger = core.NewStdLogger(std, true)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	userID := os.Getenv("DASHBOARD_USER_ID")
	if userID == "" {
		logger.Fatal("DASHBOARD_USER_ID is required")
	}

	// set up preference storage; in-memory in DEV so the API runs without
	// Postgres
	var prefRepo dashboard.PreferenceRepository
	if conf.Debug {
		prefRepo = inmemdb.NewPreferenceRepository(inmemdb.Open())
	} else {
		db, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()
		prefRepo = sqlxrepos.NewPreferenceRepository(db)
	}

	// set up the snapshot source; generated sample data in DEV
	var src dashboard.Source
	if conf.Debug {
		src = dummysource.NewService(userID)
	} else {
		src = httpsource.NewService(conf, userID, logger)
	}

	store := dashboard.NewStore(context.Background(), userID, src, prefRepo, logger, conf.Dashboard.PersistTimeout)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Addr:   conf.Server.Addr,
		Conf:   conf,
		Logger: logger,
		Store:  store,
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Error(fmt.Sprintf("server stopped: %v", err), err)
		}
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/mckinnonberry/familyqa/apps/api/echo"
	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
	"github.com/mckinnonberry/familyqa/core/request"
	"github.com/mckinnonberry/familyqa/core/settings"
	emailsvc "github.com/mckinnonberry/familyqa/services/email"
	logsvc "github.com/mckinnonberry/familyqa/services/logger"
	"github.com/mckinnonberry/familyqa/storage/database"
	pgrepos "github.com/mckinnonberry/familyqa/storage/database/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	switch {
	case core.Conf.Debug:
		mailSvc = emailsvc.NewConsoleService()
	case core.Conf.SendgridApiKey != "":
		mailSvc = emailsvc.NewSendgridService(logger)
	default:
		// no sender credentials: notification dispatch stays disabled
		mailSvc = nil
	}
	notifier := emailsvc.NewQuestionNotifier(mailSvc, logger)

	personSvc := person.NewService(pgrepos.NewPinRepository(db))
	settingsSvc := settings.NewService(pgrepos.NewSettingsRepository(db))
	questionSvc := question.NewService(pgrepos.NewQuestionRepository(db), notifier, logger)
	requestSvc := request.NewService(pgrepos.NewRequestRepository(db))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:     core.Conf.Server.Address,
			Logger:      logger,
			PersonSvc:   personSvc,
			SettingsSvc: settingsSvc,
			QuestionSvc: questionSvc,
			RequestSvc:  requestSvc,
			Notifier:    notifier,
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB() (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

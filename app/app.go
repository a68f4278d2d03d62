package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/routes"
	"monchai-insurance/services"
	"monchai-insurance/store"
)

// App holds everything built from one Config.
type App struct {
	Config    config.Config
	Log       *logrus.Logger
	Store     *store.CachedStore
	Journal   *services.Journal
	Customers *services.CustomerService
	Reminders *services.ReminderService

	closers []func() error
}

// New wires the store, the optional journal and redis, and the services.
// Journal and redis are optional: when they fail to connect the app runs without them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	config.SetLogLevel(cfg.LogLevel)
	logger := config.GetLogger()
	a := &App{Config: cfg, Log: logger}

	sheet := store.NewSheetClient(store.SheetConfig{
		DataURL:   cfg.SheetDataURL,
		WriteURL:  cfg.SheetWriteURL,
		UpdateURL: cfg.SheetUpdateURL,
		Timeout:   cfg.HTTPTimeout,
	}, logger)
	if cfg.SheetDataURL == "" {
		logger.Warn("SHEET_DATA_URL is not set; customer lists will be empty")
	}

	var cache store.Cache
	var lock services.RunLock
	if cfg.RedisAddress != "" {
		rdb, locker, err := config.ConnectRedis(ctx, cfg.RedisAddress)
		if err != nil {
			config.LogError(logger, "app", "New", "connect redis", cfg.RedisAddress, err)
		} else {
			cache = store.NewRedisCache(rdb)
			lock = services.RedisRunLock(locker, logger)
			a.closers = append(a.closers, rdb.Close)
		}
	}
	a.Store = store.NewCachedStore(sheet, cache, cfg.CacheTTL, logger)

	a.Journal = services.NewJournal(nil, logger)
	if cfg.DBURL != "" {
		db, err := config.ConnectDB(cfg.DBURL)
		if err != nil {
			config.LogError(logger, "app", "New", "connect journal database", nil, err)
		} else {
			a.Journal = services.NewJournal(db, logger)
			if sqlDB, err := db.DB(); err == nil {
				a.closers = append(a.closers, sqlDB.Close)
			}
		}
	}

	a.Customers = services.NewCustomerService(a.Store, a.Journal, logger, services.CustomerServiceOptions{
		Location:             cfg.Location,
		WriteBackConcurrency: cfg.WriteBackConcurrency,
	})

	var sender services.SMSSender
	if cfg.ReminderSMSEnabled {
		if cfg.SMSConfigured() {
			sender = services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		} else {
			logger.Warn("REMINDER_SMS_ENABLED is set but Twilio credentials are missing; reminders will not be sent")
		}
	}
	a.Reminders = services.NewReminderService(a.Customers, a.Journal, sender, lock, cfg.ExpiryWindowDays, logger)

	return a, nil
}

func (a *App) Router() *gin.Engine {
	return routes.SetupRouter(routes.Deps{
		Customers:   a.Customers,
		Journal:     a.Journal,
		WindowDays:  a.Config.ExpiryWindowDays,
		CORSOrigins: a.Config.CORSOrigins,
		Log:         a.Log,
	})
}

// Close releases redis and database connections.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Package main реализует точку входа терминального приложения заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"localnotes/internal/notes/adapters/services"
	"localnotes/internal/notes/adapters/storage"
	"localnotes/internal/notes/adapters/tui"
	"localnotes/internal/notes/app"
	"localnotes/internal/notes/config"
	"localnotes/internal/notes/domain/entities"
	"localnotes/pkg/logger"
	"localnotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode   = "NOTES_LOGGER_MODE"
	EnvLoggerLevel  = "NOTES_LOGGER_LEVEL"
	EnvLoggerOutput = "NOTES_LOGGER_OUTPUT"

	defaultLogOutput = "notes.log"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStorage          = "failed to open snapshot storage"
	ErrLoadSnapshot         = "failed to load snapshot"
	ErrRunUI                = "terminal UI exited with error"
	ErrFlushSnapshot        = "failed to flush snapshot on shutdown"
	ErrCloseStorage         = "failed to close snapshot storage"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений приложения.
const (
	LogAppStarted      = "notes app started"
	LogAppShutdownDone = "notes app shutdown complete"
	LogStoppingUI      = "stopping terminal UI"
	LogFlushing        = "flushing snapshot"
	LogClosingStorage  = "closing snapshot storage"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	output := os.Getenv(EnvLoggerOutput)
	if output == "" {
		output = defaultLogOutput
	}

	// терминал занят интерфейсом, поэтому журнал пишется в файл с самого начала
	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel), logger.WithOutputPaths(output))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			fmt.Fprintf(os.Stderr, "%s: %v\n", ErrLoadConfig, err)
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level,
			logger.WithOutputPaths(cfg.Logging.Output))
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		snapshots, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStorage, zap.Error(err))
			fmt.Fprintf(os.Stderr, "%s: %v\n", ErrOpenStorage, err)
			exitCode = 1
			return
		}

		locale := entities.LocaleByCode(cfg.Locale)
		snapshot, err := app.LoadSnapshot(ctx, snapshots, locale)
		if err != nil {
			log.Error(ctx, ErrLoadSnapshot, zap.Error(err))
			fmt.Fprintf(os.Stderr, "%s: %v\n", ErrLoadSnapshot, err)
			_ = snapshots.Close()
			exitCode = 1
			return
		}

		store := app.NewNoteStore(snapshot, snapshots,
			services.NewUUIDGenerator(), services.SystemClock{},
			app.WithLocale(locale))

		log.Info(ctx, LogAppStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage_driver", cfg.Storage.Driver),
			zap.String("locale", locale.Code),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		uiCtx, stopUI := context.WithCancel(app.NewContext(ctx, store))
		defer stopUI()

		done := make(chan struct{})
		uiErr := make(chan error, 1)
		go func() {
			defer close(done)
			if err := tui.Run(uiCtx); err != nil && uiCtx.Err() == nil {
				uiErr <- err
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), done,
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingUI)
				stopUI()
				select {
				case <-done:
				case <-ctx.Done():
				}
				return nil
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogFlushing)
				if err := app.SaveSnapshot(ctx, snapshots, store.Snapshot()); err != nil {
					log.Warn(ctx, ErrFlushSnapshot, zap.Error(err))
				}
				return nil
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingStorage)
				if err := snapshots.Close(); err != nil {
					log.Warn(ctx, ErrCloseStorage, zap.Error(err))
				}
				return nil
			},
		)

		select {
		case err := <-uiErr:
			log.Error(ctx, ErrRunUI, zap.Error(err))
			exitCode = 1
		default:
		}

		log.Info(ctx, LogAppShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

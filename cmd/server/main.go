package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hearthd/hearth-intent/internal/approval"
	"github.com/hearthd/hearth-intent/internal/command"
	"github.com/hearthd/hearth-intent/internal/config"
	"github.com/hearthd/hearth-intent/internal/dispatch"
	"github.com/hearthd/hearth-intent/internal/executor"
	"github.com/hearthd/hearth-intent/internal/handlers"
	"github.com/hearthd/hearth-intent/internal/llm"
	"github.com/hearthd/hearth-intent/internal/matcher"
	"github.com/hearthd/hearth-intent/internal/memory"
	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/nlp"
	"github.com/hearthd/hearth-intent/internal/store"
	"github.com/hearthd/hearth-intent/internal/transport"
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	logger.Info("starting hearth-intent",
		zap.String("service", cfg.ServiceName),
		zap.String("nats_url", cfg.NatsURL),
		zap.Duration("approval_ttl", cfg.ApprovalTTL))

	clock := nlp.WallClock()

	// Session memory
	sessionStore, err := memory.NewRedisStore(cfg.RedisURL, cfg.SessionTTL, clock)
	if err != nil {
		logger.Fatal("failed to connect session store", zap.Error(err))
	}
	defer sessionStore.Close()
	sessions := memory.NewManager(sessionStore, clock, logger)
	defer sessions.Close()

	// Household records
	records, err := store.NewRecordStore(cfg.RedisURL, clock)
	if err != nil {
		logger.Fatal("failed to connect record store", zap.Error(err))
	}
	defer records.Close()

	// Dispatcher: one handler per entity
	router := dispatch.NewRouter(clock, logger)
	for _, entity := range models.Entities {
		handler, err := store.NewEntityHandler(records, entity)
		if err != nil {
			logger.Fatal("failed to build entity handler",
				zap.String("entity", string(entity)),
				zap.Error(err))
		}
		router.RegisterHandler(entity, handler)
	}

	// Executor registry: populated once, then frozen for the life of the process
	registry := executor.NewRegistry()
	if err := registerExecutors(registry, router); err != nil {
		logger.Fatal("failed to register executors", zap.Error(err))
	}
	registry.Freeze()
	logger.Info("executor registry frozen", zap.Int("executors", len(registry.Types())))

	// Approval gate
	queue := approval.NewQueue([]byte(cfg.ApprovalSecret), cfg.ApprovalTTL, clock)
	defer queue.Close()

	settings := &command.ApprovalSettings{
		ConfirmationStyle: cfg.ConfirmationStyle,
		AlwaysConfirm:     make(map[models.Entity]bool),
	}
	for _, e := range cfg.AlwaysConfirm {
		settings.AlwaysConfirm[models.Entity(e)] = true
	}

	// Fallback model (optional)
	var fallback llm.Provider
	if cfg.AnthropicAPIKey != "" {
		provider, err := llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicTimeout)
		if err != nil {
			logger.Fatal("failed to initialize fallback provider", zap.Error(err))
		}
		fallback = provider
		logger.Info("fallback model enabled", zap.String("model", cfg.AnthropicModel))
	} else {
		logger.Info("fallback model disabled")
	}

	service := handlers.NewService(
		matcher.NewInterpreter(clock),
		command.NewFactory(clock),
		queue,
		registry,
		sessions,
		fallback,
		settings,
		logger,
	)

	natsTransport, err := transport.NewNATSTransport(cfg, service, logger)
	if err != nil {
		logger.Fatal("failed to initialize NATS transport", zap.Error(err))
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		logger.Fatal("failed to start NATS transport", zap.Error(err))
	}
	logger.Info("hearth-intent is running",
		zap.String("analyze_subject", cfg.NatsAnalyzeSubject),
		zap.String("approve_subject", cfg.NatsApproveSubject),
		zap.String("reject_subject", cfg.NatsRejectSubject))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	if err := natsTransport.Close(); err != nil {
		logger.Warn("error closing NATS transport", zap.Error(err))
	}
	logger.Info("hearth-intent stopped", zap.Int("active_sessions", sessions.ActiveSessions()))
}

// registerExecutors binds every supported command type to the dispatcher.
func registerExecutors(registry *executor.Registry, router *dispatch.Router) error {
	ops := []models.Operation{models.OperationCreate, models.OperationUpdate, models.OperationDelete}
	for _, entity := range models.Entities {
		for _, op := range ops {
			cmdType, err := command.TypeFor(entity, op)
			if err != nil {
				return err
			}
			if err := registry.Register(cmdType, router.Dispatch); err != nil {
				return err
			}
		}
	}
	return nil
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

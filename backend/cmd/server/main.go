package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/config"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/eventsink"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/health"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/queue"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/rules"
	"github.com/feremabraz/osric-rules-engine-sub007/backend/pkg/logger"
)

// healthCheckInterval is how often runQueue logs the aggregate health of
// the engine, the event sink, and the command queue.
const healthCheckInterval = 30 * time.Second

func main() {
	log := initializeLogger()
	cfg := loadConfiguration(log)

	engine := initializeEngine(cfg, log)
	sink := initializeEventSink(cfg, log, engine)
	if sink != nil {
		defer sink.Close()
	}

	q := initializeQueue(cfg, engine, log)
	checkers := initializeHealthChecks(cfg, engine, sink, q)
	logHealth(checkers, log)

	runQueue(cfg, q, checkers, log)

	log.Info().Msg("server shutdown complete")
}

func initializeLogger() *logger.Logger {
	log := logger.New(logger.Config{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Pretty: getEnvOrDefault("LOG_PRETTY", "false") == "true",
	})
	log.Info().Msg("starting osric rules engine")
	return log
}

func loadConfiguration(log *logger.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// initializeEngine builds the kernel engine, registers the illustrative
// command set, and runs start-up validation.
func initializeEngine(cfg *config.Config, log *logger.Logger) *kernel.Engine {
	engine := kernel.NewEngine(kernel.EngineOptions{
		Seed:          cfg.Engine.Seed,
		KeepTemporary: cfg.Engine.KeepTemporary,
		Logger:        log,
	})

	if err := rules.RegisterAll(engine); err != nil {
		log.Fatal().Err(err).Msg("failed to register rule catalog")
	}
	if err := engine.Start(); err != nil {
		log.Fatal().Err(err).Msg("engine failed start-up validation")
	}

	log.Info().Msg("engine started")
	return engine
}

// initializeEventSink connects the Redis effect-log mirror. A connection
// failure is logged and the server continues with the in-memory log only
// — the sink is an observer, never a dependency Execute requires.
func initializeEventSink(cfg *config.Config, log *logger.Logger, engine *kernel.Engine) *eventsink.RedisSink {
	sink, err := eventsink.NewRedisSink(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("event sink unavailable, continuing with in-memory log only")
		return nil
	}
	engine.AddObserver(sink)
	log.Info().Msg("event sink connected")
	return sink
}

func initializeQueue(cfg *config.Config, engine *kernel.Engine, log *logger.Logger) *queue.CommandQueue {
	q, err := queue.NewCommandQueue(cfg, engine, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize command queue")
	}
	return q
}

// initializeHealthChecks builds the checker set RunChecks probes: the
// engine itself, the Redis connection backing the event sink (when one
// connected), and the asynq queue backing asynchronous command submission.
func initializeHealthChecks(cfg *config.Config, engine *kernel.Engine, sink *eventsink.RedisSink, q *queue.CommandQueue) []health.Checker {
	checkers := []health.Checker{&health.EngineChecker{Engine: engine}}
	if sink != nil {
		checkers = append(checkers, &health.RedisChecker{Client: sink.Client()})
	}
	checkers = append(checkers, &health.QueueChecker{Inspector: q.Inspector(cfg), QueueName: cfg.Queue.QueueName})
	return checkers
}

func logHealth(checkers []health.Checker, log *logger.Logger) {
	for name, result := range health.RunChecks(context.Background(), checkers...) {
		if result.Status != "healthy" {
			log.Warn().Str("check", name).Str("status", result.Status).Str("message", result.Message).Msg("health check unhealthy")
			continue
		}
		log.Debug().Str("check", name).Msg("health check passed")
	}
}

func runQueue(cfg *config.Config, q *queue.CommandQueue, checkers []health.Checker, log *logger.Logger) {
	go func() {
		if err := q.Start(); err != nil {
			log.Fatal().Err(err).Msg("command queue processor stopped unexpectedly")
		}
	}()

	log.Info().Str("queue", cfg.Queue.QueueName).Msg("command queue processing")

	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-quit:
			log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
			if err := q.Shutdown(); err != nil {
				log.Error().Err(err).Msg("command queue failed to shut down cleanly")
			}
			return
		case <-ticker.C:
			logHealth(checkers, log)
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

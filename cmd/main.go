package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"supply-chain-cli/internal/apperrors"
	"supply-chain-cli/internal/audit"
	"supply-chain-cli/internal/config"
	"supply-chain-cli/internal/console"
	"supply-chain-cli/internal/events"
	"supply-chain-cli/internal/prompt"
	"supply-chain-cli/internal/repository"
	"supply-chain-cli/internal/service"
)

// connectDB opens the single connection the session works on. There is
// exactly one attempt: a failure ends the program before the menu is shown.
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrConnection, cfg.Redacted(), err)
	}
	return db, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.LogLevel)

	db, err := connectDB(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(stdout, "Error connecting to MySQL: %v\n", err)
		return 1
	}
	logger.Info().Str("database", cfg.Database.Redacted()).Msg("Connected to DB")

	var publisher service.Publisher
	if w := config.NewKafkaWriter(cfg.Kafka); w != nil {
		kp := events.NewKafkaPublisher(w)
		defer kp.Close()
		publisher = kp
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Publishing write events")
	}

	var recorder service.Recorder
	if rdb := config.NewRedisClient(cfg.Redis); rdb != nil {
		rr := audit.NewRedisRecorder(rdb, cfg.Redis.AuditKey, cfg.Redis.AuditLimit)
		defer rr.Close()
		recorder = rr
		logger.Info().Str("addr", cfg.Redis.Addr).Str("key", cfg.Redis.AuditKey).Msg("Recording audit trail")
	}

	repo := repository.NewSupplyChainRepository(db)
	svc := service.NewSupplyChainService(repo, publisher, recorder, logger)
	session := console.NewSession(svc, prompt.NewPrompter(stdin, stdout))

	if err := session.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Session ended with error")
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Stdin, os.Stdout, os.Stderr))
}

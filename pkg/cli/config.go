package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/adapter"
	"github.com/m-mizutani/kith/pkg/interfaces"
	"github.com/m-mizutani/kith/pkg/repository"
	"github.com/m-mizutani/kith/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Storage backends selectable with --backend
const (
	backendSQLite    = "sqlite"
	backendMemory    = "memory"
	backendRedis     = "redis"
	backendFirestore = "firestore"
	backendGCS       = "gcs"
)

// config holds configuration values
type config struct {
	// Backend
	backend   string
	dbPath    string
	keyPrefix string

	// Redis
	redisAddr     string
	redisPassword string
	redisDB       int64

	// Google Cloud
	project     string
	database    string
	collection  string
	bucket      string
	credentials string

	// Logging
	logLevel  string
	logFormat string
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kith.db"
	}
	return filepath.Join(dir, "kith", "kith.db")
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend",
			Aliases:     []string{"b"},
			Usage:       "Storage backend (sqlite, memory, redis, firestore, gcs)",
			Value:       backendSQLite,
			Sources:     cli.EnvVars("KITH_BACKEND"),
			Destination: &cfg.backend,
		},
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database file for the sqlite backend",
			Value:       defaultDBPath(),
			Sources:     cli.EnvVars("KITH_DB_PATH"),
			Destination: &cfg.dbPath,
		},
		&cli.StringFlag{
			Name:        "key-prefix",
			Usage:       "Key prefix for the redis and gcs backends",
			Value:       "kith",
			Sources:     cli.EnvVars("KITH_KEY_PREFIX"),
			Destination: &cfg.keyPrefix,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis server address",
			Value:       "localhost:6379",
			Sources:     cli.EnvVars("KITH_REDIS_ADDR"),
			Destination: &cfg.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("KITH_REDIS_PASSWORD"),
			Destination: &cfg.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Sources:     cli.EnvVars("KITH_REDIS_DB"),
			Destination: &cfg.redisDB,
		},
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "collection",
			Usage:       "Firestore collection holding the stored keys",
			Value:       adapter.DefaultFirestoreCollection,
			Sources:     cli.EnvVars("KITH_FIRESTORE_COLLECTION"),
			Destination: &cfg.collection,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for the gcs backend",
			Sources:     cli.EnvVars("KITH_GCS_BUCKET"),
			Destination: &cfg.bucket,
		},
		&cli.StringFlag{
			Name:        "credentials",
			Usage:       "Service account key file for Google Cloud backends",
			Sources:     cli.EnvVars("GOOGLE_APPLICATION_CREDENTIALS"),
			Destination: &cfg.credentials,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("KITH_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       logging.FormatConsole,
			Sources:     cli.EnvVars("KITH_LOG_FORMAT"),
			Destination: &cfg.logFormat,
		},
	}
}

// newLogger builds the logger and attaches it to ctx
func (cfg *config) newLogger(ctx context.Context) (context.Context, *slog.Logger, error) {
	if !logging.ValidFormat(cfg.logFormat) {
		return ctx, nil, goerr.New("log-format must be console or json", goerr.V("log-format", cfg.logFormat))
	}
	logger := logging.New(cfg.logLevel, os.Stderr, logging.WithFormat(cfg.logFormat))
	return logging.With(ctx, logger), logger, nil
}

func (cfg *config) gcpOptions() []option.ClientOption {
	if cfg.credentials == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.credentials)}
}

// newKVS creates the storage backend chosen by --backend. The choice is
// made once here; nothing downstream knows which backend is in use.
func (cfg *config) newKVS(ctx context.Context) (interfaces.KVS, error) {
	switch cfg.backend {
	case backendSQLite:
		if cfg.dbPath == "" {
			return nil, goerr.New("db-path is required")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.dbPath), 0o700); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("path", cfg.dbPath))
		}
		return adapter.NewSQLite(ctx, cfg.dbPath)

	case backendMemory:
		return adapter.NewMemory(), nil

	case backendRedis:
		prefix := cfg.keyPrefix
		if prefix != "" {
			prefix += ":"
		}
		return adapter.NewRedis(ctx, adapter.RedisConfig{
			Address:  cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       int(cfg.redisDB),
			Prefix:   prefix,
		})

	case backendFirestore:
		if cfg.project == "" {
			return nil, goerr.New("project is required")
		}
		if cfg.database == "" {
			return nil, goerr.New("database is required")
		}
		return adapter.NewFirestore(ctx, cfg.project, cfg.database,
			adapter.WithFirestoreCollection(cfg.collection),
			adapter.WithFirestoreClientOptions(cfg.gcpOptions()...),
		)

	case backendGCS:
		if cfg.bucket == "" {
			return nil, goerr.New("bucket is required")
		}
		return adapter.NewCloudStorage(ctx, cfg.bucket, cfg.keyPrefix, cfg.gcpOptions()...)

	default:
		return nil, goerr.New("unknown backend", goerr.V("backend", cfg.backend))
	}
}

// env is what every command action works with
type env struct {
	ctx     context.Context
	kvs     interfaces.KVS
	people  *repository.People
	profile *repository.Profile
}

func (e *env) Close() {
	if err := e.kvs.Close(); err != nil {
		logging.From(e.ctx).Warn("failed to close backend", "error", err)
	}
}

// setup creates the logger, backend and repositories for a command
func (cfg *config) setup(ctx context.Context) (*env, error) {
	ctx, logger, err := cfg.newLogger(ctx)
	if err != nil {
		return nil, err
	}

	kvs, err := cfg.newKVS(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage backend", goerr.V("backend", cfg.backend))
	}
	logger.Debug("storage backend ready", "backend", cfg.backend)

	storage := repository.NewStorage(kvs)
	return &env{
		ctx:     ctx,
		kvs:     kvs,
		people:  repository.NewPeople(storage),
		profile: repository.NewProfile(storage),
	}, nil
}

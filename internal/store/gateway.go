package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "modernc.org/sqlite"             // embedded fallback driver

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/config"
	"github.com/wonny/aurum/pkg/logger"
)

// Backend identifies which persistence backend a gateway is connected to
type Backend string

const (
	BackendPrimary  Backend = "postgres"
	BackendEmbedded Backend = "sqlite"
)

// Gateway is the single connection point to durable storage.
// ⭐ SSOT: DB 연결은 이 게이트웨이에서만 생성
//
// Connect tries the primary backend with a bounded timeout and falls back to
// the embedded backend on any connection error. Fallback is sticky: the
// gateway stays on the embedded backend until it is discarded. Repositories
// go through the gateway's dialect so they never branch on backend type.
type Gateway struct {
	db       *sqlx.DB
	dialect  dialect
	backend  Backend
	fallback bool
	logger   *logger.Logger
}

// Connect opens the gateway, falling back to the embedded backend when the
// primary is unreachable. Returns contracts.ErrConnection when both fail.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Gateway, error) {
	if cfg.Database.ForceEmbedded {
		log.WithField("path", cfg.Database.EmbeddedPath).Info("Embedded backend forced by config")
		return connectEmbedded(ctx, cfg, log, false)
	}

	gw, primaryErr := connectPrimary(ctx, cfg, log)
	if primaryErr == nil {
		return gw, nil
	}

	log.WithError(primaryErr).Warn("Primary backend unreachable, falling back to embedded backend")

	gw, embeddedErr := connectEmbedded(ctx, cfg, log, true)
	if embeddedErr != nil {
		return nil, fmt.Errorf("%w: primary: %v, embedded: %v",
			contracts.ErrConnection, primaryErr, embeddedErr)
	}
	return gw, nil
}

// connectPrimary opens the PostgreSQL backend with a bounded ping
func connectPrimary(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Gateway, error) {
	db, err := sqlx.Open("pgx", cfg.Database.PrimaryDSN())
	if err != nil {
		return nil, fmt.Errorf("open primary backend: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping primary backend: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"backend": BackendPrimary,
		"host":    cfg.Database.Host,
	}).Info("Connected to primary backend")

	return &Gateway{
		db:      db,
		dialect: postgresDialect{},
		backend: BackendPrimary,
		logger:  log,
	}, nil
}

// connectEmbedded opens the SQLite fallback backend
func connectEmbedded(ctx context.Context, cfg *config.Config, log *logger.Logger, fallback bool) (*Gateway, error) {
	db, err := sqlx.Open("sqlite", cfg.Database.EmbeddedPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded backend: %w", err)
	}

	// SQLite tolerates a single writer only
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping embedded backend: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"backend": BackendEmbedded,
		"path":    cfg.Database.EmbeddedPath,
	}).Info("Connected to embedded backend")

	return &Gateway{
		db:       db,
		dialect:  sqliteDialect{},
		backend:  BackendEmbedded,
		fallback: fallback,
		logger:   log,
	}, nil
}

// Close releases the underlying connection
func (g *Gateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

// Backend returns the connected backend
func (g *Gateway) Backend() Backend {
	return g.backend
}

// InFallback reports whether the gateway degraded to the embedded backend
func (g *Gateway) InFallback() bool {
	return g.fallback
}

// DB exposes the underlying sqlx handle for read queries
func (g *Gateway) DB() *sqlx.DB {
	return g.db
}

// Rebind translates `?` placeholders into the backend's bindvar style
func (g *Gateway) Rebind(query string) string {
	return g.db.Rebind(query)
}

// Upsert inserts a row, overwriting any existing row sharing the key columns.
// The upsert SQL is produced by the backend dialect; callers never see it.
func (g *Gateway) Upsert(ctx context.Context, table string, keyColumns, columns []string, arg interface{}) error {
	query := g.dialect.UpsertSQL(table, keyColumns, columns)
	if _, err := g.db.NamedExecContext(ctx, query, arg); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

// EnsureSchema creates the raw and derived tables when missing
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	for _, stmt := range g.dialect.SchemaDDL() {
		if _, err := g.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	g.logger.WithField("backend", g.backend).Info("Schema ensured")
	return nil
}

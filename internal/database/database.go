package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	// Import the PostgreSQL driver from pgx
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/taldoflemis/lateq/internal/interfaces"
)

// Service is the persistence layer for calculator definitions. Variables and
// functions defined through equality statements survive restarts by storing
// the LaTeX of the defining statement.
type Service interface {
	interfaces.DefinitionStore

	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() (map[string]string, error)

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error
}

type service struct {
	db *sql.DB
}

var (
	database   = os.Getenv("LATEQ_DB_DATABASE")
	password   = os.Getenv("LATEQ_DB_PASSWORD")
	username   = os.Getenv("LATEQ_DB_USERNAME")
	port       = os.Getenv("LATEQ_DB_PORT")
	host       = os.Getenv("LATEQ_DB_HOST")
	schema     = os.Getenv("LATEQ_DB_SCHEMA")
	dbInstance *service
)

func New() (Service, error) {
	// Reuse Connection
	if dbInstance != nil {
		return dbInstance, nil
	}
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		username,
		password,
		host,
		port,
		database,
		schema,
	)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		slog.Error("failed to open database connection", slog.Any("err", err))
		return nil, err
	}
	dbInstance = &service{
		db: db,
	}
	if err := dbInstance.ensureSchema(); err != nil {
		slog.Error("failed to ensure definitions table", slog.Any("err", err))
		return nil, err
	}
	return dbInstance, nil
}

func (s *service) ensureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS definitions (
			name       TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			latex      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// SaveDefinition upserts a definition by name, so redefining a variable or
// function replaces its stored statement.
func (s *service) SaveDefinition(ctx context.Context, def interfaces.Definition) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO definitions (name, kind, latex, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE
		SET kind = EXCLUDED.kind, latex = EXCLUDED.latex, updated_at = now()`,
		def.Name, string(def.Kind), def.Latex,
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save definition",
			slog.String("name", def.Name), slog.Any("err", err))
		return err
	}
	return nil
}

// ListDefinitions returns all stored definitions, oldest first so replaying
// them rebuilds dependent bindings in order.
func (s *service) ListDefinitions(ctx context.Context) ([]interfaces.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, latex FROM definitions ORDER BY updated_at ASC`)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list definitions", slog.Any("err", err))
		return nil, err
	}
	defer rows.Close()

	var defs []interfaces.Definition
	for rows.Next() {
		var def interfaces.Definition
		var kind string
		if err := rows.Scan(&def.Name, &kind, &def.Latex); err != nil {
			return nil, err
		}
		def.Kind = interfaces.DefinitionKind(kind)
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	// Ping the database
	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats, err
	}

	// Database is up, add more statistics
	stats["status"] = "up"
	stats["message"] = "It's healthy"

	return stats, nil
}

// Close closes the database connection.
// It logs a message indicating the disconnection from the specific database.
// If the connection is successfully closed, it returns nil.
// If an error occurs while closing the connection, it returns the error.
func (s *service) Close() error {
	slog.Info("disconnected from database", slog.String("database", database))
	return s.db.Close()
}

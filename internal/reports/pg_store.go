package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"tramites/migrations"
)

// PGStore persists reports in PostgreSQL. Selected via REPORTS_BACKEND for
// deployments where a flat file is not enough; same contract as FileStore.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects, migrates and returns the store.
func NewPGStore(ctx context.Context, connString string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(connString); err != nil {
		pool.Close()
		return nil, err
	}

	return &PGStore{pool: pool}, nil
}

func runMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

// Save inserts the report and assigns its id.
func (s *PGStore) Save(ctx context.Context, r *Report) (string, error) {
	now := time.Now()
	r.ID = newReportID(now)
	r.FechaReporte = now

	query := `
		INSERT INTO reportes (id, nombre, email, tipo_error, descripcion, numero_radicado, fecha_reporte)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.pool.Exec(ctx, query,
		r.ID, r.Nombre, r.Email, r.TipoError, r.Descripcion, r.NumeroRadicado, r.FechaReporte,
	); err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}

	return r.ID, nil
}

// List returns up to limit reports, newest first.
func (s *PGStore) List(ctx context.Context, limit int) ([]Report, error) {
	query := `
		SELECT id, nombre, email, tipo_error, descripcion, numero_radicado, fecha_reporte
		FROM reportes
		ORDER BY fecha_reporte DESC
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var all []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Nombre, &r.Email, &r.TipoError, &r.Descripcion, &r.NumeroRadicado, &r.FechaReporte); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		all = append(all, r)
	}
	if all == nil {
		all = []Report{}
	}
	return all, rows.Err()
}

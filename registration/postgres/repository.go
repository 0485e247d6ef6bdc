package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-outbox/registration"

	_ "github.com/lib/pq" // PostgreSQL driver
)

/* PostgreSQL implementation of registration.Repository
 * Same contract as the Redis backend; the backend is picked once at startup
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool.
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection is reused
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{DB: db}, nil
}

// Migrate creates the registrations table if it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS registrations (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		events JSONB NOT NULL,
		secret TEXT NOT NULL DEFAULT '',
		headers JSONB NOT NULL DEFAULT '{}',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating registrations table: %w", err)
	}
	return nil
}

// Store persists a new registration
func (r *Repository) Store(ctx context.Context, reg registration.Registration) error {
	events, headers, err := encode(reg)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO registrations (id, url, events, secret, headers, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reg.ID, reg.URL, events, reg.Secret, headers, reg.Active, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}
	return nil
}

// Update overwrites an existing registration
func (r *Repository) Update(ctx context.Context, reg registration.Registration) error {
	events, headers, err := encode(reg)
	if err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx,
		`UPDATE registrations
		SET url = $2, events = $3, secret = $4, headers = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		reg.ID, reg.URL, events, reg.Secret, headers, reg.Active, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return registration.ErrNotFound
	}
	return nil
}

// Get retrieves a registration by ID
func (r *Repository) Get(ctx context.Context, id string) (registration.Registration, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, url, events, secret, headers, active, created_at, updated_at
		FROM registrations
		WHERE id = $1`, id)

	reg, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return registration.Registration{}, registration.ErrNotFound
	}
	if err != nil {
		return registration.Registration{}, fmt.Errorf("selecting registration: %w", err)
	}
	return reg, nil
}

// List returns all registrations
func (r *Repository) List(ctx context.Context) ([]registration.Registration, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, url, events, secret, headers, active, created_at, updated_at
		FROM registrations
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("selecting registrations: %w", err)
	}
	defer rows.Close()

	var regs []registration.Registration
	for rows.Next() {
		reg, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating registrations: %w", err)
	}
	return regs, nil
}

// Delete removes a registration
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting registration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return registration.ErrNotFound
	}
	return nil
}

// Close closes the database connection pool
func (r *Repository) Close(ctx context.Context) error {
	return r.DB.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (registration.Registration, error) {
	var (
		reg     registration.Registration
		events  []byte
		headers []byte
	)
	err := row.Scan(&reg.ID, &reg.URL, &events, &reg.Secret, &headers, &reg.Active, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return registration.Registration{}, err
	}

	if err := json.Unmarshal(events, &reg.Events); err != nil {
		return registration.Registration{}, fmt.Errorf("unmarshaling events: %w", err)
	}
	if err := json.Unmarshal(headers, &reg.Headers); err != nil {
		return registration.Registration{}, fmt.Errorf("unmarshaling headers: %w", err)
	}
	return reg, nil
}

func encode(reg registration.Registration) (events, headers []byte, err error) {
	events, err = json.Marshal(reg.Events)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling events: %w", err)
	}

	if reg.Headers == nil {
		reg.Headers = map[string]string{}
	}
	headers, err = json.Marshal(reg.Headers)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling headers: %w", err)
	}
	return events, headers, nil
}

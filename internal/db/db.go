package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/levapoteur/seorewriter/internal/models"
)

// Queries wraps database operations
type Queries struct {
	pool *pgxpool.Pool
}

// New creates a new Queries instance
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// Connect establishes a database connection pool
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Run operations

func (q *Queries) CreateRun(ctx context.Context, run models.Run) error {
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("marshal run results: %w", err)
	}
	_, err = q.pool.Exec(ctx, `
		INSERT INTO runs (id, results, created_at)
		VALUES ($1, $2, $3)
	`, run.ID, results, run.CreatedAt)
	return err
}

func (q *Queries) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	var run models.Run
	var results []byte
	err := q.pool.QueryRow(ctx, `
		SELECT id, results, created_at FROM runs WHERE id = $1
	`, id).Scan(&run.ID, &results, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(results, &run.Results); err != nil {
		return nil, fmt.Errorf("unmarshal run results: %w", err)
	}
	return &run, nil
}

func (q *Queries) ListRuns(ctx context.Context) ([]models.Run, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT id, results, created_at FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		var results []byte
		if err := rows.Scan(&run.ID, &results, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(results, &run.Results); err != nil {
			return nil, fmt.Errorf("unmarshal run results: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Validation operations

func (q *Queries) UpsertValidation(ctx context.Context, v models.ValidationRecord) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO validations (item_key, item_type, item_id, name, validator, validated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_key) DO UPDATE SET
			name = EXCLUDED.name,
			validator = EXCLUDED.validator,
			validated_at = EXCLUDED.validated_at
	`, v.Key, v.ItemType, v.ItemID, v.Name, v.Validator, v.ValidatedAt)
	return err
}

func (q *Queries) ListValidations(ctx context.Context) ([]models.ValidationRecord, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT item_key, item_type, item_id, name, validator, validated_at
		FROM validations ORDER BY validated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ValidationRecord
	for rows.Next() {
		var v models.ValidationRecord
		if err := rows.Scan(&v.Key, &v.ItemType, &v.ItemID, &v.Name, &v.Validator, &v.ValidatedAt); err != nil {
			return nil, err
		}
		records = append(records, v)
	}
	return records, rows.Err()
}

func (q *Queries) DeleteValidation(ctx context.Context, key string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM validations WHERE item_key = $1`, key)
	return err
}

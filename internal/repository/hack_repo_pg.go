package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/hackportal/internal/domain"
)

// AssignFunc numbers a batch given the largest stored id; hasMax is false when
// the table is empty.
type AssignFunc func(maxID int64, hasMax bool) ([]domain.Hack, error)

type HackRepository interface {
	// ImportBatch reads the current maximum id, lets assign number the batch
	// and inserts it, all in one transaction that holds the import advisory
	// lock. Concurrent imports from any process queue behind each other.
	ImportBatch(ctx context.Context, assign AssignFunc) ([]domain.Hack, error)
	List(ctx context.Context) ([]domain.Hack, error)
	GetByID(ctx context.Context, id int64) (*domain.Hack, error)
}

type PGHackRepository struct {
	db *pgxpool.Pool
}

func NewHackRepository(db *pgxpool.Pool) HackRepository {
	return &PGHackRepository{db: db}
}

const hackColumns = `id, title, devpost_url, categories, floor, table_name, disabled, num_skips, created_at`

// hackImportLockID keys the transaction-scoped advisory lock taken by ImportBatch.
const hackImportLockID int64 = 0x6861636b73 // "hacks"

func (r *PGHackRepository) ImportBatch(ctx context.Context, assign AssignFunc) ([]domain.Hack, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, hackImportLockID); err != nil {
		return nil, fmt.Errorf("failed to take import lock: %w", err)
	}

	var maxID *int64
	if err := tx.QueryRow(ctx, `SELECT MAX(id) FROM hacks`).Scan(&maxID); err != nil {
		return nil, fmt.Errorf("failed to query max hack id: %w", err)
	}

	var hacks []domain.Hack
	if maxID == nil {
		hacks, err = assign(0, false)
	} else {
		hacks, err = assign(*maxID, true)
	}
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, h := range hacks {
		categories := h.Categories
		if categories == nil {
			categories = []string{}
		}
		batch.Queue(`INSERT INTO hacks (id, title, devpost_url, categories, floor, table_name, disabled, num_skips)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			h.ID, h.Title, h.DevpostURL, categories, h.Floor, h.Table, h.Disabled, h.NumSkips)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert hacks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}
	return hacks, nil
}

func (r *PGHackRepository) List(ctx context.Context) ([]domain.Hack, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hackColumns+` FROM hacks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hacks: %w", err)
	}
	defer rows.Close()

	hacks := make([]domain.Hack, 0)
	for rows.Next() {
		h, err := scanHack(rows)
		if err != nil {
			return nil, err
		}
		hacks = append(hacks, *h)
	}
	return hacks, rows.Err()
}

func (r *PGHackRepository) GetByID(ctx context.Context, id int64) (*domain.Hack, error) {
	h, err := scanHack(r.db.QueryRow(ctx, `SELECT `+hackColumns+` FROM hacks WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "hack", Err: err}
		}
		return nil, err
	}
	return h, nil
}

func scanHack(row pgx.Row) (*domain.Hack, error) {
	var h domain.Hack
	if err := row.Scan(&h.ID, &h.Title, &h.DevpostURL, &h.Categories, &h.Floor, &h.Table, &h.Disabled, &h.NumSkips, &h.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan hack: %w", err)
	}
	return &h, nil
}

var _ HackRepository = (*PGHackRepository)(nil)

package fleet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// StateUpdate is one account's live state as reported by its agent.
type StateUpdate struct {
	ID              int64
	Balance         decimal.Decimal
	HasOpenPosition bool
}

// List returns the full registry snapshot, manual overrides included.
// This is the account source the reconciliation pass consumes; one call,
// one snapshot, no pagination.
func (s *Store) List(ctx context.Context) ([]Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			id, holder, firm, phase,
			COALESCE(balance, 0),
			COALESCE(initial_balance, 0),
			COALESCE(has_open_position, FALSE),
			COALESCE(manual_group, ''),
			COALESCE(synced_at, created_at)
		FROM fleet_accounts
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Account, 0, 64)
	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID, &a.Holder, &a.Firm, &a.Phase,
			&a.Balance, &a.InitialBalance, &a.HasOpenPosition,
			&a.ManualGroup, &a.SyncedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Register upserts an account's registry fields. Live state columns are
// left to the sync job.
func (s *Store) Register(ctx context.Context, a Account) error {
	if a.ID <= 0 {
		return errors.New("account id is required")
	}
	holder := strings.TrimSpace(a.Holder)
	if holder == "" {
		return errors.New("holder is required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fleet_accounts (id, holder, firm, phase, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			holder = EXCLUDED.holder,
			firm = EXCLUDED.firm,
			phase = EXCLUDED.phase,
			initial_balance = EXCLUDED.initial_balance,
			updated_at = NOW()
	`, a.ID, holder, strings.TrimSpace(a.Firm), strings.ToLower(strings.TrimSpace(a.Phase)), a.InitialBalance)
	return err
}

// ApplyState writes a batch of agent state reports. Unknown logins are
// skipped: the registry is the roster, agents only refresh it.
func (s *Store) ApplyState(ctx context.Context, updates []StateUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, u := range updates {
		if _, err := tx.Exec(ctx, `
			UPDATE fleet_accounts
			SET balance = $1, has_open_position = $2, synced_at = $3, updated_at = $3
			WHERE id = $4
		`, u.Balance, u.HasOpenPosition, now, u.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Phases lists the distinct phase tags currently present, for the filter
// dropdown.
func (s *Store) Phases(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT phase FROM fleet_accounts
		WHERE phase <> ''
		ORDER BY phase ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single account or an error when the login is unknown.
func (s *Store) Get(ctx context.Context, id int64) (*Account, error) {
	var a Account
	err := s.pool.QueryRow(ctx, `
		SELECT
			id, holder, firm, phase,
			COALESCE(balance, 0),
			COALESCE(initial_balance, 0),
			COALESCE(has_open_position, FALSE),
			COALESCE(manual_group, ''),
			COALESCE(synced_at, created_at)
		FROM fleet_accounts
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Holder, &a.Firm, &a.Phase,
		&a.Balance, &a.InitialBalance, &a.HasOpenPosition,
		&a.ManualGroup, &a.SyncedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("account not found")
		}
		return nil, err
	}
	return &a, nil
}

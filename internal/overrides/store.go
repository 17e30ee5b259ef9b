package overrides

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists manual per-account overrides. The reconciliation pass
// never calls this; it only reads the effect on the next snapshot, so a
// write racing a refresh resolves as last write wins.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SetGroup writes a manual VS-group for the account. An empty value clears
// the override (stored as NULL, surfaced as absent).
func (s *Store) SetGroup(ctx context.Context, accountID int64, group string) error {
	group = strings.TrimSpace(group)
	var tag string
	var err error
	if group == "" {
		tag, err = s.exec(ctx, `
			UPDATE fleet_accounts
			SET manual_group = NULL, updated_at = NOW()
			WHERE id = $1
		`, accountID)
	} else {
		tag, err = s.exec(ctx, `
			UPDATE fleet_accounts
			SET manual_group = $1, updated_at = NOW()
			WHERE id = $2
		`, group, accountID)
	}
	if err != nil {
		return err
	}
	if tag == "UPDATE 0" {
		return errors.New("account not found")
	}
	return nil
}

// SetPhase writes a manual phase tag. Phases are free-form strings; the
// value is lowercased for consistent filtering.
func (s *Store) SetPhase(ctx context.Context, accountID int64, phase string) error {
	phase = strings.ToLower(strings.TrimSpace(phase))
	if phase == "" {
		return errors.New("phase is required")
	}
	tag, err := s.exec(ctx, `
		UPDATE fleet_accounts
		SET phase = $1, updated_at = NOW()
		WHERE id = $2
	`, phase, accountID)
	if err != nil {
		return err
	}
	if tag == "UPDATE 0" {
		return errors.New("account not found")
	}
	return nil
}

func (s *Store) exec(ctx context.Context, sql string, args ...any) (string, error) {
	ct, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return "", err
	}
	return ct.String(), nil
}

package repository

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/cozyshare/backend/internal/models"
)

// Invite codes avoid easily confused characters (0/O, 1/I).
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

type HouseholdRepository struct {
	db *pgxpool.Pool
}

// NewHouseholdRepository creates the household repository.
func NewHouseholdRepository(db *pgxpool.Pool) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// Create inserts a household with a freshly generated invite code, retrying
// on code collision.
func (r *HouseholdRepository) Create(ctx context.Context, name string) (models.Household, error) {
	var household models.Household

	for attempt := 0; attempt < 10; attempt++ {
		code := newInviteCode()

		err := r.db.QueryRow(ctx,
			`INSERT INTO households (name, code)
			 VALUES ($1, $2)
			 RETURNING id, name, code, members, created_at, updated_at`,
			name, code,
		).Scan(&household.ID, &household.Name, &household.Code, &household.Members, &household.CreatedAt, &household.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return household, err
		}

		return household, nil
	}

	return household, ErrConflict
}

// GetByCode returns a household by invite code.
func (r *HouseholdRepository) GetByCode(ctx context.Context, code string) (models.Household, error) {
	var household models.Household

	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, members, created_at, updated_at
		 FROM households
		 WHERE code = $1`,
		code,
	).Scan(&household.ID, &household.Name, &household.Code, &household.Members, &household.CreatedAt, &household.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return household, ErrNotFound
		}
		return household, err
	}

	return household, nil
}

// RefreshMembers recomputes the cached member-name projection from the users
// table. Called whenever membership changes; the projection is only a display
// fallback, users.household_code stays authoritative.
func (r *HouseholdRepository) RefreshMembers(ctx context.Context, code string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE households h
		 SET members = COALESCE(
		         (SELECT ARRAY_AGG(u.name ORDER BY u.created_at)
		          FROM users u
		          WHERE u.household_code = h.code),
		         '{}'),
		     updated_at = NOW()
		 WHERE h.code = $1`,
		code,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func newInviteCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(code)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"healthybowl-service/internal/domain/address"
	xerrors "healthybowl-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AddressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address.
func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	query := `
		INSERT INTO addresses (user_id, line1, line2, city, state, pincode, landmark, lat, lng, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		a.UserID, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.Landmark, a.Lat, a.Lng, a.IsDefault,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

// FindByID retrieves an address by ID.
func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*address.Address, error) {
	query := `
		SELECT id, user_id, line1, line2, city, state, pincode, landmark, lat, lng, is_default, created_at
		FROM addresses
		WHERE id = $1
	`

	var a address.Address
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State, &a.Pincode,
		&a.Landmark, &a.Lat, &a.Lng, &a.IsDefault, &a.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return &a, nil
}

// FindMatch looks up an existing address for the user with the same core
// fields, so checkout reuses addresses instead of duplicating them.
func (r *AddressRepository) FindMatch(ctx context.Context, userID int64, line1, city, pincode string) (*address.Address, error) {
	query := `
		SELECT id, user_id, line1, line2, city, state, pincode, landmark, lat, lng, is_default, created_at
		FROM addresses
		WHERE user_id = $1 AND line1 = $2 AND city = $3 AND pincode = $4
		LIMIT 1
	`

	var a address.Address
	err := r.db.QueryRow(ctx, query, userID, line1, city, pincode).Scan(
		&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State, &a.Pincode,
		&a.Landmark, &a.Lat, &a.Lng, &a.IsDefault, &a.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match address: %w", err)
	}
	return &a, nil
}

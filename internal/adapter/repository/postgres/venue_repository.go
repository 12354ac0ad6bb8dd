package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type VenueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	query := `
	INSERT INTO venues (id, owner_id, name, city, capacity, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		venue.ID, venue.OwnerID, venue.Name, venue.City,
		venue.Capacity, venue.IsActive, venue.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}

	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, venueID uuid.UUID) (*domain.Venue, error) {
	query := `
	SELECT id, owner_id, name, city, capacity, is_active, created_at
	FROM venues
	WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, venueID))
}

func (r *VenueRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Venue, error) {
	query := `
	SELECT id, owner_id, name, city, capacity, is_active, created_at
	FROM venues
	WHERE owner_id = $1
	LIMIT 1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID))
}

func (r *VenueRepository) scanOne(row *sql.Row) (*domain.Venue, error) {
	var v domain.Venue
	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.City,
		&v.Capacity,
		&v.IsActive,
		&v.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &v, nil
}

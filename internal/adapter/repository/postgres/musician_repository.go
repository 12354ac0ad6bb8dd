package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type MusicianRepository struct {
	db *sql.DB
}

func NewMusicianRepository(db *sql.DB) *MusicianRepository {
	return &MusicianRepository{db: db}
}

func (r *MusicianRepository) Create(ctx context.Context, musician *domain.Musician) error {
	query := `
	INSERT INTO musicians (id, user_id, name, genres, city, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		musician.ID, musician.UserID, musician.Name, musician.Genres,
		musician.City, musician.IsActive, musician.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert musician: %w", err)
	}

	return nil
}

func (r *MusicianRepository) GetByID(ctx context.Context, musicianID uuid.UUID) (*domain.Musician, error) {
	query := `
	SELECT id, user_id, name, genres, city, is_active, created_at
	FROM musicians
	WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, musicianID))
}

func (r *MusicianRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Musician, error) {
	query := `
	SELECT id, user_id, name, genres, city, is_active, created_at
	FROM musicians
	WHERE user_id = $1
	LIMIT 1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *MusicianRepository) scanOne(row *sql.Row) (*domain.Musician, error) {
	var m domain.Musician
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Genres,
		&m.City,
		&m.IsActive,
		&m.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &m, nil
}

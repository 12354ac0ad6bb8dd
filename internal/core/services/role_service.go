package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/gigstage/gigstage/internal/core/ports"
)

// RoleService derives a user's role set from the profile records linked to
// them. Roles are additive: resolution adds "musician" and "venueOwner" tags
// when the matching profile exists and never removes anything.
type RoleService struct {
	users     ports.UserRepository
	musicians ports.MusicianRepository
	venues    ports.VenueRepository
	log       zerolog.Logger
}

func NewRoleService(users ports.UserRepository, musicians ports.MusicianRepository, venues ports.VenueRepository, log zerolog.Logger) *RoleService {
	return &RoleService{users: users, musicians: musicians, venues: venues, log: log}
}

// Resolve recomputes roles for a user. The primary role is written once,
// while still at the "user" default: venue takes precedence over musician
// when both profiles exist, and an assigned primary role is never
// re-evaluated. Running Resolve again with unchanged profiles performs no
// further writes.
func (s *RoleService) Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	musician, err := s.musicians.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("musician lookup: %w", err)
	}

	venue, err := s.venues.GetByOwnerID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("venue lookup: %w", err)
	}

	changed := false
	if musician != nil && user.AddRole(domain.RoleMusician) {
		changed = true
	}
	if venue != nil && user.AddRole(domain.RoleVenueOwner) {
		changed = true
	}

	if user.HasDefaultPrimaryRole() {
		switch {
		case venue != nil:
			user.PrimaryRole = domain.PrimaryRoleVenue
			changed = true
		case musician != nil:
			user.PrimaryRole = domain.PrimaryRoleMusician
			changed = true
		}
	}

	if changed {
		if err := s.users.UpdateRoles(ctx, user.ID, user.Roles, user.PrimaryRole); err != nil {
			return nil, fmt.Errorf("update roles: %w", err)
		}
	}

	s.backfillProfile(ctx, user, musician, venue)

	return user, nil
}

// backfillProfile creates the profile row implied by the primary role when
// it is still missing, e.g. a user whose primary role was set to "musician"
// during initial setup before any musician profile existed. A re-check
// guards against duplicate creation under concurrent resolution; creation
// failures are logged and swallowed so the role update itself still
// succeeds.
func (s *RoleService) backfillProfile(ctx context.Context, user *domain.User, musician *domain.Musician, venue *domain.Venue) {
	switch user.PrimaryRole {
	case domain.PrimaryRoleMusician:
		if musician != nil {
			return
		}
		if _, err := s.musicians.GetByUserID(ctx, user.ID); err == nil {
			return
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("musician backfill re-check failed")
			return
		}

		m := &domain.Musician{
			ID:        uuid.New(),
			UserID:    user.ID,
			Name:      profileName(user),
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.musicians.Create(ctx, m); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("musician profile backfill failed")
		}

	case domain.PrimaryRoleVenue:
		if venue != nil {
			return
		}
		if _, err := s.venues.GetByOwnerID(ctx, user.ID); err == nil {
			return
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("venue backfill re-check failed")
			return
		}

		v := &domain.Venue{
			ID:        uuid.New(),
			OwnerID:   user.ID,
			Name:      profileName(user),
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.venues.Create(ctx, v); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("venue profile backfill failed")
		}
	}
}

// profileName defaults to the user's full name, falling back to the email
// address only when the name is entirely absent.
func profileName(user *domain.User) string {
	if name := user.FullName(); name != "" {
		return name
	}
	return user.Email
}

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

type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateMusicianRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Genres string `json:"genres"`
	City   string `json:"city"`
}

type CreateVenueRequest struct {
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type UserService struct {
	users     ports.UserRepository
	musicians ports.MusicianRepository
	venues    ports.VenueRepository
	roles     *RoleService
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, musicians ports.MusicianRepository, venues ports.VenueRepository, roles *RoleService, log zerolog.Logger) *UserService {
	return &UserService{users: users, musicians: musicians, venues: venues, roles: roles, log: log}
}

// Signup creates an account. Every authenticated account carries the
// "signed-in" role from the start; the primary role stays at the "user"
// default until a profile assigns it.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	user := &domain.User{
		ID:          uuid.New(),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Roles:       []string{domain.RoleSignedIn},
		PrimaryRole: domain.PrimaryRoleUser,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}
	return s.users.GetByID(ctx, id)
}

// ResolveRoles runs role resolution for a user.
func (s *UserService) ResolveRoles(ctx context.Context, userID string) (*domain.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}
	return s.roles.Resolve(ctx, id)
}

// CreateMusician creates a musician profile for a user. A find-first guard
// keeps a user at one musician profile; role resolution runs afterwards so
// the owner picks up the "musician" role immediately.
func (s *UserService) CreateMusician(ctx context.Context, req CreateMusicianRequest) (*domain.Musician, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	if existing, err := s.musicians.GetByUserID(ctx, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = profileName(user)
	}

	musician := &domain.Musician{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Genres:    req.Genres,
		City:      req.City,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.musicians.Create(ctx, musician); err != nil {
		return nil, fmt.Errorf("create musician: %w", err)
	}

	if _, err := s.roles.Resolve(ctx, userID); err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("role resolution after musician create failed")
	}

	return musician, nil
}

// CreateVenue mirrors CreateMusician for the venue side.
func (s *UserService) CreateVenue(ctx context.Context, req CreateVenueRequest) (*domain.Venue, error) {
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner id", domain.ErrInvalidInput)
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	if existing, err := s.venues.GetByOwnerID(ctx, ownerID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = profileName(owner)
	}

	venue := &domain.Venue{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		City:      req.City,
		Capacity:  req.Capacity,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}

	if _, err := s.roles.Resolve(ctx, ownerID); err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID.String()).Msg("role resolution after venue create failed")
	}

	return venue, nil
}

func (s *UserService) GetMusician(ctx context.Context, musicianID string) (*domain.Musician, error) {
	id, err := uuid.Parse(musicianID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid musician id", domain.ErrInvalidInput)
	}
	return s.musicians.GetByID(ctx, id)
}

func (s *UserService) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue id", domain.ErrInvalidInput)
	}
	return s.venues.GetByID(ctx, id)
}

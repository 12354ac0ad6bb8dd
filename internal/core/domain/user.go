package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PrimaryRole string

const (
	PrimaryRoleUser     PrimaryRole = "user"
	PrimaryRoleMusician PrimaryRole = "musician"
	PrimaryRoleVenue    PrimaryRole = "venue"
)

const (
	RoleSignedIn   = "signed-in"
	RoleMusician   = "musician"
	RoleVenueOwner = "venueOwner"
)

type User struct {
	ID          uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	Roles       []string
	PrimaryRole PrimaryRole
	CreatedAt   time.Time
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AddRole appends role to the user's role set if absent. Roles behave as a
// set: duplicates are never added, and nothing here ever removes a role.
// Reports whether the set changed.
func (u *User) AddRole(role string) bool {
	if u.HasRole(role) {
		return false
	}
	u.Roles = append(u.Roles, role)
	return true
}

// HasDefaultPrimaryRole reports whether the primary role has not been
// assigned yet. An empty value and the "user" default are equivalent.
func (u *User) HasDefaultPrimaryRole() bool {
	return u.PrimaryRole == "" || u.PrimaryRole == PrimaryRoleUser
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

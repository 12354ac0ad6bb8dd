package domain_test

import (
	"testing"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAddRole_IsSetLike(t *testing.T) {
	u := &domain.User{Roles: []string{domain.RoleSignedIn}}

	assert.True(t, u.AddRole(domain.RoleMusician))
	assert.False(t, u.AddRole(domain.RoleMusician))
	assert.Equal(t, []string{domain.RoleSignedIn, domain.RoleMusician}, u.Roles)

	assert.True(t, u.HasRole(domain.RoleSignedIn))
	assert.False(t, u.HasRole(domain.RoleVenueOwner))
}

func TestHasDefaultPrimaryRole(t *testing.T) {
	assert.True(t, (&domain.User{}).HasDefaultPrimaryRole())
	assert.True(t, (&domain.User{PrimaryRole: domain.PrimaryRoleUser}).HasDefaultPrimaryRole())
	assert.False(t, (&domain.User{PrimaryRole: domain.PrimaryRoleMusician}).HasDefaultPrimaryRole())
	assert.False(t, (&domain.User{PrimaryRole: domain.PrimaryRoleVenue}).HasDefaultPrimaryRole())
}

func TestFullName(t *testing.T) {
	u := &domain.User{FirstName: "Nina", LastName: "Vale"}
	assert.Equal(t, "Nina Vale", u.FullName())

	assert.Equal(t, "Nina", (&domain.User{FirstName: "Nina"}).FullName())
	assert.Equal(t, "", (&domain.User{}).FullName())
}

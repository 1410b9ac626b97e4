package policy

import (
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	anonymous = domain.Identity{}
	alice     = domain.Identity{UserID: 1, Email: "alice@test.com"}
	bob       = domain.Identity{UserID: 2, Email: "bob@test.com"}
	staff     = domain.Identity{UserID: 3, Email: "admin@test.com", IsStaff: true}

	allActions = []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionDelete}
)

func TestAllow_AuthenticatedReadStaffWrite(t *testing.T) {
	for _, action := range allActions {
		assert.False(t, Allow(AuthenticatedReadStaffWrite, anonymous, action, nil), action.String())
		assert.Equal(t, action.Safe(), Allow(AuthenticatedReadStaffWrite, alice, action, nil), action.String())
		assert.True(t, Allow(AuthenticatedReadStaffWrite, staff, action, nil), action.String())
	}
}

func TestAllow_OwnerOrStaff(t *testing.T) {
	order := &domain.Order{ID: 10, UserID: alice.UserID}

	testCases := []struct {
		name     string
		identity domain.Identity
		action   Action
		obj      Object
		expected bool
	}{
		{"anonymous list", anonymous, ActionList, nil, false},
		{"anonymous retrieve", anonymous, ActionRetrieve, order, false},
		{"owner list", alice, ActionList, nil, true},
		{"owner create", alice, ActionCreate, nil, true},
		{"owner retrieve", alice, ActionRetrieve, order, true},
		{"owner delete", alice, ActionDelete, order, true},
		{"other retrieve", bob, ActionRetrieve, order, false},
		{"other delete", bob, ActionDelete, order, false},
		{"other list", bob, ActionList, nil, true},
		{"staff retrieve", staff, ActionRetrieve, order, true},
		{"staff delete", staff, ActionDelete, order, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Allow(OwnerOrStaff, tc.identity, tc.action, tc.obj))
		})
	}
}

func TestAllow_AuthenticatedCreateStaffFull(t *testing.T) {
	for _, action := range allActions {
		assert.False(t, Allow(AuthenticatedCreateStaffFull, anonymous, action, nil), action.String())
		assert.Equal(t, action == ActionCreate, Allow(AuthenticatedCreateStaffFull, alice, action, nil), action.String())
		assert.True(t, Allow(AuthenticatedCreateStaffFull, staff, action, nil), action.String())
	}
}

func TestAllow_StaffOnly(t *testing.T) {
	for _, action := range allActions {
		assert.False(t, Allow(StaffOnly, anonymous, action, nil), action.String())
		assert.False(t, Allow(StaffOnly, alice, action, nil), action.String())
		assert.True(t, Allow(StaffOnly, staff, action, nil), action.String())
	}
}

func TestAuthorize_DistinguishesUnauthenticatedFromForbidden(t *testing.T) {
	assert.ErrorIs(t, Authorize(StaffOnly, anonymous, ActionList, nil), domain.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(StaffOnly, alice, ActionList, nil), domain.ErrForbidden)
	assert.NoError(t, Authorize(StaffOnly, staff, ActionList, nil))

	order := &domain.Order{UserID: alice.UserID}
	assert.ErrorIs(t, Authorize(OwnerOrStaff, bob, ActionRetrieve, order), domain.ErrForbidden)
	assert.NoError(t, Authorize(OwnerOrStaff, alice, ActionRetrieve, order))
}

func TestKindAndActionNames(t *testing.T) {
	assert.Equal(t, "staff_only", StaffOnly.String())
	assert.Equal(t, "owner_or_staff", OwnerOrStaff.String())
	assert.Equal(t, "delete", ActionDelete.String())
	assert.True(t, ActionRetrieve.Safe())
	assert.False(t, ActionUpdate.Safe())
}

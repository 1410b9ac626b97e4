// Package policy decides whether an identity may perform an action on a
// resource. Decisions use only the identity, the action and, for object
// checks, the owner of the object.
package policy

import "github.com/Domenick1991/airport/internal/domain"

type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Safe reports whether the action only reads.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionRetrieve:
		return "retrieve"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type Kind int

const (
	// AuthenticatedReadStaffWrite lets any signed-in identity read and staff do everything.
	AuthenticatedReadStaffWrite Kind = iota
	// OwnerOrStaff lets staff do everything and owners act on their own objects.
	OwnerOrStaff
	// AuthenticatedCreateStaffFull lets any signed-in identity create and staff do everything.
	AuthenticatedCreateStaffFull
	// StaffOnly is staff for every action.
	StaffOnly
)

func (k Kind) String() string {
	switch k {
	case AuthenticatedReadStaffWrite:
		return "authenticated_read_staff_write"
	case OwnerOrStaff:
		return "owner_or_staff"
	case AuthenticatedCreateStaffFull:
		return "authenticated_create_staff_full"
	case StaffOnly:
		return "staff_only"
	default:
		return "unknown"
	}
}

// Object is a resolved record that has an owner.
type Object interface {
	OwnerID() int64
}

// Allow evaluates kind for identity and action. obj is nil for list and
// create, and for records without an owner.
func Allow(kind Kind, identity domain.Identity, action Action, obj Object) bool {
	if !identity.Authenticated() {
		return false
	}
	if identity.IsStaff {
		return true
	}

	switch kind {
	case AuthenticatedReadStaffWrite:
		return action.Safe()
	case OwnerOrStaff:
		if obj == nil {
			return true
		}
		return obj.OwnerID() == identity.UserID
	case AuthenticatedCreateStaffFull:
		return action == ActionCreate
	default:
		return false
	}
}

// Authorize is Allow expressed as an error: ErrUnauthenticated for anonymous
// identities, ErrForbidden when the identity lacks permission.
func Authorize(kind Kind, identity domain.Identity, action Action, obj Object) error {
	if !identity.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if !Allow(kind, identity, action, obj) {
		return domain.ErrForbidden
	}
	return nil
}

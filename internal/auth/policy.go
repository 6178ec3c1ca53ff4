package auth

import "github.com/ordersuite/order-system/internal/core/domain"

// Action is a resource-agnostic operation class the policy table speaks in.
type Action string

const (
	ActionListOwn   Action = "list-own"
	ActionListAll   Action = "list-all"
	ActionMutateOwn Action = "mutate-own"
	ActionMutateAny Action = "mutate-any"
	ActionDeleteOwn Action = "delete-own"
	ActionDeleteAny Action = "delete-any"
)

// Outcome is the policy table cell value.
type Outcome int

const (
	Deny Outcome = iota
	Allow
	AllowIfOwner
)

// policy is the single authoritative (role, action) table. Lifecycle and
// state guards layer on top of it; they never widen it.
var policy = map[domain.Role]map[Action]Outcome{
	domain.RoleAdmin: {
		ActionListOwn:   Allow,
		ActionListAll:   Allow,
		ActionMutateOwn: Allow,
		ActionMutateAny: Allow,
		ActionDeleteOwn: Allow,
		ActionDeleteAny: Allow,
	},
	domain.RoleUser: {
		ActionListOwn:   Allow,
		ActionListAll:   Deny,
		ActionMutateOwn: AllowIfOwner,
		ActionMutateAny: Deny,
		ActionDeleteOwn: AllowIfOwner,
		ActionDeleteAny: Deny,
	},
	domain.RoleEngineer: {
		ActionListOwn:   Allow,
		ActionListAll:   Deny,
		ActionMutateOwn: AllowIfOwner,
		ActionMutateAny: Deny,
		ActionDeleteOwn: Deny,
		ActionDeleteAny: Deny,
	},
}

// Authorize decides whether the subject behind claims may perform action on
// a resource owned by resourceOwnerID. Denials surface as ErrForbidden;
// missing or unknown roles deny as well.
func Authorize(claims *Claims, action Action, resourceOwnerID string) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	role, ok := claims.UserRole()
	if !ok {
		return domain.ErrForbidden
	}
	switch policy[role][action] {
	case Allow:
		return nil
	case AllowIfOwner:
		if claims.UserID != "" && claims.UserID == resourceOwnerID {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}

// Package authz holds the pure authorization rules shared by every
// resource service. Decisions are computed from the actor and the
// resource's ownership metadata alone; no storage access happens here.
package authz

import (
	"github.com/google/uuid"

	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
	"github.com/bazaarlabs/bazaar-backend/pkg/errors"
)

// Actor is the caller as resolved by the auth middleware. A zero Actor
// (Authenticated=false) represents an anonymous request.
type Actor struct {
	ID            uuid.UUID
	Category      enums.AccountCategory
	Authenticated bool
}

// Action is the operation the actor is attempting.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
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

// Decision is the tri-state-plus-deny outcome of an authorization check.
// Services must branch on Decision, never on a bare bool, so that 401,
// 403 and 404 outcomes stay distinguishable.
type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Err maps a denial to the transport error taxonomy. Allow maps to nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case Unauthorized:
		return errors.New(errors.CodeUnauthorized, "authentication required")
	case Forbidden:
		return errors.New(errors.CodeForbidden, "access denied")
	case NotFound:
		return errors.New(errors.CodeNotFound, "resource not found")
	default:
		return errors.New(errors.CodeInternal, "unknown authorization decision")
	}
}

// Catalog decides Product and ProductStock access. owner is the vendor
// that owns the stock row, or nil for ownerless resources (Product), in
// which case only admins may mutate.
func Catalog(actor Actor, action Action, owner *uuid.UUID) Decision {
	if !actor.Authenticated {
		return Unauthorized
	}
	switch action {
	case ActionRead:
		return Allow
	case ActionCreate:
		if actor.Category == enums.AccountCategoryVendor || actor.Category == enums.AccountCategoryAdmin {
			return Allow
		}
		return Forbidden
	case ActionUpdate, ActionDelete:
		if actor.Category == enums.AccountCategoryAdmin {
			return Allow
		}
		if actor.Category == enums.AccountCategoryVendor && owner != nil && *owner == actor.ID {
			return Allow
		}
		return Forbidden
	default:
		return Forbidden
	}
}

// Cart gates cart access by category. Row ownership is enforced by
// consumer-scoped lookups in the repository, not here, so a foreign
// cart id surfaces as a missing row rather than a denial.
func Cart(actor Actor, action Action) Decision {
	if !actor.Authenticated {
		return Unauthorized
	}
	if actor.Category == enums.AccountCategoryConsumer || actor.Category == enums.AccountCategoryAdmin {
		return Allow
	}
	return Forbidden
}

// Transaction permits reads for any authenticated actor. Transactions
// are immutable; no other action is ever allowed.
func Transaction(actor Actor, action Action) Decision {
	if !actor.Authenticated {
		return Unauthorized
	}
	if action == ActionRead {
		return Allow
	}
	return Forbidden
}

// AccountList restricts account listing to admins.
func AccountList(actor Actor) Decision {
	if !actor.Authenticated {
		return Unauthorized
	}
	if actor.Category == enums.AccountCategoryAdmin {
		return Allow
	}
	return Forbidden
}

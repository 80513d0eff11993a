// Package controller holds the six role-scoped view controllers and the
// router that maps a resolved session to exactly one of them. Controllers
// expose Load, Refresh and a current-state snapshot; the delivery layer is a
// thin subscriber on top.
package controller

import (
	"context"

	"medisync/internal/domain/entity"
	"medisync/internal/session"
)

// View is one role's dashboard controller.
type View interface {
	Name() string
	// Load fetches the view's role-scoped record set.
	Load(ctx context.Context) error
	// Refresh refetches on demand. Concurrent refreshes are not ordered;
	// the last response to land wins the snapshot.
	Refresh(ctx context.Context) error
	// State returns the current snapshot for rendering.
	State() interface{}
}

// ViewFactory binds a view to one authenticated session.
type ViewFactory func(sess *session.Session) View

// Router maps a role to its view factory. Unknown roles, including role
// strings outside the enum, get the fallback view; Resolve never panics.
type Router struct {
	factories map[entity.Role]ViewFactory
}

func NewRouter(admin, frontOffice, doctor, nurse, pharmacy, patient ViewFactory) *Router {
	return &Router{
		factories: map[entity.Role]ViewFactory{
			entity.RoleAdmin:       admin,
			entity.RoleFrontOffice: frontOffice,
			entity.RoleDoctor:      doctor,
			entity.RoleNurse:       nurse,
			entity.RolePharmacist:  pharmacy,
			entity.RolePatient:     patient,
		},
	}
}

// Resolve returns the view for the session's role, or the fallback.
func (r *Router) Resolve(sess *session.Session) View {
	if sess != nil {
		if factory, ok := r.factories[sess.Role]; ok && factory != nil {
			return factory(sess)
		}
	}
	return &fallbackView{}
}

// fallbackView renders "role not recognized" for anything outside the enum.
type fallbackView struct{}

func (v *fallbackView) Name() string { return "unknown_role" }

func (v *fallbackView) Load(ctx context.Context) error { return nil }

func (v *fallbackView) Refresh(ctx context.Context) error { return nil }

func (v *fallbackView) State() interface{} {
	return map[string]string{
		"message": "Your account role is not recognized. Please contact your administrator.",
	}
}

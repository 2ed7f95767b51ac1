package utils

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   string
	Role string
}

// Resource describes what is being acted on: who owns it and which roles may
// touch it regardless of ownership.
type Resource struct {
	OwnerID      string
	AllowedRoles []string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// CanAct decides whether the actor may perform an action on the resource.
// Admins may act on anything; owners may act on their own resources; otherwise
// the actor's role must be in the allowed set.
func CanAct(actor Actor, resource Resource) bool {
	if actor.IsAdmin() {
		return true
	}
	if resource.OwnerID != "" && actor.ID == resource.OwnerID {
		return true
	}
	for _, role := range resource.AllowedRoles {
		if actor.Role == role {
			return true
		}
	}
	return false
}

// OwnsOrAdmin is the common owner-or-admin check.
func OwnsOrAdmin(actor Actor, ownerID string) bool {
	return CanAct(actor, Resource{OwnerID: ownerID})
}

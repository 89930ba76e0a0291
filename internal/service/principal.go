package service

import (
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
)

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID   uint
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// OrderScope is the set of orders p may read or change.
func (p Principal) OrderScope() repo.Scope {
	if p.IsAdmin() {
		return repo.AnyOrder()
	}
	return repo.OwnedBy(p.UserID)
}

package repo

import "gorm.io/gorm"

type scopeKind uint8

const (
	scopeNone scopeKind = iota
	scopeAny
	scopeOwned
)

// Scope restricts which orders a query may see. The zero value matches
// nothing; callers pick AnyOrder or OwnedBy explicitly.
type Scope struct {
	kind    scopeKind
	ownerID uint
}

func AnyOrder() Scope { return Scope{kind: scopeAny} }

func OwnedBy(userID uint) Scope { return Scope{kind: scopeOwned, ownerID: userID} }

func (s Scope) apply(q *gorm.DB) *gorm.DB {
	switch s.kind {
	case scopeAny:
		return q
	case scopeOwned:
		return q.Where("orders.user_id = ?", s.ownerID)
	default:
		return q.Where("1 = 0")
	}
}

// Package authz decides whether an identity may act on a company. It is a
// pure policy evaluator: every mutating route consults it exactly once
// before any write, instead of re-implementing membership checks per route.
package authz

import (
	"errors"

	"hireboard-backend/pkg/models"
)

// Level is the access level granted to an identity for a company.
// Higher levels imply the rights of lower ones.
type Level int

const (
	// LevelNone means all checks failed.
	LevelNone Level = iota
	// LevelRecruiter means the identity is in the company's recruiters set.
	LevelRecruiter
	// LevelAdmin means the identity is in the company's admins set.
	LevelAdmin
	// LevelSystem means the identity carries the global admin claim and
	// may act on any company.
	LevelSystem
)

var (
	// ErrUnauthenticated indicates no identity was resolvable (401).
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates an authenticated identity failed every check (403).
	ErrForbidden = errors.New("not authorized for this company")
)

// Evaluate returns the access level of identity for company. Check order is
// fixed: system admin short-circuits, then company admin, then recruiter.
func Evaluate(identity *models.Identity, company *models.Company) (Level, error) {
	if identity == nil || identity.ID == "" {
		return LevelNone, ErrUnauthenticated
	}
	if identity.IsSystemAdmin() {
		return LevelSystem, nil
	}
	if company != nil {
		if company.HasAdmin(identity.ID) {
			return LevelAdmin, nil
		}
		if company.HasRecruiter(identity.ID) {
			return LevelRecruiter, nil
		}
	}
	return LevelNone, ErrForbidden
}

// RequireAdmin returns nil when identity is a system admin or an admin of
// company, ErrUnauthenticated or ErrForbidden otherwise.
func RequireAdmin(identity *models.Identity, company *models.Company) error {
	level, err := Evaluate(identity, company)
	if err != nil {
		return err
	}
	if level < LevelAdmin {
		return ErrForbidden
	}
	return nil
}

// RequireRecruiter returns nil when identity holds at least recruiter
// access on company.
func RequireRecruiter(identity *models.Identity, company *models.Company) error {
	_, err := Evaluate(identity, company)
	return err
}

// RequireSystemAdmin returns nil only for the global admin claim.
func RequireSystemAdmin(identity *models.Identity) error {
	if identity == nil || identity.ID == "" {
		return ErrUnauthenticated
	}
	if !identity.IsSystemAdmin() {
		return ErrForbidden
	}
	return nil
}

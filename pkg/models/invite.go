package models

import "time"

// InviteRole is the company role an invite grants on redemption.
type InviteRole string

const (
	InviteRoleRecruiter InviteRole = "recruiter"
	InviteRoleAdmin     InviteRole = "admin"
)

// Invite is a single-use, time-boxed token granting company membership.
// Expiry is evaluated at read time; there is no background sweep.
type Invite struct {
	ID        string     `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyID string     `json:"company_id" bson:"company_id" db:"company_id"`
	Email     string     `json:"email" bson:"email" db:"email"`
	Role      InviteRole `json:"role" bson:"role" db:"role"`
	Token     string     `json:"token" bson:"token" db:"token"`
	CreatedBy string     `json:"created_by" bson:"created_by" db:"created_by"`
	Used      bool       `json:"used" bson:"used" db:"used"`
	ExpiresAt time.Time  `json:"expires_at" bson:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// Expired reports whether the invite is past its window. The boundary is
// inclusive: an invite expiring exactly at now is already expired.
func (i *Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// InviteCreateRequest represents the request payload for issuing an invite
type InviteCreateRequest struct {
	Email string     `json:"email"`
	Role  InviteRole `json:"role"`
}

// InviteVerification is the public view of a pending invite. The token is
// deliberately omitted so a verify response never re-leaks it.
type InviteVerification struct {
	CompanyName string     `json:"company_name"`
	Role        InviteRole `json:"role"`
	Email       string     `json:"email"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

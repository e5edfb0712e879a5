package models

import "time"

// RecruiterRequestStatus is the approval-queue state for a recruiter signup.
type RecruiterRequestStatus string

const (
	RecruiterPending  RecruiterRequestStatus = "pending"
	RecruiterApproved RecruiterRequestStatus = "approved"
	RecruiterRejected RecruiterRequestStatus = "rejected"
)

// RecruiterRequest is a pending request to join a company as recruiter.
// Distinct from the company's recruiters set: this is the queue record.
// Only one transition out of pending is valid; approved and rejected are
// terminal.
type RecruiterRequest struct {
	ID         string                 `json:"id" bson:"_id,omitempty" db:"id"`
	UserID     string                 `json:"user_id" bson:"user_id" db:"user_id"`
	CompanyID  string                 `json:"company_id" bson:"company_id" db:"company_id"`
	Status     RecruiterRequestStatus `json:"status" bson:"status" db:"status"`
	ApprovedBy string                 `json:"approved_by,omitempty" bson:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt *time.Time             `json:"approved_at,omitempty" bson:"approved_at,omitempty" db:"approved_at"`
	CreatedAt  time.Time              `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// RecruiterApplyRequest represents the payload to request recruiter access
type RecruiterApplyRequest struct {
	CompanyID string `json:"company_id"`
}

// RecruiterRejectRequest carries the optional free-text rejection reason.
// The reason is echoed back to the caller but not persisted.
type RecruiterRejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

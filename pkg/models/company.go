package models

import "time"

// Company groups recruiters under a shared business identity. The three
// membership fields are sets of user ids; the store layer guarantees no
// duplicates regardless of call ordering.
type Company struct {
	ID                string    `json:"id" bson:"_id,omitempty" db:"id"`
	Name              string    `json:"name" bson:"name" db:"name"`
	CNPJ              string    `json:"cnpj" bson:"cnpj" db:"cnpj"`
	Description       string    `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	Admins            []string  `json:"admins" bson:"admins" db:"admins"`
	Recruiters        []string  `json:"recruiters" bson:"recruiters" db:"recruiters"`
	PendingRecruiters []string  `json:"pending_recruiters" bson:"pending_recruiters" db:"pending_recruiters"`
	Followers         []string  `json:"-" bson:"followers" db:"followers"`
	FollowersCount    int64     `json:"followers_count" bson:"followers_count" db:"followers_count"`
	JobsCount         int64     `json:"jobs_count" bson:"jobs_count" db:"jobs_count"`
	Verified          bool      `json:"verified" bson:"verified" db:"verified"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// HasAdmin reports whether userID is in the company's admin set.
func (c *Company) HasAdmin(userID string) bool {
	return containsID(c.Admins, userID)
}

// HasRecruiter reports whether userID is in the company's recruiter set.
func (c *Company) HasRecruiter(userID string) bool {
	return containsID(c.Recruiters, userID)
}

// HasPendingRecruiter reports whether userID awaits recruiter approval.
func (c *Company) HasPendingRecruiter(userID string) bool {
	return containsID(c.PendingRecruiters, userID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// CompanyCreateRequest represents the request payload for company creation
type CompanyCreateRequest struct {
	Name        string `json:"name"`
	CNPJ        string `json:"cnpj"`
	Description string `json:"description"`
}

// AddAdminRequest represents the system-admin request to append a company admin
type AddAdminRequest struct {
	UserID string `json:"user_id"`
}

package models

import "time"

// Job is a posting owned by a company and created by one of its recruiters.
// Views and ApplicationsCount are maintained with atomic increments at the
// store layer, never read-modify-write.
type Job struct {
	ID                string    `json:"id" bson:"_id,omitempty" db:"id"`
	CompanyID         string    `json:"company_id" bson:"company_id" db:"company_id"`
	CreatedBy         string    `json:"created_by" bson:"created_by" db:"created_by"`
	Title             string    `json:"title" bson:"title" db:"title"`
	Description       string    `json:"description,omitempty" bson:"description,omitempty" db:"description"`
	Skills            []string  `json:"skills,omitempty" bson:"skills,omitempty" db:"skills"`
	Location          string    `json:"location,omitempty" bson:"location,omitempty" db:"location"`
	Views             int64     `json:"views" bson:"views" db:"views"`
	ApplicationsCount int64     `json:"applications_count" bson:"applications_count" db:"applications_count"`
	Active            bool      `json:"active" bson:"active" db:"active"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// JobApplication records one user's application to one job.
type JobApplication struct {
	ID         string    `json:"id" bson:"_id,omitempty" db:"id"`
	JobID      string    `json:"job_id" bson:"job_id" db:"job_id"`
	UserID     string    `json:"user_id" bson:"user_id" db:"user_id"`
	MatchScore int       `json:"match_score" bson:"match_score" db:"match_score"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// JobCreateRequest represents the request payload for posting a job
type JobCreateRequest struct {
	CompanyID   string   `json:"company_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location"`
}

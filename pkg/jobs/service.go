package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hireboard-backend/pkg/authz"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/models"
)

var (
	// ErrAlreadyApplied signals a second application to the same job.
	ErrAlreadyApplied = errors.New("already applied to this job")
	// ErrValidation wraps bad input rejected by the service itself.
	ErrValidation = errors.New("invalid request")
)

// Service owns job postings and applications.
type Service struct {
	store database.Store
	now   func() time.Time
}

func NewService(store database.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create posts a job under companyID. Any recruiter of the company may
// post; the company's job counter moves with the posting.
func (s *Service) Create(ctx context.Context, identity *models.Identity, companyID string, req *models.JobCreateRequest) (*models.Job, error) {
	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireRecruiter(identity, company); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	job := &models.Job{
		CompanyID:   company.ID,
		CreatedBy:   identity.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Skills:      req.Skills,
		Location:    req.Location,
		Active:      true,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	if err := s.store.IncrementCompanyJobs(ctx, company.ID, 1); err != nil {
		return nil, err
	}

	logs.Logger.WithFields(logrus.Fields{
		"job_id":     job.ID,
		"company_id": company.ID,
		"created_by": identity.ID,
	}).Info("job created")
	return job, nil
}

// Get returns a job and counts the view. The counter is a store-level
// increment, so concurrent reads never lose updates; the read after it
// reports the counter as stored, not a locally bumped copy.
func (s *Service) Get(ctx context.Context, id string) (*models.Job, error) {
	if err := s.store.IncrementJobViews(ctx, id); err != nil {
		return nil, err
	}
	return s.store.GetJobByID(ctx, id)
}

// ListByCompany returns all jobs posted by a company.
func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	if _, err := s.store.GetCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}
	return s.store.ListJobsByCompany(ctx, companyID)
}

// Apply records an application from identity to jobID, scoring the match
// between the job's required skills and the applicant's.
func (s *Service) Apply(ctx context.Context, identity *models.Identity, jobID string) (*models.JobApplication, error) {
	if identity == nil || identity.ID == "" {
		return nil, authz.ErrUnauthenticated
	}

	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetJobApplication(ctx, job.ID, user.ID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	app := &models.JobApplication{
		JobID:      job.ID,
		UserID:     user.ID,
		MatchScore: MatchScore(job.Skills, user.Skills),
	}
	if err := s.store.CreateJobApplication(ctx, app); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	if err := s.store.IncrementJobApplications(ctx, job.ID); err != nil {
		return nil, err
	}

	logs.Logger.WithFields(logrus.Fields{
		"job_id":      job.ID,
		"user_id":     user.ID,
		"match_score": app.MatchScore,
	}).Info("job application created")
	return app, nil
}

// MatchScore is the percentage of required skills the candidate holds,
// compared case-insensitively. A job with no required skills scores 100.
func MatchScore(required, have []string) int {
	if len(required) == 0 {
		return 100
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, skill := range have {
		haveSet[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}
	matched := 0
	for _, skill := range required {
		if _, ok := haveSet[strings.ToLower(strings.TrimSpace(skill))]; ok {
			matched++
		}
	}
	return matched * 100 / len(required)
}

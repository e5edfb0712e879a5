package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hireboard-backend/pkg/models"
)

// MemoryStore is an in-memory Store used in development and tests. All
// conditional operations hold the store lock, so they are atomic with
// respect to each other just like their mongo/postgres counterparts.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	companies     map[string]*models.Company
	invites       map[string]*models.Invite // keyed by token
	requests      map[string]*models.RecruiterRequest
	jobs          map[string]*models.Job
	applications  map[string]*models.JobApplication
	notifications map[string]*models.Notification
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		companies:     make(map[string]*models.Company),
		invites:       make(map[string]*models.Invite),
		requests:      make(map[string]*models.RecruiterRequest),
		jobs:          make(map[string]*models.Job),
		applications:  make(map[string]*models.JobApplication),
		notifications: make(map[string]*models.Notification),
	}
}

// Users

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *MemoryStore) SetUserMembership(ctx context.Context, userID, companyID string, role models.UserRole, isRecruiter bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.CompanyID = companyID
	u.Role = role
	u.IsRecruiter = isRecruiter
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) SetUserStatus(ctx context.Context, userID string, status models.UserStatus, onboardingCompleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	u.OnboardingCompleted = onboardingCompleted
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Companies

func (s *MemoryStore) CreateCompany(ctx context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.companies {
		if c.CNPJ == company.CNPJ {
			return ErrDuplicate
		}
	}
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	company.CreatedAt = time.Now().UTC()
	company.UpdatedAt = company.CreatedAt

	cp := *company
	s.companies[company.ID] = &cp
	return nil
}

func (s *MemoryStore) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companyCopy(id)
}

func (s *MemoryStore) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, c := range s.companies {
		if c.CNPJ == cnpj {
			return s.companyCopy(id)
		}
	}
	return nil, ErrNotFound
}

// companyCopy must be called with the lock held.
func (s *MemoryStore) companyCopy(id string) (*models.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	cp.Admins = append([]string(nil), c.Admins...)
	cp.Recruiters = append([]string(nil), c.Recruiters...)
	cp.PendingRecruiters = append([]string(nil), c.PendingRecruiters...)
	cp.Followers = append([]string(nil), c.Followers...)
	return &cp, nil
}

func (s *MemoryStore) AddCompanyAdmin(ctx context.Context, companyID, userID string) error {
	return s.addToSet(companyID, userID, func(c *models.Company) *[]string { return &c.Admins })
}

func (s *MemoryStore) AddCompanyRecruiter(ctx context.Context, companyID, userID string) error {
	return s.addToSet(companyID, userID, func(c *models.Company) *[]string { return &c.Recruiters })
}

func (s *MemoryStore) AddPendingRecruiter(ctx context.Context, companyID, userID string) error {
	return s.addToSet(companyID, userID, func(c *models.Company) *[]string { return &c.PendingRecruiters })
}

func (s *MemoryStore) RemovePendingRecruiter(ctx context.Context, companyID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[companyID]
	if !ok {
		return ErrNotFound
	}
	c.PendingRecruiters = removeID(c.PendingRecruiters, userID)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) addToSet(companyID, userID string, field func(*models.Company) *[]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[companyID]
	if !ok {
		return ErrNotFound
	}
	set := field(c)
	for _, id := range *set {
		if id == userID {
			return nil
		}
	}
	*set = append(*set, userID)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) AddCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[companyID]
	if !ok {
		return false, ErrNotFound
	}
	for _, id := range c.Followers {
		if id == userID {
			return false, nil
		}
	}
	c.Followers = append(c.Followers, userID)
	c.FollowersCount++
	c.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) RemoveCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[companyID]
	if !ok {
		return false, ErrNotFound
	}
	before := len(c.Followers)
	c.Followers = removeID(c.Followers, userID)
	if len(c.Followers) == before {
		return false, nil
	}
	c.FollowersCount--
	c.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *MemoryStore) IncrementCompanyJobs(ctx context.Context, companyID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[companyID]
	if !ok {
		return ErrNotFound
	}
	c.JobsCount += delta
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Invites

func (s *MemoryStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invites[invite.Token]; ok {
		return ErrDuplicate
	}
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}
	invite.CreatedAt = time.Now().UTC()
	invite.UpdatedAt = invite.CreatedAt

	cp := *invite
	s.invites[invite.Token] = &cp
	return nil
}

func (s *MemoryStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invites[token]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *MemoryStore) ClaimInvite(ctx context.Context, token string) (*models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invites[token]
	if !ok || inv.Used {
		return nil, ErrNotFound
	}
	inv.Used = true
	inv.UpdatedAt = time.Now().UTC()
	cp := *inv
	return &cp, nil
}

// Recruiter requests

func (s *MemoryStore) CreateRecruiterRequest(ctx context.Context, req *models.RecruiterRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt

	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *MemoryStore) GetRecruiterRequestByID(ctx context.Context, id string) (*models.RecruiterRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) GetPendingRecruiterRequest(ctx context.Context, userID, companyID string) (*models.RecruiterRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.UserID == userID && r.CompanyID == companyID && r.Status == models.RecruiterPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListRecruiterRequestsByCompany(ctx context.Context, companyID string, status models.RecruiterRequestStatus) ([]models.RecruiterRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.RecruiterRequest
	for _, r := range s.requests {
		if r.CompanyID != companyID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) TransitionRecruiterRequest(ctx context.Context, id string, to models.RecruiterRequestStatus, approvedBy string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return false, nil
	}
	if r.Status != models.RecruiterPending {
		return false, nil
	}
	r.Status = to
	r.ApprovedBy = approvedBy
	r.ApprovedAt = &at
	r.UpdatedAt = time.Now().UTC()
	return true, nil
}

// Jobs

func (s *MemoryStore) CreateJob(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now().UTC()
	job.UpdatedAt = job.CreatedAt

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

func (s *MemoryStore) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *j
	cp.Skills = append([]string(nil), j.Skills...)
	return &cp, nil
}

func (s *MemoryStore) IncrementJobViews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	j.Views++
	return nil
}

func (s *MemoryStore) ListJobsByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Job
	for _, j := range s.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CreateJobApplication(ctx context.Context, app *models.JobApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.applications {
		if a.JobID == app.JobID && a.UserID == app.UserID {
			return ErrDuplicate
		}
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now().UTC()

	cp := *app
	s.applications[app.ID] = &cp
	return nil
}

func (s *MemoryStore) GetJobApplication(ctx context.Context, jobID, userID string) (*models.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.applications {
		if a.JobID == jobID && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) IncrementJobApplications(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	j.ApplicationsCount++
	return nil
}

// Notifications

func (s *MemoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now().UTC()

	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *MemoryStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	if n.Read {
		return false, nil
	}
	n.Read = true
	return true, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/models"
)

var (
	// ErrNotFound indicates the referenced document does not exist, or a
	// conditional update matched zero documents.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint violation (email, cnpj,
	// invite token, one application per user and job).
	ErrDuplicate = errors.New("duplicate key")
)

// Store is the document-store boundary. Implementations must make the
// conditional operations (ClaimInvite, TransitionRecruiterRequest, the
// set/counter writes) atomic: no read-then-write sequences.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// SetUserMembership sets company linkage, role and recruiter flag in
	// one write.
	SetUserMembership(ctx context.Context, userID, companyID string, role models.UserRole, isRecruiter bool) error
	SetUserStatus(ctx context.Context, userID string, status models.UserStatus, onboardingCompleted bool) error

	// Companies. The Add*/Remove* calls are duplicate-safe set writes.
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompanyByID(ctx context.Context, id string) (*models.Company, error)
	GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error)
	AddCompanyAdmin(ctx context.Context, companyID, userID string) error
	AddCompanyRecruiter(ctx context.Context, companyID, userID string) error
	AddPendingRecruiter(ctx context.Context, companyID, userID string) error
	RemovePendingRecruiter(ctx context.Context, companyID, userID string) error
	// AddCompanyFollower reports whether the follower was actually added;
	// the followers counter moves only on a real membership change.
	AddCompanyFollower(ctx context.Context, companyID, userID string) (bool, error)
	RemoveCompanyFollower(ctx context.Context, companyID, userID string) (bool, error)
	IncrementCompanyJobs(ctx context.Context, companyID string, delta int64) error

	// Invites
	CreateInvite(ctx context.Context, invite *models.Invite) error
	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	// ClaimInvite flips used from false to true in a single conditional
	// update and returns the claimed invite. ErrNotFound means the token
	// does not exist or was already claimed by a concurrent request.
	ClaimInvite(ctx context.Context, token string) (*models.Invite, error)

	// Recruiter approval queue
	CreateRecruiterRequest(ctx context.Context, req *models.RecruiterRequest) error
	GetRecruiterRequestByID(ctx context.Context, id string) (*models.RecruiterRequest, error)
	GetPendingRecruiterRequest(ctx context.Context, userID, companyID string) (*models.RecruiterRequest, error)
	ListRecruiterRequestsByCompany(ctx context.Context, companyID string, status models.RecruiterRequestStatus) ([]models.RecruiterRequest, error)
	// TransitionRecruiterRequest moves a pending record to a terminal
	// status. It reports false when the record was not pending anymore,
	// which callers surface as "request already processed".
	TransitionRecruiterRequest(ctx context.Context, id string, to models.RecruiterRequestStatus, approvedBy string, at time.Time) (bool, error)

	// Jobs
	CreateJob(ctx context.Context, job *models.Job) error
	GetJobByID(ctx context.Context, id string) (*models.Job, error)
	IncrementJobViews(ctx context.Context, id string) error
	ListJobsByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	CreateJobApplication(ctx context.Context, app *models.JobApplication) error
	GetJobApplication(ctx context.Context, jobID, userID string) (*models.JobApplication, error)
	IncrementJobApplications(ctx context.Context, jobID string) error

	// Notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) (bool, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New selects a Store implementation from configuration.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Database.Driver {
	case "mongo":
		return NewMongoStore(ctx, cfg.Database.MongoURI, cfg.Database.MongoDatabase)
	case "postgres":
		return NewPostgresStore(cfg.Database.PostgresDSN)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

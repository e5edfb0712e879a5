package membership

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"hireboard-backend/pkg/authz"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/notify"
)

// RecruiterService manages the self-service recruiter approval queue.
type RecruiterService struct {
	store database.Store
	sink  *notify.Sink
	now   func() time.Time
}

func NewRecruiterService(store database.Store, sink *notify.Sink) *RecruiterService {
	return &RecruiterService{store: store, sink: sink, now: time.Now}
}

// Apply queues a recruiter request for identity against companyID. The
// account goes to pending standing until an admin decides.
func (s *RecruiterService) Apply(ctx context.Context, identity *models.Identity, companyID string) (*models.RecruiterRequest, error) {
	if identity == nil || identity.ID == "" {
		return nil, authz.ErrUnauthenticated
	}

	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if user.CompanyID != "" && user.CompanyID != company.ID {
		return nil, ErrOtherCompany
	}
	if company.HasRecruiter(user.ID) {
		return nil, ErrAlreadyMember
	}
	if _, err := s.store.GetPendingRecruiterRequest(ctx, user.ID, company.ID); err == nil {
		return nil, ErrRequestExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	req := &models.RecruiterRequest{
		UserID:    user.ID,
		CompanyID: company.ID,
		Status:    models.RecruiterPending,
	}
	if err := s.store.CreateRecruiterRequest(ctx, req); err != nil {
		return nil, err
	}
	if err := s.store.AddPendingRecruiter(ctx, company.ID, user.ID); err != nil {
		return nil, err
	}
	if err := s.store.SetUserStatus(ctx, user.ID, models.StatusPending, user.OnboardingCompleted); err != nil {
		return nil, err
	}

	for _, adminID := range company.Admins {
		s.sink.Notify(models.Notification{
			UserID:        adminID,
			Type:          "recruiter_request",
			Title:         "New recruiter request",
			Message:       user.Name + " wants to join " + company.Name + " as a recruiter",
			Link:          "/companies/" + company.ID + "/recruiters/pending",
			RelatedUserID: user.ID,
		})
	}

	logs.Logger.WithFields(logrus.Fields{
		"company_id": company.ID,
		"user_id":    user.ID,
		"request_id": req.ID,
	}).Info("recruiter request created")
	return req, nil
}

// Approve transitions a pending request to approved and grants recruiter
// membership. The status transition is a compare-and-swap on pending, so
// concurrent decisions resolve to exactly one winner; the grants after it
// are idempotent and safe to replay.
func (s *RecruiterService) Approve(ctx context.Context, identity *models.Identity, requestID string) (*models.RecruiterRequest, error) {
	req, company, err := s.loadForDecision(ctx, identity, requestID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	ok, err := s.store.TransitionRecruiterRequest(ctx, req.ID, models.RecruiterApproved, identity.ID, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestDone
	}

	if err := s.store.AddCompanyRecruiter(ctx, company.ID, req.UserID); err != nil {
		return nil, err
	}
	if err := s.store.RemovePendingRecruiter(ctx, company.ID, req.UserID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUserMembership(ctx, user.ID, company.ID, user.Role, true); err != nil {
		return nil, err
	}
	if err := s.store.SetUserStatus(ctx, user.ID, models.StatusActive, true); err != nil {
		return nil, err
	}

	s.notifyDecision(user, company, "recruiter_approved", "Recruiter access approved",
		"You are now a recruiter at "+company.Name, "recruiter_approved")

	req.Status = models.RecruiterApproved
	req.ApprovedBy = identity.ID
	req.ApprovedAt = &at

	logs.Logger.WithFields(logrus.Fields{
		"request_id": req.ID,
		"company_id": company.ID,
		"user_id":    req.UserID,
		"decided_by": identity.ID,
	}).Info("recruiter request approved")
	return req, nil
}

// Reject transitions a pending request to rejected and suspends the
// applicant's account. The reason is echoed in the notification but not
// persisted on the request.
func (s *RecruiterService) Reject(ctx context.Context, identity *models.Identity, requestID, reason string) (*models.RecruiterRequest, error) {
	req, company, err := s.loadForDecision(ctx, identity, requestID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	ok, err := s.store.TransitionRecruiterRequest(ctx, req.ID, models.RecruiterRejected, identity.ID, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestDone
	}

	if err := s.store.RemovePendingRecruiter(ctx, company.ID, req.UserID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUserStatus(ctx, user.ID, models.StatusSuspended, user.OnboardingCompleted); err != nil {
		return nil, err
	}

	message := "Your recruiter request for " + company.Name + " was rejected"
	if reason != "" {
		message += ": " + reason
	}
	s.notifyDecision(user, company, "recruiter_rejected", "Recruiter access rejected", message, "recruiter_rejected")

	req.Status = models.RecruiterRejected
	req.ApprovedBy = identity.ID
	req.ApprovedAt = &at

	logs.Logger.WithFields(logrus.Fields{
		"request_id": req.ID,
		"company_id": company.ID,
		"user_id":    req.UserID,
		"decided_by": identity.ID,
	}).Info("recruiter request rejected")
	return req, nil
}

// ListPending returns a company's pending recruiter requests, visible to
// its admins only.
func (s *RecruiterService) ListPending(ctx context.Context, identity *models.Identity, companyID string) ([]models.RecruiterRequest, error) {
	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireAdmin(identity, company); err != nil {
		return nil, err
	}
	return s.store.ListRecruiterRequestsByCompany(ctx, company.ID, models.RecruiterPending)
}

func (s *RecruiterService) loadForDecision(ctx context.Context, identity *models.Identity, requestID string) (*models.RecruiterRequest, *models.Company, error) {
	req, err := s.store.GetRecruiterRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	company, err := s.store.GetCompanyByID(ctx, req.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if err := authz.RequireAdmin(identity, company); err != nil {
		return nil, nil, err
	}
	if req.Status != models.RecruiterPending {
		return nil, nil, ErrRequestDone
	}
	return req, company, nil
}

func (s *RecruiterService) notifyDecision(user *models.User, company *models.Company, typ, title, message, template string) {
	s.sink.Notify(models.Notification{
		UserID:  user.ID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    "/companies/" + company.ID,
	})
	s.sink.Mail(notify.Email{
		To:       user.Email,
		Subject:  title,
		Template: template,
		Variables: map[string]string{
			"company": company.Name,
			"name":    user.Name,
		},
	})
}

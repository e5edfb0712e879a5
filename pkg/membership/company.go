package membership

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
	"hireboard-backend/pkg/notify"
)

// CompanyService owns company creation and admin assignment.
type CompanyService struct {
	store database.Store
	sink  *notify.Sink
	now   func() time.Time
}

func NewCompanyService(store database.Store, sink *notify.Sink) *CompanyService {
	return &CompanyService{store: store, sink: sink, now: time.Now}
}

// Create registers a company and promotes the creator to its first admin.
// The creator lands in both the admins and recruiters sets, so admin-only
// checks and recruiter-only checks both pass for them.
func (s *CompanyService) Create(ctx context.Context, identity *models.Identity, req *models.CompanyCreateRequest) (*models.Company, error) {
	if identity == nil || identity.ID == "" {
		return nil, authz.ErrUnauthenticated
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.CNPJ) == "" {
		return nil, fmt.Errorf("%w: name and cnpj are required", ErrValidation)
	}

	user, err := s.store.GetUserByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != "" {
		return nil, ErrOtherCompany
	}

	if _, err := s.store.GetCompanyByCNPJ(ctx, strings.TrimSpace(req.CNPJ)); err == nil {
		return nil, ErrCNPJTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	company := &models.Company{
		Name:        strings.TrimSpace(req.Name),
		CNPJ:        strings.TrimSpace(req.CNPJ),
		Description: strings.TrimSpace(req.Description),
		Admins:      []string{user.ID},
		Recruiters:  []string{user.ID},
	}
	if err := s.store.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrCNPJTaken
		}
		return nil, err
	}

	if err := s.store.SetUserMembership(ctx, user.ID, company.ID, user.Role, true); err != nil {
		return nil, err
	}
	if err := s.store.SetUserStatus(ctx, user.ID, models.StatusActive, true); err != nil {
		return nil, err
	}

	logs.Logger.WithFields(logrus.Fields{
		"company_id": company.ID,
		"user_id":    user.ID,
	}).Info("company created")
	return company, nil
}

// Get returns a company by id.
func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.store.GetCompanyByID(ctx, id)
}

// AddAdmin appends a user to the company's admin set. Only the global
// system admin may call this. The target joins admins only: admin rights
// do not imply recruiter rights when granted this way.
func (s *CompanyService) AddAdmin(ctx context.Context, identity *models.Identity, companyID, userID string) (*models.Company, error) {
	if err := authz.RequireSystemAdmin(identity); err != nil {
		return nil, err
	}

	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if company.HasAdmin(user.ID) {
		return nil, ErrAlreadyAdmin
	}
	if user.CompanyID != "" && user.CompanyID != company.ID {
		return nil, ErrOtherCompany
	}

	if err := s.store.AddCompanyAdmin(ctx, company.ID, user.ID); err != nil {
		return nil, err
	}
	if err := s.store.SetUserMembership(ctx, user.ID, company.ID, user.Role, user.IsRecruiter); err != nil {
		return nil, err
	}

	s.sink.Notify(models.Notification{
		UserID:  user.ID,
		Type:    "company_admin",
		Title:   "You are now a company admin",
		Message: "You were granted admin access to " + company.Name,
		Link:    "/companies/" + company.ID,
	})

	logs.Logger.WithFields(logrus.Fields{
		"company_id": company.ID,
		"user_id":    user.ID,
		"granted_by": identity.ID,
	}).Info("company admin added")
	return s.store.GetCompanyByID(ctx, company.ID)
}

// Follow adds the caller to the company's follower set. Following twice
// is a no-op; the returned bool reports whether the set actually changed.
func (s *CompanyService) Follow(ctx context.Context, identity *models.Identity, companyID string) (bool, error) {
	if identity == nil || identity.ID == "" {
		return false, authz.ErrUnauthenticated
	}
	if _, err := s.store.GetCompanyByID(ctx, companyID); err != nil {
		return false, err
	}
	return s.store.AddCompanyFollower(ctx, companyID, identity.ID)
}

// Unfollow removes the caller from the company's follower set.
func (s *CompanyService) Unfollow(ctx context.Context, identity *models.Identity, companyID string) (bool, error) {
	if identity == nil || identity.ID == "" {
		return false, authz.ErrUnauthenticated
	}
	if _, err := s.store.GetCompanyByID(ctx, companyID); err != nil {
		return false, err
	}
	return s.store.RemoveCompanyFollower(ctx, companyID, identity.ID)
}

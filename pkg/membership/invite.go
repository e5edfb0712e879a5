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
	"hireboard-backend/pkg/utils"
)

// InviteTTL is the validity window of an invite from issue time. The
// boundary is inclusive: an invite expiring exactly now is expired.
const InviteTTL = 7 * 24 * time.Hour

const inviteTokenBytes = 32

// InviteService issues, verifies and redeems single-use company invites.
type InviteService struct {
	store database.Store
	sink  *notify.Sink
	now   func() time.Time
}

func NewInviteService(store database.Store, sink *notify.Sink) *InviteService {
	return &InviteService{store: store, sink: sink, now: time.Now}
}

// Issue creates an invite for email to join companyID. Only the company's
// admins (or the system admin) may issue.
func (s *InviteService) Issue(ctx context.Context, identity *models.Identity, companyID string, req *models.InviteCreateRequest) (*models.Invite, error) {
	company, err := s.store.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireAdmin(identity, company); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.InviteRoleRecruiter
	}
	if role != models.InviteRoleRecruiter && role != models.InviteRoleAdmin {
		return nil, fmt.Errorf("%w: invalid invite role %q", ErrValidation, role)
	}

	token, err := utils.GenerateURLToken(inviteTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	invite := &models.Invite{
		CompanyID: company.ID,
		Email:     email,
		Role:      role,
		Token:     token,
		CreatedBy: identity.ID,
		ExpiresAt: s.now().Add(InviteTTL),
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}

	s.sink.Mail(notify.Email{
		To:       email,
		Subject:  "You have been invited to join " + company.Name,
		Template: "company_invite",
		Variables: map[string]string{
			"company": company.Name,
			"role":    string(role),
			"link":    "/invites/accept?token=" + token,
		},
	})

	logs.Logger.WithFields(logrus.Fields{
		"company_id": company.ID,
		"invite_id":  invite.ID,
		"issued_by":  identity.ID,
	}).Info("invite issued")
	return invite, nil
}

// Verify checks a token without consuming it, so a signup page can show
// the invite before the user commits. The returned view never includes
// the token itself.
func (s *InviteService) Verify(ctx context.Context, token string) (*models.InviteVerification, error) {
	invite, err := s.store.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, ErrInviteUsed
	}
	if invite.Expired(s.now()) {
		return nil, ErrInviteExpired
	}

	company, err := s.store.GetCompanyByID(ctx, invite.CompanyID)
	if err != nil {
		return nil, err
	}
	return &models.InviteVerification{
		CompanyName: company.Name,
		Role:        invite.Role,
		Email:       invite.Email,
		ExpiresAt:   invite.ExpiresAt,
	}, nil
}

// Redeem consumes an invite on behalf of identity. Preconditions are
// checked read-only first; the atomic claim of the used flag is the first
// write, so two concurrent redeems of one token can never both succeed.
// The membership writes after the claim are idempotent, so a crash
// between claim and grant is repaired by the approval paths, never by
// un-claiming the invite.
func (s *InviteService) Redeem(ctx context.Context, identity *models.Identity, token string) (*models.Company, error) {
	if identity == nil || identity.ID == "" {
		return nil, authz.ErrUnauthenticated
	}

	invite, err := s.store.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, ErrInviteUsed
	}
	if invite.Expired(s.now()) {
		return nil, ErrInviteExpired
	}

	user, err := s.store.GetUserByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Email, invite.Email) {
		return nil, ErrEmailMismatch
	}
	if user.CompanyID != "" && user.CompanyID != invite.CompanyID {
		return nil, ErrOtherCompany
	}

	claimed, err := s.store.ClaimInvite(ctx, token)
	if err != nil {
		// Zero rows matched: someone else claimed it between our read
		// and this write.
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInviteUsed
		}
		return nil, err
	}

	// An admin invite is the one path that elevates the global role claim;
	// every other grant is company-scoped set membership.
	role := user.Role
	if claimed.Role == models.InviteRoleAdmin {
		role = models.RoleAdmin
	}
	if err := s.store.SetUserMembership(ctx, user.ID, claimed.CompanyID, role, true); err != nil {
		return nil, err
	}
	if err := s.store.SetUserStatus(ctx, user.ID, models.StatusActive, true); err != nil {
		return nil, err
	}
	if err := s.store.AddCompanyRecruiter(ctx, claimed.CompanyID, user.ID); err != nil {
		return nil, err
	}
	if claimed.Role == models.InviteRoleAdmin {
		if err := s.store.AddCompanyAdmin(ctx, claimed.CompanyID, user.ID); err != nil {
			return nil, err
		}
	}

	s.sink.Notify(models.Notification{
		UserID:        claimed.CreatedBy,
		Type:          "invite_accepted",
		Title:         "Invite accepted",
		Message:       user.Name + " joined via your invite",
		RelatedUserID: user.ID,
	})

	logs.Logger.WithFields(logrus.Fields{
		"company_id": claimed.CompanyID,
		"invite_id":  claimed.ID,
		"user_id":    user.ID,
		"role":       claimed.Role,
	}).Info("invite redeemed")
	return s.store.GetCompanyByID(ctx, claimed.CompanyID)
}

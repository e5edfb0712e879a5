package membership

import (
	"context"
	"testing"
	"time"

	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/notify"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store      *database.MemoryStore
	sink       *notify.Sink
	companies  *CompanyService
	invites    *InviteService
	recruiters *RecruiterService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := database.NewMemoryStore()
	sink := notify.NewSink(store, notify.LogMailer{})

	clock := func() time.Time { return testNow }
	companies := NewCompanyService(store, sink)
	companies.now = clock
	invites := NewInviteService(store, sink)
	invites.now = clock
	recruiters := NewRecruiterService(store, sink)
	recruiters.now = clock

	return &testEnv{
		store:      store,
		sink:       sink,
		companies:  companies,
		invites:    invites,
		recruiters: recruiters,
	}
}

func (e *testEnv) seedUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:  email,
		Name:   "Test " + email,
		Role:   role,
		Status: models.StatusActive,
	}
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// seedCompany creates a company through the service so the owner ends up
// promoted the same way production does it.
func (e *testEnv) seedCompany(t *testing.T, owner *models.User, name, cnpj string) *models.Company {
	t.Helper()
	company, err := e.companies.Create(context.Background(), identityOf(owner), &models.CompanyCreateRequest{
		Name: name,
		CNPJ: cnpj,
	})
	if err != nil {
		t.Fatalf("seed company %s: %v", name, err)
	}
	return company
}

func identityOf(user *models.User) *models.Identity {
	return &models.Identity{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
}

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hireboard-backend/pkg/models"
)

func TestMemoryStoreUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{Email: "a@mail.test", Name: "A", Role: models.RoleUser, Status: models.StatusActive}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("CreateUser() did not assign an id")
	}

	if err := store.CreateUser(ctx, &models.User{Email: "a@mail.test"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate CreateUser() error = %v, want ErrDuplicate", err)
	}

	got, err := store.GetUserByEmail(ctx, "A@MAIL.TEST")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("email lookup must be case-insensitive")
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUserByID(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SetUserMembership(ctx, user.ID, "co-1", models.RoleUser, true); err != nil {
		t.Fatalf("SetUserMembership() error: %v", err)
	}
	got, _ = store.GetUserByID(ctx, user.ID)
	if got.CompanyID != "co-1" || !got.IsRecruiter {
		t.Errorf("membership not applied: %+v", got)
	}

	// Reads hand out copies, not aliases into the store.
	got.Name = "mutated"
	again, _ := store.GetUserByID(ctx, user.ID)
	if again.Name == "mutated" {
		t.Error("store returned a shared pointer")
	}
}

func TestMemoryStoreCompanySets(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	company := &models.Company{Name: "Acme", CNPJ: "11.111.111/0001-11"}
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("CreateCompany() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.AddCompanyAdmin(ctx, company.ID, "u1"); err != nil {
			t.Fatalf("AddCompanyAdmin() error: %v", err)
		}
	}
	got, _ := store.GetCompanyByID(ctx, company.ID)
	if len(got.Admins) != 1 {
		t.Errorf("admins set holds %d entries after repeated adds, want 1", len(got.Admins))
	}

	if err := store.AddCompanyAdmin(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddCompanyAdmin(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.AddPendingRecruiter(ctx, company.ID, "u2"); err != nil {
		t.Fatalf("AddPendingRecruiter() error: %v", err)
	}
	if err := store.RemovePendingRecruiter(ctx, company.ID, "u2"); err != nil {
		t.Fatalf("RemovePendingRecruiter() error: %v", err)
	}
	got, _ = store.GetCompanyByID(ctx, company.ID)
	if got.HasPendingRecruiter("u2") {
		t.Error("pending recruiter not removed")
	}
}

func TestMemoryStoreFollowerCounter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	company := &models.Company{Name: "Acme", CNPJ: "11.111.111/0001-11"}
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("CreateCompany() error: %v", err)
	}

	changed, err := store.AddCompanyFollower(ctx, company.ID, "u1")
	if err != nil || !changed {
		t.Fatalf("AddCompanyFollower() = (%v, %v), want (true, nil)", changed, err)
	}
	changed, err = store.AddCompanyFollower(ctx, company.ID, "u1")
	if err != nil || changed {
		t.Fatalf("repeat AddCompanyFollower() = (%v, %v), want (false, nil)", changed, err)
	}

	got, _ := store.GetCompanyByID(ctx, company.ID)
	if got.FollowersCount != 1 {
		t.Errorf("FollowersCount = %d, want 1: counter must only move on real set changes", got.FollowersCount)
	}

	changed, err = store.RemoveCompanyFollower(ctx, company.ID, "u1")
	if err != nil || !changed {
		t.Fatalf("RemoveCompanyFollower() = (%v, %v), want (true, nil)", changed, err)
	}
	changed, _ = store.RemoveCompanyFollower(ctx, company.ID, "u1")
	if changed {
		t.Error("removing an absent follower must report no change")
	}
}

func TestMemoryStoreClaimInvite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	invite := &models.Invite{
		CompanyID: "co-1",
		Email:     "a@mail.test",
		Role:      models.InviteRoleRecruiter,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.CreateInvite(ctx, invite); err != nil {
		t.Fatalf("CreateInvite() error: %v", err)
	}

	claimed, err := store.ClaimInvite(ctx, "tok-1")
	if err != nil {
		t.Fatalf("ClaimInvite() error: %v", err)
	}
	if !claimed.Used {
		t.Error("claimed invite not flagged used")
	}
	if _, err := store.ClaimInvite(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second ClaimInvite() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreClaimInviteConcurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.CreateInvite(ctx, &models.Invite{
		Token:     "tok-race",
		ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("CreateInvite() error: %v", err)
	}

	const attempts = 32
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ClaimInvite(ctx, "tok-race"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("%d concurrent claims succeeded, want exactly 1", wins)
	}
}

func TestMemoryStoreTransitionRecruiterRequest(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	req := &models.RecruiterRequest{UserID: "u1", CompanyID: "co-1", Status: models.RecruiterPending}
	if err := store.CreateRecruiterRequest(ctx, req); err != nil {
		t.Fatalf("CreateRecruiterRequest() error: %v", err)
	}

	at := time.Now().UTC()
	ok, err := store.TransitionRecruiterRequest(ctx, req.ID, models.RecruiterApproved, "admin-1", at)
	if err != nil || !ok {
		t.Fatalf("TransitionRecruiterRequest() = (%v, %v), want (true, nil)", ok, err)
	}

	got, _ := store.GetRecruiterRequestByID(ctx, req.ID)
	if got.Status != models.RecruiterApproved || got.ApprovedBy != "admin-1" {
		t.Errorf("transition not applied: %+v", got)
	}

	// Terminal states never transition again.
	ok, err = store.TransitionRecruiterRequest(ctx, req.ID, models.RecruiterRejected, "admin-2", at)
	if err != nil || ok {
		t.Fatalf("second transition = (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = store.TransitionRecruiterRequest(ctx, "missing", models.RecruiterApproved, "admin-1", at)
	if err != nil || ok {
		t.Fatalf("transition of missing id = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestMemoryStoreJobsAndApplications(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	job := &models.Job{CompanyID: "co-1", CreatedBy: "u1", Title: "Backend Engineer", Active: true}
	if err := store.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.IncrementJobViews(ctx, job.ID); err != nil {
			t.Fatalf("IncrementJobViews() error: %v", err)
		}
	}
	got, _ := store.GetJobByID(ctx, job.ID)
	if got.Views != 3 {
		t.Errorf("Views = %d, want 3", got.Views)
	}

	app := &models.JobApplication{JobID: job.ID, UserID: "u2", MatchScore: 50}
	if err := store.CreateJobApplication(ctx, app); err != nil {
		t.Fatalf("CreateJobApplication() error: %v", err)
	}
	if err := store.CreateJobApplication(ctx, &models.JobApplication{JobID: job.ID, UserID: "u2"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate application error = %v, want ErrDuplicate", err)
	}

	list, err := store.ListJobsByCompany(ctx, "co-1")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListJobsByCompany() = (%d jobs, %v), want 1 job", len(list), err)
	}
}

func TestMemoryStoreNotifications(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n := &models.Notification{UserID: "u1", Type: "test", Title: "T"}
	if err := store.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification() error: %v", err)
	}

	changed, err := store.MarkNotificationRead(ctx, n.ID, "someone-else")
	if err != nil || changed {
		t.Fatalf("MarkNotificationRead() for wrong user = (%v, %v), want (false, nil)", changed, err)
	}
	changed, err = store.MarkNotificationRead(ctx, n.ID, "u1")
	if err != nil || !changed {
		t.Fatalf("MarkNotificationRead() = (%v, %v), want (true, nil)", changed, err)
	}
	changed, _ = store.MarkNotificationRead(ctx, n.ID, "u1")
	if changed {
		t.Error("marking an already-read notification must report no change")
	}
}

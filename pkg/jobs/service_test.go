package jobs

import (
	"context"
	"errors"
	"testing"

	"hireboard-backend/pkg/authz"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/models"
)

func seedCompanyWithRecruiter(t *testing.T, store *database.MemoryStore) (*models.Company, *models.User) {
	t.Helper()
	ctx := context.Background()

	recruiter := &models.User{
		Email:       "rec@acme.test",
		Name:        "Recruiter",
		Role:        models.RoleUser,
		Status:      models.StatusActive,
		IsRecruiter: true,
	}
	if err := store.CreateUser(ctx, recruiter); err != nil {
		t.Fatalf("seed recruiter: %v", err)
	}

	company := &models.Company{
		Name:       "Acme",
		CNPJ:       "11.111.111/0001-11",
		Admins:     []string{recruiter.ID},
		Recruiters: []string{recruiter.ID},
	}
	if err := store.CreateCompany(ctx, company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company, recruiter
}

func TestJobCreate(t *testing.T) {
	store := database.NewMemoryStore()
	service := NewService(store)
	ctx := context.Background()
	company, recruiter := seedCompanyWithRecruiter(t, store)

	job, err := service.Create(ctx, &models.Identity{ID: recruiter.ID, Role: recruiter.Role}, company.ID,
		&models.JobCreateRequest{Title: "Backend Engineer", Skills: []string{"go", "sql"}})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !job.Active {
		t.Error("new jobs must start active")
	}

	got, _ := store.GetCompanyByID(ctx, company.ID)
	if got.JobsCount != 1 {
		t.Errorf("JobsCount = %d, want 1", got.JobsCount)
	}

	outsider := &models.User{Email: "out@mail.test", Role: models.RoleUser}
	if err := store.CreateUser(ctx, outsider); err != nil {
		t.Fatalf("seed outsider: %v", err)
	}
	_, err = service.Create(ctx, &models.Identity{ID: outsider.ID, Role: outsider.Role}, company.ID,
		&models.JobCreateRequest{Title: "Nope"})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("outsider Create() error = %v, want ErrForbidden", err)
	}
}

func TestJobGetCountsView(t *testing.T) {
	store := database.NewMemoryStore()
	service := NewService(store)
	ctx := context.Background()
	company, recruiter := seedCompanyWithRecruiter(t, store)

	job, err := service.Create(ctx, &models.Identity{ID: recruiter.ID, Role: recruiter.Role}, company.ID,
		&models.JobCreateRequest{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for i := int64(1); i <= 3; i++ {
		got, err := service.Get(ctx, job.ID)
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if got.Views != i {
			t.Errorf("Views = %d after %d reads", got.Views, i)
		}
	}
}

func TestJobApply(t *testing.T) {
	store := database.NewMemoryStore()
	service := NewService(store)
	ctx := context.Background()
	company, recruiter := seedCompanyWithRecruiter(t, store)

	job, err := service.Create(ctx, &models.Identity{ID: recruiter.ID, Role: recruiter.Role}, company.ID,
		&models.JobCreateRequest{Title: "Backend Engineer", Skills: []string{"Go", "SQL", "Docker", "Kubernetes"}})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	candidate := &models.User{
		Email:  "cand@mail.test",
		Role:   models.RoleUser,
		Skills: []string{"go", "sql"},
	}
	if err := store.CreateUser(ctx, candidate); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	identity := &models.Identity{ID: candidate.ID, Role: candidate.Role}

	app, err := service.Apply(ctx, identity, job.ID)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if app.MatchScore != 50 {
		t.Errorf("MatchScore = %d, want 50", app.MatchScore)
	}

	if _, err := service.Apply(ctx, identity, job.ID); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("second Apply() error = %v, want ErrAlreadyApplied", err)
	}

	got, _ := store.GetJobByID(ctx, job.ID)
	if got.ApplicationsCount != 1 {
		t.Errorf("ApplicationsCount = %d, want 1", got.ApplicationsCount)
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		have     []string
		want     int
	}{
		{"no requirements", nil, []string{"go"}, 100},
		{"full overlap", []string{"go", "sql"}, []string{"sql", "go"}, 100},
		{"half overlap", []string{"go", "sql"}, []string{"go"}, 50},
		{"no overlap", []string{"go"}, []string{"rust"}, 0},
		{"case and whitespace insensitive", []string{" Go ", "SQL"}, []string{"go", " sql"}, 100},
		{"empty candidate", []string{"go"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchScore(tt.required, tt.have); got != tt.want {
				t.Errorf("MatchScore(%v, %v) = %d, want %d", tt.required, tt.have, got, tt.want)
			}
		})
	}
}

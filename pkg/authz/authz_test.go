package authz

import (
	"errors"
	"testing"

	"hireboard-backend/pkg/models"
)

func TestEvaluate(t *testing.T) {
	company := &models.Company{
		ID:         "co-1",
		Admins:     []string{"admin-1"},
		Recruiters: []string{"admin-1", "rec-1"},
	}

	tests := []struct {
		name     string
		identity *models.Identity
		company  *models.Company
		want     Level
		wantErr  error
	}{
		{
			name:    "nil identity is unauthenticated",
			wantErr: ErrUnauthenticated,
			company: company,
		},
		{
			name:     "empty id is unauthenticated",
			identity: &models.Identity{},
			company:  company,
			wantErr:  ErrUnauthenticated,
		},
		{
			name:     "system admin short-circuits without a company",
			identity: &models.Identity{ID: "root", Role: models.RoleAdmin},
			want:     LevelSystem,
		},
		{
			name:     "system admin wins even when also a recruiter",
			identity: &models.Identity{ID: "rec-1", Role: models.RoleAdmin},
			company:  company,
			want:     LevelSystem,
		},
		{
			name:     "company admin",
			identity: &models.Identity{ID: "admin-1", Role: models.RoleUser},
			company:  company,
			want:     LevelAdmin,
		},
		{
			name:     "recruiter",
			identity: &models.Identity{ID: "rec-1", Role: models.RoleUser},
			company:  company,
			want:     LevelRecruiter,
		},
		{
			name:     "member of nothing is forbidden",
			identity: &models.Identity{ID: "stranger", Role: models.RoleUser},
			company:  company,
			wantErr:  ErrForbidden,
		},
		{
			name:     "nil company forbids non-system identities",
			identity: &models.Identity{ID: "admin-1", Role: models.RoleUser},
			wantErr:  ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.identity, tt.company)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	company := &models.Company{
		ID:         "co-1",
		Admins:     []string{"admin-1"},
		Recruiters: []string{"admin-1", "rec-1"},
	}

	if err := RequireAdmin(&models.Identity{ID: "admin-1", Role: models.RoleUser}, company); err != nil {
		t.Fatalf("company admin should pass: %v", err)
	}
	if err := RequireAdmin(&models.Identity{ID: "root", Role: models.RoleAdmin}, company); err != nil {
		t.Fatalf("system admin should pass: %v", err)
	}
	// Recruiter access is authenticated but below the admin bar: 403, not 401.
	if err := RequireAdmin(&models.Identity{ID: "rec-1", Role: models.RoleUser}, company); !errors.Is(err, ErrForbidden) {
		t.Fatalf("recruiter should be forbidden, got %v", err)
	}
	if err := RequireAdmin(nil, company); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("nil identity should be unauthenticated, got %v", err)
	}
}

func TestRequireRecruiter(t *testing.T) {
	company := &models.Company{
		ID:         "co-1",
		Admins:     []string{"admin-1"},
		Recruiters: []string{"rec-1"},
	}

	if err := RequireRecruiter(&models.Identity{ID: "rec-1", Role: models.RoleUser}, company); err != nil {
		t.Fatalf("recruiter should pass: %v", err)
	}
	if err := RequireRecruiter(&models.Identity{ID: "admin-1", Role: models.RoleUser}, company); err != nil {
		t.Fatalf("admin should pass recruiter checks: %v", err)
	}
	if err := RequireRecruiter(&models.Identity{ID: "stranger", Role: models.RoleUser}, company); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger should be forbidden, got %v", err)
	}
}

func TestRequireSystemAdmin(t *testing.T) {
	if err := RequireSystemAdmin(&models.Identity{ID: "root", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("system admin should pass: %v", err)
	}
	if err := RequireSystemAdmin(&models.Identity{ID: "u1", Role: models.RoleUser}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("regular user should be forbidden, got %v", err)
	}
	if err := RequireSystemAdmin(nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("nil identity should be unauthenticated, got %v", err)
	}
}

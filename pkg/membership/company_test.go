package membership

import (
	"context"
	"errors"
	"testing"

	"hireboard-backend/pkg/authz"
	"hireboard-backend/pkg/models"
)

func TestCompanyCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creator becomes first admin and recruiter", func(t *testing.T) {
		owner := env.seedUser(t, "founder@acme.test", models.RoleUser)
		company, err := env.companies.Create(ctx, identityOf(owner), &models.CompanyCreateRequest{
			Name: "Acme",
			CNPJ: "11.111.111/0001-11",
		})
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if !company.HasAdmin(owner.ID) || !company.HasRecruiter(owner.ID) {
			t.Error("creator must land in both admins and recruiters")
		}

		updated, err := env.store.GetUserByID(ctx, owner.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error: %v", err)
		}
		if updated.CompanyID != company.ID || !updated.IsRecruiter {
			t.Errorf("creator membership not set: company=%q recruiter=%v", updated.CompanyID, updated.IsRecruiter)
		}
		if updated.Role != models.RoleUser {
			t.Errorf("company creation must not touch the global role, got %q", updated.Role)
		}
	})

	t.Run("duplicate cnpj conflicts", func(t *testing.T) {
		other := env.seedUser(t, "other@corp.test", models.RoleUser)
		_, err := env.companies.Create(ctx, identityOf(other), &models.CompanyCreateRequest{
			Name: "Acme Clone",
			CNPJ: "11.111.111/0001-11",
		})
		if !errors.Is(err, ErrCNPJTaken) {
			t.Fatalf("Create() error = %v, want ErrCNPJTaken", err)
		}
	})

	t.Run("member of a company cannot create another", func(t *testing.T) {
		owner := env.seedUser(t, "second@corp.test", models.RoleUser)
		env.seedCompany(t, owner, "Second", "33.333.333/0001-33")
		_, err := env.companies.Create(ctx, identityOf(owner), &models.CompanyCreateRequest{
			Name: "Third",
			CNPJ: "44.444.444/0001-44",
		})
		if !errors.Is(err, ErrOtherCompany) {
			t.Fatalf("Create() error = %v, want ErrOtherCompany", err)
		}
	})
}

func TestCompanyAddAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := env.seedUser(t, "root@hireboard.test", models.RoleAdmin)
	owner := env.seedUser(t, "owner@acme.test", models.RoleUser)
	company := env.seedCompany(t, owner, "Acme", "11.111.111/0001-11")

	t.Run("system admin grants admin only", func(t *testing.T) {
		target := env.seedUser(t, "target@acme.test", models.RoleUser)
		updated, err := env.companies.AddAdmin(ctx, identityOf(root), company.ID, target.ID)
		if err != nil {
			t.Fatalf("AddAdmin() error: %v", err)
		}
		if !updated.HasAdmin(target.ID) {
			t.Error("target not in admins set")
		}
		// Admin assignment is one-directional: no recruiter grant rides along.
		if updated.HasRecruiter(target.ID) {
			t.Error("admin assignment must not add the target to recruiters")
		}
	})

	t.Run("company admins cannot grant adminship", func(t *testing.T) {
		target := env.seedUser(t, "target2@acme.test", models.RoleUser)
		_, err := env.companies.AddAdmin(ctx, identityOf(owner), company.ID, target.ID)
		if !errors.Is(err, authz.ErrForbidden) {
			t.Fatalf("AddAdmin() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("granting twice conflicts", func(t *testing.T) {
		_, err := env.companies.AddAdmin(ctx, identityOf(root), company.ID, owner.ID)
		if !errors.Is(err, ErrAlreadyAdmin) {
			t.Fatalf("AddAdmin() error = %v, want ErrAlreadyAdmin", err)
		}
	})

	t.Run("member of another company is rejected", func(t *testing.T) {
		outsider := env.seedUser(t, "outsider@rival.test", models.RoleUser)
		env.seedCompany(t, outsider, "Rival", "22.222.222/0001-22")
		_, err := env.companies.AddAdmin(ctx, identityOf(root), company.ID, outsider.ID)
		if !errors.Is(err, ErrOtherCompany) {
			t.Fatalf("AddAdmin() error = %v, want ErrOtherCompany", err)
		}
	})
}

func TestCompanyFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@acme.test", models.RoleUser)
	company := env.seedCompany(t, owner, "Acme", "11.111.111/0001-11")
	fan := env.seedUser(t, "fan@mail.test", models.RoleUser)

	changed, err := env.companies.Follow(ctx, identityOf(fan), company.ID)
	if err != nil || !changed {
		t.Fatalf("Follow() = (%v, %v), want (true, nil)", changed, err)
	}

	// Idempotent: a second follow neither errors nor moves the counter.
	changed, err = env.companies.Follow(ctx, identityOf(fan), company.ID)
	if err != nil || changed {
		t.Fatalf("second Follow() = (%v, %v), want (false, nil)", changed, err)
	}

	got, err := env.store.GetCompanyByID(ctx, company.ID)
	if err != nil {
		t.Fatalf("GetCompanyByID() error: %v", err)
	}
	if got.FollowersCount != 1 {
		t.Errorf("FollowersCount = %d, want 1", got.FollowersCount)
	}

	changed, err = env.companies.Unfollow(ctx, identityOf(fan), company.ID)
	if err != nil || !changed {
		t.Fatalf("Unfollow() = (%v, %v), want (true, nil)", changed, err)
	}
	got, _ = env.store.GetCompanyByID(ctx, company.ID)
	if got.FollowersCount != 0 {
		t.Errorf("FollowersCount after unfollow = %d, want 0", got.FollowersCount)
	}
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hireboard-backend/pkg/models"
)

// PostgresStore is the relational Store backend. Membership sets live in
// text[] columns; the set and counter writes are single conditional
// UPDATE statements so they stay atomic without explicit locking.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and ensures the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user',
			is_recruiter BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'active',
			company_id TEXT NOT NULL DEFAULT '',
			skills TEXT[] NOT NULL DEFAULT '{}',
			onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cnpj TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			admins TEXT[] NOT NULL DEFAULT '{}',
			recruiters TEXT[] NOT NULL DEFAULT '{}',
			pending_recruiters TEXT[] NOT NULL DEFAULT '{}',
			followers TEXT[] NOT NULL DEFAULT '{}',
			followers_count BIGINT NOT NULL DEFAULT 0,
			jobs_count BIGINT NOT NULL DEFAULT 0,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invites (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			created_by TEXT NOT NULL,
			used BOOLEAN NOT NULL DEFAULT FALSE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS recruiter_requests (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			company_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			approved_by TEXT NOT NULL DEFAULT '',
			approved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			created_by TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			skills TEXT[] NOT NULL DEFAULT '{}',
			location TEXT NOT NULL DEFAULT '',
			views BIGINT NOT NULL DEFAULT 0,
			applications_count BIGINT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS job_applications (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			match_score INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (job_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			related_user_id TEXT NOT NULL DEFAULT '',
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

func pgErr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == "23505" {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Users

const userColumns = `id, email, password_hash, name, role, is_recruiter, status, company_id, skills, onboarding_completed, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.IsRecruiter,
		&u.Status, &u.CompanyID, pq.Array(&u.Skills), &u.OnboardingCompleted,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, role, is_recruiter, status, company_id, skills, onboarding_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Password, user.Name,
		user.Role, user.IsRecruiter, user.Status, user.CompanyID, pq.Array(user.Skills),
		user.OnboardingCompleted).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return pgErr(err, "failed to create user")
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, pgErr(err, "failed to get user by email")
	}
	return u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgErr(err, "failed to get user")
	}
	return u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, role = $5, is_recruiter = $6,
		    status = $7, company_id = $8, skills = $9, onboarding_completed = $10, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.Password, user.Name,
		user.Role, user.IsRecruiter, user.Status, user.CompanyID, pq.Array(user.Skills),
		user.OnboardingCompleted)
	if err != nil {
		return pgErr(err, "failed to update user")
	}
	return requireRows(result)
}

func (s *PostgresStore) SetUserMembership(ctx context.Context, userID, companyID string, role models.UserRole, isRecruiter bool) error {
	query := `UPDATE users SET company_id = $2, role = $3, is_recruiter = $4, updated_at = NOW() WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, userID, companyID, role, isRecruiter)
	if err != nil {
		return pgErr(err, "failed to set user membership")
	}
	return requireRows(result)
}

func (s *PostgresStore) SetUserStatus(ctx context.Context, userID string, status models.UserStatus, onboardingCompleted bool) error {
	query := `UPDATE users SET status = $2, onboarding_completed = $3, updated_at = NOW() WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, userID, status, onboardingCompleted)
	if err != nil {
		return pgErr(err, "failed to set user status")
	}
	return requireRows(result)
}

func requireRows(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Companies

const companyColumns = `id, name, cnpj, description, admins, recruiters, pending_recruiters, followers, followers_count, jobs_count, verified, created_at, updated_at`

func scanCompany(row *sql.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(&c.ID, &c.Name, &c.CNPJ, &c.Description, pq.Array(&c.Admins),
		pq.Array(&c.Recruiters), pq.Array(&c.PendingRecruiters), pq.Array(&c.Followers),
		&c.FollowersCount, &c.JobsCount, &c.Verified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}

	query := `
		INSERT INTO companies (id, name, cnpj, description, admins, recruiters, pending_recruiters, verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, company.ID, company.Name, company.CNPJ,
		company.Description, pq.Array(company.Admins), pq.Array(company.Recruiters),
		pq.Array(company.PendingRecruiters), company.Verified).
		Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return pgErr(err, "failed to create company")
	}
	return nil
}

func (s *PostgresStore) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgErr(err, "failed to get company")
	}
	return c, nil
}

func (s *PostgresStore) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE cnpj = $1`
	c, err := scanCompany(s.db.QueryRowContext(ctx, query, cnpj))
	if err != nil {
		return nil, pgErr(err, "failed to get company by cnpj")
	}
	return c, nil
}

// addToCompanySet appends userID to one text[] column unless present.
// The CASE keeps the statement matching the row even when the id is
// already in the set, so zero rows always means the company is missing.
func (s *PostgresStore) addToCompanySet(ctx context.Context, companyID, column, userID string) error {
	query := fmt.Sprintf(`
		UPDATE companies
		SET %[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
		    updated_at = NOW()
		WHERE id = $1
	`, column)
	result, err := s.db.ExecContext(ctx, query, companyID, userID)
	if err != nil {
		return pgErr(err, "failed to update company "+column)
	}
	return requireRows(result)
}

func (s *PostgresStore) AddCompanyAdmin(ctx context.Context, companyID, userID string) error {
	return s.addToCompanySet(ctx, companyID, "admins", userID)
}

func (s *PostgresStore) AddCompanyRecruiter(ctx context.Context, companyID, userID string) error {
	return s.addToCompanySet(ctx, companyID, "recruiters", userID)
}

func (s *PostgresStore) AddPendingRecruiter(ctx context.Context, companyID, userID string) error {
	return s.addToCompanySet(ctx, companyID, "pending_recruiters", userID)
}

func (s *PostgresStore) RemovePendingRecruiter(ctx context.Context, companyID, userID string) error {
	query := `
		UPDATE companies
		SET pending_recruiters = array_remove(pending_recruiters, $2), updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, companyID, userID)
	if err != nil {
		return pgErr(err, "failed to remove pending recruiter")
	}
	return requireRows(result)
}

func (s *PostgresStore) AddCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	query := `
		UPDATE companies
		SET followers = array_append(followers, $2), followers_count = followers_count + 1, updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(followers))
	`
	result, err := s.db.ExecContext(ctx, query, companyID, userID)
	if err != nil {
		return false, pgErr(err, "failed to add follower")
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (s *PostgresStore) RemoveCompanyFollower(ctx context.Context, companyID, userID string) (bool, error) {
	query := `
		UPDATE companies
		SET followers = array_remove(followers, $2), followers_count = followers_count - 1, updated_at = NOW()
		WHERE id = $1 AND $2 = ANY(followers)
	`
	result, err := s.db.ExecContext(ctx, query, companyID, userID)
	if err != nil {
		return false, pgErr(err, "failed to remove follower")
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (s *PostgresStore) IncrementCompanyJobs(ctx context.Context, companyID string, delta int64) error {
	query := `UPDATE companies SET jobs_count = jobs_count + $2, updated_at = NOW() WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, companyID, delta)
	if err != nil {
		return pgErr(err, "failed to increment jobs count")
	}
	return requireRows(result)
}

// Invites

const inviteColumns = `id, company_id, email, role, token, created_by, used, expires_at, created_at, updated_at`

func scanInvite(row *sql.Row) (*models.Invite, error) {
	var i models.Invite
	err := row.Scan(&i.ID, &i.CompanyID, &i.Email, &i.Role, &i.Token, &i.CreatedBy,
		&i.Used, &i.ExpiresAt, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *PostgresStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}

	query := `
		INSERT INTO invites (id, company_id, email, role, token, created_by, used, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, invite.ID, invite.CompanyID, invite.Email,
		invite.Role, invite.Token, invite.CreatedBy, invite.Used, invite.ExpiresAt).
		Scan(&invite.CreatedAt, &invite.UpdatedAt)
	if err != nil {
		return pgErr(err, "failed to create invite")
	}
	return nil
}

func (s *PostgresStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE token = $1`
	i, err := scanInvite(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, pgErr(err, "failed to get invite")
	}
	return i, nil
}

func (s *PostgresStore) ClaimInvite(ctx context.Context, token string) (*models.Invite, error) {
	// Compare-and-swap on the used flag; RETURNING yields the claimed row.
	query := `
		UPDATE invites SET used = TRUE, updated_at = NOW()
		WHERE token = $1 AND used = FALSE
		RETURNING ` + inviteColumns
	i, err := scanInvite(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, pgErr(err, "failed to claim invite")
	}
	return i, nil
}

// Recruiter requests

const requestColumns = `id, user_id, company_id, status, approved_by, approved_at, created_at, updated_at`

func scanRequest(scanner interface{ Scan(...interface{}) error }) (*models.RecruiterRequest, error) {
	var r models.RecruiterRequest
	var approvedAt sql.NullTime
	err := scanner.Scan(&r.ID, &r.UserID, &r.CompanyID, &r.Status, &r.ApprovedBy,
		&approvedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		r.ApprovedAt = &approvedAt.Time
	}
	return &r, nil
}

func (s *PostgresStore) CreateRecruiterRequest(ctx context.Context, req *models.RecruiterRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO recruiter_requests (id, user_id, company_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, req.ID, req.UserID, req.CompanyID, req.Status).
		Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return pgErr(err, "failed to create recruiter request")
	}
	return nil
}

func (s *PostgresStore) GetRecruiterRequestByID(ctx context.Context, id string) (*models.RecruiterRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM recruiter_requests WHERE id = $1`
	r, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgErr(err, "failed to get recruiter request")
	}
	return r, nil
}

func (s *PostgresStore) GetPendingRecruiterRequest(ctx context.Context, userID, companyID string) (*models.RecruiterRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM recruiter_requests WHERE user_id = $1 AND company_id = $2 AND status = 'pending'`
	r, err := scanRequest(s.db.QueryRowContext(ctx, query, userID, companyID))
	if err != nil {
		return nil, pgErr(err, "failed to get pending recruiter request")
	}
	return r, nil
}

func (s *PostgresStore) ListRecruiterRequestsByCompany(ctx context.Context, companyID string, status models.RecruiterRequestStatus) ([]models.RecruiterRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM recruiter_requests WHERE company_id = $1`
	args := []interface{}{companyID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgErr(err, "failed to list recruiter requests")
	}
	defer rows.Close()

	var out []models.RecruiterRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recruiter request: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) TransitionRecruiterRequest(ctx context.Context, id string, to models.RecruiterRequestStatus, approvedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE recruiter_requests
		SET status = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	result, err := s.db.ExecContext(ctx, query, id, to, approvedBy, at)
	if err != nil {
		return false, pgErr(err, "failed to transition recruiter request")
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// Jobs

const jobColumns = `id, company_id, created_by, title, description, skills, location, views, applications_count, active, created_at, updated_at`

func scanJob(scanner interface{ Scan(...interface{}) error }) (*models.Job, error) {
	var j models.Job
	err := scanner.Scan(&j.ID, &j.CompanyID, &j.CreatedBy, &j.Title, &j.Description,
		pq.Array(&j.Skills), &j.Location, &j.Views, &j.ApplicationsCount, &j.Active,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	query := `
		INSERT INTO jobs (id, company_id, created_by, title, description, skills, location, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, job.ID, job.CompanyID, job.CreatedBy, job.Title,
		job.Description, pq.Array(job.Skills), job.Location, job.Active).
		Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return pgErr(err, "failed to create job")
	}
	return nil
}

func (s *PostgresStore) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	j, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgErr(err, "failed to get job")
	}
	return j, nil
}

func (s *PostgresStore) IncrementJobViews(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return pgErr(err, "failed to increment job views")
	}
	return requireRows(result)
}

func (s *PostgresStore) ListJobsByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, pgErr(err, "failed to list jobs")
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateJobApplication(ctx context.Context, app *models.JobApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}

	query := `
		INSERT INTO job_applications (id, job_id, user_id, match_score)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query, app.ID, app.JobID, app.UserID, app.MatchScore).
		Scan(&app.CreatedAt)
	if err != nil {
		return pgErr(err, "failed to create application")
	}
	return nil
}

func (s *PostgresStore) GetJobApplication(ctx context.Context, jobID, userID string) (*models.JobApplication, error) {
	query := `SELECT id, job_id, user_id, match_score, created_at FROM job_applications WHERE job_id = $1 AND user_id = $2`
	var a models.JobApplication
	err := s.db.QueryRowContext(ctx, query, jobID, userID).
		Scan(&a.ID, &a.JobID, &a.UserID, &a.MatchScore, &a.CreatedAt)
	if err != nil {
		return nil, pgErr(err, "failed to get application")
	}
	return &a, nil
}

func (s *PostgresStore) IncrementJobApplications(ctx context.Context, jobID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE jobs SET applications_count = applications_count + 1 WHERE id = $1`, jobID)
	if err != nil {
		return pgErr(err, "failed to increment applications count")
	}
	return requireRows(result)
}

// Notifications

func (s *PostgresStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	query := `
		INSERT INTO notifications (id, user_id, type, title, message, link, related_user_id, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query, n.ID, n.UserID, n.Type, n.Title, n.Message,
		n.Link, n.RelatedUserID, n.Read).Scan(&n.CreatedAt)
	if err != nil {
		return pgErr(err, "failed to create notification")
	}
	return nil
}

func (s *PostgresStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, link, related_user_id, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgErr(err, "failed to list notifications")
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Link,
			&n.RelatedUserID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id, userID string) (bool, error) {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2 AND read = FALSE`
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, pgErr(err, "failed to mark notification read")
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}

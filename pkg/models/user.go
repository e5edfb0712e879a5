package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole is the global role claim carried in the session token.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// UserStatus tracks account standing. Recruiter signups start pending
// until a company admin approves them.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusPending   UserStatus = "pending"
	StatusSuspended UserStatus = "suspended"
)

// User represents an account in the system
type User struct {
	ID                  string     `json:"id" bson:"_id,omitempty" db:"id"`
	Email               string     `json:"email" bson:"email" db:"email"`
	Password            string     `json:"-" bson:"password_hash" db:"password_hash"` // Never return password in JSON
	Name                string     `json:"name,omitempty" bson:"name,omitempty" db:"name"`
	Role                UserRole   `json:"role" bson:"role" db:"role"`
	IsRecruiter         bool       `json:"is_recruiter" bson:"is_recruiter" db:"is_recruiter"`
	Status              UserStatus `json:"status" bson:"status" db:"status"`
	CompanyID           string     `json:"company_id,omitempty" bson:"company_id,omitempty" db:"company_id"`
	Skills              []string   `json:"skills,omitempty" bson:"skills,omitempty" db:"skills"`
	OnboardingCompleted bool       `json:"onboarding_completed" bson:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// Identity is the authenticated caller resolved from a session token.
// CompanyID mirrors the user document at token issue time; workflows that
// care about current affiliation re-read the user.
type Identity struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	CompanyID string   `json:"company_id,omitempty"`
}

// IsSystemAdmin reports whether the identity carries the global admin claim.
func (i *Identity) IsSystemAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// UserRegisterRequest represents the request payload for user registration
type UserRegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Skills   []string `json:"skills,omitempty"`
}

// UserLoginRequest represents the request payload for user login
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginResponse represents the response payload for user login
type UserLoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest represents the request payload for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenClaims represents the JWT token claims
type TokenClaims struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	CompanyID string   `json:"company_id,omitempty"`
	Type      string   `json:"type"` // "access" or "refresh"
	Exp       int64    `json:"exp"`
	Iat       int64    `json:"iat"`
}

// GetExpirationTime implements jwt.Claims interface
func (c *TokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

// GetIssuedAt implements jwt.Claims interface
func (c *TokenClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

// GetNotBefore implements jwt.Claims interface
func (c *TokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims interface
func (c *TokenClaims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims interface
func (c *TokenClaims) GetSubject() (string, error) {
	return c.UserID, nil
}

// GetAudience implements jwt.Claims interface
func (c *TokenClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

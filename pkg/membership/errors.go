package membership

import "errors"

// Sentinel errors for membership rules. Handlers map these onto HTTP
// statuses with errors.Is; services never touch the response envelope.
var (
	// ErrValidation wraps bad input the services reject themselves, so a
	// handler that skips its own precheck still answers 400.
	ErrValidation = errors.New("invalid request")

	ErrInviteUsed     = errors.New("invite already redeemed")
	ErrInviteExpired  = errors.New("invite expired")
	ErrEmailMismatch  = errors.New("invite was issued for a different email")
	ErrOtherCompany   = errors.New("user already belongs to another company")
	ErrAlreadyAdmin   = errors.New("user is already an admin of this company")
	ErrAlreadyMember  = errors.New("user is already a recruiter of this company")
	ErrRequestExists  = errors.New("a pending recruiter request already exists")
	ErrRequestDone    = errors.New("recruiter request already processed")
	ErrEmailTaken     = errors.New("email already registered")
	ErrCNPJTaken      = errors.New("a company with this cnpj already exists")
	ErrBadCredentials = errors.New("invalid email or password")
)

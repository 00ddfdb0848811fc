package credentials

import "errors"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidEmail    = errors.New("invalid email")
)

// Credential is the provider-facing login identity derived from an email.
// It is recomputed per call and never stored.
type Credential struct {
	Identifier string // alphanumeric-only username
	Signature  string // base64 HMAC-SHA256 secret hash
}

// ValidationResult reports whether a password satisfies the policy.
// Reason names the first violated rule and is empty when Valid.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Err returns nil for a valid result and a *PasswordError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &PasswordError{Reason: r.Reason}
}

// PasswordError carries the first policy rule a password violated.
type PasswordError struct {
	Reason string
}

func (e *PasswordError) Error() string {
	return "invalid password: " + e.Reason
}

func (e *PasswordError) Is(target error) bool {
	return target == ErrInvalidPassword
}

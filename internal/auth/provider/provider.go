package provider

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks IdentityProvider

import (
	"context"
)

// Attribute is a user attribute sent along with a registration.
type Attribute struct {
	Name  string
	Value string
}

type RegistrationRequest struct {
	ClientID   string
	Username   string
	Password   string
	SecretHash string
	Attributes []Attribute
}

// CodeDelivery describes where the provider sent the confirmation code.
type CodeDelivery struct {
	Destination   string // masked, e.g. k***@g***
	Medium        string // EMAIL or SMS
	AttributeName string
}

type RegistrationResult struct {
	UserSub       string
	UserConfirmed bool
	Delivery      *CodeDelivery
}

type ConfirmationRequest struct {
	ClientID         string
	Username         string
	ConfirmationCode string
	SecretHash       string
}

type ConfirmationResult struct {
	Confirmed bool
}

// IdentityProvider is the external service that owns user accounts and
// issues and verifies confirmation codes. Implementations talk to the
// provider only; validation and credential derivation happen upstream.
// Errors are returned exactly as the provider reported them.
type IdentityProvider interface {
	// Name returns the provider identifier (e.g. "cognito").
	Name() string

	Register(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error)

	ConfirmRegistration(ctx context.Context, req ConfirmationRequest) (*ConfirmationResult, error)
}

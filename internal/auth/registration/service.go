package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"signup-service/internal/auth/credentials"
	"signup-service/internal/auth/provider"
	"signup-service/internal/config"
	"signup-service/internal/logger"
	"signup-service/internal/metrics"
)

var ErrMissingInput = errors.New("missing required input")

// Settings holds the app client values every provider call is bound to.
type Settings struct {
	ClientID     string
	ClientSecret string
}

// Service sequences password validation, credential derivation and the
// identity provider calls for sign-up and confirmation.
type Service struct {
	settings Settings
	provider provider.IdentityProvider
	metrics  *metrics.Metrics
	log      *slog.Logger
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService validates settings eagerly; a service with an empty client id
// or secret is never constructed.
func NewService(settings Settings, p provider.IdentityProvider, opts ...Option) (*Service, error) {
	if settings.ClientID == "" || settings.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client id and client secret are required", config.ErrMissingConfiguration)
	}
	if p == nil {
		return nil, errors.New("registration: identity provider is nil")
	}

	s := &Service{
		settings: settings,
		provider: p,
		log:      logger.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SignUp registers a new user. Validation and derivation failures are
// returned before the provider is contacted. Provider errors are returned
// unchanged.
func (s *Service) SignUp(ctx context.Context, email, password string) (*provider.RegistrationResult, error) {
	if email == "" || password == "" {
		s.reject(ctx, metrics.OperationSignUp, "missing input")
		return nil, fmt.Errorf("%w: email and password are required", ErrMissingInput)
	}

	if result := credentials.ValidatePassword(password); !result.Valid {
		s.reject(ctx, metrics.OperationSignUp, result.Reason)
		return nil, result.Err()
	}

	cred, err := credentials.Derive(email, s.settings.ClientID, s.settings.ClientSecret)
	if err != nil {
		s.reject(ctx, metrics.OperationSignUp, err.Error())
		return nil, err
	}

	start := time.Now()
	res, err := s.provider.Register(ctx, provider.RegistrationRequest{
		ClientID:   s.settings.ClientID,
		Username:   cred.Identifier,
		Password:   password,
		SecretHash: cred.Signature,
		Attributes: []provider.Attribute{{Name: "email", Value: email}},
	})
	s.metrics.ObserveRemoteCall(metrics.OperationSignUp, start)

	if err != nil {
		s.metrics.RecordOutcome(metrics.OperationSignUp, metrics.OutcomeRemoteFailure)
		s.emit(ctx, slog.LevelError, "signup_failed",
			slog.String("identifier", cred.Identifier),
			slog.String("provider", s.provider.Name()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.metrics.RecordOutcome(metrics.OperationSignUp, metrics.OutcomeSuccess)
	attrs := []slog.Attr{
		slog.String("identifier", cred.Identifier),
		slog.String("provider", s.provider.Name()),
	}
	if res != nil {
		attrs = append(attrs,
			slog.String("user_sub", res.UserSub),
			slog.Bool("user_confirmed", res.UserConfirmed),
		)
		if res.Delivery != nil {
			attrs = append(attrs,
				slog.String("delivery_medium", res.Delivery.Medium),
				slog.String("delivery_destination", res.Delivery.Destination),
			)
		}
	}
	s.emit(ctx, slog.LevelInfo, "signup_succeeded", attrs...)

	return res, nil
}

// ConfirmSignUp submits the confirmation code the provider sent to the
// user. Provider errors are returned unchanged.
func (s *Service) ConfirmSignUp(ctx context.Context, email, code string) (*provider.ConfirmationResult, error) {
	if email == "" || code == "" {
		s.reject(ctx, metrics.OperationConfirm, "missing input")
		return nil, fmt.Errorf("%w: email and confirmation code are required", ErrMissingInput)
	}

	cred, err := credentials.Derive(email, s.settings.ClientID, s.settings.ClientSecret)
	if err != nil {
		s.reject(ctx, metrics.OperationConfirm, err.Error())
		return nil, err
	}

	start := time.Now()
	res, err := s.provider.ConfirmRegistration(ctx, provider.ConfirmationRequest{
		ClientID:         s.settings.ClientID,
		Username:         cred.Identifier,
		ConfirmationCode: code,
		SecretHash:       cred.Signature,
	})
	s.metrics.ObserveRemoteCall(metrics.OperationConfirm, start)

	if err != nil {
		s.metrics.RecordOutcome(metrics.OperationConfirm, metrics.OutcomeRemoteFailure)
		s.emit(ctx, slog.LevelError, "confirm_failed",
			slog.String("identifier", cred.Identifier),
			slog.String("provider", s.provider.Name()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.metrics.RecordOutcome(metrics.OperationConfirm, metrics.OutcomeSuccess)
	s.emit(ctx, slog.LevelInfo, "confirm_succeeded",
		slog.String("identifier", cred.Identifier),
		slog.String("provider", s.provider.Name()),
	)

	return res, nil
}

func (s *Service) reject(ctx context.Context, operation, reason string) {
	s.metrics.RecordOutcome(operation, metrics.OutcomeRejected)
	s.emit(ctx, slog.LevelWarn, operation+"_rejected", slog.String("reason", reason))
}

func (s *Service) emit(ctx context.Context, level slog.Level, event string, attrs ...slog.Attr) {
	if id, ok := logger.RequestID(ctx); ok {
		attrs = append(attrs, slog.String("request_id", id))
	}
	s.log.LogAttrs(ctx, level, event, attrs...)
}

package cognito

import (
	"context"
	"errors"
	"fmt"

	"signup-service/internal/auth/provider"
	"signup-service/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

const providerName = "cognito"

// API is the subset of the Cognito user pool client used here.
type API interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
}

// Provider implements provider.IdentityProvider against a Cognito user pool.
type Provider struct {
	api API
}

// New builds a Cognito client for region using the default AWS config chain.
// SignUp and ConfirmSignUp are unauthenticated calls, so no AWS credentials
// are needed beyond the app client secret hash.
func New(ctx context.Context, region string) (*Provider, error) {
	if region == "" {
		return nil, errors.New("cognito config missing region")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	logger.Info("cognito client ready", map[string]any{
		"region": region,
	})

	return NewWithAPI(cip.NewFromConfig(cfg)), nil
}

// NewWithAPI wraps an existing client.
func NewWithAPI(api API) *Provider {
	return &Provider{api: api}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// Register calls SignUp. SDK errors are returned unchanged.
func (p *Provider) Register(
	ctx context.Context,
	req provider.RegistrationRequest,
) (*provider.RegistrationResult, error) {

	attrs := make([]types.AttributeType, 0, len(req.Attributes))
	for _, a := range req.Attributes {
		attrs = append(attrs, types.AttributeType{
			Name:  aws.String(a.Name),
			Value: aws.String(a.Value),
		})
	}

	out, err := p.api.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(req.ClientID),
		Username:       aws.String(req.Username),
		Password:       aws.String(req.Password),
		SecretHash:     aws.String(req.SecretHash),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, err
	}

	result := &provider.RegistrationResult{
		UserSub:       aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}

	if d := out.CodeDeliveryDetails; d != nil {
		result.Delivery = &provider.CodeDelivery{
			Destination:   aws.ToString(d.Destination),
			Medium:        string(d.DeliveryMedium),
			AttributeName: aws.ToString(d.AttributeName),
		}
	}

	return result, nil
}

// ConfirmRegistration calls ConfirmSignUp. SDK errors are returned unchanged.
func (p *Provider) ConfirmRegistration(
	ctx context.Context,
	req provider.ConfirmationRequest,
) (*provider.ConfirmationResult, error) {

	_, err := p.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(req.ClientID),
		Username:         aws.String(req.Username),
		ConfirmationCode: aws.String(req.ConfirmationCode),
		SecretHash:       aws.String(req.SecretHash),
	})
	if err != nil {
		return nil, err
	}

	return &provider.ConfirmationResult{Confirmed: true}, nil
}

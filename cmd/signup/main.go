// Command signup performs one sign-up against the configured Cognito app
// client using TEST_EMAIL / TEST_PASSWORD and prints how to confirm it.
//
//	signup                 register the test user
//	signup confirm CODE    confirm the test user with the emailed code
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"signup-service/internal/auth/provider"
	"signup-service/internal/auth/provider/cognito"
	"signup-service/internal/auth/registration"
	"signup-service/internal/config"
	"signup-service/internal/logger"
)

type registrar interface {
	SignUp(ctx context.Context, email, password string) (*provider.RegistrationResult, error)
	ConfirmSignUp(ctx context.Context, email, code string) (*provider.ConfirmationResult, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	identityProvider, err := cognito.New(ctx, cfg.CognitoRegion)
	if err != nil {
		logger.Fatal("failed to initialize identity provider", map[string]any{
			"error": err.Error(),
		})
	}

	service, err := registration.NewService(
		registration.Settings{
			ClientID:     cfg.CognitoClientID,
			ClientSecret: cfg.CognitoClientSecret,
		},
		identityProvider,
	)
	if err != nil {
		logger.Fatal("failed to initialize registration", map[string]any{
			"error": err.Error(),
		})
	}

	// Operation errors are reported, not fatal.
	if err := run(ctx, service, cfg, os.Args[1:], os.Stdout); err != nil {
		logger.Error("signup run failed", map[string]any{
			"error": err.Error(),
		})
	}
}

func run(ctx context.Context, r registrar, cfg config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		if args[0] != "confirm" {
			return fmt.Errorf("unknown command %q; usage: signup [confirm CODE]", args[0])
		}
		if len(args) < 2 || args[1] == "" {
			return errors.New("usage: signup confirm CODE")
		}
		return confirm(ctx, r, cfg.TestEmail, args[1], out)
	}

	fmt.Fprintf(out, "Starting sign-up for %s...\n", cfg.TestEmail)

	res, err := r.SignUp(ctx, cfg.TestEmail, cfg.TestPassword)
	if err != nil {
		return err
	}

	if res != nil {
		fmt.Fprintf(out, "Registered user %s (confirmed: %t)\n", res.UserSub, res.UserConfirmed)
		if d := res.Delivery; d != nil {
			fmt.Fprintf(out, "Confirmation code sent by %s to %s\n", d.Medium, d.Destination)
		}
	}

	fmt.Fprintln(out, "After receiving the confirmation code by email, run:")
	fmt.Fprintln(out, "  signup confirm CONFIRMATION_CODE")
	return nil
}

func confirm(ctx context.Context, r registrar, email, code string, out io.Writer) error {
	fmt.Fprintf(out, "Confirming sign-up for %s...\n", email)

	if _, err := r.ConfirmSignUp(ctx, email, code); err != nil {
		return err
	}

	fmt.Fprintln(out, "Sign-up confirmed")
	return nil
}

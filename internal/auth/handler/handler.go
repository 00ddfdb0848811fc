package handler

import (
	"context"
	"errors"
	"net/http"

	"signup-service/internal/auth/credentials"
	"signup-service/internal/auth/provider"
	"signup-service/internal/auth/registration"

	"github.com/aws/smithy-go"
	"github.com/gin-gonic/gin"
)

// Registrar is the registration flow the handlers drive.
type Registrar interface {
	SignUp(ctx context.Context, email, password string) (*provider.RegistrationResult, error)
	ConfirmSignUp(ctx context.Context, email, code string) (*provider.ConfirmationResult, error)
}

type Handler struct {
	registrar Registrar
}

func NewHandler(registrar Registrar) *Handler {
	return &Handler{registrar: registrar}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/confirm", h.Confirm)
}

// writeError maps registration errors to responses. Anything that is not
// a local validation failure came from the identity provider; the service
// has already logged it.
func writeError(c *gin.Context, err error) {
	var pwErr *credentials.PasswordError

	switch {
	case errors.As(err, &pwErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid password",
			"reason": pwErr.Reason,
		})
	case errors.Is(err, registration.ErrMissingInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, credentials.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
	default:
		status, code := providerStatus(err)
		c.JSON(status, gin.H{
			"error":  "identity provider request failed",
			"code":   code,
			"detail": err.Error(),
		})
	}
}

// providerStatus separates provider rejections caused by the caller from
// provider faults. Unknown errors are treated as gateway failures.
func providerStatus(err error) (int, string) {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusBadGateway, ""
	}

	code := apiErr.ErrorCode()
	switch code {
	case "UsernameExistsException":
		return http.StatusConflict, code
	case "CodeMismatchException",
		"ExpiredCodeException",
		"InvalidPasswordException",
		"InvalidParameterException":
		return http.StatusBadRequest, code
	case "UserNotFoundException":
		return http.StatusNotFound, code
	default:
		return http.StatusBadGateway, code
	}
}

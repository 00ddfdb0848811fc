package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"signup-service/internal/auth/provider"
	"signup-service/internal/auth/provider/mocks"
	"signup-service/internal/auth/registration"
	"signup-service/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockIdentityProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	p := mocks.NewMockIdentityProvider(ctrl)
	p.EXPECT().Name().Return("cognito").AnyTimes()

	svc, err := registration.NewService(
		registration.Settings{ClientID: "client-id", ClientSecret: "client-secret"},
		p,
		registration.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r, p
}

func do(r http.Handler, path, body string) (int, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestSignUp(t *testing.T) {
	t.Run("201 with code delivery", func(t *testing.T) {
		r, p := newRouter(t)
		p.EXPECT().Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req provider.RegistrationRequest) (*provider.RegistrationResult, error) {
				assert.Equal(t, "kurodougu1", req.Username)
				return &provider.RegistrationResult{
					UserSub:  "sub-1",
					Delivery: &provider.CodeDelivery{Destination: "k***@g***", Medium: "EMAIL", AttributeName: "email"},
				}, nil
			})

		status, body := do(r, "/auth/signup", `{"email":"kuro.dougu1@gmail.com","password":"Test123!@#"}`)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "registered", body["status"])
		assert.Equal(t, "sub-1", body["user_sub"])
		assert.Equal(t, false, body["user_confirmed"])
		delivery, ok := body["code_delivery"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "EMAIL", delivery["medium"])
	})

	t.Run("400 on malformed json", func(t *testing.T) {
		r, _ := newRouter(t)
		status, body := do(r, "/auth/signup", `{`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid request", body["error"])
	})

	t.Run("400 on missing password", func(t *testing.T) {
		r, _ := newRouter(t)
		status, body := do(r, "/auth/signup", `{"email":"a@b.com"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["error"], "missing required input")
	})

	t.Run("400 with policy reason", func(t *testing.T) {
		r, _ := newRouter(t)
		status, body := do(r, "/auth/signup", `{"email":"a@b.com","password":"short1!"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid password", body["error"])
		assert.Equal(t, "too short", body["reason"])
	})

	t.Run("400 on unusable email", func(t *testing.T) {
		r, _ := newRouter(t)
		status, body := do(r, "/auth/signup", `{"email":"+++@x.com","password":"Test123!@#"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid email", body["error"])
	})

	t.Run("502 on unclassified provider error", func(t *testing.T) {
		r, p := newRouter(t)
		p.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset by peer"))

		status, body := do(r, "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, "", body["code"])
		assert.Equal(t, "connection reset by peer", body["detail"])
	})
}

func TestConfirm(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		r, p := newRouter(t)
		p.EXPECT().ConfirmRegistration(gomock.Any(), gomock.Any()).
			Return(&provider.ConfirmationResult{Confirmed: true}, nil)

		status, body := do(r, "/auth/confirm", `{"email":"a@b.com","code":"123456"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "confirmed", body["status"])
	})

	t.Run("400 on missing code", func(t *testing.T) {
		r, _ := newRouter(t)
		status, _ := do(r, "/auth/confirm", `{"email":"a@b.com"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("400 on code mismatch", func(t *testing.T) {
		r, p := newRouter(t)
		p.EXPECT().ConfirmRegistration(gomock.Any(), gomock.Any()).
			Return(nil, &types.CodeMismatchException{Message: aws.String("Invalid verification code provided")})

		status, body := do(r, "/auth/confirm", `{"email":"a@b.com","code":"000000"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "CodeMismatchException", body["code"])
	})
}

func TestProviderErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"existing user on signup", "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`,
			&types.UsernameExistsException{Message: aws.String("User already exists")},
			http.StatusConflict, "UsernameExistsException",
		},
		{
			"provider password rule on signup", "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`,
			&types.InvalidPasswordException{Message: aws.String("Password did not conform with policy")},
			http.StatusBadRequest, "InvalidPasswordException",
		},
		{
			"bad parameter on signup", "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`,
			&types.InvalidParameterException{Message: aws.String("Invalid email address format.")},
			http.StatusBadRequest, "InvalidParameterException",
		},
		{
			"provider fault on signup", "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`,
			&types.InternalErrorException{Message: aws.String("internal error")},
			http.StatusBadGateway, "InternalErrorException",
		},
		{
			"wrong code on confirm", "/auth/confirm", `{"email":"a@b.com","code":"000000"}`,
			&types.CodeMismatchException{Message: aws.String("Invalid verification code provided")},
			http.StatusBadRequest, "CodeMismatchException",
		},
		{
			"expired code on confirm", "/auth/confirm", `{"email":"a@b.com","code":"000000"}`,
			&types.ExpiredCodeException{Message: aws.String("Invalid code provided, please request a code again.")},
			http.StatusBadRequest, "ExpiredCodeException",
		},
		{
			"unknown user on confirm", "/auth/confirm", `{"email":"a@b.com","code":"123456"}`,
			&types.UserNotFoundException{Message: aws.String("Username/client id combination not found.")},
			http.StatusNotFound, "UserNotFoundException",
		},
		{
			"throttled on confirm", "/auth/confirm", `{"email":"a@b.com","code":"123456"}`,
			&types.TooManyRequestsException{Message: aws.String("Rate exceeded")},
			http.StatusBadGateway, "TooManyRequestsException",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p := newRouter(t)
			if tt.path == "/auth/signup" {
				p.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			} else {
				p.EXPECT().ConfirmRegistration(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			status, body := do(r, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.err.Error(), body["detail"])
		})
	}
}

func TestProviderFailure_LoggedOnceByService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var processLogs, serviceLogs bytes.Buffer
	t.Cleanup(logger.Use(logger.New(&processLogs, "debug")))

	ctrl := gomock.NewController(t)
	p := mocks.NewMockIdentityProvider(ctrl)
	p.EXPECT().Name().Return("cognito").AnyTimes()
	p.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, &types.UsernameExistsException{Message: aws.String("User already exists")})

	svc, err := registration.NewService(
		registration.Settings{ClientID: "client-id", ClientSecret: "client-secret"},
		p,
		registration.WithLogger(logger.New(&serviceLogs, "debug")),
	)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)

	status, _ := do(r, "/auth/signup", `{"email":"a@b.com","password":"Test123!@#"}`)
	require.Equal(t, http.StatusConflict, status)

	assert.Empty(t, processLogs.String())
	lines := strings.Split(strings.TrimSpace(serviceLogs.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "signup_failed")
}

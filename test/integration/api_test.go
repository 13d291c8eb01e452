// Package integration provides end-to-end tests that drive the real DI container through
// an httptest.Server.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/jwtservice/internal/app"
	"github.com/allisson/jwtservice/internal/config"
	"github.com/allisson/jwtservice/internal/httputil"
	"github.com/allisson/jwtservice/internal/token/http/dto"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	server    *httptest.Server
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			bodyReader = strings.NewReader(raw)
		} else {
			bodyBytes, err := json.Marshal(body)
			require.NoError(t, err, "failed to marshal request body")
			bodyReader = bytes.NewReader(bodyBytes)
		}
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	return resp, respBody
}

func (ctx *integrationTestContext) generate(t *testing.T, body any) string {
	t.Helper()

	resp, respBody := ctx.makeRequest(t, http.MethodPost, "/api/token/generate", body, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(respBody))

	var response dto.GenerateTokenResponse
	require.NoError(t, json.Unmarshal(respBody, &response))
	require.True(t, response.Success)
	return response.Token
}

func decodeError(t *testing.T, body []byte) httputil.ErrorResponse {
	t.Helper()
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &response))
	return response
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, mutate func(*config.Config)) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:                   "localhost",
		ServerPort:                   3000,
		ShutdownTimeout:              5 * time.Second,
		AppEnv:                       "test",
		Debug:                        false,
		LogLevel:                     "error",
		JWTSecret:                    "integration-test-secret",
		JWTExpiresIn:                 "1h",
		JWTAlgorithm:                 "HS256",
		RateLimitTokenEnabled:        true,
		RateLimitTokenRequestsPerSec: 1000,
		RateLimitTokenBurst:          1000,
		MetricsEnabled:               true,
		MetricsNamespace:             "integration",
		MetricsPort:                  8081,
	}
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	container := app.NewContainer(cfg).WithVersion("integration")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testCtx := &integrationTestContext{
		container: container,
		server:    httptest.NewServer(handler),
	}
	t.Cleanup(func() { teardownIntegrationTest(t, testCtx) })
	return testCtx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, nil)

	resp, body := ctx.makeRequest(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"online","service":"jwt-microservice","version":"integration"}`, string(body))

	resp, _ = ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestIntegration_Token_CompleteFlow walks the credential lifecycle: issue, verify,
// access gated routes, revoke, and verify again.
func TestIntegration_Token_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, nil)

	userToken := ctx.generate(t, map[string]any{"userId": "123", "role": "user"})
	adminToken := ctx.generate(t, map[string]any{"userId": "1", "role": "admin", "expiresIn": "2h"})

	t.Run("01_VerifyReturnsClaims", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": userToken}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response dto.VerifyTokenResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.True(t, response.Success)
		assert.Equal(t, "123", response.Payload["userId"])
		assert.Equal(t, "user", response.Payload["role"])
		assert.NotEmpty(t, response.Expires)
		assert.NotContains(t, response.Payload, "expiresIn")
	})

	t.Run("02_UserReachesProtectedAndProfile", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/api/protected", nil, userToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := ctx.makeRequest(t, http.MethodGet, "/api/profile", nil, userToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"profile":{"userId":"123","role":"user"}}`, string(body))
	})

	t.Run("03_UserDeniedAdmin", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/api/admin", nil, userToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "insufficient_role", decodeError(t, body).Error)
	})

	t.Run("04_AdminReachesAdmin", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/api/admin", nil, adminToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "access granted to admin area")
	})

	t.Run("05_MissingCredential", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodGet, "/api/protected", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "authentication token required", decodeError(t, body).Message)
	})

	t.Run("06_RevokeIsIdempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/revoke", map[string]string{"token": userToken}, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"success":true,"message":"token revoked successfully"}`, string(body))
		}
	})

	t.Run("07_RevokedTokenRejectedEverywhere", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": userToken}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "token has been revoked", decodeError(t, body).Message)

		resp, body = ctx.makeRequest(t, http.MethodGet, "/api/protected", nil, userToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "token_revoked", decodeError(t, body).Error)
	})

	t.Run("08_OtherTokensUnaffected", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/api/protected", nil, adminToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestIntegration_Token_Failures(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, nil)

	t.Run("EmptyPayload", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/generate", map[string]any{}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "empty_payload", decodeError(t, body).Error)
	})

	t.Run("OnlyExpiresIn", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/generate", map[string]any{"expiresIn": "1h"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "empty_payload", decodeError(t, body).Error)
	})

	t.Run("NonObjectBody", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/token/generate", `"just a string"`, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidExpiresIn", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/generate", map[string]any{"userId": "1", "expiresIn": "-5m"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_expiry", decodeError(t, body).Error)
	})

	t.Run("ImmediateExpiry", func(t *testing.T) {
		token := ctx.generate(t, map[string]any{"userId": "1", "expiresIn": "0s"})

		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": token}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "token has expired", decodeError(t, body).Message)
	})

	t.Run("TamperedToken", func(t *testing.T) {
		token := ctx.generate(t, map[string]any{"userId": "1", "role": "user"})
		tampered := token[:len(token)-2] + flip(token[len(token)-2:])

		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": tampered}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "token is invalid or malformed", decodeError(t, body).Message)
	})

	t.Run("MissingToken", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "missing_token", decodeError(t, body).Error)
	})

	t.Run("RevokeGarbage", func(t *testing.T) {
		resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/revoke", map[string]string{"token": "not-a-token"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_token_format", decodeError(t, body).Error)
	})
}

func TestIntegration_RateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, func(cfg *config.Config) {
		cfg.RateLimitTokenRequestsPerSec = 0.01
		cfg.RateLimitTokenBurst = 2
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{}, "")
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, statuses)
}

func TestIntegration_DebugDetail(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, func(cfg *config.Config) {
		cfg.Debug = true
	})

	resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": "a.b.c"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	response := decodeError(t, body)
	assert.Equal(t, "malformed_token", response.Error)
	assert.NotEmpty(t, response.Detail)
	assert.NotContains(t, string(body), "integration-test-secret")
}

func TestIntegration_Metrics(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, nil)
	token := ctx.generate(t, map[string]any{"userId": "1"})
	resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/token/revoke", map[string]string{"token": token}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ctx.makeRequest(t, http.MethodPost, "/api/token/verify", map[string]string{"token": token}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	metricsServer, err := ctx.container.MetricsServer()
	require.NoError(t, err)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	output := w.Body.String()
	assert.Contains(t, output, "integration_operations_total")
	assert.Contains(t, output, `operation="token_issue"`)
	assert.Contains(t, output, "integration_revocation_ledger_entries")
	assert.Regexp(t, `integration_operations_total\{[^}]*operation="token_verify"[^}]*status="token_revoked"[^}]*\} 1`, output)
	assert.Regexp(t, `integration_http_requests_total\{[^}]*error_code="token_revoked"[^}]*route="/api/token/verify"[^}]*\} 1`, output)
	assert.Contains(t, output, "go_goroutines")
}

// flip changes the characters of s so the signature no longer matches.
func flip(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
	}
	return string(b)
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	usecaseMocks "github.com/allisson/jwtservice/internal/token/usecase/mocks"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := newDiscardLogger()

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{"disabled", false, "https://example.com", true},
		{"enabled without origins", true, "", true},
		{"enabled with only separators", true, " , ,", true},
		{"enabled with only invalid origins", true, "example.com,ftp://x.example.com", true},
		{"enabled with origins", true, "https://app.example.com,https://admin.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"https://app.example.com", "https://admin.example.com"},
		parseOrigins(" https://app.example.com , https://admin.example.com "),
	)
	assert.Empty(t, parseOrigins(",,"))
}

func TestCORS_ThroughRouter(t *testing.T) {
	cfg := testRouterConfig()
	cfg.CORSEnabled = true
	cfg.CORSAllowOrigins = "https://app.example.com"
	server := setupFullRouter(t, cfg, &usecaseMocks.MockTokenUseCase{})

	t.Run("preflight for token endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/token/generate", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")

		w := serve(server, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("simple request from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")

		w := serve(server, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled adds no headers", func(t *testing.T) {
		disabled := setupFullRouter(t, testRouterConfig(), &usecaseMocks.MockTokenUseCase{})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example.com")

		w := serve(disabled, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestValidOrigins(t *testing.T) {
	logger := newDiscardLogger()

	got := validOrigins([]string{
		"https://app.example.com",
		"http://localhost:3000",
		"*",
		"app.example.com",
		"ftp://files.example.com",
		"https://app.example.com/path",
	}, logger)

	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000", "*"}, got)
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := testRouterConfig()
	cfg.CORSEnabled = true
	cfg.CORSAllowOrigins = "*"
	server := setupFullRouter(t, cfg, &usecaseMocks.MockTokenUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")

	w := serve(server, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/jwtservice/internal/token/domain"
	"github.com/allisson/jwtservice/internal/token/usecase"
	usecaseMocks "github.com/allisson/jwtservice/internal/token/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) ObserveOperation(ctx context.Context, operation, status string, elapsed time.Duration) {
	m.Called(ctx, operation, status, elapsed)
}

func (m *mockBusinessMetrics) expect(ctx context.Context, operation, status string) {
	m.On("ObserveOperation", ctx, operation, status, mock.AnythingOfType("time.Duration")).Return().Once()
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Issue success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		input := &domain.IssueTokenInput{Claims: domain.Claims{"userId": "123"}}
		output := &domain.IssueTokenOutput{Token: "token", ExpiresIn: "1h"}

		mockNext.On("Issue", ctx, input).Return(output, nil).Once()
		mockMetrics.expect(ctx, "token_issue", "success")

		res, err := uc.Issue(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Issue empty payload", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		input := &domain.IssueTokenInput{}

		mockNext.On("Issue", ctx, input).Return(nil, domain.ErrEmptyPayload).Once()
		mockMetrics.expect(ctx, "token_issue", "empty_payload")

		res, err := uc.Issue(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmptyPayload)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("VerifyAndAuthenticate reasons", func(t *testing.T) {
		testCases := []struct {
			err    error
			status string
		}{
			{nil, "success"},
			{domain.ErrMalformedToken, "malformed_token"},
			{domain.ErrInvalidSignature, "invalid_signature"},
			{domain.ErrExpiredToken, "token_expired"},
			{domain.ErrRevokedToken, "token_revoked"},
		}

		for _, tc := range testCases {
			t.Run(tc.status, func(t *testing.T) {
				mockNext := &usecaseMocks.MockTokenUseCase{}
				mockMetrics := &mockBusinessMetrics{}
				uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

				var claims domain.Claims
				if tc.err == nil {
					claims = domain.Claims{"userId": "123"}
				}
				if claims != nil {
					mockNext.On("VerifyAndAuthenticate", ctx, "token").Return(claims, nil).Once()
				} else {
					mockNext.On("VerifyAndAuthenticate", ctx, "token").Return(nil, tc.err).Once()
				}
				mockMetrics.expect(ctx, "token_verify", tc.status)

				res, err := uc.VerifyAndAuthenticate(ctx, "token")
				assert.Equal(t, claims, res)
				assert.Equal(t, tc.err, err)
				mockMetrics.AssertExpectations(t)
			})
		}
	})

	t.Run("Revoke success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Revoke", ctx, "token").Return(nil).Once()
		mockMetrics.expect(ctx, "token_revoke", "success")

		assert.NoError(t, uc.Revoke(ctx, "token"))
		mockMetrics.AssertExpectations(t)
	})

	t.Run("PruneRevoked success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("PruneRevoked", ctx).Return(3, nil).Once()
		mockMetrics.expect(ctx, "token_prune", "success")

		removed, err := uc.PruneRevoked(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 3, removed)
		mockMetrics.AssertExpectations(t)
	})
}

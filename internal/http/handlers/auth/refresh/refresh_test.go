package refresh

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pulsepoint/pulsepoint-api/internal/http/cookie"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/jwt"
)

// MockService реализует интерфейс refresh.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) RefreshTokens(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		cookieValue    string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		wantCookie     bool
	}{
		{
			name:        "успешное обновление",
			cookieValue: "old-refresh",
			setupMock: func(m *MockService) {
				m.On("RefreshTokens", "old-refresh").
					Return("new-access", "new-refresh", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Tokens refreshed successfully"`,
			wantCookie:     true,
		},
		{
			name:           "cookie отсутствует",
			cookieValue:    "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"refresh token is missing"`,
		},
		{
			name:        "просроченный токен",
			cookieValue: "expired-refresh",
			setupMock: func(m *MockService) {
				m.On("RefreshTokens", "expired-refresh").
					Return("", "", jwt.ErrTokenExpired)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"invalid or expired refresh token"`,
		},
		{
			name:        "access-токен вместо refresh",
			cookieValue: "access-token",
			setupMock: func(m *MockService) {
				m.On("RefreshTokens", "access-token").
					Return("", "", jwt.ErrWrongTokenKind)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"invalid or expired refresh token"`,
		},
		{
			name:        "ошибка сервиса",
			cookieValue: "some-refresh",
			setupMock: func(m *MockService) {
				m.On("RefreshTokens", "some-refresh").
					Return("", "", errors.New("signing error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"failed to refresh tokens"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, 30*24*time.Hour)

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh-access-token", nil)
			if tt.cookieValue != "" {
				req.AddCookie(&http.Cookie{Name: cookie.RefreshTokenName, Value: tt.cookieValue})
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.wantCookie {
				var refresh *http.Cookie
				for _, c := range w.Result().Cookies() {
					if c.Name == cookie.RefreshTokenName {
						refresh = c
					}
				}
				assert.NotNil(t, refresh)
				assert.Equal(t, "new-refresh", refresh.Value)
			}

			mockService.AssertExpectations(t)
		})
	}
}

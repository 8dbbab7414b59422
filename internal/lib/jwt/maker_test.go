package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaker() *MakerImpl {
	return NewMaker("test_secret_key_1234567890", 15*time.Minute, 30*24*time.Hour)
}

func TestMaker_IssueAndVerifyAccessToken(t *testing.T) {
	maker := newTestMaker()

	tests := []struct {
		name    string
		userUID string
	}{
		{
			name:    "uuid-like identifier",
			userUID: "0190a5b2-7c6e-7f00-8000-0242ac120002",
		},
		{
			name:    "plain identifier",
			userUID: "user-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.IssueAccessToken(tt.userUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.VerifyToken(token, KindAccess)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, string(KindAccess), claims.TokenKind)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_VerifyToken_Errors(t *testing.T) {
	maker := newTestMaker()

	access, err := maker.IssueAccessToken("user-1")
	require.NoError(t, err)
	refresh, err := maker.IssueRefreshToken("user-1", 0)
	require.NoError(t, err)

	expiredMaker := NewMaker("test_secret_key_1234567890", -time.Minute, 30*24*time.Hour)
	expired, err := expiredMaker.IssueAccessToken("user-1")
	require.NoError(t, err)

	otherKeyMaker := NewMaker("another_secret_key", 15*time.Minute, 30*24*time.Hour)
	foreign, err := otherKeyMaker.IssueAccessToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected Kind
		wantErr  error
	}{
		{
			name:     "garbage token",
			token:    "not.a.token",
			expected: KindAccess,
			wantErr:  ErrInvalidToken,
		},
		{
			name:     "wrong signing key",
			token:    foreign,
			expected: KindAccess,
			wantErr:  ErrInvalidToken,
		},
		{
			name:     "expired token",
			token:    expired,
			expected: KindAccess,
			wantErr:  ErrTokenExpired,
		},
		{
			name:     "access token where refresh expected",
			token:    access,
			expected: KindRefresh,
			wantErr:  ErrWrongTokenKind,
		},
		{
			name:     "refresh token where access expected",
			token:    refresh,
			expected: KindAccess,
			wantErr:  ErrWrongTokenKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.VerifyToken(tt.token, tt.expected)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMaker_IssueRefreshToken_CustomTTL(t *testing.T) {
	maker := newTestMaker()

	token, err := maker.IssueRefreshToken("user-1", 60*24*time.Hour)
	require.NoError(t, err)

	claims, err := maker.VerifyToken(token, KindRefresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(60*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestMaker_RefreshPair(t *testing.T) {
	maker := newTestMaker()

	refresh, err := maker.IssueRefreshToken("user-7", 0)
	require.NoError(t, err)

	newAccess, newRefresh, err := maker.RefreshPair(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	// Обе части новой пары должны разрешаться в того же пользователя.
	accessClaims, err := maker.VerifyToken(newAccess, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-7", accessClaims.UserUID)

	refreshClaims, err := maker.VerifyToken(newRefresh, KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-7", refreshClaims.UserUID)
}

func TestMaker_RefreshPair_RejectsAccessToken(t *testing.T) {
	maker := newTestMaker()

	access, err := maker.IssueAccessToken("user-7")
	require.NoError(t, err)

	_, _, err = maker.RefreshPair(access)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

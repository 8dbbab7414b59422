// Package jwt реализует генерацию, проверку и ротацию JWT токенов.
//
// Claims расширяет стандартные claims JWT, добавляя идентификатор пользователя
// и тип токена. Валидность токена определяется только подписью и сроком —
// серверный список отзыва не ведётся.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает пользовательские данные, хранящиеся в JWT.
type Claims struct {
	UserUID              string `json:"user_uid"`   // Идентификатор пользователя
	TokenKind            string `json:"token_kind"` // Тип токена: access или refresh
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// IssueAccessToken выпускает токен доступа с коротким сроком жизни.
func (m *MakerImpl) IssueAccessToken(userUID string) (string, error) {
	return m.issue(userUID, KindAccess, m.accessTTL)
}

// IssueRefreshToken выпускает токен обновления. При ttl <= 0 используется
// срок по умолчанию (30 дней), регистрация передаёт увеличенный срок.
func (m *MakerImpl) IssueRefreshToken(userUID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.refreshTTL
	}
	return m.issue(userUID, KindRefresh, ttl)
}

func (m *MakerImpl) issue(userUID string, kind Kind, ttl time.Duration) (string, error) {
	const op = "jwt.issue"
	now := time.Now()
	claims := Claims{
		UserUID:   userUID,
		TokenKind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// VerifyToken парсит токен, проверяет его подпись, срок и тип,
// возвращает Claims, если токен корректен.
//
// Истёкший токен даёт ErrTokenExpired, сломанная подпись — ErrInvalidToken,
// несовпадение типа — ErrWrongTokenKind.
func (m *MakerImpl) VerifyToken(tokenStr string, expected Kind) (*Claims, error) {
	const op = "jwt.VerifyToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if claims.TokenKind != string(expected) {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenKind)
	}
	return claims, nil
}

// RefreshPair проверяет refresh-токен и выпускает новую пару токенов.
// Старый refresh-токен не отзывается: его недействительность обеспечивается
// только сроком жизни.
func (m *MakerImpl) RefreshPair(refreshToken string) (string, string, error) {
	claims, err := m.VerifyToken(refreshToken, KindRefresh)
	if err != nil {
		return "", "", err
	}
	access, err := m.IssueAccessToken(claims.UserUID)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.IssueRefreshToken(claims.UserUID, 0)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

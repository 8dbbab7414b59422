// Пакет services: разрешение access-токена в действующего пользователя.
// Токены не хранятся на сервере, поэтому актуальность аккаунта
// перепроверяется по базе на каждом защищённом запросе.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/jwt"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

var (
	// ErrUnauthenticated возвращается при отсутствующем, просроченном
	// или некорректном access-токене.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUserNotFound возвращается, если владелец токена удалён или не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountDisabled возвращается для деактивированного аккаунта.
	ErrAccountDisabled = errors.New("account disabled")
)

// UserRepository описывает доступ к пользователям для проверки сессии.
type UserRepository interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// TokenVerifier проверяет подпись и тип токена.
type TokenVerifier interface {
	VerifyToken(tokenStr string, expected jwt.Kind) (*jwt.Claims, error)
}

// SessionResolver сопоставляет access-токен с живым пользователем.
type SessionResolver struct {
	users  UserRepository
	tokens TokenVerifier
}

// NewSessionResolver создает новый экземпляр SessionResolver.
func NewSessionResolver(users UserRepository, tokens TokenVerifier) *SessionResolver {
	return &SessionResolver{users: users, tokens: tokens}
}

// Resolve проверяет access-токен и возвращает его владельца.
// Удалённый пользователь неотличим от несуществующего.
func (s *SessionResolver) Resolve(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "session.Resolve"

	claims, err := s.tokens.VerifyToken(accessToken, jwt.KindAccess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.IsDeleted {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrAccountDisabled)
	}

	return user, nil
}

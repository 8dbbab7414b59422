// Package services содержит логику одноразовых ссылок беспарольного входа.
// Токен живёт в Redis с TTL, равным сроку его действия, и удаляется
// при первой успешной проверке, что исключает повторное использование.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// Ошибки проверки magic-link токенов.
var (
	// ErrUserNotFound возвращается, когда на почту не зарегистрирован аккаунт.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenNotFound возвращается для неизвестного или уже использованного токена.
	ErrTokenNotFound = errors.New("magic link token not found")
	// ErrTokenExpired возвращается для токена с истёкшим сроком.
	ErrTokenExpired = errors.New("magic link token expired")
)

// UserRepository описывает контракт для поиска пользователей.
type UserRepository interface {
	// GetUserByEmail возвращает неудалённого пользователя по почте.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByUID возвращает пользователя по UID.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
}

// LinkStore описывает хранилище одноразовых токенов с TTL.
type LinkStore interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

const verifyPath = "/api/v1/auth/magic-link/verify"

// MagicLinkService выпускает и проверяет одноразовые ссылки входа.
type MagicLinkService struct {
	users    UserRepository
	store    LinkStore
	baseURL  string
	tokenTTL time.Duration
	log      *slog.Logger
}

// NewMagicLinkService создает новый экземпляр MagicLinkService.
func NewMagicLinkService(users UserRepository, store LinkStore, baseURL string, tokenTTL time.Duration, log *slog.Logger) *MagicLinkService {
	return &MagicLinkService{
		users:    users,
		store:    store,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Create выпускает одноразовый токен входа для владельца почты email
// и возвращает пользователя вместе с готовой ссылкой для перехода.
func (s *MagicLinkService) Create(ctx context.Context, email string) (*models.User, string, error) {
	const op = "magiclink.Create"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.NewString()
	link := models.MagicLink{
		Token:     token,
		UserUID:   user.UID,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(s.tokenTTL),
	}
	if err := s.store.Set(storeKey(token), link, s.tokenTTL); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("magic link issued", slog.String("user_uid", user.UID))

	linkURL := fmt.Sprintf("%s%s?token=%s", s.baseURL, verifyPath, url.QueryEscape(token))
	return user, linkURL, nil
}

// Verify проверяет токен и возвращает связанного с ним пользователя.
// Токен потребляется до возврата: повторная проверка того же значения
// завершается ErrTokenNotFound.
func (s *MagicLinkService) Verify(ctx context.Context, token string) (*models.User, error) {
	const op = "magiclink.Verify"

	var link models.MagicLink
	found, err := s.store.Get(storeKey(token), &link)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenNotFound)
	}

	// Токен одноразовый: запись удаляется независимо от исхода проверки.
	if err := s.store.Invalidate(storeKey(token)); err != nil {
		s.log.Error("failed to consume magic link token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if time.Now().UTC().After(link.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	user, err := s.users.GetUserByUID(ctx, link.UserUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func storeKey(token string) string {
	return "magiclink:" + token
}

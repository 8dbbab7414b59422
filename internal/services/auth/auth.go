// Package services содержит логику бизнес-уровня для регистрации,
// входа и обновления сессий пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/jwt"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/password"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// Ошибки аутентификации.
var (
	// ErrEmailAlreadyExists возвращается при регистрации на занятую почту.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	// Неизвестная почта и неверный пароль дают одну и ту же ошибку,
	// чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с заполненным UID.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByEmail возвращает неудалённого пользователя по почте.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SubscriptionEnroller записывает пользователя на бесплатный план.
type SubscriptionEnroller interface {
	EnrollFree(ctx context.Context, user *models.User) (*models.SubscriptionInfo, error)
}

// MagicLinker выпускает и проверяет одноразовые ссылки входа.
type MagicLinker interface {
	Create(ctx context.Context, email string) (*models.User, string, error)
	Verify(ctx context.Context, token string) (*models.User, error)
}

// Notifier ставит письма в очередь отправки.
type Notifier interface {
	SendWelcome(user models.User) error
	SendMagicLink(user models.User, link string) error
}

// RegisterInput описывает входные данные регистрации.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterResult объединяет результат регистрации: пользователя,
// его подписку и пару токенов.
type RegisterResult struct {
	User         *models.User
	Subscription *models.SubscriptionInfo
	AccessToken  string
	RefreshToken string
}

// AuthService отвечает за регистрацию, вход, обновление токенов
// и беспарольный вход по magic-link.
type AuthService struct {
	users              UserRepository
	subs               SubscriptionEnroller
	magicLinks         MagicLinker
	tokens             jwt.Maker
	notifier           Notifier
	registerRefreshTTL time.Duration
	log                *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
// registerRefreshTTL — увеличенный срок refresh-токена, выдаваемого при регистрации.
func NewAuthService(users UserRepository, subs SubscriptionEnroller, magicLinks MagicLinker,
	tokens jwt.Maker, notifier Notifier, registerRefreshTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{
		users:              users,
		subs:               subs,
		magicLinks:         magicLinks,
		tokens:             tokens,
		notifier:           notifier,
		registerRefreshTTL: registerRefreshTTL,
		log:                log,
	}
}

// Register создает нового пользователя, записывает его на бесплатный план
// и выпускает пару токенов. Порядок фиксирован: запись пользователя
// коммитится до подписки, обе — до выпуска токенов, поскольку токены
// ссылаются на уже существующий uid.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        input.Email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sub, err := s.subs.EnrollFree(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	access, err := s.tokens.IssueAccessToken(user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.UID, s.registerRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Письмо только ставится в очередь: сбой не ломает регистрацию.
	if err := s.notifier.SendWelcome(*user); err != nil {
		s.log.Error("failed to queue welcome email", sl.Err(err))
	}

	s.log.Info("user registered", slog.String("user_uid", user.UID))

	return &RegisterResult{
		User:         user,
		Subscription: sub,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Login проверяет пару email/пароль и выпускает пару токенов.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if user.PasswordHash == "" {
		// Passwordless-пользователь: вход только по magic-link.
		return nil, "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	access, refresh, err := s.issueSession(user.UID)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}
	return user, access, refresh, nil
}

// RefreshTokens проверяет refresh-токен и выпускает новую пару.
// Существование пользователя здесь не перепроверяется: это делает
// резолвер сессии на каждом защищённом запросе.
func (s *AuthService) RefreshTokens(refreshToken string) (string, string, error) {
	return s.tokens.RefreshPair(refreshToken)
}

// RequestMagicLink выпускает одноразовую ссылку входа и ставит письмо
// с ней в очередь отправки.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) (string, error) {
	const op = "auth.RequestMagicLink"

	user, link, err := s.magicLinks.Create(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.notifier.SendMagicLink(*user, link); err != nil {
		s.log.Error("failed to queue magic link email", sl.Err(err))
	}
	return link, nil
}

// VerifyMagicLink проверяет одноразовый токен и выпускает пару токенов
// для связанного с ним пользователя.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (*models.User, string, string, error) {
	const op = "auth.VerifyMagicLink"

	user, err := s.magicLinks.Verify(ctx, token)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}

	access, refresh, err := s.issueSession(user.UID)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", op, err)
	}
	return user, access, refresh, nil
}

func (s *AuthService) issueSession(userUID string) (string, string, error) {
	access, err := s.tokens.IssueAccessToken(userUID)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.IssueRefreshToken(userUID, 0)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

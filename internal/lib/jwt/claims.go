// Package jwt реализует генерацию, проверку и ротацию JWT токенов доступа
// и обновления с пользовательскими claim полями.
//
// Maker определяет интерфейс выдачи и проверки токенов.
// MakerImpl — конкретная реализация с секретным ключом и сроками жизни.
package jwt

import (
	"errors"
	"time"
)

// Kind различает токен доступа и токен обновления.
type Kind string

const (
	// KindAccess — короткоживущий токен для аутентификации запросов.
	KindAccess Kind = "access"
	// KindRefresh — долгоживущий токен, используемый только для выпуска новой пары.
	KindRefresh Kind = "refresh"
)

// Ошибки проверки токена.
var (
	// ErrInvalidToken возвращается, когда подпись или структура токена не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired возвращается, когда срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongTokenKind возвращается, когда вместо refresh-токена предъявлен
	// access-токен или наоборот.
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Maker описывает интерфейс для выдачи, проверки и ротации JWT токенов.
type Maker interface {
	// IssueAccessToken выпускает короткоживущий токен доступа для пользователя.
	IssueAccessToken(userUID string) (string, error)
	// IssueRefreshToken выпускает токен обновления с заданным сроком жизни.
	// При ttl <= 0 используется срок по умолчанию.
	IssueRefreshToken(userUID string, ttl time.Duration) (string, error)
	// VerifyToken проверяет подпись, срок и тип токена, возвращает claims.
	VerifyToken(tokenStr string, expected Kind) (*Claims, error)
	// RefreshPair проверяет refresh-токен и выпускает новую пару токенов.
	RefreshPair(refreshToken string) (access string, refresh string, err error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и сроков жизни токенов.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов
	accessTTL  time.Duration // Время жизни токена доступа
	refreshTTL time.Duration // Время жизни токена обновления по умолчанию
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

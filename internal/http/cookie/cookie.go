// Package cookie управляет refresh-cookie сессии. Cookie недоступна
// из JavaScript и передаётся только по HTTPS, SameSite=None позволяет
// работать фронтенду с другого origin.
package cookie

import (
	"net/http"
	"time"
)

// RefreshTokenName — имя cookie с refresh-токеном.
const RefreshTokenName = "refresh_token"

// SetRefreshToken устанавливает refresh-cookie со сроком жизни ttl.
func SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearRefreshToken немедленно гасит refresh-cookie.
// Сами токены не отзываются, выход сводится к удалению cookie.
func ClearRefreshToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

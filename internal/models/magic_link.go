// Package models содержит модель одноразового токена magic-link входа.
package models

import "time"

// MagicLink представляет одноразовый токен беспарольного входа,
// привязанный к одному пользователю. Токен становится недействительным
// после первой успешной проверки либо по истечении срока.
type MagicLink struct {
	Token     string    `json:"token"`      // Непрозрачное случайное значение
	UserUID   string    `json:"user_uid"`   // Пользователь, которому выдан токен
	Email     string    `json:"email"`      // Почта, на которую отправлена ссылка
	ExpiresAt time.Time `json:"expires_at"` // Срок действия
}

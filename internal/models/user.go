// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и флаги состояния.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля, пустая строка для passwordless-пользователей
	FirstName    string    // Имя
	LastName     string    // Фамилия
	AvatarURL    string    // Ссылка на аватар
	IsActive     bool      // Активна ли учётная запись
	IsDeleted    bool      // Помечена ли учётная запись удалённой (soft delete)
	IsVerified   bool      // Подтверждена ли почта
	CreatedAt    time.Time // Дата создания
	UpdatedAt    time.Time // Дата последнего обновления
}

// UserView описывает публичное представление пользователя для JSON-ответов.
// Хэш пароля и служебные флаги сюда не попадают.
type UserView struct {
	UID        string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// View возвращает публичное представление пользователя.
func (u User) View() UserView {
	return UserView{
		UID:        u.UID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// UpdateUserInput описывает изменяемые поля профиля пользователя.
// Nil-поле означает "оставить без изменений".
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

const userColumns = `uid, email, password_hash, first_name, last_name, avatar_url,
			      is_active, is_deleted, is_verified, created_at, updated_at`

// CreateUser сохраняет нового пользователя и возвращает запись
// с заполненными uid и датами. Занятая почта даёт ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, password_hash, first_name, last_name, avatar_url)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5)
			  RETURNING uid, is_active, is_deleted, is_verified, created_at, updated_at;`
	u := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.AvatarURL).
		Scan(&u.UID, &u.IsActive, &u.IsDeleted, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// GetUserByEmail возвращает неудалённого пользователя по его почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1 AND is_deleted = FALSE`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByUID возвращает пользователя по его UID, включая удалённых:
// решение о доступе принимает вызывающий слой.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// UpdateUser обновляет изменяемые поля профиля и возвращает свежую запись.
// Nil-поля входа оставляют текущее значение.
func (s *Storage) UpdateUser(ctx context.Context, userUID string, input models.UpdateUserInput) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET first_name = COALESCE($2, first_name),
			      last_name  = COALESCE($3, last_name),
			      avatar_url = COALESCE($4, avatar_url),
			      updated_at = NOW()
			  WHERE uid = $1 AND is_deleted = FALSE
			  RETURNING ` + userColumns
	return s.scanUser(s.DB.QueryRowContext(ctx, query,
		userUID, input.FirstName, input.LastName, input.AvatarURL), op)
}

// SoftDeleteUser помечает пользователя удалённым. Запись физически не удаляется.
func (s *Storage) SoftDeleteUser(ctx context.Context, userUID string) error {
	const op = "storage.SoftDeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_deleted = TRUE,
			      updated_at = NOW()
			  WHERE uid = $1 AND is_deleted = FALSE`
	res, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var passwordHash, firstName, lastName, avatarURL sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &passwordHash, &firstName, &lastName, &avatarURL,
		&u.IsActive, &u.IsDeleted, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.PasswordHash = passwordHash.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.AvatarURL = avatarURL.String
	return u, nil
}

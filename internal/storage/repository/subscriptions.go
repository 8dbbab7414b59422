package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// CreateSubscription сохраняет новую подписку пользователя одним атомарным
// INSERT и возвращает запись с заполненными id и датой создания.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.UserSubscription) (*models.UserSubscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	created := sub
	query := `INSERT INTO user_subscriptions (user_uid, billing_plan_id, start_date, end_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.BillingPlanID, sub.StartDate, sub.EndDate).
		Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetCurrentSubscription возвращает последнюю подписку пользователя вместе
// с её тарифным планом. Отсутствие подписки даёт ErrNotFound.
func (s *Storage) GetCurrentSubscription(ctx context.Context, userUID string) (*models.UserSubscription, *models.BillingPlan, error) {
	const op = "storage.GetCurrentSubscription"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT us.id, us.user_uid, us.billing_plan_id, us.start_date, us.end_date, us.created_at,
			      bp.id, bp.plan_name, bp.price, bp.currency, bp.plan_interval, bp.features,
			      bp.access_limit, bp.created_at
			  FROM user_subscriptions us
			  JOIN billing_plans bp ON bp.id = us.billing_plan_id
			  WHERE us.user_uid = $1
			  ORDER BY us.created_at DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	sub := &models.UserSubscription{}
	plan := &models.BillingPlan{}
	var endDate sql.NullTime
	var features []byte
	var accessLimit sql.NullInt64
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.BillingPlanID, &sub.StartDate, &endDate, &sub.CreatedAt,
		&plan.ID, &plan.PlanName, &plan.Price, &plan.Currency, &plan.PlanInterval, &features,
		&accessLimit, &plan.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	if err := scanPlanExtras(plan, features, accessLimit); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, plan, nil
}

// DeleteSubscription удаляет подписку по её идентификатору.
func (s *Storage) DeleteSubscription(ctx context.Context, subID string) error {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_subscriptions WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, subID)
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

func scanPlanExtras(plan *models.BillingPlan, features []byte, accessLimit sql.NullInt64) error {
	if err := json.Unmarshal(features, &plan.Features); err != nil {
		return err
	}
	if accessLimit.Valid {
		limit := int(accessLimit.Int64)
		plan.AccessLimit = &limit
	}
	return nil
}

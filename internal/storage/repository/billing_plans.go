package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// UpsertBillingPlan добавляет тарифный план в каталог, если плана с таким id
// ещё нет. Существующие записи не трогаются, чтобы не рвать внешние ключи
// активных подписок.
func (s *Storage) UpsertBillingPlan(ctx context.Context, plan models.BillingPlan) error {
	const op = "storage.UpsertBillingPlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO billing_plans (id, plan_name, price, currency, plan_interval,
			      features, access_limit)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (id) DO NOTHING;`
	if _, err := s.DB.ExecContext(ctx, query,
		plan.ID, plan.PlanName, plan.Price, plan.Currency, plan.PlanInterval,
		features, plan.AccessLimit); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetPlanByName возвращает тарифный план по его названию.
func (s *Storage) GetPlanByName(ctx context.Context, planName string) (*models.BillingPlan, error) {
	const op = "storage.GetPlanByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, plan_name, price, currency, plan_interval, features, access_limit, created_at
			  FROM billing_plans
			  WHERE plan_name = $1`
	return scanPlan(s.DB.QueryRowContext(ctx, query, planName), op)
}

// GetPlanByID возвращает тарифный план по его идентификатору.
func (s *Storage) GetPlanByID(ctx context.Context, planID string) (*models.BillingPlan, error) {
	const op = "storage.GetPlanByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, plan_name, price, currency, plan_interval, features, access_limit, created_at
			  FROM billing_plans
			  WHERE id = $1`
	return scanPlan(s.DB.QueryRowContext(ctx, query, planID), op)
}

// ListPlans возвращает весь каталог тарифных планов.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.BillingPlan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, plan_name, price, currency, plan_interval, features, access_limit, created_at
			  FROM billing_plans
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.BillingPlan
	for rows.Next() {
		p := &models.BillingPlan{}
		var features []byte
		var accessLimit sql.NullInt64
		if err = rows.Scan(&p.ID, &p.PlanName, &p.Price, &p.Currency, &p.PlanInterval,
			&features, &accessLimit, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if accessLimit.Valid {
			limit := int(accessLimit.Int64)
			p.AccessLimit = &limit
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanPlan(row *sql.Row, op string) (*models.BillingPlan, error) {
	p := &models.BillingPlan{}
	var features []byte
	var accessLimit sql.NullInt64
	if err := row.Scan(&p.ID, &p.PlanName, &p.Price, &p.Currency, &p.PlanInterval,
		&features, &accessLimit, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if accessLimit.Valid {
		limit := int(accessLimit.Int64)
		p.AccessLimit = &limit
	}
	return p, nil
}

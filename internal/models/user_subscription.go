// Package models содержит модель подписки пользователя на тарифный план.
package models

import "time"

// UserSubscription связывает пользователя с тарифным планом
// на интервале действия [StartDate, EndDate). EndDate может быть nil —
// это означает бессрочную подписку.
type UserSubscription struct {
	ID            string     // Уникальный идентификатор подписки
	UserUID       string     // Идентификатор пользователя
	BillingPlanID string     // Идентификатор тарифного плана
	StartDate     time.Time  // Начало действия
	EndDate       *time.Time // Конец действия, nil для бессрочной
	CreatedAt     time.Time  // Дата создания
}

// IsActive сообщает, действует ли подписка в момент now.
// Подписка активна, если StartDate <= now и EndDate отсутствует либо EndDate > now.
func (s UserSubscription) IsActive(now time.Time) bool {
	if s.StartDate.After(now) {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(now)
}

// SubscriptionInfo объединяет подписку с данными её тарифного плана
// для ответов API.
type SubscriptionInfo struct {
	ID        string     `json:"id"`
	PlanID    string     `json:"billing_plan_id"`
	PlanName  string     `json:"plan_name"`
	Price     float64    `json:"price"`
	Currency  string     `json:"currency"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"is_active"`
}

// Info возвращает представление подписки с данными плана plan.
func (s UserSubscription) Info(plan BillingPlan, now time.Time) SubscriptionInfo {
	return SubscriptionInfo{
		ID:        s.ID,
		PlanID:    s.BillingPlanID,
		PlanName:  plan.PlanName,
		Price:     plan.Price,
		Currency:  plan.Currency,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Active:    s.IsActive(now),
	}
}

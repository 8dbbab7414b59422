// Package models содержит справочник тарифных планов.
// Планы — неизменяемые справочные данные, загружаемые при старте процесса.
package models

import "time"

// Интервалы тарификации плана.
const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
	IntervalOneOff  = "one-off"
)

// FreePlanName имя бесплатного плана, на который автоматически
// подписывается каждый новый пользователь.
const FreePlanName = "Free"

// BillingPlan представляет тарифный план из каталога.
type BillingPlan struct {
	ID           string    `json:"id"`                     // Идентификатор плана, фиксированный для справочных данных
	PlanName     string    `json:"plan_name"`              // Название плана
	Price        float64   `json:"price"`                  // Цена
	Currency     string    `json:"currency"`               // Валюта
	PlanInterval string    `json:"plan_interval"`          // Интервал тарификации: monthly, yearly или one-off
	Features     []string  `json:"features"`               // Упорядоченный список возможностей плана
	AccessLimit  *int      `json:"access_limit,omitempty"` // Необязательный лимит использования
	CreatedAt    time.Time `json:"created_at"`
}

// Package services содержит бизнес-логику управления тарифными планами
// и подписками пользователей: расчёт окна действия, автоматическую запись
// на бесплатный план и проверку членства в плане.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// Ошибки подписочного сервиса.
var (
	// ErrPlanNotFound возвращается, когда в каталоге нет запрошенного плана.
	ErrPlanNotFound = errors.New("billing plan not found")
	// ErrNoSubscription возвращается, когда у пользователя нет подписки.
	ErrNoSubscription = errors.New("subscription not found")
)

// Repository определяет методы хранилища для работы с планами и подписками.
type Repository interface {
	// GetPlanByName возвращает план по названию.
	GetPlanByName(ctx context.Context, planName string) (*models.BillingPlan, error)
	// ListPlans возвращает весь каталог планов.
	ListPlans(ctx context.Context) ([]*models.BillingPlan, error)
	// UpsertBillingPlan добавляет план, если его ещё нет.
	UpsertBillingPlan(ctx context.Context, plan models.BillingPlan) error
	// CreateSubscription добавляет новую подписку и возвращает её с id.
	CreateSubscription(ctx context.Context, sub models.UserSubscription) (*models.UserSubscription, error)
	// GetCurrentSubscription возвращает последнюю подписку пользователя с планом.
	GetCurrentSubscription(ctx context.Context, userUID string) (*models.UserSubscription, *models.BillingPlan, error)
	// DeleteSubscription удаляет подписку по id.
	DeleteSubscription(ctx context.Context, subID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

const planCatalogCacheKey = "billing_plans:catalog"

// SubscriptionService реализует бизнес-логику подписок, включая кеширование каталога.
type SubscriptionService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo Repository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ValidityWindow вычисляет окно действия подписки [start, end) для интервала
// тарификации. Начало — текущий момент в UTC; месячный интервал даёт ровно
// 30 дней, любой другой (годовой, разовый, бесплатный) — ровно 360 дней.
// Огрубление месяца до 30 дней сохранено намеренно для совместимости.
func ValidityWindow(interval string) (time.Time, time.Time) {
	start := time.Now().UTC()
	months := 12
	if interval == models.IntervalMonthly {
		months = 1
	}
	end := start.Add(time.Duration(months) * 30 * 24 * time.Hour)
	return start, end
}

// EnrollFree записывает пользователя на план "Free". Если текущая подписка
// пользователя уже ссылается на этот план, возвращается она без изменений.
func (s *SubscriptionService) EnrollFree(ctx context.Context, user *models.User) (*models.SubscriptionInfo, error) {
	const op = "subscription.EnrollFree"

	plan, err := s.repo.GetPlanByName(ctx, models.FreePlanName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current, currentPlan, err := s.repo.GetCurrentSubscription(ctx, user.UID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if current != nil && current.BillingPlanID == plan.ID {
		info := current.Info(*currentPlan, time.Now().UTC())
		return &info, nil
	}

	startDate, endDate := ValidityWindow(plan.PlanInterval)
	created, err := s.repo.CreateSubscription(ctx, models.UserSubscription{
		UserUID:       user.UID,
		BillingPlanID: plan.ID,
		StartDate:     startDate,
		EndDate:       &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user enrolled into free plan",
		slog.String("user_uid", user.UID), slog.String("subscription_id", created.ID))

	info := created.Info(*plan, time.Now().UTC())
	return &info, nil
}

// EnsureOnPlan сообщает, подписан ли пользователь на план planName.
// Пользователь без подписки сначала записывается на бесплатный план —
// метод изменяет состояние, что отражено в его названии.
func (s *SubscriptionService) EnsureOnPlan(ctx context.Context, user *models.User, planName string) (bool, error) {
	const op = "subscription.EnsureOnPlan"

	_, currentPlan, err := s.repo.GetCurrentSubscription(ctx, user.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if _, err := s.EnrollFree(ctx, user); err != nil {
				return false, fmt.Errorf("%s: %w", op, err)
			}
			return planName == models.FreePlanName, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return currentPlan.PlanName == planName, nil
}

// CurrentSubscription возвращает представление текущей подписки пользователя.
func (s *SubscriptionService) CurrentSubscription(ctx context.Context, userUID string) (*models.SubscriptionInfo, error) {
	const op = "subscription.CurrentSubscription"

	sub, plan, err := s.repo.GetCurrentSubscription(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoSubscription)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := sub.Info(*plan, time.Now().UTC())
	return &info, nil
}

// Cancel удаляет подписку по её идентификатору.
func (s *SubscriptionService) Cancel(ctx context.Context, subID string) error {
	const op = "subscription.Cancel"

	if err := s.repo.DeleteSubscription(ctx, subID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNoSubscription)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPlans возвращает каталог тарифных планов, используя кеш или хранилище.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]*models.BillingPlan, error) {
	var result []*models.BillingPlan
	found, err := s.cache.Get(planCatalogCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read plan catalog from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(planCatalogCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plan catalog", sl.Err(err))
	}
	return result, nil
}

// SeedPlans сверяет каталог планов с эталонным набором при старте процесса.
// Каждый план добавляется отдельным идемпотентным upsert: отсутствующие
// появляются, существующие остаются нетронутыми вместе со ссылающимися
// на них подписками.
func (s *SubscriptionService) SeedPlans(ctx context.Context) error {
	const op = "subscription.SeedPlans"

	for _, plan := range referencePlans() {
		if err := s.repo.UpsertBillingPlan(ctx, plan); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := s.cache.Invalidate(planCatalogCacheKey); err != nil {
		s.log.Warn("failed to invalidate plan catalog cache", sl.Err(err))
	}
	s.log.Info("billing plan catalog reconciled")
	return nil
}

func referencePlans() []models.BillingPlan {
	freeLimit, monthlyLimit, yearlyLimit := 15, 50, 75
	return []models.BillingPlan{
		{
			ID:           "free",
			PlanName:     models.FreePlanName,
			Price:        0,
			Currency:     "USD",
			PlanInterval: models.IntervalOneOff,
			AccessLimit:  &freeLimit,
			Features: []string{
				"Access to tools",
				"Text to Video",
				"Image to Video",
				"Talking Avatar Generator",
				"Youtube Summarizer",
				"Podcast Summarizer",
				"Limited Processing",
				"Watermark on videos",
			},
		},
		{
			ID:           "premium_monthly",
			PlanName:     "Premium Monthly",
			Price:        4.99,
			Currency:     "USD",
			PlanInterval: models.IntervalMonthly,
			AccessLimit:  &monthlyLimit,
			Features: []string{
				"Access to tools",
				"Text to Video",
				"Image to Video",
				"Talking Avatar Generator",
				"Youtube Summarizer",
				"Podcast Summarizer",
				"Watermark free videos",
				"Early access to new features",
				"Early access to future tools",
			},
		},
		{
			ID:           "premium_yearly",
			PlanName:     "Premium Yearly",
			Price:        49.99,
			Currency:     "USD",
			PlanInterval: models.IntervalYearly,
			AccessLimit:  &yearlyLimit,
			Features: []string{
				"Access to tools",
				"Text to Video",
				"Image to Video",
				"Talking Avatar Generator",
				"Youtube Summarizer",
				"Podcast Summarizer",
				"Watermark free videos",
				"Early access to new features",
				"Early access to future tools",
				"Save 15% compared to monthly",
			},
		},
	}
}

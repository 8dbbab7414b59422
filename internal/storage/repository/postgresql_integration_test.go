package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	created, err := storage.CreateUser(ctx, models.User{
		Email:        "ada@example.com",
		PasswordHash: "hashedpassword",
		FirstName:    "Ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsDeleted)
	assert.False(t, created.IsVerified)
	assert.False(t, created.CreatedAt.IsZero())

	// Занятая почта
	_, err = storage.CreateUser(ctx, models.User{
		Email:        "ada@example.com",
		PasswordHash: "otherhash",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Passwordless-пользователь хранится с NULL вместо хэша
	passwordless, err := storage.CreateUser(ctx, models.User{Email: "magic@example.com"})
	require.NoError(t, err)

	fetched, err := storage.GetUserByUID(ctx, passwordless.UID)
	require.NoError(t, err)
	assert.Empty(t, fetched.PasswordHash)
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "ada@example.com", "hashedpassword")

	got, err := storage.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	assert.Equal(t, "hashedpassword", got.PasswordHash)

	_, err = storage.GetUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// Удалённый пользователь невидим при поиске по почте
	require.NoError(t, storage.SoftDeleteUser(ctx, uid))
	_, err = storage.GetUserByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// Но остаётся доступен по uid
	deleted, err := storage.GetUserByUID(ctx, uid)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "ada@example.com", "hashedpassword")

	firstName := "Grace"
	updated, err := storage.UpdateUser(ctx, uid, models.UpdateUserInput{FirstName: &firstName})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	// Непереданные поля не меняются
	assert.Equal(t, "ada@example.com", updated.Email)

	avatar := "https://cdn.example.com/a.png"
	updated, err = storage.UpdateUser(ctx, uid, models.UpdateUserInput{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, avatar, updated.AvatarURL)

	// Удалённый пользователь не обновляется
	require.NoError(t, storage.SoftDeleteUser(ctx, uid))
	_, err = storage.UpdateUser(ctx, uid, models.UpdateUserInput{FirstName: &firstName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_SoftDeleteUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "ada@example.com", "hashedpassword")

	require.NoError(t, storage.SoftDeleteUser(ctx, uid))

	// Повторное удаление уже удалённого
	err := storage.SoftDeleteUser(ctx, uid)
	assert.ErrorIs(t, err, ErrNotFound)

	err = storage.SoftDeleteUser(ctx, "2b1f8f64-9a31-4c42-90de-5cbe4f4b1001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_BillingPlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	plan := FreePlan()
	require.NoError(t, storage.UpsertBillingPlan(ctx, plan))

	// Повторный upsert не трогает существующую запись
	changed := plan
	changed.Price = 99
	require.NoError(t, storage.UpsertBillingPlan(ctx, changed))

	got, err := storage.GetPlanByName(ctx, models.FreePlanName)
	require.NoError(t, err)
	assert.Equal(t, "free", got.ID)
	assert.Equal(t, float64(0), got.Price)
	assert.Equal(t, plan.Features, got.Features)

	_, err = storage.GetPlanByName(ctx, "Platinum")
	assert.ErrorIs(t, err, ErrNotFound)

	limit := 50
	require.NoError(t, storage.UpsertBillingPlan(ctx, models.BillingPlan{
		ID:           "premium_monthly",
		PlanName:     "Premium Monthly",
		Price:        20,
		Currency:     "usd",
		PlanInterval: models.IntervalMonthly,
		Features:     []string{"Full feature access"},
		AccessLimit:  &limit,
	}))

	plans, err := storage.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	// Каталог отсортирован по возрастанию цены
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, "premium_monthly", plans[1].ID)
	require.NotNil(t, plans[1].AccessLimit)
	assert.Equal(t, 50, *plans[1].AccessLimit)
}

func TestStorage_Subscriptions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "ada@example.com", "hashedpassword")
	factory.CreatePlan(t, "free", models.FreePlanName, 0, models.IntervalYearly)
	factory.CreatePlan(t, "premium_monthly", "Premium Monthly", 20, models.IntervalMonthly)

	start := time.Now().UTC()
	end := start.Add(360 * 24 * time.Hour)

	created, err := storage.CreateSubscription(ctx, models.UserSubscription{
		UserUID:       uid,
		BillingPlanID: "free",
		StartDate:     start,
		EndDate:       &end,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	sub, plan, err := storage.GetCurrentSubscription(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sub.ID)
	assert.Equal(t, models.FreePlanName, plan.PlanName)

	// Последняя созданная подписка становится текущей
	premiumEnd := start.Add(30 * 24 * time.Hour)
	factory.CreateSubscription(t, uid, "premium_monthly", start, &premiumEnd)

	_, plan, err = storage.GetCurrentSubscription(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Premium Monthly", plan.PlanName)

	require.NoError(t, storage.DeleteSubscription(ctx, created.ID))
	err = storage.DeleteSubscription(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Пользователь без подписок
	ghost := factory.CreateUser(t, "ghost@example.com", "hashedpassword")
	_, _, err = storage.GetCurrentSubscription(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

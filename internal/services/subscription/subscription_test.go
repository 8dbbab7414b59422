package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsepoint/pulsepoint-api/internal/models"
	"github.com/pulsepoint/pulsepoint-api/internal/storage/repository"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetPlanByName(ctx context.Context, planName string) (*models.BillingPlan, error) {
	args := m.Called(ctx, planName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BillingPlan), args.Error(1)
}

func (m *RepoMock) ListPlans(ctx context.Context) ([]*models.BillingPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BillingPlan), args.Error(1)
}

func (m *RepoMock) UpsertBillingPlan(ctx context.Context, plan models.BillingPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.UserSubscription) (*models.UserSubscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscription), args.Error(1)
}

func (m *RepoMock) GetCurrentSubscription(ctx context.Context, userUID string) (*models.UserSubscription, *models.BillingPlan, error) {
	args := m.Called(ctx, userUID)
	var sub *models.UserSubscription
	var plan *models.BillingPlan
	if args.Get(0) != nil {
		sub = args.Get(0).(*models.UserSubscription)
	}
	if args.Get(1) != nil {
		plan = args.Get(1).(*models.BillingPlan)
	}
	return sub, plan, args.Error(2)
}

func (m *RepoMock) DeleteSubscription(ctx context.Context, subID string) error {
	args := m.Called(ctx, subID)
	return args.Error(0)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func freePlan() *models.BillingPlan {
	return &models.BillingPlan{
		ID:           "free",
		PlanName:     models.FreePlanName,
		Price:        0,
		Currency:     "USD",
		PlanInterval: models.IntervalOneOff,
	}
}

func TestValidityWindow(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		wantLen  time.Duration
	}{
		{name: "monthly is exactly 30 days", interval: models.IntervalMonthly, wantLen: 30 * 24 * time.Hour},
		{name: "yearly is exactly 360 days", interval: models.IntervalYearly, wantLen: 360 * 24 * time.Hour},
		{name: "one-off is exactly 360 days", interval: models.IntervalOneOff, wantLen: 360 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ValidityWindow(tt.interval)
			assert.Equal(t, tt.wantLen, end.Sub(start))
			assert.WithinDuration(t, time.Now().UTC(), start, time.Second)
			assert.Equal(t, time.UTC, start.Location())
		})
	}
}

func TestEnrollFree(t *testing.T) {
	user := &models.User{UID: "user-1", Email: "a@x.com"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
		wantActive bool
	}{
		{
			name: "new user gets a free subscription",
			setupMocks: func(r *RepoMock) {
				r.On("GetPlanByName", mock.Anything, models.FreePlanName).Return(freePlan(), nil)
				r.On("GetCurrentSubscription", mock.Anything, "user-1").
					Return(nil, nil, repository.ErrNotFound)
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.UserSubscription) bool {
					return sub.UserUID == "user-1" &&
						sub.BillingPlanID == "free" &&
						sub.EndDate != nil &&
						sub.EndDate.Sub(sub.StartDate) == 360*24*time.Hour
				})).Return(&models.UserSubscription{
					ID:            "sub-1",
					UserUID:       "user-1",
					BillingPlanID: "free",
					StartDate:     time.Now().UTC(),
				}, nil).Once()
			},
			wantActive: true,
		},
		{
			name: "already on free plan is a no-op",
			setupMocks: func(r *RepoMock) {
				r.On("GetPlanByName", mock.Anything, models.FreePlanName).Return(freePlan(), nil)
				r.On("GetCurrentSubscription", mock.Anything, "user-1").
					Return(&models.UserSubscription{
						ID:            "sub-1",
						UserUID:       "user-1",
						BillingPlanID: "free",
						StartDate:     time.Now().UTC().Add(-time.Hour),
					}, freePlan(), nil)
			},
			wantActive: true,
		},
		{
			name: "free plan missing from catalog",
			setupMocks: func(r *RepoMock) {
				r.On("GetPlanByName", mock.Anything, models.FreePlanName).
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewSubscriptionService(repo, new(CacheMock), testLogger())

			info, err := svc.EnrollFree(context.Background(), user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.FreePlanName, info.PlanName)
			assert.Equal(t, tt.wantActive, info.Active)
			repo.AssertExpectations(t)
		})
	}
}

func TestEnsureOnPlan(t *testing.T) {
	user := &models.User{UID: "user-1", Email: "a@x.com"}

	t.Run("user without subscription is lazily enrolled", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetCurrentSubscription", mock.Anything, "user-1").
			Return(nil, nil, repository.ErrNotFound)
		repo.On("GetPlanByName", mock.Anything, models.FreePlanName).Return(freePlan(), nil)
		repo.On("CreateSubscription", mock.Anything, mock.Anything).
			Return(&models.UserSubscription{
				ID:            "sub-1",
				UserUID:       "user-1",
				BillingPlanID: "free",
				StartDate:     time.Now().UTC(),
			}, nil).Once()

		svc := NewSubscriptionService(repo, new(CacheMock), testLogger())

		onFree, err := svc.EnsureOnPlan(context.Background(), user, models.FreePlanName)
		require.NoError(t, err)
		assert.True(t, onFree)

		repo.AssertNumberOfCalls(t, "CreateSubscription", 1)
	})

	t.Run("existing subscription is compared by plan name", func(t *testing.T) {
		repo := new(RepoMock)
		premium := &models.BillingPlan{ID: "premium_monthly", PlanName: "Premium Monthly"}
		repo.On("GetCurrentSubscription", mock.Anything, "user-1").
			Return(&models.UserSubscription{ID: "sub-2", BillingPlanID: premium.ID}, premium, nil)

		svc := NewSubscriptionService(repo, new(CacheMock), testLogger())

		onFree, err := svc.EnsureOnPlan(context.Background(), user, models.FreePlanName)
		require.NoError(t, err)
		assert.False(t, onFree)

		onPremium, err := svc.EnsureOnPlan(context.Background(), user, "Premium Monthly")
		require.NoError(t, err)
		assert.True(t, onPremium)
	})
}

func TestListPlans_CacheAside(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	plans := []*models.BillingPlan{freePlan()}
	cache.On("Get", planCatalogCacheKey, mock.Anything).Return(false, nil)
	repo.On("ListPlans", mock.Anything).Return(plans, nil)
	cache.On("Set", planCatalogCacheKey, plans, time.Hour).Return(nil)

	svc := NewSubscriptionService(repo, cache, testLogger())

	got, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	cache.AssertExpectations(t)
}

func TestSeedPlans_UpsertsReferenceSet(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("UpsertBillingPlan", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", planCatalogCacheKey).Return(nil)

	svc := NewSubscriptionService(repo, cache, testLogger())

	require.NoError(t, svc.SeedPlans(context.Background()))
	repo.AssertNumberOfCalls(t, "UpsertBillingPlan", 3)
}

func TestSeedPlans_StopsOnError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpsertBillingPlan", mock.Anything, mock.Anything).
		Return(errors.New("db down")).Once()

	svc := NewSubscriptionService(repo, new(CacheMock), testLogger())

	err := svc.SeedPlans(context.Background())
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteSubscription", mock.Anything, "sub-1").Return(nil).Once()
	repo.On("DeleteSubscription", mock.Anything, "absent").Return(repository.ErrNotFound).Once()

	svc := NewSubscriptionService(repo, new(CacheMock), testLogger())

	assert.NoError(t, svc.Cancel(context.Background(), "sub-1"))
	assert.ErrorIs(t, svc.Cancel(context.Background(), "absent"), ErrNoSubscription)
}

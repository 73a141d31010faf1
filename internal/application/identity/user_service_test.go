package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/report"
	"github.com/toystore/backend/internal/domain/shared"
	"github.com/toystore/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindRecent(ctx context.Context, limit int) ([]ordering.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotalByStatus(ctx context.Context, status ordering.OrderStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) CountPlacedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) DashboardStats(ctx context.Context, lowStockThreshold int) (*report.DashboardStats, error) {
	args := m.Called(ctx, lowStockThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardStats), args.Error(1)
}

func (m *MockAnalyticsRepository) SalesByDay(ctx context.Context, since time.Time) ([]report.DailySales, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]report.DailySales), args.Error(1)
}

func (m *MockAnalyticsRepository) RevenueByStatus(ctx context.Context) ([]report.StatusRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.StatusRevenue), args.Error(1)
}

func (m *MockAnalyticsRepository) RevenueByMonth(ctx context.Context, since time.Time) ([]report.MonthlyRevenue, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]report.MonthlyRevenue), args.Error(1)
}

func (m *MockAnalyticsRepository) ProductsByCategory(ctx context.Context) ([]report.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.CategoryCount), args.Error(1)
}

func (m *MockAnalyticsRepository) BestSellers(ctx context.Context, limit int) ([]report.BestSeller, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]report.BestSeller), args.Error(1)
}

func (m *MockAnalyticsRepository) TopSellersSince(ctx context.Context, since time.Time, limit int) ([]report.BestSeller, error) {
	args := m.Called(ctx, since, limit)
	return args.Get(0).([]report.BestSeller), args.Error(1)
}

func (m *MockAnalyticsRepository) TotalSpentByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newTestUserService(userRepo *MockUserRepository, orderRepo *MockOrderRepository, analyticsRepo *MockAnalyticsRepository) *UserService {
	return NewUserService(userRepo, orderRepo, analyticsRepo, zap.NewNop())
}

func TestUserService_List(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo, new(MockOrderRepository), new(MockAnalyticsRepository))

	users := []identity.User{
		*newStoredUser(t, "janedoe", "jane@example.com", "secret123"),
		*newStoredUser(t, "bobsmith", "bob@example.com", "secret123"),
	}

	userRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "doe" && f.Page == 1 && f.PageSize == 20
	})).Return(users, nil)
	userRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	responses, total, err := service.List(context.Background(), UserListFilter{Search: "doe"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	assert.Equal(t, "janedoe", responses[0].Username)
}

func TestUserService_GetDetail(t *testing.T) {
	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	analyticsRepo := new(MockAnalyticsRepository)
	service := newTestUserService(userRepo, orderRepo, analyticsRepo)

	user := newStoredUser(t, "janedoe", "jane@example.com", "secret123")

	order := ordering.NewOrder(user.ID, "1 Toy Lane", "")
	require.NoError(t, order.AddItem(uuid.New(), 2, valueobject.NewMoneyUSDFromFloat(10.00)))

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	orderRepo.On("FindByUser", mock.Anything, user.ID).Return([]ordering.Order{*order}, nil)
	analyticsRepo.On("TotalSpentByUser", mock.Anything, user.ID).Return(decimal.NewFromFloat(20.00), nil)

	detail, err := service.GetDetail(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, "janedoe", detail.Username)
	assert.Equal(t, 1, detail.OrderCount)
	require.Len(t, detail.Orders, 1)
	assert.Equal(t, "20.00", detail.Orders[0].TotalAmount.StringFixed(2))
	assert.Equal(t, "20.00", detail.TotalSpent.StringFixed(2))
}

func TestUserService_Update(t *testing.T) {
	t.Run("grants admin rights", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo, new(MockOrderRepository), new(MockAnalyticsRepository))
		user := newStoredUser(t, "janedoe", "jane@example.com", "secret123")

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		isAdmin := true
		resp, err := service.Update(context.Background(), user.ID, AdminUpdateUserRequest{
			IsAdmin: &isAdmin,
		})

		require.NoError(t, err)
		assert.True(t, resp.IsAdmin)
		userRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo, new(MockOrderRepository), new(MockAnalyticsRepository))
		id := uuid.New()

		userRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, AdminUpdateUserRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_Stats(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo, new(MockOrderRepository), new(MockAnalyticsRepository))

	userRepo.On("Count", mock.Anything, mock.Anything).Return(int64(42), nil)
	userRepo.On("CountAdmins", mock.Anything).Return(int64(3), nil)
	userRepo.On("CountRegisteredSince", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(7), nil)

	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.AdminUsers)
	assert.Equal(t, int64(7), stats.RecentSignups)
}

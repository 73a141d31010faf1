package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/toystore/backend/internal/domain/identity"
	"github.com/toystore/backend/internal/domain/ordering"
	"github.com/toystore/backend/internal/domain/report"
	"github.com/toystore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserListFilter represents filter options for the admin user list
type UserListFilter struct {
	Search   string `form:"search"`
	IsAdmin  *bool  `form:"is_admin"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AdminUpdateUserRequest represents an admin edit of a user account.
// Only the fields present in the request are applied.
type AdminUpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Address   *string `json:"address"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	IsAdmin   *bool   `json:"is_admin"`
}

// UserOrderSummary is one order line in the admin user detail view
type UserOrderSummary struct {
	ID          uuid.UUID       `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UserDetailResponse is the admin view of one user
type UserDetailResponse struct {
	UserResponse
	Orders     []UserOrderSummary `json:"orders"`
	OrderCount int                `json:"order_count"`
	TotalSpent decimal.Decimal    `json:"total_spent"`
}

// UserStatsResponse summarizes the user base
type UserStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	AdminUsers    int64 `json:"admin_users"`
	RecentSignups int64 `json:"recent_signups"`
}

// UserService handles admin user management
type UserService struct {
	userRepo      identity.UserRepository
	orderRepo     ordering.OrderRepository
	analyticsRepo report.AnalyticsRepository
	logger        *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	orderRepo ordering.OrderRepository,
	analyticsRepo report.AnalyticsRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.IsAdmin != nil {
		domainFilter.Filters["is_admin"] = *filter.IsAdmin
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// GetDetail returns one user together with their order history and spend
func (s *UserService) GetDetail(ctx context.Context, userID uuid.UUID) (*UserDetailResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalSpent, err := s.analyticsRepo.TotalSpentByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserOrderSummary, len(orders))
	for i := range orders {
		summaries[i] = UserOrderSummary{
			ID:          orders[i].ID,
			TotalAmount: orders[i].TotalAmount,
			Status:      orders[i].Status.String(),
			ItemCount:   orders[i].ItemCount(),
			CreatedAt:   orders[i].CreatedAt,
		}
	}

	return &UserDetailResponse{
		UserResponse: ToUserResponse(user),
		Orders:       summaries,
		OrderCount:   len(orders),
		TotalSpent:   totalSpent,
	}, nil
}

// Update applies the request's present fields to a user account
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req AdminUpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email already registered")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil || req.LastName != nil || req.Phone != nil || req.Address != nil {
		firstName := user.FirstName
		lastName := user.LastName
		phone := user.Phone
		address := user.Address
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		user.UpdateProfile(firstName, lastName, phone, address)
	}

	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if req.IsAdmin != nil {
		user.SetAdmin(*req.IsAdmin)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_admin", user.IsAdmin))

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted by admin", zap.String("user_id", userID.String()))

	return nil
}

// Stats summarizes the user base for the admin dashboard
func (s *UserService) Stats(ctx context.Context) (*UserStatsResponse, error) {
	total, err := s.userRepo.Count(ctx, shared.Filter{Filters: make(map[string]interface{})})
	if err != nil {
		return nil, err
	}

	admins, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.userRepo.CountRegisteredSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &UserStatsResponse{
		TotalUsers:    total,
		AdminUsers:    admins,
		RecentSignups: recent,
	}, nil
}

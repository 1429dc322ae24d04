package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// AdminHandler exposes admin account/store management and dashboard counters.
type AdminHandler struct {
	auth      *service.AuthService
	users     *service.UserService
	stores    *service.StoreService
	dashboard *service.DashboardService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, userService *service.UserService, storeService *service.StoreService, dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{auth: authService, users: userService, stores: storeService, dashboard: dashboardService}
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return apperrors.NewValidationError("name, email, password, role required", nil)
	}

	user, err := h.auth.CreateAccount(c.Context(), service.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": userSummary(user)})
}

// ListUsers handles GET /admin/users with filter/sort query params.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
	}
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("email"); v != "" {
		filter.Email = &v
	}
	if v := c.Query("address"); v != "" {
		filter.Address = &v
	}
	if v := c.Query("role"); v != "" {
		role := domain.Role(v)
		filter.Role = &role
	}

	users, err := h.users.List(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, userSummary(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	detail, err := h.users.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	resp := dto.UserDetailResponse{User: userSummary(&detail.User)}
	if detail.Store != nil {
		resp.Store = &dto.StoreSummary{
			ID:            detail.Store.ID,
			Name:          detail.Store.Name,
			Email:         detail.Store.Email,
			Address:       detail.Store.Address,
			AverageRating: detail.Average.Ptr(),
		}
	}
	return c.JSON(resp)
}

// CreateStore handles POST /admin/stores.
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}

	store, err := h.stores.Create(c.Context(), service.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"store": dto.StoreSummary{
		ID:      store.ID,
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
	}})
}

// ListStores handles GET /admin/stores with filter/sort query params.
func (h *AdminHandler) ListStores(c *fiber.Ctx) error {
	filter := repository.StoreFilter{
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
	}
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("email"); v != "" {
		filter.Email = &v
	}
	if v := c.Query("address"); v != "" {
		filter.Address = &v
	}

	stores, err := h.stores.AdminList(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.StoreSummary, 0, len(stores))
	for _, s := range stores {
		items = append(items, dto.StoreSummary{
			ID:            s.Store.ID,
			Name:          s.Store.Name,
			Email:         s.Store.Email,
			Address:       s.Store.Address,
			AverageRating: s.Average.Ptr(),
		})
	}
	return c.JSON(fiber.Map{"stores": items})
}

// Stats handles GET /admin/dashboard.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.DashboardStatsResponse{
		TotalUsers:   stats.TotalUsers,
		TotalStores:  stats.TotalStores,
		TotalRatings: stats.TotalRatings,
	})
}

func userSummary(user *domain.User) dto.UserSummary {
	return dto.UserSummary{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Address: user.Address,
		Role:    string(user.Role),
	}
}

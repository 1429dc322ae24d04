package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// StoresHandler exposes store listings and the owner dashboard.
type StoresHandler struct {
	stores *service.StoreService
}

// NewStoresHandler constructs handler.
func NewStoresHandler(storeService *service.StoreService) *StoresHandler {
	return &StoresHandler{stores: storeService}
}

// List handles GET /stores: every store with its average and the caller's own
// rating.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	stores, err := h.stores.ListForViewer(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	items := make([]dto.StoreSummary, 0, len(stores))
	for _, s := range stores {
		items = append(items, dto.StoreSummary{
			ID:            s.Store.ID,
			Name:          s.Store.Name,
			Address:       s.Store.Address,
			AverageRating: s.Average.Ptr(),
			YourRating:    s.YourRating,
		})
	}
	return c.JSON(fiber.Map{"stores": items})
}

// OwnerDashboard handles GET /stores/owner-dashboard.
func (h *StoresHandler) OwnerDashboard(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	dashboard, err := h.stores.Dashboard(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.OwnerDashboardResponse{
		Store: dto.StoreSummary{
			ID:      dashboard.Store.ID,
			Name:    dashboard.Store.Name,
			Address: dashboard.Store.Address,
		},
		AverageRating: dashboard.Average.Ptr(),
		Raters:        raterInfos(dashboard.Raters),
	})
}

func raterInfos(raters []repository.StoreRater) []dto.RaterInfo {
	items := make([]dto.RaterInfo, 0, len(raters))
	for _, r := range raters {
		items = append(items, dto.RaterInfo{
			UserID: r.UserID,
			Name:   r.Name,
			Email:  r.Email,
			Rating: r.Rating,
		})
	}
	return items
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/api/dto"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/service"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RatingsHandler exposes rating submission and the per-store rating view.
type RatingsHandler struct {
	ratings *service.RatingService
}

// NewRatingsHandler constructs handler.
func NewRatingsHandler(ratingService *service.RatingService) *RatingsHandler {
	return &RatingsHandler{ratings: ratingService}
}

// Submit handles POST /ratings.
func (h *RatingsHandler) Submit(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StoreID == "" {
		return apperrors.NewValidationError("storeId required", nil)
	}

	result, err := h.ratings.Submit(c.Context(), identity.ID, req.StoreID, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmitRatingResponse{Result: string(result)})
}

// StoreRating handles GET /ratings?storeId=.
func (h *RatingsHandler) StoreRating(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	storeID := c.Query("storeId")
	if storeID == "" {
		return apperrors.NewValidationError("storeId is required", nil)
	}

	info, err := h.ratings.StoreRating(c.Context(), identity.ID, storeID)
	if err != nil {
		return err
	}

	return c.JSON(dto.StoreRatingResponse{
		StoreName:     info.StoreName,
		Address:       info.Address,
		AverageRating: info.Average.Ptr(),
		YourRating:    info.YourRating,
	})
}

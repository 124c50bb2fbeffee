package handler

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
	"github.com/inwheel/accessibility-importer/internal/pkg/utils"
)

// PlaceReader reads imported places.
type PlaceReader interface {
	GetPlace(ctx context.Context, osmID int64) (*domain.PlaceDetails, error)
}

// PlaceHandler exposes imported places to the editing surface
type PlaceHandler struct {
	places PlaceReader
	logger *zap.Logger
}

func NewPlaceHandler(places PlaceReader, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		places: places,
		logger: logger,
	}
}

// GetPlace handles GET /api/v1/places/:osm_id
func (h *PlaceHandler) GetPlace(c *fiber.Ctx) error {
	osmID, err := strconv.ParseInt(c.Params("osm_id"), 10, 64)
	if err != nil || osmID <= 0 {
		return utils.SendError(c, errors.ErrInvalidOSMID.WithDetails(map[string]interface{}{
			"osm_id": c.Params("osm_id"),
		}))
	}

	place, err := h.places.GetPlace(c.UserContext(), osmID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrPlaceNotFound) {
			h.logger.Error("Failed to get place", zap.Int64("osm_id", osmID), zap.Error(err))
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, place, nil)
}

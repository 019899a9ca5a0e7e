package system

import (
	"fmt"
	"os"

	"bus-buddy/logger"
	"bus-buddy/services/reset"
	"bus-buddy/types"

	"github.com/gofiber/fiber/v2"
)

// SystemController exposes operational endpoints. These are not user-facing;
// the reset trigger is guarded by a shared secret instead of a user session.
type SystemController struct {
	Reset *reset.Service
}

func NewSystemController(resetService *reset.Service) *SystemController {
	return &SystemController{Reset: resetService}
}

// TriggerReset runs the daily trip-count reset on demand. The caller must
// present the RESET_AUTH_KEY secret as the "key" query parameter. The
// scheduled run stays authoritative; this exists for recovery after a missed
// run.
func (sc *SystemController) TriggerReset(c *fiber.Ctx) error {
	expected := os.Getenv("RESET_AUTH_KEY")
	if expected == "" || c.Query("key") != expected {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Unauthorized",
			Data:    nil,
		})
	}

	stats, err := sc.Reset.Run(c.Context())
	if err != nil {
		logger.Error("Manual trip count reset failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error resetting trip counts",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("Trip counts reset successfully. Processed %d records in %d batches.", stats.DocumentsProcessed, stats.BatchesUsed),
		Data:    stats,
	})
}

// Health is the load balancer probe.
func (sc *SystemController) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "ok",
		Data:    nil,
	})
}

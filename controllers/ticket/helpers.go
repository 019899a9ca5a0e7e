package ticket

import (
	"bus-buddy/logger"
	userModel "bus-buddy/models/user"
	"bus-buddy/types"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// resolveUser maps the authenticated JWT claims to the local user record.
// On failure it writes the error response and returns nil; the handler just
// returns.
func resolveUser(c *fiber.Ctx, db *gorm.DB) *userModel.User {
	userUUID, err := utils.UserUUIDFromLocals(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
		return nil
	}

	userInfo, err := utils.GetUserByUUID(db, userUUID)
	if err != nil {
		logger.Error("Error finding user by UUID", err)
		status := fiber.StatusInternalServerError
		msg := "Database error"
		if err.Error() == "user not found" {
			status = fiber.StatusUnauthorized
			msg = "User not found"
		}
		_ = c.Status(status).JSON(types.ApiResponse{
			Message: msg,
			Status:  status,
			Data:    nil,
		})
		return nil
	}

	return userInfo
}

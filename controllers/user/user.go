package user

import (
	"encoding/base64"
	"fmt"

	"bus-buddy/httpServices/imagehost"
	"bus-buddy/logger"
	userModel "bus-buddy/models/user"
	"bus-buddy/types"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController serves the authenticated user's profile.
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Images imagehost.Uploader
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger, images imagehost.Uploader) *UserController {
	return &UserController{DB: db, Logger: asyncLogger, Images: images}
}

type updateProfileRequest struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage"` // base64, optional
}

// Show returns the authenticated user's profile.
func (uc *UserController) Show(c *fiber.Ctx) error {
	userInfo := resolveUser(c, uc.DB)
	if userInfo == nil {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    userInfo,
	})
}

// Update changes the profile fields the user controls. A profile image
// arrives base64-encoded and is pushed to the image host; the stored value
// is the returned URL, never the bytes.
func (uc *UserController) Update(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	userInfo := resolveUser(c, uc.DB)
	if userInfo == nil {
		return nil
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}

	var uploadWarning string
	if req.ProfileImage != "" {
		url, err := uc.uploadProfileImage(req.ProfileImage, userInfo.Uuid)
		if err != nil {
			logger.Warning(fmt.Sprintf("Profile image upload failed for user %s: %v", userInfo.Uuid, err))
			uploadWarning = "We couldn't upload your profile image; other changes were saved."
		} else {
			updates["profile_image_url"] = url
		}
	}

	if len(updates) == 0 && uploadWarning == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Nothing to update",
			Data:    nil,
		})
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(userInfo).Updates(updates).Error; err != nil {
			logger.Error("Failed to update user profile", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update profile",
				Data:    nil,
			})
		}
	}

	uc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	message := "Profile updated successfully"
	if uploadWarning != "" {
		message = uploadWarning
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    userInfo,
	})
}

func (uc *UserController) uploadProfileImage(encoded, userUuid string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode profile image: %w", err)
	}
	return uc.Images.Upload(data, fmt.Sprintf("user-profile-%s.jpg", userUuid))
}

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

package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	httpServices "bus-buddy/httpServices/auth"
	"bus-buddy/logger"
	"bus-buddy/models/user"
	"bus-buddy/types"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	httpService    *httpServices.Client
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(service *httpServices.Client, db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{httpService: service, db: db, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// upsertLocalUser mirrors the provider identity into the local users table.
// Sign-in never fails because of a mirror problem; the caller only logs it.
func (h *AuthController) upsertLocalUser(identity httpServices.Identity) (*user.User, error) {
	if identity.Uuid == "" {
		return nil, errors.New("provider identity has no uuid")
	}

	var existing user.User
	err := h.db.Where("uuid = ?", identity.Uuid).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"full_name": identity.FullName,
			"phone":     identity.Phone,
		}
		if identity.Email != "" {
			updates["email"] = identity.Email
		}
		if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := user.User{
		Uuid:     identity.Uuid,
		FullName: identity.FullName,
		Phone:    identity.Phone,
	}
	if identity.Email != "" {
		email := identity.Email
		newUser.Email = &email
	}
	if err := h.db.Create(&newUser).Error; err != nil {
		return nil, err
	}
	return &newUser, nil
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req httpServices.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Full name, email and password are required",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	session, err := h.httpService.Register(req)
	if err != nil {
		logger.Error("Failed to register user", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadGateway,
			Data:    nil,
		})
	}

	localUser, err := h.upsertLocalUser(session.User)
	if err != nil {
		// The provider account exists either way; the mirror row catches up
		// on the next sign-in.
		logger.Warning(fmt.Sprintf("Failed to mirror registered user %s: %v", session.User.Uuid, err))
	}

	h.setSecureCookie(c, "access", session.Access, int((24 * time.Hour).Seconds()))
	if session.Refresh != "" {
		h.setSecureCookie(c, "refresh", session.Refresh, int((7 * 24 * time.Hour).Seconds()))
	}

	logger.Success(fmt.Sprintf("User registered successfully: %s", session.User.Uuid))
	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Registration successful",
		Status:  fiber.StatusCreated,
		Token:   session.Access,
		Data:    localUser,
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req httpServices.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Email and password are required",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	session, err := h.httpService.Login(req)
	if err != nil {
		logger.Error("Failed to login user", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	localUser, err := h.upsertLocalUser(session.User)
	if err != nil {
		logger.Warning(fmt.Sprintf("Failed to mirror user %s: %v", session.User.Uuid, err))
	}

	h.setSecureCookie(c, "access", session.Access, int((24 * time.Hour).Seconds()))
	if session.Refresh != "" {
		h.setSecureCookie(c, "refresh", session.Refresh, int((7 * 24 * time.Hour).Seconds()))
	}

	logger.Success(fmt.Sprintf("User logged in successfully: %s", session.User.Uuid))
	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   session.Access,
		Data:    localUser,
	})
}

func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	h.setSecureCookie(c, "refresh", "", -1)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged out",
		Status:  fiber.StatusOK,
		Data:    nil,
	})
}

package pass

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"bus-buddy/httpServices/imagehost"
	"bus-buddy/httpServices/payment"
	"bus-buddy/logger"
	"bus-buddy/services/passes"
	"bus-buddy/services/qrstate"
	"bus-buddy/types"
	passTypes "bus-buddy/types/pass"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PassController handles pass-related HTTP requests
type PassController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Passes  *passes.Service
	Gateway payment.Gateway
	Images  imagehost.Uploader
}

// NewPassController creates a new pass controller
func NewPassController(db *gorm.DB, asyncLogger *logger.AsyncLogger, passService *passes.Service, gateway payment.Gateway, images imagehost.Uploader) *PassController {
	return &PassController{
		DB:      db,
		Logger:  asyncLogger,
		Passes:  passService,
		Gateway: gateway,
		Images:  images,
	}
}

// Store creates a new pass after charging the payment gateway.
func (pc *PassController) Store(c *fiber.Ctx) error {
	var req passTypes.PassCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	userInfo := resolveUser(c, pc.DB)
	if userInfo == nil {
		return nil
	}

	startDate, err := req.ParseStartDate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid start date",
			Data:    nil,
		})
	}

	if req.Source == req.Destination {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: types.ErrSameSourceDestination.Error(),
			Data:    nil,
		})
	}

	// Duplicate-active-pass guard: the unique marker closes the race, but
	// the guard still gives a clean redirect-to-view response.
	hasActive, err := pc.Passes.HasActivePass(userInfo.ID, time.Now())
	if err != nil {
		logger.Error("Failed to check for an active pass", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if hasActive {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "You already have an active pass. Redirecting to view pass.",
			Data:    nil,
		})
	}

	amount, err := passes.FareForValidity(req.Validity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	paymentRef, err := pc.Gateway.Charge(c.Context(), amount)
	if err != nil {
		logger.Error("Payment failed", err)
		return c.Status(fiber.StatusPaymentRequired).JSON(types.ApiResponse{
			Status:  fiber.StatusPaymentRequired,
			Message: "Payment failed. No pass was created.",
			Data:    nil,
		})
	}

	// Image upload failure warns but never blocks pass creation.
	var profileImageURL *string
	uploadWarning := ""
	if req.ProfileImage != "" {
		if url, uploadErr := pc.uploadProfileImage(req.ProfileImage, userInfo.Uuid); uploadErr != nil {
			logger.Warning(fmt.Sprintf("Profile image upload failed for user %s: %v", userInfo.Uuid, uploadErr))
			uploadWarning = "We couldn't upload your profile image, but your pass was created."
		} else {
			profileImageURL = &url
		}
	}

	createdPass, err := pc.Passes.CreatePass(passes.CreateParams{
		UserID:                 userInfo.ID,
		FullName:               req.FullName,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactMobile: req.EmergencyContactMobile,
		Source:                 req.Source,
		Destination:            req.Destination,
		Route:                  req.Route,
		StartDate:              startDate,
		ValidityDays:           req.Validity,
		PaymentRef:             paymentRef,
		ProfileImageURL:        profileImageURL,
	})
	if err != nil {
		if errors.Is(err, types.ErrActivePassExists) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "You already have an active pass. Redirecting to view pass.",
				Data:    nil,
			})
		}
		if errors.Is(err, types.ErrInvalidDuration) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Data:    nil,
			})
		}
		logger.Error("Failed to create pass", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save pass",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Pass created successfully with ID: %d", createdPass.ID))
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	message := "Pass created successfully"
	if uploadWarning != "" {
		message = message + ". " + uploadWarning
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: message,
		Data:    createdPass,
	})
}

// Active returns the user's active pass with its resolved QR state.
func (pc *PassController) Active(c *fiber.Ctx) error {
	userInfo := resolveUser(c, pc.DB)
	if userInfo == nil {
		return nil
	}

	now := time.Now()
	activePass, err := pc.Passes.ActivePass(userInfo.ID, now)
	if err != nil {
		logger.Error("Failed to resolve active pass", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if activePass == nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No active pass found",
			Data:    nil,
		})
	}

	tripsToday, err := pc.Passes.TripsToday(activePass.ID)
	if err != nil {
		logger.Error("Failed to read trip counter", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	qrPayload, err := qrstate.EncodePayload(activePass.ID, activePass.FullName, activePass.StartDate, activePass.EndDate)
	if err != nil {
		logger.Error("Failed to encode QR payload", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to encode QR payload",
			Data:    nil,
		})
	}

	state := qrstate.Resolve(qrstate.IsExpired(activePass.EndDate, now), tripsToday, qrPayload)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Active pass found",
		Data: passTypes.ActivePassResponse{
			Pass: activePass,
			QrState: passTypes.QrStateResponse{
				Color:       string(state.Color),
				IsScannable: state.IsScannable,
				Message:     state.Message,
				QrPayload:   state.QrPayload,
				TripsToday:  tripsToday,
			},
			DaysRemaining: passes.DaysRemaining(activePass.EndDate, now),
		},
	})
}

func (pc *PassController) uploadProfileImage(encoded, userUuid string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode profile image: %w", err)
	}
	return pc.Images.Upload(data, fmt.Sprintf("pass-profile-%s.jpg", userUuid))
}

package ticket

import (
	"fmt"
	"time"

	"bus-buddy/httpServices/payment"
	"bus-buddy/logger"
	"bus-buddy/services/tickets"
	"bus-buddy/types"
	ticketTypes "bus-buddy/types/ticket"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TicketController handles ticket-booking HTTP requests
type TicketController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Tickets *tickets.Service
	Gateway payment.Gateway
}

// NewTicketController creates a new ticket controller
func NewTicketController(db *gorm.DB, asyncLogger *logger.AsyncLogger, ticketService *tickets.Service, gateway payment.Gateway) *TicketController {
	return &TicketController{
		DB:      db,
		Logger:  asyncLogger,
		Tickets: ticketService,
		Gateway: gateway,
	}
}

// Store books a new ticket after charging the payment gateway.
func (tc *TicketController) Store(c *fiber.Ctx) error {
	var req ticketTypes.TicketCreateRequest
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

	userInfo := resolveUser(c, tc.DB)
	if userInfo == nil {
		return nil
	}

	journeyDate, err := req.ParseDate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid journey date",
			Data:    nil,
		})
	}

	amount := tickets.Fare(req.Passengers)
	paymentRef, err := tc.Gateway.Charge(c.Context(), amount)
	if err != nil {
		logger.Error("Payment failed", err)
		return c.Status(fiber.StatusPaymentRequired).JSON(types.ApiResponse{
			Status:  fiber.StatusPaymentRequired,
			Message: "Payment failed. No ticket was booked.",
			Data:    nil,
		})
	}

	createdTicket, err := tc.Tickets.CreateTicket(tickets.CreateParams{
		UserID:      userInfo.ID,
		Source:      req.Source,
		Destination: req.Destination,
		Route:       req.Route,
		JourneyDate: journeyDate,
		TimeSlot:    req.Time,
		Passengers:  req.Passengers,
		PaymentRef:  paymentRef,
	})
	if err != nil {
		switch err {
		case types.ErrSameSourceDestination, types.ErrInvalidPassengerCount, types.ErrInvalidTimeSlot:
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Data:    nil,
			})
		}
		logger.Error("Failed to create ticket", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save ticket",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Ticket booked successfully with ID: %d", createdTicket.ID))
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Ticket booked successfully",
		Data:    createdTicket,
	})
}

// Index lists the user's tickets with their display-time validity.
func (tc *TicketController) Index(c *fiber.Ctx) error {
	userInfo := resolveUser(c, tc.DB)
	if userInfo == nil {
		return nil
	}

	list, err := tc.Tickets.TicketsForUser(userInfo.ID)
	if err != nil {
		logger.Error("Failed to query tickets", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	now := time.Now()
	responses := make([]ticketTypes.TicketResponse, 0, len(list))
	for i := range list {
		isValid, isExpired := tickets.Validity(&list[i], now)
		responses = append(responses, ticketTypes.TicketResponse{
			Ticket:    list[i],
			IsValid:   isValid,
			IsExpired: isExpired,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tickets retrieved successfully",
		Data:    responses,
	})
}

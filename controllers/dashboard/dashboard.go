package dashboard

import (
	"fmt"
	"time"

	"bus-buddy/constants"
	"bus-buddy/logger"
	userModel "bus-buddy/models/user"
	"bus-buddy/services/passes"
	"bus-buddy/services/tickets"
	"bus-buddy/types"
	"bus-buddy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController aggregates the home-screen numbers and the
// notification feed. Everything here is read-only and derived; nothing is
// stored per dashboard view.
type DashboardController struct {
	DB      *gorm.DB
	Passes  *passes.Service
	Tickets *tickets.Service
}

func NewDashboardController(db *gorm.DB, passService *passes.Service, ticketService *tickets.Service) *DashboardController {
	return &DashboardController{DB: db, Passes: passService, Tickets: ticketService}
}

type statsResponse struct {
	TotalPasses   int64 `json:"totalPasses"`
	TotalTickets  int64 `json:"totalTickets"`
	HasActivePass bool  `json:"hasActivePass"`
	TripsToday    int   `json:"tripsToday"`
}

type notification struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// Stats returns the user's lifetime pass and ticket counts plus today's
// trip usage on the active pass.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	userInfo := resolveUser(c, dc.DB)
	if userInfo == nil {
		return nil
	}

	totalPasses, err := dc.Passes.CountForUser(userInfo.ID)
	if err != nil {
		logger.Error("Failed to count passes", err)
		return dbError(c)
	}
	totalTickets, err := dc.Tickets.CountForUser(userInfo.ID)
	if err != nil {
		logger.Error("Failed to count tickets", err)
		return dbError(c)
	}

	resp := statsResponse{
		TotalPasses:  totalPasses,
		TotalTickets: totalTickets,
	}

	activePass, err := dc.Passes.ActivePass(userInfo.ID, time.Now())
	if err != nil {
		logger.Error("Failed to resolve active pass", err)
		return dbError(c)
	}
	if activePass != nil {
		resp.HasActivePass = true
		trips, err := dc.Passes.TripsToday(activePass.ID)
		if err != nil {
			logger.Error("Failed to read trip count", err)
			return dbError(c)
		}
		resp.TripsToday = trips
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Stats retrieved successfully",
		Data:    resp,
	})
}

// Notifications builds the derived feed: pass expiry warnings and recent
// ticket confirmations. Nothing is persisted; the feed is recomputed per
// request.
func (dc *DashboardController) Notifications(c *fiber.Ctx) error {
	userInfo := resolveUser(c, dc.DB)
	if userInfo == nil {
		return nil
	}

	now := time.Now()
	feed := make([]notification, 0, 4)

	activePass, err := dc.Passes.ActivePass(userInfo.ID, now)
	if err != nil {
		logger.Error("Failed to resolve active pass", err)
		return dbError(c)
	}
	if activePass != nil {
		remaining := passes.DaysRemaining(activePass.EndDate, now)
		if remaining == 1 {
			feed = append(feed, notification{
				Kind:      "pass_expiry",
				Message:   "Your bus pass expires today.",
				CreatedAt: now.Format(time.RFC3339),
			})
		} else if remaining <= constants.ExpiryWarningDays {
			feed = append(feed, notification{
				Kind:      "pass_expiry",
				Message:   fmt.Sprintf("Your bus pass expires in %d days.", remaining),
				CreatedAt: now.Format(time.RFC3339),
			})
		}
	} else {
		latest, err := dc.Passes.LatestPass(userInfo.ID)
		if err != nil {
			logger.Error("Failed to resolve latest pass", err)
			return dbError(c)
		}
		if latest != nil {
			feed = append(feed, notification{
				Kind:      "pass_expired",
				Message:   "Your bus pass has expired. Buy a new pass to keep riding.",
				CreatedAt: now.Format(time.RFC3339),
			})
		}
	}

	ticketList, err := dc.Tickets.TicketsForUser(userInfo.ID)
	if err != nil {
		logger.Error("Failed to query tickets", err)
		return dbError(c)
	}
	for i := range ticketList {
		isValid, _ := tickets.Validity(&ticketList[i], now)
		if !isValid {
			continue
		}
		feed = append(feed, notification{
			Kind: "ticket_confirmed",
			Message: fmt.Sprintf("Ticket confirmed: %s to %s at %s.",
				ticketList[i].Source, ticketList[i].Destination, ticketList[i].TimeSlot),
			CreatedAt: ticketList[i].CreatedAt.Format(time.RFC3339),
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications retrieved successfully",
		Data:    feed,
	})
}

func dbError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Database error",
		Data:    nil,
	})
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

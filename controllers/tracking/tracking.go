package tracking

import (
	"sync"
	"time"

	"bus-buddy/logger"
	"bus-buddy/models/buslocation"
	"bus-buddy/services/tracking"
	"bus-buddy/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// watchTimeout bounds how long a Watch request holds its connection open.
const watchTimeout = 25 * time.Second

// TrackingController exposes live bus positions per route.
type TrackingController struct {
	DB    *gorm.DB
	Store tracking.Store

	mu    sync.Mutex
	feeds map[string]*tracking.Feed
}

func NewTrackingController(db *gorm.DB, store tracking.Store) *TrackingController {
	return &TrackingController{
		DB:    db,
		Store: store,
		feeds: make(map[string]*tracking.Feed),
	}
}

// feed returns the route's shared poll feed, starting it on first use. Feeds
// live for the process lifetime; a route with no watchers just polls idle.
func (tc *TrackingController) feed(route string) *tracking.Feed {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	f, ok := tc.feeds[route]
	if !ok {
		f = tracking.NewFeed(tc.Store, route, 5*time.Second)
		f.Start()
		tc.feeds[route] = f
	}
	return f
}

type reportLocationRequest struct {
	Route     string  `json:"route"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Heading   float64 `json:"heading"`
}

// Show returns the latest reported position for a route.
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	route := c.Params("route")
	if route == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Route is required",
			Data:    nil,
		})
	}

	loc, err := tc.Store.LatestLocation(route)
	if err != nil {
		logger.Error("Failed to query bus location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if loc == nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No location reported for this route",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Location retrieved successfully",
		Data:    loc,
	})
}

// Watch long-polls for the next position update on a route. Responds with
// the fix as soon as one arrives, or 204 when none arrives before the
// timeout; clients are expected to immediately re-poll.
func (tc *TrackingController) Watch(c *fiber.Ctx) error {
	route := c.Params("route")
	if route == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Route is required",
			Data:    nil,
		})
	}

	updates := make(chan buslocation.BusLocation, 1)
	unsubscribe := tc.feed(route).Subscribe(func(loc buslocation.BusLocation) {
		select {
		case updates <- loc:
		default:
		}
	})
	defer unsubscribe()

	select {
	case loc := <-updates:
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Location updated",
			Data:    loc,
		})
	case <-time.After(watchTimeout):
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Report upserts a route's current position. One row per route; readers
// always see the latest fix.
func (tc *TrackingController) Report(c *fiber.Ctx) error {
	var req reportLocationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if req.Route == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Route is required",
			Data:    nil,
		})
	}

	loc := buslocation.BusLocation{
		Route:     req.Route,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Heading:   req.Heading,
		UpdatedAt: time.Now(),
	}
	err := tc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "route"}},
		DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "heading", "updated_at"}),
	}).Create(&loc).Error
	if err != nil {
		logger.Error("Failed to store bus location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to store location",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Location updated",
		Data:    loc,
	})
}

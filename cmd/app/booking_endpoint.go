package main

import (
	"errors"
	"net/http"
	"time"

	"BookingAPI/internal/middleware"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createBookingRequest struct {
	RealtyID     string `json:"realtyId"`
	UserAccessID string `json:"userAccessId"`
	StartDate    string `json:"startDate"` // RFC 3339 or YYYY-MM-DD
	EndDate      string `json:"endDate"`
}

func parseBookingDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// registerBookingRoutes mounts booking endpoints.
// Public:
//
//	GET /booking-item         -> list (?realty_id=&login=)
//	GET /booking-item/:id     -> detail
//	POST /booking-item        -> create (overlap-guarded)
//
// Protected:
//
//	DELETE /booking-item/:id  -> cancel (soft delete)
func registerBookingRoutes(g *echo.Group, bs *services.BookingService, secret string) {
	g.GET("/booking-item", func(c echo.Context) error {
		list, err := bs.ListBookings(c.Request().Context(), c.QueryParam("realty_id"), c.QueryParam("login"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/booking-item/:id", func(c echo.Context) error {
		b, err := bs.GetBooking(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrBookingNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Not Found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, b)
	})

	g.POST("/booking-item", func(c echo.Context) error {
		var req createBookingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.RealtyID == "" || req.UserAccessID == "" || req.StartDate == "" || req.EndDate == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
		}
		start, err := parseBookingDate(req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start date"})
		}
		end, err := parseBookingDate(req.EndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end date"})
		}

		booking, err := bs.TryBook(c.Request().Context(), req.RealtyID, req.UserAccessID, start, end)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRange):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date range"})
			case errors.Is(err, services.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
			case errors.Is(err, services.ErrRealtyNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Realty not found"})
			case errors.Is(err, services.ErrBookingConflict):
				return c.JSON(http.StatusConflict, echo.Map{"error": "Realty already booked for selected dates"})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusCreated, booking)
	})

	protected := g.Group("")
	protected.Use(middleware.SessionMiddleware(secret))
	protected.DELETE("/booking-item/:id", func(c echo.Context) error {
		if err := bs.CancelBooking(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
	})
}

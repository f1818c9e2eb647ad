package main

import (
	"errors"
	"net/http"

	"BookingAPI/internal/middleware"
	"BookingAPI/internal/model"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createFeedbackRequest struct {
	Text         string `json:"text"`
	Rate         int    `json:"rate"`
	RealtyID     string `json:"realty_id"`
	UserAccessID string `json:"user_access_id"`
}

func registerFeedbackRoutes(g *echo.Group, fs *services.FeedbackService, secret string) {
	g.GET("/feedback", func(c echo.Context) error {
		list, err := fs.ListFeedbacks(c.Request().Context(), c.QueryParam("realty_id"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.POST("/feedback", func(c echo.Context) error {
		var req createFeedbackRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		f := &model.Feedback{
			Text:         req.Text,
			Rate:         req.Rate,
			RealtyID:     req.RealtyID,
			UserAccessID: req.UserAccessID,
		}
		if err := fs.CreateFeedback(c.Request().Context(), f); err != nil {
			switch {
			case errors.Is(err, services.ErrRealtyNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Realty not found"})
			case errors.Is(err, services.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
			default:
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusCreated, f)
	})

	protected := g.Group("")
	protected.Use(middleware.SessionMiddleware(secret))
	protected.DELETE("/feedback/:id", func(c echo.Context) error {
		if err := fs.DeleteFeedback(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "feedback deleted"})
	})
}

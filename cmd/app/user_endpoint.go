package main

import (
	"errors"
	"net/http"

	"BookingAPI/internal/middleware"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerUserRoutes(g *echo.Group, userSvc *services.UserService, secret string) {
	g.GET("/user/:login", func(c echo.Context) error {
		detail, err := userSvc.GetUserDetail(c.Request().Context(), c.Param("login"))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, detail)
	})

	protected := g.Group("")
	protected.Use(middleware.SessionMiddleware(secret))
	protected.DELETE("/user/:login", func(c echo.Context) error {
		issued, err := userSvc.BanUser(c.Request().Context(), c.Param("login"))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "user banned", "sessions_issued": issued})
	}, middleware.RequireRole("admin"))
}

package main

import (
	"net/http"

	"BookingAPI/internal/middleware"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// loginHandler exchanges a Basic Authorization header for a session token.
// Every authentication failure collapses into the same 401 body so the
// response never reveals whether the login exists.
func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		userAccess, err := authSvc.Authenticate(ctx, c.Request().Header.Get("Authorization"))
		if err != nil {
			c.Logger().Infof("login rejected: %v", err)
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Unauthorized",
			})
		}

		token, err := authSvc.IssueSession(ctx, userAccess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
		})
	}
}

// registerHandler validates the signup form and creates the identity. All
// field violations come back at once so the client can render every error.
func registerHandler(regSvc *services.RegistrationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form services.SignupForm
		if err := c.Bind(&form); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		userAccess, fieldErrors := regSvc.Register(c.Request().Context(), form)
		if len(fieldErrors) > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"errors": fieldErrors,
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"message": "Registration successful",
			"login":   userAccess.Login,
		})
	}
}

// meHandler returns the authenticated user's info straight from the token
// snapshot, no database round trip.
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":         claims.UserID,
			"login":      claims.Login,
			"first_name": claims.FirstName,
			"last_name":  claims.LastName,
			"email":      claims.Email,
			"role":       claims.RoleID,
			"exp":        claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, regSvc *services.RegistrationService) {
	g.POST("/auth", loginHandler(authSvc))
	g.POST("/auth/register", registerHandler(regSvc))

	protected := g.Group("/auth")
	protected.Use(middleware.SessionMiddleware(authSvc.Secret))
	protected.GET("/me", meHandler())
}

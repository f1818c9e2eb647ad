package main

import (
	"errors"
	"net/http"

	"BookingAPI/internal/middleware"
	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type realtySearchRequest struct {
	Price      *float64 `json:"Price"`
	Checkboxes []string `json:"Checkboxes"`
	Rating     *float64 `json:"Rating"`
}

type createRealtyRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	Price         float64 `json:"price"`
	CityID        string  `json:"city_id"`
	RealtyGroupID string  `json:"realty_group_id"`
}

// patchRealtyRequest is a partial update: absent fields stay as stored.
type patchRealtyRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Slug        *string  `json:"slug,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	FormerSlug  string   `json:"realty-former-slug"`
}

func parsePriceParam(c echo.Context, name string) *float64 {
	// echo binds query params as strings; empty means "no filter"
	var v float64
	if err := echo.QueryParamsBinder(c).Float64(name, &v).BindError(); err != nil {
		return nil
	}
	if c.QueryParam(name) == "" {
		return nil
	}
	return &v
}

// registerRealtyRoutes mounts catalog endpoints. Listing, detail and search
// are public; mutations require a session with the matching role capability.
func registerRealtyRoutes(g *echo.Group, rs *services.RealtyService, secret string) {
	g.GET("/realty", func(c echo.Context) error {
		f := repository.RealtyFilter{
			CityID:        c.QueryParam("city"),
			CountryID:     c.QueryParam("country"),
			RealtyGroupID: c.QueryParam("realty_group"),
			PriceMin:      parsePriceParam(c, "price_min"),
			PriceMax:      parsePriceParam(c, "price_max"),
		}
		list, err := rs.ListRealties(c.Request().Context(), f)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/realty/:id", func(c echo.Context) error {
		rt, err := rs.GetRealty(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrRealtyNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Realty not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, rt)
	})

	g.POST("/realty/search", func(c echo.Context) error {
		var req realtySearchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		list, err := rs.SearchRealties(c.Request().Context(), req.Price, req.Checkboxes, req.Rating)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	protected := g.Group("")
	protected.Use(middleware.SessionMiddleware(secret))

	protected.POST("/realty", func(c echo.Context) error {
		var req createRealtyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		rt := &model.Realty{
			Name:          req.Name,
			Description:   req.Description,
			Slug:          req.Slug,
			Price:         req.Price,
			CityID:        req.CityID,
			RealtyGroupID: req.RealtyGroupID,
		}
		if err := rs.CreateRealty(c.Request().Context(), rt); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, rt)
	}, middleware.RequireRole("admin"))

	protected.PATCH("/realty", func(c echo.Context) error {
		var req patchRealtyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.FormerSlug == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "realty-former-slug is required"})
		}
		patch := repository.RealtyPatch{
			Name:        req.Name,
			Description: req.Description,
			Slug:        req.Slug,
			Price:       req.Price,
		}
		if err := rs.UpdateRealty(c.Request().Context(), req.FormerSlug, patch); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "realty updated"})
	}, middleware.RequireRole("admin"))

	protected.DELETE("/realty/:slug", func(c echo.Context) error {
		if err := rs.DeleteRealty(c.Request().Context(), c.Param("slug")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "realty deleted"})
	}, middleware.RequireRole("admin"))
}

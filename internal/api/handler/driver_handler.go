package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/metrics"
	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// DriverHandler handles HTTP requests for driver records.
type DriverHandler struct {
	drivers ports.DriverService
}

func NewDriverHandler(drivers ports.DriverService) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

type createDriverRequest struct {
	UserID string        `json:"user" validate:"required"`
	Region domain.Region `json:"region"`
}

// List handles GET /drivers. With ?userOnly=true each item carries only the
// driver id and its resolved user.
func (h *DriverHandler) List(c echo.Context) error {
	userOnly := c.QueryParam("userOnly") == "true"

	drivers, err := h.drivers.List(c.Request().Context(), userOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, drivers)
}

// Get handles GET /drivers/:id.
func (h *DriverHandler) Get(c echo.Context) error {
	driver, err := h.drivers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, driver)
}

// GetByUser handles GET /drivers/user/:userId. Admins resolve any user;
// non-admins always get their own record regardless of the path id.
func (h *DriverHandler) GetByUser(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	driver, err := h.drivers.GetByUser(c.Request().Context(), caller, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, driver)
}

// Create handles POST /drivers.
func (h *DriverHandler) Create(c echo.Context) error {
	var req createDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	driver, err := h.drivers.Create(c.Request().Context(), ports.CreateDriverInput{
		UserID: req.UserID,
		Region: req.Region,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("driver", "create").Inc()
	return c.JSON(http.StatusCreated, driver)
}

// Update handles PATCH /drivers/:id. Only the region is mutable.
func (h *DriverHandler) Update(c echo.Context) error {
	patch, err := bindPatch(c)
	if err != nil {
		return err
	}

	driver, err := h.drivers.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("driver", "update").Inc()
	return c.JSON(http.StatusOK, driver)
}

// Delete handles DELETE /drivers/:id.
func (h *DriverHandler) Delete(c echo.Context) error {
	driver, err := h.drivers.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("driver", "delete").Inc()
	return c.JSON(http.StatusOK, driver)
}

// DeleteMany handles DELETE /drivers/many.
func (h *DriverHandler) DeleteMany(c echo.Context) error {
	var req deleteManyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.drivers.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("driver", "delete_many").Inc()
	return c.JSON(http.StatusOK, deleteManyResponse{DeletedCount: count})
}

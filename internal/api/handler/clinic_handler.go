package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/metrics"
	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// ClinicHandler handles HTTP requests for clinics.
type ClinicHandler struct {
	clinics ports.ClinicService
}

func NewClinicHandler(clinics ports.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinics: clinics}
}

type createClinicRequest struct {
	CNPJ    int64          `json:"cnpj" validate:"required"`
	Name    string         `json:"name" validate:"required"`
	Address domain.Address `json:"address"`
	Phone   int64          `json:"phone"`
	Contact string         `json:"contact"`
}

// List handles GET /clinics.
func (h *ClinicHandler) List(c echo.Context) error {
	clinics, err := h.clinics.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clinics)
}

// Get handles GET /clinics/:id.
func (h *ClinicHandler) Get(c echo.Context) error {
	clinic, err := h.clinics.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clinic)
}

// Create handles POST /clinics.
func (h *ClinicHandler) Create(c echo.Context) error {
	var req createClinicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clinic, err := h.clinics.Create(c.Request().Context(), ports.CreateClinicInput{
		CNPJ:    req.CNPJ,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Contact: req.Contact,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("clinic", "create").Inc()
	return c.JSON(http.StatusCreated, clinic)
}

// Update handles PATCH /clinics/:id, gated by the per-role field policy.
func (h *ClinicHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	patch, err := bindPatch(c)
	if err != nil {
		return err
	}

	clinic, err := h.clinics.Update(c.Request().Context(), caller.Role(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("clinic", "update").Inc()
	return c.JSON(http.StatusOK, clinic)
}

// Delete handles DELETE /clinics/:id.
func (h *ClinicHandler) Delete(c echo.Context) error {
	clinic, err := h.clinics.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("clinic", "delete").Inc()
	return c.JSON(http.StatusOK, clinic)
}

// DeleteMany handles DELETE /clinics/many.
func (h *ClinicHandler) DeleteMany(c echo.Context) error {
	var req deleteManyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.clinics.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("clinic", "delete_many").Inc()
	return c.JSON(http.StatusOK, deleteManyResponse{DeletedCount: count})
}

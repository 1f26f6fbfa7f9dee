package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/metrics"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// PickupHandler handles HTTP requests for pickups and their photos.
type PickupHandler struct {
	pickups ports.PickupService
	photos  ports.PhotoService
}

func NewPickupHandler(pickups ports.PickupService, photos ports.PhotoService) *PickupHandler {
	return &PickupHandler{pickups: pickups, photos: photos}
}

type createPickupRequest struct {
	ClinicID string    `json:"clinic" validate:"required"`
	DriverID string    `json:"driver" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Note     string    `json:"note"`
}

// List handles GET /pickUps (admin overview, references resolved).
func (h *PickupHandler) List(c echo.Context) error {
	pickups, err := h.pickups.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pickups)
}

// ListForDriver handles GET /pickUps/driver: only the caller's assignments.
func (h *PickupHandler) ListForDriver(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	pickups, err := h.pickups.ListForDriver(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pickups)
}

// Get handles GET /pickUps/:id. Non-admins only see their own assignments.
func (h *PickupHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	pickup, err := h.pickups.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pickup)
}

// Create handles POST /pickUps.
func (h *PickupHandler) Create(c echo.Context) error {
	var req createPickupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pickup, err := h.pickups.Create(c.Request().Context(), ports.CreatePickupInput{
		ClinicID: req.ClinicID,
		DriverID: req.DriverID,
		Date:     req.Date,
		Note:     req.Note,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("pickup", "create").Inc()
	return c.JSON(http.StatusCreated, pickup)
}

// Update handles PATCH /pickUps/:id, gated by the per-role field policy:
// admins may reassign and reschedule, drivers may only set note and done.
func (h *PickupHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	patch, err := bindPatch(c)
	if err != nil {
		return err
	}

	pickup, err := h.pickups.Update(c.Request().Context(), caller.Role(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("pickup", "update").Inc()
	return c.JSON(http.StatusOK, pickup)
}

// Delete handles DELETE /pickUps/:id.
func (h *PickupHandler) Delete(c echo.Context) error {
	pickup, err := h.pickups.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("pickup", "delete").Inc()
	return c.JSON(http.StatusOK, pickup)
}

// DeleteMany handles DELETE /pickUps/many.
func (h *PickupHandler) DeleteMany(c echo.Context) error {
	var req deleteManyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.pickups.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("pickup", "delete_many").Inc()
	return c.JSON(http.StatusOK, deleteManyResponse{DeletedCount: count})
}

// UploadPhoto handles POST /pickUps/:id/photo. Exactly one multipart file in
// the "photo" field; the stored (normalized) PNG is echoed back.
func (h *PickupHandler) UploadPhoto(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form with a photo file is required")
	}
	files := form.File["photo"]
	if len(files) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one photo file is required")
	}
	fh := files[0]

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable photo file")
	}
	defer src.Close()

	start := time.Now()
	photo, err := h.photos.Upload(c.Request().Context(), c.Param("id"), fh.Filename, fh.Size, src)
	if err != nil {
		return err
	}

	metrics.PhotoUploadDuration.Observe(time.Since(start).Seconds())
	metrics.PhotoUploadBytes.Observe(float64(len(photo)))
	return c.Blob(http.StatusOK, "image/png", photo)
}

// GetPhoto handles GET /pickUps/:id/photo.
func (h *PickupHandler) GetPhoto(c echo.Context) error {
	photo, err := h.photos.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", photo)
}

// DeletePhoto handles DELETE /pickUps/:id/photo.
func (h *PickupHandler) DeletePhoto(c echo.Context) error {
	if err := h.photos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

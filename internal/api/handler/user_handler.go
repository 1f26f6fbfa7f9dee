package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medcollect/pickup-api/internal/api/metrics"
	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user records and the session routes.
type UserHandler struct {
	users ports.UserService
	auth  ports.AuthService
}

func NewUserHandler(users ports.UserService, auth ports.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

type createUserRequest struct {
	Name          string          `json:"name" validate:"required"`
	CPF           int64           `json:"cpf" validate:"required"`
	Birthday      time.Time       `json:"birthday" validate:"required"`
	Phone         int64           `json:"phone"`
	CNH           *domain.License `json:"cnh"`
	Address       domain.Address  `json:"address"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=7"`
	Administrator bool            `json:"administrator"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// List handles GET /users. With ?drivers=true only non-administrators are
// returned, projected to id and name.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        drivers  query  string  false  "Set to true for the id+name projection of non-admins"
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if c.QueryParam("drivers") == "true" {
		summaries, err := h.users.ListDrivers(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, summaries)
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id. Non-admins always receive their own profile.
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /users: admin-created account, answered with the new
// user and its first session token.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  authResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.auth.Register(c.Request().Context(), ports.CreateUserInput{
		Name:          req.Name,
		CPF:           req.CPF,
		Birthday:      req.Birthday,
		Phone:         req.Phone,
		CNH:           req.CNH,
		Address:       req.Address,
		Email:         req.Email,
		Password:      req.Password,
		Administrator: req.Administrator,
	})
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "create").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user, Token: token})
}

// Update handles PATCH /users/:id, gated by the per-role field policy.
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	patch, err := bindPatch(c)
	if err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), caller.Role(), c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id. The user's driver record goes with it.
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "delete").Inc()
	return c.JSON(http.StatusOK, user)
}

// DeleteMany handles DELETE /users/many.
func (h *UserHandler) DeleteMany(c echo.Context) error {
	var req deleteManyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.users.DeleteMany(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	metrics.EntityWritesTotal.WithLabelValues("user", "delete_many").Inc()
	return c.JSON(http.StatusOK, deleteManyResponse{DeletedCount: count})
}

// Login handles POST /users/login.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{User: user, Token: token})
}

// Logout handles POST /users/logout: revokes exactly the presented token.
func (h *UserHandler) Logout(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), caller, token); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// LogoutAll handles POST /users/logoutAll: revokes every session.
func (h *UserHandler) LogoutAll(c echo.Context) error {
	caller, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.auth.LogoutAll(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

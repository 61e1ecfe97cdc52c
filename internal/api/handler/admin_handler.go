package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// AdminHandler serves /admin/*. Every route sits behind RequireAdmin.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// --- Request / Response types ---

type createUserRequest struct {
	Name     string          `json:"name"      validate:"required"`
	Role     string          `json:"role"      validate:"oneof=admin kassierer"`
	Active   json.RawMessage `json:"active"    swaggertype:"boolean"`
	APIToken *string         `json:"api_token"`
	Username *string         `json:"username"`
	Password *string         `json:"password"`
}

type updateUserRequest struct {
	Name   *string         `json:"name"`
	Role   *string         `json:"role"   validate:"omitempty,oneof=admin kassierer"`
	Active json.RawMessage `json:"active" swaggertype:"boolean"`
}

type assignDeviceRequest struct {
	DeviceID  string          `json:"device_id"`
	Device    string          `json:"device"`
	AndroidID string          `json:"android_id"`
	UserID    json.RawMessage `json:"user_id"`
}

type userResponse struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	Active bool        `json:"active"`
}

type createdUserResponse struct {
	userResponse
	APIToken string `json:"api_token"`
	Username string `json:"username,omitempty"`
}

type usersResponse struct {
	Users []userResponse `json:"users"`
}

type assignDeviceResponse struct {
	DeviceID string      `json:"device_id"`
	UserID   int64       `json:"user_id"`
	Role     domain.Role `json:"role"`
	Name     string      `json:"name"`
}

type devicesResponse struct {
	Devices []ports.DeviceView `json:"devices"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: u.Role, Active: u.Active}
}

// CreateUser handles POST /admin/users. The token is only ever shown here and
// at login.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  createdUserResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	active, err := optionalBool("active", req.Active)
	if err != nil {
		return err
	}

	u, err := h.service.CreateUser(ports.CreateUserInput{
		Name:     req.Name,
		Role:     req.Role,
		Active:   active,
		APIToken: req.APIToken,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdUserResponse{
		userResponse: toUserResponse(u),
		APIToken:     u.APIToken,
		Username:     u.Username,
	})
}

// ListUsers handles GET /admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users := h.service.ListUsers()
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, usersResponse{Users: out})
}

// UpdateUser handles PATCH /admin/users/:id.
//
// @Summary      Partially update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.NotFound("user not found")
	}

	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	active, err := optionalBool("active", req.Active)
	if err != nil {
		return err
	}

	u, err := h.service.UpdateUser(id, ports.UpdateUserInput{Name: req.Name, Role: req.Role, Active: active})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// AssignDevice handles POST /admin/devices.
//
// @Summary      Assign a device to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignDeviceRequest  true  "Assignment"
// @Success      201   {object}  assignDeviceResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      404   {object}  api.errorResponse
// @Router       /admin/devices [post]
func (h *AdminHandler) AssignDevice(c echo.Context) error {
	var req assignDeviceRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	a, u, err := h.service.AssignDevice(firstNonEmpty(req.DeviceID, req.Device, req.AndroidID), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, assignDeviceResponse{
		DeviceID: a.DeviceID,
		UserID:   a.UserID,
		Role:     u.Role,
		Name:     u.Name,
	})
}

// ListDevices handles GET /admin/devices.
//
// @Summary      List device assignments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  devicesResponse
// @Router       /admin/devices [get]
func (h *AdminHandler) ListDevices(c echo.Context) error {
	return c.JSON(http.StatusOK, devicesResponse{Devices: h.service.ListDevices()})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

// UserHandler covers the admin-only user management surface: listing,
// creation, soft delete with undo, and permanent removal.
type UserHandler struct {
	Store store.Store
}

func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{Store: st}
}

// GET /api/users
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Store.ListUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, users)
}

type createUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// POST /api/users
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	u := models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
		FullName: strings.TrimSpace(req.FullName),
		Role:     req.Role,
	}
	if err := h.Store.CreateUser(&u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "EMAIL_EXISTS"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusCreated, u)
}

// DELETE /api/users/:id
// Moves the user plus their attendance and todos into the deleted-users
// archive. Restorable via POST /api/users/:id/undo.
func (h *UserHandler) SoftDelete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	du, err := h.Store.SoftDeleteUser(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":        "User deleted",
		"undo_available": true,
		"deleted_at":     du.DeletedAt,
	})
}

// POST /api/users/:id/undo
func (h *UserHandler) Restore(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Store.RestoreUser(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User restored",
		"user":    u,
	})
}

// POST /api/users/:id/permanent-delete
func (h *UserHandler) PermanentDelete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Store.PermanentDeleteUser(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "User permanently deleted"})
}

// GET /api/users/deleted
func (h *UserHandler) ListDeleted(c echo.Context) error {
	deleted, err := h.Store.ListDeletedUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, deleted)
}

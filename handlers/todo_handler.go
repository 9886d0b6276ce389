package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mufid-dev-alt/office-attendance-track-backend/models"
	"github.com/mufid-dev-alt/office-attendance-track-backend/store"
)

type TodoHandler struct {
	Store store.Store
}

func NewTodoHandler(st store.Store) *TodoHandler {
	return &TodoHandler{Store: st}
}

// GET /api/todos?user_id=
// Regular users see their own list. Admins see everything, optionally
// narrowed by user_id.
func (h *TodoHandler) List(c echo.Context) error {
	var userID *uint
	if isAdmin(c) {
		if v := strings.TrimSpace(c.QueryParam("user_id")); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				id := uint(n)
				userID = &id
			}
		}
	} else {
		own := currentUserID(c)
		userID = &own
	}

	todos, err := h.Store.ListTodos(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, todos)
}

type createTodoReq struct {
	UserID    uint   `json:"user_id"`
	Notes     string `json:"notes" validate:"required"`
	Completed bool   `json:"completed"`
}

// POST /api/todos
func (h *TodoHandler) Create(c echo.Context) error {
	var req createTodoReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.UserID == 0 {
		req.UserID = currentUserID(c)
	}
	if !isAdmin(c) && req.UserID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	t := models.Todo{
		UserID:    req.UserID,
		Notes:     strings.TrimSpace(req.Notes),
		Completed: req.Completed,
	}
	if err := h.Store.CreateTodo(&t); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusCreated, t)
}

type updateTodoReq struct {
	Notes     *string `json:"notes"`
	Completed *bool   `json:"completed"`
}

// PUT /api/todos/:id
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	t, err := h.loadOwned(c, id)
	if err != nil {
		return err
	}

	var req updateTodoReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.Notes != nil {
		t.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	if err := h.Store.UpdateTodo(t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /api/todos/:id
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	t, err := h.loadOwned(c, id)
	if err != nil {
		return err
	}

	if err := h.Store.DeleteTodo(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Todo deleted", "todo": t})
}

// loadOwned fetches the todo and enforces that non-admins only touch
// their own entries.
func (h *TodoHandler) loadOwned(c echo.Context, id uint) (*models.Todo, error) {
	t, err := h.Store.GetTodo(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "STORE_UNAVAILABLE"})
	}
	if !isAdmin(c) && t.UserID != currentUserID(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	return t, nil
}

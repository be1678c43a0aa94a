package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
)

// PositionHandler handles HTTP requests for position operations.
type PositionHandler struct {
	service ports.PositionService
}

func NewPositionHandler(service ports.PositionService) *PositionHandler {
	return &PositionHandler{service: service}
}

// Create handles POST /positions.
//
// @Summary      Create a position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Client key for safe retries"
// @Param        body             body      positionRequest  true   "Position"
// @Success      201              {object}  positionResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /positions [post]
func (h *PositionHandler) Create(c echo.Context) error {
	var req positionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	key, err := idempotencyKey(c)
	if err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreatePositionInput{
		Name:           req.PositionName,
		IdempotencyKey: key,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPositionResponse(p))
}

// Get handles GET /positions/:id.
//
// @Summary      Get a position by id
// @Tags         positions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Position id (UUID)"
// @Success      200  {object}  positionResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /positions/{id} [get]
func (h *PositionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPositionResponse(p))
}

// List handles GET /positions.
//
// @Summary      List positions
// @Tags         positions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   positionResponse
// @Router       /positions [get]
func (h *PositionHandler) List(c echo.Context) error {
	ps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPositionResponses(ps))
}

// Update handles PUT /positions/:id.
//
// @Summary      Rename a position
// @Tags         positions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Position id (UUID)"
// @Param        body  body      positionRequest  true  "New name"
// @Success      200   {object}  positionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /positions/{id} [put]
func (h *PositionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req positionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), id, req.PositionName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPositionResponse(p))
}

// Delete handles DELETE /positions/:id. Employees referencing the position
// are left in place.
//
// @Summary      Delete a position
// @Tags         positions
// @Security     BearerAuth
// @Param        id   path  string  true  "Position id (UUID)"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /positions/{id} [delete]
func (h *PositionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	removed, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrPositionNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

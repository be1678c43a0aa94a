package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee operations.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Client key for safe retries"
// @Param        body             body      createEmployeeRequest  true   "Employee"
// @Success      201              {object}  employeeResponse
// @Failure      400              {object}  errorResponse  "Validation failed or position does not exist"
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	positionID, err := uuid.Parse(req.PositionID)
	if err != nil {
		return domain.ErrInvalidID
	}
	key, err := idempotencyKey(c)
	if err != nil {
		return err
	}

	e, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:           req.Name,
		PositionID:     positionID,
		IdempotencyKey: key,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(e))
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id (UUID)"
// @Success      200  {object}  employeeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(e))
}

// List handles GET /employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   employeeResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	es, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponses(es))
}

// Update handles PUT /employees/:id. Name and position_id are each optional.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id (UUID)"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.EmployeePatch{Name: req.Name}
	if req.PositionID != nil {
		positionID, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return domain.ErrInvalidID
		}
		patch.PositionID = &positionID
	}

	e, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(e))
}

// Delete handles DELETE /employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id   path  string  true  "Employee id (UUID)"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	removed, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrEmployeeNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import "strings"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Positions ---

type positionRequest struct {
	PositionName string `json:"position_name" validate:"required,max=100"`
}

func (r *positionRequest) normalize() {
	r.PositionName = strings.TrimSpace(r.PositionName)
}

type positionResponse struct {
	PositionID   string `json:"position_id"`
	PositionName string `json:"position_name"`
}

// --- Employees ---

type createEmployeeRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	PositionID string `json:"position_id" validate:"required,uuid"`
}

func (r *createEmployeeRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.PositionID = strings.TrimSpace(r.PositionID)
}

// updateEmployeeRequest fields are independently optional; absent means unchanged.
type updateEmployeeRequest struct {
	Name       *string `json:"name,omitempty"        validate:"omitempty,max=100"`
	PositionID *string `json:"position_id,omitempty" validate:"omitempty,uuid"`
}

func (r *updateEmployeeRequest) normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
}

type employeeResponse struct {
	EmpID        string  `json:"emp_id"`
	Name         string  `json:"name"`
	PositionID   string  `json:"position_id"`
	PositionName *string `json:"position_name"`
}

// --- Health ---

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

package handler

import "github.com/hrcore/employee-service/internal/core/domain"

func toPositionResponse(p *domain.Position) positionResponse {
	return positionResponse{
		PositionID:   p.ID.String(),
		PositionName: p.Name,
	}
}

func toPositionResponses(ps []domain.Position) []positionResponse {
	out := make([]positionResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toPositionResponse(&ps[i]))
	}
	return out
}

func toEmployeeResponse(e *domain.EmployeeDetail) employeeResponse {
	return employeeResponse{
		EmpID:        e.ID.String(),
		Name:         e.Name,
		PositionID:   e.PositionID.String(),
		PositionName: e.PositionName,
	}
}

func toEmployeeResponses(es []domain.EmployeeDetail) []employeeResponse {
	out := make([]employeeResponse, 0, len(es))
	for i := range es {
		out = append(out, toEmployeeResponse(&es[i]))
	}
	return out
}
